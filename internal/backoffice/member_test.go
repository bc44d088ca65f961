package backoffice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMembers_NestedUnderData(t *testing.T) {
	raw := json.RawMessage(`{"data":{"members":[{"id":"1","username":"2055511111"},{"id":"2","username":"2055522222"}]}}`)

	members, err := ParseMembers(raw)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "1", members[0].ID())
	assert.Equal(t, "2055522222", members[1].Username())
}

func TestParseMembers_MalformedBody(t *testing.T) {
	_, err := ParseMembers(json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestMembers_Find(t *testing.T) {
	members := Members{
		{"id": "1", "username": "2055511111", "creditBalance": "12.5"},
		{"id": "2", "username": "2055522222"},
	}

	t.Run("by id hit", func(t *testing.T) {
		m, found := members.FindByID("2")
		require.True(t, found)
		assert.Equal(t, "2055522222", m.Username())
	})

	t.Run("by id miss", func(t *testing.T) {
		_, found := members.FindByID("3")
		assert.False(t, found)
	})

	t.Run("by username hit", func(t *testing.T) {
		m, found := members.FindByUsername("2055511111")
		require.True(t, found)
		assert.Equal(t, "1", m.ID())
	})

	t.Run("empty key never matches", func(t *testing.T) {
		_, found := members.FindByID("")
		assert.False(t, found)
		_, found = Members{{"username": ""}}.FindByUsername("")
		assert.False(t, found)
	})
}

func TestMember_CreditBalance(t *testing.T) {
	tests := []struct {
		name   string
		member Member
		want   float64
	}{
		{name: "string balance", member: Member{"creditBalance": "12.5"}, want: 12.5},
		{name: "numeric balance", member: Member{"creditBalance": 42.0}, want: 42},
		{name: "missing balance", member: Member{}, want: 0},
		{name: "non-numeric balance", member: Member{"creditBalance": "n/a"}, want: 0},
		{name: "null balance", member: Member{"creditBalance": nil}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.member.CreditBalance())
		})
	}
}
