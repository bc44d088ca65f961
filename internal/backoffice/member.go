package backoffice

import (
	"encoding/json"
	"strconv"
)

// Member is an upstream-owned record. The backoffice is the system of record;
// the gateway never indexes or mutates members, so all fields beyond the ones
// it filters on stay opaque and round-trip unchanged.
type Member map[string]any

// ID returns the member's id field as a string.
func (m Member) ID() string {
	return stringField(m, "id")
}

// Username returns the member's username field, which doubles as the phone
// number in the backoffice.
func (m Member) Username() string {
	return stringField(m, "username")
}

// CreditBalance coerces the member's balance to a number. The backoffice
// reports it as a string; absent or unparsable values yield exactly 0.
func (m Member) CreditBalance() float64 {
	switch v := m["creditBalance"].(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	case float64:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Members is the full collection fetched from the backoffice list endpoint.
// It acts as a virtual secondary index: the backoffice exposes no by-key
// lookup, so the gateway scans linearly. O(n) per lookup, no caching.
type Members []Member

// FindByID returns the first member whose id equals the key.
func (ms Members) FindByID(id string) (Member, bool) {
	return ms.find("id", id)
}

// FindByUsername returns the first member whose username equals the key.
func (ms Members) FindByUsername(username string) (Member, bool) {
	return ms.find("username", username)
}

func (ms Members) find(field, key string) (Member, bool) {
	if key == "" {
		return nil, false
	}
	for _, m := range ms {
		if stringField(m, field) == key {
			return m, true
		}
	}
	return nil, false
}

func stringField(m Member, field string) string {
	if s, ok := m[field].(string); ok {
		return s
	}
	return ""
}

// listBody mirrors the backoffice list response: members live under
// data.members.
type listBody struct {
	Data struct {
		Members Members `json:"members"`
	} `json:"data"`
}

// ParseMembers extracts the member collection from a raw list response body.
func ParseMembers(raw json.RawMessage) (Members, error) {
	var body listBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body.Data.Members, nil
}
