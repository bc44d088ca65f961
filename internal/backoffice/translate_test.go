package backoffice

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMembers_QueryPassthrough(t *testing.T) {
	call := ListMembers(ListParams{Page: "2", Limit: "50", Search: "012345"})

	assert.Equal(t, http.MethodGet, call.Method)
	assert.Equal(t, "/member/list", call.Path)
	assert.Equal(t, "2", call.Query.Get("page"))
	assert.Equal(t, "50", call.Query.Get("limit"))
	assert.Equal(t, "012345", call.Query.Get("search"))
	assert.False(t, call.Anonymous)
}

func TestListMembers_OmitsEmptyParams(t *testing.T) {
	call := ListMembers(ListParams{})
	assert.Empty(t, call.Query)
}

func TestUpdateAndDeleteMember_AreAnonymous(t *testing.T) {
	update := UpdateMember("42", map[string]any{"fullName": "New Name"})
	assert.True(t, update.Anonymous)
	assert.Equal(t, http.MethodPut, update.Method)
	assert.Equal(t, "/member/42", update.Path)

	del := DeleteMember("42")
	assert.True(t, del.Anonymous)
	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "/member/42", del.Path)
	assert.Nil(t, del.Body)
}

func TestAddCredit_BodyShape(t *testing.T) {
	tests := []struct {
		name        string
		req         CreditRequest
		wantAmount  float64
		wantRemarks string
	}{
		{
			name:        "numeric amount with remarks",
			req:         CreditRequest{Phone: "2055512345", Amount: 150.5, Remarks: "topup"},
			wantAmount:  150.5,
			wantRemarks: "topup",
		},
		{
			name:        "string amount defaults remarks",
			req:         CreditRequest{Phone: "2055512345", Amount: "99.9"},
			wantAmount:  99.9,
			wantRemarks: "Add credit via Bank Adapter",
		},
		{
			name:        "unparsable amount coerces to zero",
			req:         CreditRequest{Phone: "2055512345", Amount: "abc"},
			wantAmount:  0,
			wantRemarks: "Add credit via Bank Adapter",
		},
		{
			name:        "missing amount coerces to zero",
			req:         CreditRequest{Phone: "2055512345"},
			wantAmount:  0,
			wantRemarks: "Add credit via Bank Adapter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := AddCredit(tt.req)

			body, ok := call.Body.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "/member/add-remove-credit-member", call.Path)
			assert.Equal(t, tt.req.Phone, body["phone"])
			assert.Equal(t, tt.wantAmount, body["amount"])
			assert.Equal(t, "ADD_CREDIT", body["creditType"])
			assert.Equal(t, tt.wantRemarks, body["remarks"])
		})
	}
}

func TestRemoveCredit_KeyedByID(t *testing.T) {
	call := RemoveCredit("7", CreditRequest{Amount: 20})

	body, ok := call.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/member/remove-credit-member", call.Path)
	assert.Equal(t, "7", body["id"])
	assert.Equal(t, float64(20), body["amount"])
	assert.Equal(t, "Remove credit via Bank Adapter", body["remarks"])
	assert.NotContains(t, body, "phone")
}

func TestCashoutCredit_CarriesNoAmount(t *testing.T) {
	call := CashoutCredit("7", CreditRequest{Amount: 999})

	body, ok := call.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/member/cashout-credit-member", call.Path)
	assert.Equal(t, "7", body["id"])
	assert.Equal(t, "Cashout credit via Bank Adapter", body["remarks"])
	assert.NotContains(t, body, "amount")
}

func TestDeposit_NormalizesAmount(t *testing.T) {
	call := Deposit(DepositRequest{
		Phone:          "2055512345",
		MoneyDeposit:   "1000000",
		Currency:       "LAK",
		BankName:       "BCEL",
		DateDeposit:    "2026-08-30",
		TimeDeposit:    "14:05",
		ActualDateTime: "2026-08-30T14:05:00Z",
	})

	body, ok := call.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/dashboard/deposit", call.Path)
	assert.Equal(t, float64(1000000), body["MoneyDeposit"])
	assert.Equal(t, "", body["Id"])
	assert.Equal(t, "BCEL", body["BankName"])
}

func TestCheckAccountName_MarksVerification(t *testing.T) {
	payload := map[string]any{"accountNumber": "123", "bankCode": "BCEL"}
	call := CheckAccountName("check_account", payload)

	assert.Equal(t, "/member/check-account-name", call.Path)
	assert.True(t, call.Verification)
	assert.False(t, call.Anonymous)
	assert.Equal(t, payload, call.Body)
}
