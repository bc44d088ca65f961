package backoffice

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// Call is one fully-specified upstream request: the translator owns the path,
// method, body shape, and whether the session cookie travels with it.
type Call struct {
	Op     string
	Method string
	Path   string
	Query  url.Values
	Body   any

	// Anonymous marks routes the backoffice serves without a session.
	Anonymous bool

	// Verification marks calls whose upstream 4xx is a soft rejection
	// surfaced to the caller instead of a generic failure.
	Verification bool
}

// Default remarks substituted when the caller supplies none.
const (
	defaultAddCreditRemarks     = "Add credit via Bank Adapter"
	defaultRemoveCreditRemarks  = "Remove credit via Bank Adapter"
	defaultCashoutCreditRemarks = "Cashout credit via Bank Adapter"
)

// ListParams are the optional pagination/search parameters passed through to
// the backoffice list endpoint.
type ListParams struct {
	Page   string
	Limit  string
	Search string
}

// ListMembers fetches the full member collection.
func ListMembers(params ListParams) Call {
	query := url.Values{}
	if params.Page != "" {
		query.Set("page", params.Page)
	}
	if params.Limit != "" {
		query.Set("limit", params.Limit)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	return Call{
		Op:     "list_members",
		Method: http.MethodGet,
		Path:   "/member/list",
		Query:  query,
	}
}

// CreateMember forwards the caller's member payload unchanged.
func CreateMember(body map[string]any) Call {
	return Call{
		Op:     "create_member",
		Method: http.MethodPost,
		Path:   "/member/create-member",
		Body:   body,
	}
}

// UpdateMember forwards the caller's update payload. The backoffice serves
// this route without a session.
func UpdateMember(id string, body map[string]any) Call {
	return Call{
		Op:        "update_member",
		Method:    http.MethodPut,
		Path:      "/member/" + url.PathEscape(id),
		Body:      body,
		Anonymous: true,
	}
}

// DeleteMember removes a member. The backoffice serves this route without a
// session.
func DeleteMember(id string) Call {
	return Call{
		Op:        "delete_member",
		Method:    http.MethodDelete,
		Path:      "/member/" + url.PathEscape(id),
		Anonymous: true,
	}
}

// CreditRequest is the loosely-typed caller input for credit operations.
// Amount may arrive as a number or a numeric string.
type CreditRequest struct {
	Phone   string `json:"phone"`
	Amount  any    `json:"amount"`
	Remarks string `json:"remarks"`
}

// AddCredit reshapes the caller's request into the backoffice add/remove
// credit payload, keyed by phone with a fixed credit type.
func AddCredit(req CreditRequest) Call {
	return Call{
		Op:     "add_credit",
		Method: http.MethodPost,
		Path:   "/member/add-remove-credit-member",
		Body: map[string]any{
			"phone":      req.Phone,
			"amount":     coerceAmount(req.Amount),
			"creditType": "ADD_CREDIT",
			"remarks":    defaultRemarks(req.Remarks, defaultAddCreditRemarks),
		},
	}
}

// RemoveCredit reshapes the caller's request, keyed by member id.
func RemoveCredit(id string, req CreditRequest) Call {
	return Call{
		Op:     "remove_credit",
		Method: http.MethodPost,
		Path:   "/member/remove-credit-member",
		Body: map[string]any{
			"id":      id,
			"amount":  coerceAmount(req.Amount),
			"remarks": defaultRemarks(req.Remarks, defaultRemoveCreditRemarks),
		},
	}
}

// CashoutCredit cashes out a member's full balance; the backoffice takes no
// amount on this route.
func CashoutCredit(id string, req CreditRequest) Call {
	return Call{
		Op:     "cashout_credit",
		Method: http.MethodPost,
		Path:   "/member/cashout-credit-member",
		Body: map[string]any{
			"id":      id,
			"remarks": defaultRemarks(req.Remarks, defaultCashoutCreditRemarks),
		},
	}
}

// DepositRequest is the caller's deposit notification. Field names follow the
// backoffice dashboard contract. MoneyDeposit may arrive as a number or a
// numeric string.
type DepositRequest struct {
	ID             string `json:"Id"`
	Phone          string `json:"Phone"`
	MoneyDeposit   any    `json:"MoneyDeposit"`
	Currency       string `json:"Currency"`
	BankName       string `json:"BankName"`
	DateDeposit    string `json:"DateDeposit"`
	TimeDeposit    string `json:"TimeDeposit"`
	ActualDateTime string `json:"ActualDateTime"`
}

// Deposit records a deposit on the backoffice dashboard, normalizing the
// amount to a number.
func Deposit(req DepositRequest) Call {
	return Call{
		Op:     "deposit",
		Method: http.MethodPost,
		Path:   "/dashboard/deposit",
		Body: map[string]any{
			"Id":             req.ID,
			"Phone":          req.Phone,
			"MoneyDeposit":   coerceAmount(req.MoneyDeposit),
			"Currency":       req.Currency,
			"BankName":       req.BankName,
			"DateDeposit":    req.DateDeposit,
			"TimeDeposit":    req.TimeDeposit,
			"ActualDateTime": req.ActualDateTime,
		},
	}
}

// CheckAccountName forwards a verification payload verbatim. Upstream 4xx is
// the backoffice's own validation verdict, not a gateway failure.
func CheckAccountName(op string, body map[string]any) Call {
	return Call{
		Op:           op,
		Method:       http.MethodPost,
		Path:         "/member/check-account-name",
		Body:         body,
		Verification: true,
	}
}

func defaultRemarks(remarks, fallback string) string {
	if remarks == "" {
		return fallback
	}
	return remarks
}

// coerceAmount normalizes a loosely-typed monetary value to float64,
// defaulting to 0 when absent or unparsable.
func coerceAmount(v any) float64 {
	switch amount := v.(type) {
	case float64:
		return amount
	case string:
		f, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return 0
		}
		return f
	case json.Number:
		f, err := amount.Float64()
		if err != nil {
			return 0
		}
		return f
	case int:
		return float64(amount)
	default:
		return 0
	}
}
