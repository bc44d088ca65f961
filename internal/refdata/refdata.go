// Package refdata serves the static reference lists callers use to populate
// deposit and member forms. The data is fixed at build time; no tenant or
// session is involved.
package refdata

// Bank is one selectable Lao bank.
type Bank struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Currency is one selectable deposit currency.
type Currency struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CustomerGroup is one selectable member segment.
type CustomerGroup struct {
	ID            string `json:"id"`
	PicklistLabel string `json:"picklistLabel"`
}

// LaoBanks returns the banks accepted on deposit notifications.
func LaoBanks() []Bank {
	return []Bank{
		{Value: "BCEL", Label: "BCEL BANK (BCEL)"},
		{Value: "JDB", Label: "JOINT DEVELOPMENT BANK (JDB)"},
		{Value: "LDB", Label: "LAO DEVELOPMENT BANK (LDB)"},
		{Value: "LVB", Label: "LAOS-VIETNAM BANK (LVB)"},
		{Value: "ACLB", Label: "ACLEDA BANK LAO (ACLB)"},
		{Value: "APB", Label: "AGRICULTURAL PROMOTION BANK (APB)"},
		{Value: "BIC", Label: "BIC Bank Lao Co. Ltd. (BIC)"},
		{Value: "BOC", Label: "Bank of China (Hong Kong) Ltd (BOC)"},
		{Value: "ICBC", Label: "Industrial and Commercial Bank of China Ltd (ICBC)"},
		{Value: "IDCB", Label: "INDOCHINA BANK LTD (IDCB)"},
		{Value: "KTB", Label: "KASIKORNTHAI Bank Sole Ltd. (KTB)"},
		{Value: "MRB", Label: "MARUHAN Japan Bank Lao Co., Ltd (MRB)"},
		{Value: "MBB", Label: "Military Commercial Joint Stock Ban (MBB)"},
		{Value: "PBB", Label: "Public Bank Lao Ltd. (PBB)"},
		{Value: "SCB", Label: "SACOMBANK LAO (SCB)"},
		{Value: "STB", Label: "ST Bank Ltd. (STB)"},
		{Value: "VTB", Label: "Vietinbank Lao Ltd. (VTB)"},
		{Value: "BFL", Label: "Banque Franco-Lao Ltd. (BFL)"},
		{Value: "PSV", Label: "PHONGSAVANH BANK LTD (PSV)"},
	}
}

// Currencies returns the deposit currencies the backoffice accepts.
func Currencies() []Currency {
	return []Currency{
		{Value: "LAK", Label: "LAK"},
		{Value: "THB", Label: "THB"},
	}
}

// CustomerGroups returns the member segments offered at signup.
func CustomerGroups() []CustomerGroup {
	return []CustomerGroup{
		{ID: "1", PicklistLabel: "VIP"},
		{ID: "2", PicklistLabel: "Regular"},
		{ID: "3", PicklistLabel: "Premium"},
	}
}
