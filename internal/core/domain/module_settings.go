package domain

// ModuleSettings holds the current posting period for each ledger. New
// transactions default into their module's period; the year end advances
// these when it finalises a year.
//
// There is exactly one settings row. Period values are FYAndPeriod keys and
// may be empty before the first calendar is created.
type ModuleSettings struct {
	CashBookPeriod string `json:"cashBookPeriod"`
	NominalPeriod  string `json:"nominalPeriod"`
	PurchasePeriod string `json:"purchasePeriod"`
	SalesPeriod    string `json:"salesPeriod"`
	AuditFields
}

// PeriodFor returns the current posting period for a module.
func (s *ModuleSettings) PeriodFor(m Module) string {
	switch m {
	case ModuleCashBook:
		return s.CashBookPeriod
	case ModuleNominal:
		return s.NominalPeriod
	case ModulePurchases:
		return s.PurchasePeriod
	case ModuleSales:
		return s.SalesPeriod
	}
	return ""
}

// SetPeriodFor updates the current posting period for a module.
func (s *ModuleSettings) SetPeriodFor(m Module, fyAndPeriod string) {
	switch m {
	case ModuleCashBook:
		s.CashBookPeriod = fyAndPeriod
	case ModuleNominal:
		s.NominalPeriod = fyAndPeriod
	case ModulePurchases:
		s.PurchasePeriod = fyAndPeriod
	case ModuleSales:
		s.SalesPeriod = fyAndPeriod
	}
}
