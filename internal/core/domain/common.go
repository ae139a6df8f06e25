package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Module identifies one of the posting ledgers. Every nominal, VAT and cash
// book transaction row is keyed by (module, header) because headers in
// different ledgers share an id space only within their own module.
type Module string

const (
	ModuleCashBook  Module = "CB"
	ModuleNominal   Module = "NL"
	ModulePurchases Module = "PL"
	ModuleSales     Module = "SL"
)

// AllModules lists every posting ledger, in sentinel-lock order.
var AllModules = []Module{ModuleCashBook, ModuleNominal, ModulePurchases, ModuleSales}

func (m Module) Valid() bool {
	switch m {
	case ModuleCashBook, ModuleNominal, ModulePurchases, ModuleSales:
		return true
	}
	return false
}
