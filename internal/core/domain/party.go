package domain

// Supplier is a purchase ledger account.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	AuditFields
}

// Customer is a sales ledger account.
type Customer struct {
	CustomerID string `json:"customerID"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	AuditFields
}
