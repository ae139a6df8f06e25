package domain

import "github.com/shopspring/decimal"

// VatCode is a VAT rate the user can analyse lines against.
type VatCode struct {
	VatCodeID  string          `json:"vatCodeID"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate"` // percentage, e.g. 20
	Registered bool            `json:"registered"`
	AuditFields
}

// VatTransaction is one VAT register row, written for every posted line that
// carries a VAT code. It snapshots the code and rate at posting time so later
// rate changes do not rewrite history. (Module, HeaderID, LineNo) is unique.
type VatTransaction struct {
	ID        string          `json:"id"`
	Module    Module          `json:"module"`
	HeaderID  string          `json:"headerID"`
	LineNo    int             `json:"lineNo"`
	VatCodeID string          `json:"vatCodeID"`
	Code      string          `json:"code"`
	Rate      decimal.Decimal `json:"rate"`
	Goods     decimal.Decimal `json:"goods"`
	Vat       decimal.Decimal `json:"vat"`
	Ref       string          `json:"ref"`
	Period    string          `json:"period"`
	Date      string          `json:"date"`
	Type      TransactionType `json:"type"`
	AuditFields
}
