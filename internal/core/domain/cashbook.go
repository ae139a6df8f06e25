package domain

import "github.com/shopspring/decimal"

// CashBook is a bank or cash account. Every payment-type transaction names
// the cash book it moves money through; the book's Nominal receives the bank
// side of the posting.
type CashBook struct {
	CashBookID string `json:"cashBookID"`
	Name       string `json:"name"`
	NominalID  string `json:"nominalID"`
	AuditFields
}

// CashBookTransaction is one cash book register row. Payment-type headers
// write a single register row for the header total; (Module, HeaderID,
// LineNo) is unique.
type CashBookTransaction struct {
	ID         string          `json:"id"`
	Module     Module          `json:"module"`
	HeaderID   string          `json:"headerID"`
	LineNo     int             `json:"lineNo"`
	CashBookID string          `json:"cashBookID"`
	Value      decimal.Decimal `json:"value"`
	Ref        string          `json:"ref"`
	Period     string          `json:"period"`
	Date       string          `json:"date"`
	Type       TransactionType `json:"type"`
	AuditFields
}
