package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle flag on a header. A void header keeps its
// row for the audit trail but has no postings and no matches.
type TransactionStatus string

const (
	StatusCreated TransactionStatus = "c"
	StatusVoid    TransactionStatus = "v"
)

// TransactionHeader is one ledger transaction. Monetary fields hold the
// stored sign convention: negative types keep their values flipped relative
// to what the user entered.
//
// Due is maintained as Total - Paid at all times; the matching engine adjusts
// Paid and Due together on both sides of every match.
type TransactionHeader struct {
	HeaderID   string            `json:"headerID"`
	Module     Module            `json:"module"`
	Type       TransactionType   `json:"type"`
	Ref        string            `json:"ref"`
	Period     string            `json:"period"` // FYAndPeriod key
	Date       time.Time         `json:"date"`
	DueDate    *time.Time        `json:"dueDate,omitempty"`
	Status     TransactionStatus `json:"status"`
	Goods      decimal.Decimal   `json:"goods"`
	Vat        decimal.Decimal   `json:"vat"`
	Total      decimal.Decimal   `json:"total"`
	Paid       decimal.Decimal   `json:"paid"`
	Due        decimal.Decimal   `json:"due"`
	CashBookID string            `json:"cashBookID,omitempty"` // payment types only
	PartyID    string            `json:"partyID,omitempty"`    // supplier or customer
	AuditFields
}

func (h *TransactionHeader) IsVoid() bool {
	return h.Status == StatusVoid
}

func (h *TransactionHeader) IsPositive() bool {
	return !h.Type.IsNegative()
}

// UIStatus renders the header state for presentation. Fully matched headers
// show as paid, partially matched ones as outstanding.
func (h *TransactionHeader) UIStatus() string {
	if h.IsVoid() {
		return "void"
	}
	if h.Due.IsZero() && !h.Total.IsZero() {
		return "fully matched"
	}
	if !h.Paid.IsZero() {
		return "partially matched"
	}
	return "outstanding"
}

// DisplayTotal flips the stored total back to the sign the user entered.
func (h *TransactionHeader) DisplayTotal() decimal.Decimal {
	return h.Total.Mul(decimal.NewFromInt(h.Type.SignFactor()))
}

// TransactionLine is one analysis line under a header. LineNo is dense and
// 1-based within the header. The posting back-links record which nominal and
// VAT rows this line generated so edits can delete and repost precisely.
type TransactionLine struct {
	LineID      string          `json:"lineID"`
	HeaderID    string          `json:"headerID"`
	LineNo      int             `json:"lineNo"`
	Description string          `json:"description"`
	Goods       decimal.Decimal `json:"goods"`
	Vat         decimal.Decimal `json:"vat"`
	NominalID   string          `json:"nominalID,omitempty"`
	VatCodeID   string          `json:"vatCodeID,omitempty"`

	GoodsPostingID string `json:"goodsPostingID,omitempty"`
	VatPostingID   string `json:"vatPostingID,omitempty"`
	TotalPostingID string `json:"totalPostingID,omitempty"`
	AuditFields
}

// IsNonZero reports whether the line carries any value at all.
func (l *TransactionLine) IsNonZero() bool {
	return !l.Goods.IsZero() || !l.Vat.IsZero()
}

// LineTotal is goods plus VAT for the line.
func (l *TransactionLine) LineTotal() decimal.Decimal {
	return l.Goods.Add(l.Vat)
}
