package dto

import (
	"time"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineInput is one analysis line as entered by the user, always with the
// entered sign. LineID is set when editing an existing line.
type LineInput struct {
	LineID      string          `json:"lineID,omitempty"`
	Description string          `json:"description" binding:"max=100"`
	Goods       decimal.Decimal `json:"goods"`
	Vat         decimal.Decimal `json:"vat"`
	NominalID   string          `json:"nominalID,omitempty"`
	VatCodeID   string          `json:"vatCodeID,omitempty"`
}

// MatchInput allocates part of a counter header against the subject. Value is
// entered from the counter's perspective with the user-facing sign.
type MatchInput struct {
	HeaderID string          `json:"headerID" binding:"required"`
	Value    decimal.Decimal `json:"value"`
}

// CreateTransactionRequest creates and posts a ledger transaction.
type CreateTransactionRequest struct {
	Type       domain.TransactionType `json:"type" binding:"required"`
	Ref        string                 `json:"ref" binding:"required,max=20"`
	PartyID    string                 `json:"partyID,omitempty"`
	CashBookID string                 `json:"cashBookID,omitempty"`
	Date       time.Time              `json:"date" binding:"required"`
	DueDate    *time.Time             `json:"dueDate,omitempty"`
	Period     string                 `json:"period,omitempty"` // defaults to the module's current period
	Total      *decimal.Decimal       `json:"total,omitempty"`  // payment types only
	Lines      []LineInput            `json:"lines,omitempty"`
	Matches    []MatchInput           `json:"matches,omitempty"`
}

// EditTransactionRequest updates a posted transaction. Lines present in the
// request are kept or updated; posted lines absent from it are deleted.
// Matches replaces the full allocation set against the listed counters.
type EditTransactionRequest struct {
	// Type is optional and must agree with the stored header when given;
	// the type of a posted transaction can never change.
	Type       domain.TransactionType `json:"type,omitempty"`
	Ref        string                 `json:"ref" binding:"required,max=20"`
	PartyID    string                 `json:"partyID,omitempty"`
	CashBookID string                 `json:"cashBookID,omitempty"`
	Date       time.Time              `json:"date" binding:"required"`
	DueDate    *time.Time             `json:"dueDate,omitempty"`
	Period     string                 `json:"period,omitempty"`
	Total      *decimal.Decimal       `json:"total,omitempty"`
	Lines      []LineInput            `json:"lines,omitempty"`
	Matches    []MatchInput           `json:"matches,omitempty"`
}

// TransactionResponse returns a header with user-facing signs restored.
type TransactionResponse struct {
	HeaderID string                 `json:"headerID"`
	Module   domain.Module          `json:"module"`
	Type     domain.TransactionType `json:"type"`
	TypeName string                 `json:"typeName"`
	Ref      string                 `json:"ref"`
	Period   string                 `json:"period"`
	Date     time.Time              `json:"date"`
	DueDate  *time.Time             `json:"dueDate,omitempty"`
	Status   string                 `json:"status"`
	UIStatus string                 `json:"uiStatus"`
	Goods    decimal.Decimal        `json:"goods"`
	Vat      decimal.Decimal        `json:"vat"`
	Total    decimal.Decimal        `json:"total"`
	Paid     decimal.Decimal        `json:"paid"`
	Due      decimal.Decimal        `json:"due"`
	PartyID  string                 `json:"partyID,omitempty"`
	Lines    []LineResponse         `json:"lines,omitempty"`
	Matches  []MatchResponse        `json:"matches,omitempty"`
}

// LineResponse is one analysis line with user-facing signs.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	LineNo      int             `json:"lineNo"`
	Description string          `json:"description"`
	Goods       decimal.Decimal `json:"goods"`
	Vat         decimal.Decimal `json:"vat"`
	NominalID   string          `json:"nominalID,omitempty"`
	VatCodeID   string          `json:"vatCodeID,omitempty"`
}

// MatchResponse is one allocation row seen from the subject header.
type MatchResponse struct {
	MatchID     string          `json:"matchID"`
	CounterID   string          `json:"counterID"`
	CounterRef  string          `json:"counterRef,omitempty"`
	Value       decimal.Decimal `json:"value"`
	Period      string          `json:"period"`
	SubjectIsTo bool            `json:"subjectIsTo"`
}

// NewTransactionResponse maps a stored header to its user-facing form.
func NewTransactionResponse(h *domain.TransactionHeader) TransactionResponse {
	sign := decimal.NewFromInt(h.Type.SignFactor())
	name := ""
	if info, ok := h.Type.Info(); ok {
		name = info.Name
	}
	return TransactionResponse{
		HeaderID: h.HeaderID,
		Module:   h.Module,
		Type:     h.Type,
		TypeName: name,
		Ref:      h.Ref,
		Period:   h.Period,
		Date:     h.Date,
		DueDate:  h.DueDate,
		Status:   string(h.Status),
		UIStatus: h.UIStatus(),
		Goods:    h.Goods.Mul(sign),
		Vat:      h.Vat.Mul(sign),
		Total:    h.Total.Mul(sign),
		Paid:     h.Paid.Mul(sign),
		Due:      h.Due.Mul(sign),
		PartyID:  h.PartyID,
	}
}

// NewLineResponses maps stored lines to their user-facing form.
func NewLineResponses(t domain.TransactionType, lines []domain.TransactionLine) []LineResponse {
	sign := decimal.NewFromInt(t.SignFactor())
	out := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineResponse{
			LineID:      l.LineID,
			LineNo:      l.LineNo,
			Description: l.Description,
			Goods:       l.Goods.Mul(sign),
			Vat:         l.Vat.Mul(sign),
			NominalID:   l.NominalID,
			VatCodeID:   l.VatCodeID,
		})
	}
	return out
}
