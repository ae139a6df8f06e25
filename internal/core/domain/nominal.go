package domain

import "github.com/shopspring/decimal"

// NominalType partitions the chart of accounts for year end: profit and loss
// nominals are zeroed into retained earnings, balance sheet nominals carry
// their balances forward.
type NominalType string

const (
	NominalProfitAndLoss NominalType = "pl"
	NominalBalanceSheet  NominalType = "b"
)

// Nominal is one account in the chart of accounts. The chart is a tree;
// postings are only ever made to leaves but reports roll balances up through
// ParentID.
type Nominal struct {
	NominalID string      `json:"nominalID"`
	Name      string      `json:"name"`
	ParentID  string      `json:"parentID,omitempty"`
	Type      NominalType `json:"type"`
	AuditFields
}

func (n *Nominal) IsProfitAndLoss() bool {
	return n.Type == NominalProfitAndLoss
}

// PostingField identifies what a nominal posting row represents within its
// source line: goods value, VAT value, or the header total.
type PostingField string

const (
	FieldGoods PostingField = "g"
	FieldVat   PostingField = "v"
	FieldTotal PostingField = "t"
)

// NominalTransaction is one double-entry posting row. The quadruple
// (Module, HeaderID, LineNo, Field) is unique: a line posts at most one row
// per field. Rows for a header always sum to zero.
type NominalTransaction struct {
	ID          string          `json:"id"`
	Module      Module          `json:"module"`
	HeaderID    string          `json:"headerID"`
	LineNo      int             `json:"lineNo"`
	NominalID   string          `json:"nominalID"`
	Value       decimal.Decimal `json:"value"`
	Ref         string          `json:"ref"`
	Period      string          `json:"period"`
	Date        string          `json:"date"` // ISO date of the source header
	Type        TransactionType `json:"type"`
	Field       PostingField    `json:"field"`
	AuditFields
}

// TrialBalanceRow is one nominal's aggregate over a period range.
type TrialBalanceRow struct {
	NominalID   string          `json:"nominalID"`
	NominalName string          `json:"nominalName"`
	Type        NominalType     `json:"type"`
	Total       decimal.Decimal `json:"total"`
	YTD         decimal.Decimal `json:"ytd"`
}
