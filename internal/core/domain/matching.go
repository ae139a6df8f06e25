package domain

import "github.com/shopspring/decimal"

// MatchedHeaders links two headers in the same ledger and allocates Value
// between them. Value is recorded from the matched-to header's point of view:
//
//	paid(h) = sum(Value where h is matched-to) - sum(Value where h is matched-by)
//
// so a purchase payment of 120 (stored -120) fully matched to a 120 invoice
// produces one row with the invoice as matched-to and Value 120, giving the
// invoice paid 120 and the payment paid -120.
//
// (MatchedByID, MatchedToID) is unique; a pair of headers has at most one
// match row, updated in place as the allocation changes.
type MatchedHeaders struct {
	MatchID     string          `json:"matchID"`
	Module      Module          `json:"module"`
	MatchedByID string          `json:"matchedByID"`
	MatchedToID string          `json:"matchedToID"`
	Value       decimal.Decimal `json:"value"`
	Period      string          `json:"period"` // period of the matched-by header at match time
	AuditFields
}

// AllocationFor returns the match value seen from one side of the row:
// +Value for the matched-to header, -Value for the matched-by header.
func (m *MatchedHeaders) AllocationFor(headerID string) decimal.Decimal {
	if headerID == m.MatchedToID {
		return m.Value
	}
	return m.Value.Neg()
}

// Involves reports whether the header is on either side of the match.
func (m *MatchedHeaders) Involves(headerID string) bool {
	return headerID == m.MatchedByID || headerID == m.MatchedToID
}
