package domain

// PostingBatch is the unit of persistence for the posting and matching
// engines. Services compute every row change in memory and hand the batch to
// the repository, which applies it inside a single transaction holding the
// module's posting lock. Either the whole batch commits or none of it does.
type PostingBatch struct {
	Module Module

	// Header is the subject header to insert or update, nil when the batch
	// only touches counters (e.g. pure matching edits).
	Header       *TransactionHeader
	HeaderIsNew  bool
	HeaderUpdate []TransactionHeader // counter headers with adjusted paid/due

	LinesInsert []TransactionLine
	LinesUpdate []TransactionLine
	LinesDelete []string

	NominalInsert []NominalTransaction
	NominalDelete []string

	VatInsert []VatTransaction
	VatDelete []string

	CashBookInsert []CashBookTransaction
	CashBookDelete []string

	MatchesInsert []MatchedHeaders
	MatchesUpdate []MatchedHeaders
	MatchesDelete []string
}

// Empty reports whether the batch would write nothing.
func (b *PostingBatch) Empty() bool {
	return b.Header == nil &&
		len(b.HeaderUpdate) == 0 &&
		len(b.LinesInsert) == 0 && len(b.LinesUpdate) == 0 && len(b.LinesDelete) == 0 &&
		len(b.NominalInsert) == 0 && len(b.NominalDelete) == 0 &&
		len(b.VatInsert) == 0 && len(b.VatDelete) == 0 &&
		len(b.CashBookInsert) == 0 && len(b.CashBookDelete) == 0 &&
		len(b.MatchesInsert) == 0 && len(b.MatchesUpdate) == 0 && len(b.MatchesDelete) == 0
}
