package services

import (
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
)

// lineUnchanged reports whether a line's stored form is identical to the one
// already posted.
func lineUnchanged(old, new *domain.TransactionLine) bool {
	return old.LineNo == new.LineNo &&
		old.Description == new.Description &&
		old.Goods.Equal(new.Goods) &&
		old.Vat.Equal(new.Vat) &&
		old.NominalID == new.NominalID &&
		old.VatCodeID == new.VatCodeID
}

// diffLinesAndPostings fills the batch with the line and posting changes an
// edit produces. Unchanged lines keep their postings; changed and new lines
// are (re)posted; removed lines lose theirs. Header-level rows (the control
// row, payment rows, cash book register) are rewritten whenever anything
// about the header changed. fullRepost forces everything to be rewritten,
// used when the period, ref, date or cash book changed, since those fields
// are denormalised onto every posting row.
func diffLinesAndPostings(
	batch *domain.PostingBatch,
	header *domain.TransactionHeader,
	newLines []domain.TransactionLine,
	oldLines []domain.TransactionLine,
	oldNominal []domain.NominalTransaction,
	oldVat []domain.VatTransaction,
	oldCashBook []domain.CashBookTransaction,
	vatCodes map[string]domain.VatCode,
	pc postingContext,
	fullRepost bool,
) {
	oldByID := make(map[string]*domain.TransactionLine, len(oldLines))
	for i := range oldLines {
		oldByID[oldLines[i].LineID] = &oldLines[i]
	}
	vatRowByLineNo := make(map[int]string, len(oldVat))
	for _, v := range oldVat {
		vatRowByLineNo[v.LineNo] = v.ID
	}
	// header-level nominal rows are the ones no line back-links to
	linkedNominal := make(map[string]bool)
	for i := range oldLines {
		for _, id := range []string{oldLines[i].GoodsPostingID, oldLines[i].VatPostingID, oldLines[i].TotalPostingID} {
			if id != "" {
				linkedNominal[id] = true
			}
		}
	}

	var res postingResult
	seen := make(map[string]bool, len(newLines))
	for i := range newLines {
		l := &newLines[i]
		seen[l.LineID] = true
		old := oldByID[l.LineID]
		if old != nil && !fullRepost && lineUnchanged(old, l) {
			l.GoodsPostingID = old.GoodsPostingID
			l.VatPostingID = old.VatPostingID
			l.TotalPostingID = old.TotalPostingID
			batch.LinesUpdate = append(batch.LinesUpdate, *l)
			continue
		}
		if old != nil {
			deleteLinePostings(batch, old, vatRowByLineNo)
			buildLineRows(header, l, vatCodes, pc, &res)
			batch.LinesUpdate = append(batch.LinesUpdate, *l)
			continue
		}
		buildLineRows(header, l, vatCodes, pc, &res)
		batch.LinesInsert = append(batch.LinesInsert, *l)
	}
	for i := range oldLines {
		old := &oldLines[i]
		if seen[old.LineID] {
			continue
		}
		deleteLinePostings(batch, old, vatRowByLineNo)
		batch.LinesDelete = append(batch.LinesDelete, old.LineID)
	}

	// header-level rows are always rewritten, their values depend on the
	// header total
	for _, row := range oldNominal {
		if !linkedNominal[row.ID] {
			batch.NominalDelete = append(batch.NominalDelete, row.ID)
		}
	}
	for _, row := range oldCashBook {
		batch.CashBookDelete = append(batch.CashBookDelete, row.ID)
	}
	if fullRepost {
		// every remaining old row carries stale denormalised fields
		for _, row := range oldNominal {
			if linkedNominal[row.ID] && !contains(batch.NominalDelete, row.ID) {
				batch.NominalDelete = append(batch.NominalDelete, row.ID)
			}
		}
		for _, row := range oldVat {
			if !contains(batch.VatDelete, row.ID) {
				batch.VatDelete = append(batch.VatDelete, row.ID)
			}
		}
	}
	buildHeaderRows(header, pc, &res)

	batch.NominalInsert = append(batch.NominalInsert, res.Nominal...)
	batch.VatInsert = append(batch.VatInsert, res.Vat...)
	batch.CashBookInsert = append(batch.CashBookInsert, res.CashBook...)
}

// deleteLinePostings marks one posted line's rows for deletion.
func deleteLinePostings(batch *domain.PostingBatch, old *domain.TransactionLine, vatRowByLineNo map[int]string) {
	for _, id := range []string{old.GoodsPostingID, old.VatPostingID, old.TotalPostingID} {
		if id != "" {
			batch.NominalDelete = append(batch.NominalDelete, id)
		}
	}
	if id, ok := vatRowByLineNo[old.LineNo]; ok {
		batch.VatDelete = append(batch.VatDelete, id)
		delete(vatRowByLineNo, old.LineNo)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
