package services

import (
	"github.com/google/uuid"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/shopspring/decimal"
)

// postingContext carries the resolved nominals a strategy needs. Control is
// the ledger control account (creditors or debtors), Vat the VAT control
// account, Bank the nominal behind the transaction's cash book.
type postingContext struct {
	ControlNominalID string
	VatNominalID     string
	BankNominalID    string
}

// postingResult is everything one header generates.
type postingResult struct {
	Nominal  []domain.NominalTransaction
	Vat      []domain.VatTransaction
	CashBook []domain.CashBookTransaction
}

// controlLineNo is the line number used for header-level rows, keeping the
// (module, header, line, field) key unique alongside real line numbers.
const controlLineNo = 0

func newNominalRow(h *domain.TransactionHeader, lineNo int, nominalID string, value decimal.Decimal, field domain.PostingField) domain.NominalTransaction {
	return domain.NominalTransaction{
		ID:        uuid.NewString(),
		Module:    h.Module,
		HeaderID:  h.HeaderID,
		LineNo:    lineNo,
		NominalID: nominalID,
		Value:     value,
		Ref:       h.Ref,
		Period:    h.Period,
		Date:      h.Date.Format("2006-01-02"),
		Type:      h.Type,
		Field:     field,
	}
}

func newVatRow(h *domain.TransactionHeader, l *domain.TransactionLine, code domain.VatCode) domain.VatTransaction {
	return domain.VatTransaction{
		ID:        uuid.NewString(),
		Module:    h.Module,
		HeaderID:  h.HeaderID,
		LineNo:    l.LineNo,
		VatCodeID: code.VatCodeID,
		Code:      code.Code,
		Rate:      code.Rate,
		Goods:     l.Goods,
		Vat:       l.Vat,
		Ref:       h.Ref,
		Period:    h.Period,
		Date:      h.Date.Format("2006-01-02"),
		Type:      h.Type,
	}
}

func newCashBookRow(h *domain.TransactionHeader, value decimal.Decimal) domain.CashBookTransaction {
	return domain.CashBookTransaction{
		ID:         uuid.NewString(),
		Module:     h.Module,
		HeaderID:   h.HeaderID,
		LineNo:     1,
		CashBookID: h.CashBookID,
		Value:      value,
		Ref:        h.Ref,
		Period:     h.Period,
		Date:       h.Date.Format("2006-01-02"),
		Type:       h.Type,
	}
}

// buildLineRows generates the per-line rows for one analysis line, wiring the
// row ids back onto the line, and appends any VAT register row to res. The
// cash book strategy flips the analysis sign and posts the line total to the
// bank nominal; the others post goods to the line's nominal and VAT to the
// VAT control.
func buildLineRows(h *domain.TransactionHeader, l *domain.TransactionLine, vatCodes map[string]domain.VatCode, pc postingContext, res *postingResult) {
	if !h.Type.RequiresAnalysis() {
		// brought forward types record the ledger position only; their
		// nominal impact arrives with the year end journal
		return
	}
	goods, vat := l.Goods, l.Vat
	if h.Module == domain.ModuleCashBook {
		goods, vat = goods.Neg(), vat.Neg()
	}
	if !goods.IsZero() {
		row := newNominalRow(h, l.LineNo, l.NominalID, goods, domain.FieldGoods)
		l.GoodsPostingID = row.ID
		res.Nominal = append(res.Nominal, row)
	}
	if !vat.IsZero() {
		row := newNominalRow(h, l.LineNo, pc.VatNominalID, vat, domain.FieldVat)
		l.VatPostingID = row.ID
		res.Nominal = append(res.Nominal, row)
	}
	if h.Module == domain.ModuleCashBook {
		if lt := l.LineTotal(); !lt.IsZero() {
			row := newNominalRow(h, l.LineNo, pc.BankNominalID, lt, domain.FieldTotal)
			l.TotalPostingID = row.ID
			res.Nominal = append(res.Nominal, row)
		}
	}
	if code, ok := vatCodes[l.VatCodeID]; ok {
		res.Vat = append(res.Vat, newVatRow(h, l, code))
	}
}

// buildHeaderRows generates the header-level rows: the balancing control row
// for invoice types, the bank and control pair for payments, and the cash
// book register row for anything that moves money.
func buildHeaderRows(h *domain.TransactionHeader, pc postingContext, res *postingResult) {
	if !h.Type.RequiresAnalysis() {
		return
	}
	switch {
	case h.Type.IsPayment() && !h.Type.RequiresLines():
		if h.Total.IsZero() {
			return
		}
		res.Nominal = append(res.Nominal,
			newNominalRow(h, 1, pc.BankNominalID, h.Total, domain.FieldTotal),
			newNominalRow(h, 2, pc.ControlNominalID, h.Total.Neg(), domain.FieldTotal),
		)
		res.CashBook = append(res.CashBook, newCashBookRow(h, h.Total))
	case h.Module == domain.ModuleCashBook:
		if !h.Total.IsZero() {
			res.CashBook = append(res.CashBook, newCashBookRow(h, h.Total))
		}
	case h.Type == domain.TypeJournal || h.Type == domain.TypeBroughtForward:
		// journals balance by construction, no control row
	default:
		if !h.Total.IsZero() {
			res.Nominal = append(res.Nominal, newNominalRow(h, controlLineNo, pc.ControlNominalID, h.Total.Neg(), domain.FieldTotal))
		}
	}
}

// buildPostings generates every row a header and its lines produce. Values
// are already in stored sign convention.
func buildPostings(h *domain.TransactionHeader, lines []domain.TransactionLine, vatCodes map[string]domain.VatCode, pc postingContext) postingResult {
	var res postingResult
	for i := range lines {
		buildLineRows(h, &lines[i], vatCodes, pc, &res)
	}
	buildHeaderRows(h, pc, &res)
	return res
}
