package domain

// TransactionType is the header type code, e.g. "pi" for a purchase invoice.
// The code determines sign conventions, whether nominal analysis and lines are
// required, and which posting strategy applies. It is immutable once a header
// has been created.
type TransactionType string

const (
	// nominal ledger
	TypeJournal        TransactionType = "nj"
	TypeBroughtForward TransactionType = "nbf"

	// purchase ledger
	TypePurchaseInvoice    TransactionType = "pi"
	TypePurchaseCreditNote TransactionType = "pc"
	TypePurchasePayment    TransactionType = "pp"
	TypePurchaseRefund     TransactionType = "pr"
	TypePurchaseBFInvoice  TransactionType = "pbi"
	TypePurchaseBFCredit   TransactionType = "pbc"
	TypePurchaseBFPayment  TransactionType = "pbp"
	TypePurchaseBFRefund   TransactionType = "pbr"

	// sales ledger
	TypeSaleInvoice    TransactionType = "si"
	TypeSaleCreditNote TransactionType = "sc"
	TypeSaleReceipt    TransactionType = "sp"
	TypeSaleRefund     TransactionType = "sr"
	TypeSaleBFInvoice  TransactionType = "sbi"
	TypeSaleBFCredit   TransactionType = "sbc"
	TypeSaleBFReceipt  TransactionType = "sbp"
	TypeSaleBFRefund   TransactionType = "sbr"

	// cash book
	TypeCashPayment   TransactionType = "cp"
	TypeCashReceipt   TransactionType = "cr"
	TypeCashBFPayment TransactionType = "cbp"
	TypeCashBFReceipt TransactionType = "cbr"
)

// TypeInfo describes the behaviour of one transaction type.
//
// Debit: a positive stored value posts a positive entry in the nominal.
// Positive: the transaction is stored with the sign the user entered; negative
// types (payments, credit notes on the purchase side, etc.) are stored with
// the entered sign flipped and only flipped back for presentation.
// AnalysisRequired: the user must analyse the value across nominals/VAT codes.
// LinesRequired: the transaction carries analysis lines.
// Payment: the transaction updates a cash book.
type TypeInfo struct {
	Code             TransactionType
	Name             string
	Module           Module
	Debit            bool
	Positive         bool
	AnalysisRequired bool
	LinesRequired    bool
	Payment          bool
}

var typeRegistry = map[TransactionType]TypeInfo{
	TypeJournal:        {TypeJournal, "Journal", ModuleNominal, true, true, true, true, false},
	TypeBroughtForward: {TypeBroughtForward, "Brought Forward", ModuleNominal, true, true, false, false, false},

	TypePurchaseInvoice:    {TypePurchaseInvoice, "Invoice", ModulePurchases, true, true, true, true, false},
	TypePurchaseCreditNote: {TypePurchaseCreditNote, "Credit Note", ModulePurchases, false, false, true, true, false},
	TypePurchasePayment:    {TypePurchasePayment, "Payment", ModulePurchases, false, false, true, false, true},
	TypePurchaseRefund:     {TypePurchaseRefund, "Refund", ModulePurchases, true, true, true, false, true},
	TypePurchaseBFInvoice:  {TypePurchaseBFInvoice, "Brought Forward Invoice", ModulePurchases, true, true, false, true, false},
	TypePurchaseBFCredit:   {TypePurchaseBFCredit, "Brought Forward Credit Note", ModulePurchases, false, false, false, true, false},
	TypePurchaseBFPayment:  {TypePurchaseBFPayment, "Brought Forward Payment", ModulePurchases, false, false, false, false, true},
	TypePurchaseBFRefund:   {TypePurchaseBFRefund, "Brought Forward Refund", ModulePurchases, true, true, false, false, true},

	TypeSaleInvoice:    {TypeSaleInvoice, "Invoice", ModuleSales, false, true, true, true, false},
	TypeSaleCreditNote: {TypeSaleCreditNote, "Credit Note", ModuleSales, true, false, true, true, false},
	TypeSaleReceipt:    {TypeSaleReceipt, "Receipt", ModuleSales, true, false, true, false, true},
	TypeSaleRefund:     {TypeSaleRefund, "Refund", ModuleSales, false, true, true, false, true},
	TypeSaleBFInvoice:  {TypeSaleBFInvoice, "Brought Forward Invoice", ModuleSales, false, true, false, true, false},
	TypeSaleBFCredit:   {TypeSaleBFCredit, "Brought Forward Credit Note", ModuleSales, true, false, false, true, false},
	TypeSaleBFReceipt:  {TypeSaleBFReceipt, "Brought Forward Receipt", ModuleSales, true, false, false, false, true},
	TypeSaleBFRefund:   {TypeSaleBFRefund, "Brought Forward Refund", ModuleSales, false, true, false, false, true},

	TypeCashPayment:   {TypeCashPayment, "Payment", ModuleCashBook, true, false, true, true, true},
	TypeCashReceipt:   {TypeCashReceipt, "Receipt", ModuleCashBook, false, true, true, true, true},
	TypeCashBFPayment: {TypeCashBFPayment, "Brought Forward Payment", ModuleCashBook, true, false, false, true, true},
	TypeCashBFReceipt: {TypeCashBFReceipt, "Brought Forward Receipt", ModuleCashBook, false, true, false, true, true},
}

// Info returns the registry entry for the type. The second return is false
// for codes the system does not know.
func (t TransactionType) Info() (TypeInfo, bool) {
	info, ok := typeRegistry[t]
	return info, ok
}

func (t TransactionType) Valid() bool {
	_, ok := typeRegistry[t]
	return ok
}

func (t TransactionType) ModuleOf() Module {
	if info, ok := typeRegistry[t]; ok {
		return info.Module
	}
	return ""
}

// IsNegative reports whether the type is stored with the entered sign flipped.
func (t TransactionType) IsNegative() bool {
	info, ok := typeRegistry[t]
	return ok && !info.Positive
}

func (t TransactionType) IsDebit() bool {
	info, ok := typeRegistry[t]
	return ok && info.Debit
}

func (t TransactionType) RequiresAnalysis() bool {
	info, ok := typeRegistry[t]
	return ok && info.AnalysisRequired
}

func (t TransactionType) RequiresLines() bool {
	info, ok := typeRegistry[t]
	return ok && info.LinesRequired
}

func (t TransactionType) IsPayment() bool {
	info, ok := typeRegistry[t]
	return ok && info.Payment
}

// SignFactor is -1 for negative types and 1 otherwise. User-entered values are
// multiplied by it on the way in; stored values are multiplied by it on the
// way back out to the UI.
func (t TransactionType) SignFactor() int64 {
	if t.IsNegative() {
		return -1
	}
	return 1
}

// TypesForModule returns the type codes belonging to a module.
func TypesForModule(m Module) []TransactionType {
	var out []TransactionType
	for code, info := range typeRegistry {
		if info.Module == m {
			out = append(out, code)
		}
	}
	return out
}
