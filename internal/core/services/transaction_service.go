package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ledgerbooks/bookkeeping/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
	"github.com/ledgerbooks/bookkeeping/internal/middleware"
	"github.com/shopspring/decimal"
)

// SystemAccounts names the nominals the posting engine resolves at runtime.
// A named nominal that does not exist falls back to the suspense account.
type SystemAccounts struct {
	PurchaseControl  string
	SalesControl     string
	DefaultVat       string
	Suspense         string
	RetainedEarnings string
}

// TransactionService posts, edits and voids ledger transactions.
type TransactionService struct {
	txRepo       repositories.TransactionRepositoryFacade
	matchRepo    repositories.MatchReader
	nominalRepo  repositories.NominalReader
	vatRepo      repositories.VatCodeReader
	cashBookRepo repositories.CashBookReader
	periodRepo   repositories.PeriodReader
	settingsRepo repositories.SettingsReader
	auditRepo    repositories.AuditWriter
	accounts     SystemAccounts
}

// NewTransactionService creates a TransactionService. auditRepo may be nil,
// which disables the audit trail.
func NewTransactionService(
	txRepo repositories.TransactionRepositoryFacade,
	matchRepo repositories.MatchReader,
	nominalRepo repositories.NominalReader,
	vatRepo repositories.VatCodeReader,
	cashBookRepo repositories.CashBookReader,
	periodRepo repositories.PeriodReader,
	settingsRepo repositories.SettingsReader,
	auditRepo repositories.AuditWriter,
	accounts SystemAccounts,
) *TransactionService {
	return &TransactionService{
		txRepo:       txRepo,
		matchRepo:    matchRepo,
		nominalRepo:  nominalRepo,
		vatRepo:      vatRepo,
		cashBookRepo: cashBookRepo,
		periodRepo:   periodRepo,
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		accounts:     accounts,
	}
}

// recordAudit writes an audit event. Best effort: a failed write is logged
// and never fails the operation that triggered it.
func (s *TransactionService) recordAudit(ctx context.Context, h *domain.TransactionHeader, action domain.AuditAction) {
	if s.auditRepo == nil {
		return
	}
	event := domain.AuditEvent{
		EventID:  uuid.NewString(),
		Module:   h.Module,
		Entity:   "transaction",
		EntityID: h.HeaderID,
		Action:   action,
		Detail:   fmt.Sprintf("%s %s in %s", h.Type, h.Ref, h.Period),
	}
	if err := s.auditRepo.RecordEvent(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to record audit event",
			slog.String("headerID", h.HeaderID), slog.Any("error", err))
	}
}

// resolveSystemNominal looks a nominal up by name, falling back to the
// suspense account when it does not exist.
func (s *TransactionService) resolveSystemNominal(ctx context.Context, name string) (string, error) {
	n, err := s.nominalRepo.GetNominalByName(ctx, name)
	if err == nil {
		return n.NominalID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}
	n, err = s.nominalRepo.GetNominalByName(ctx, s.accounts.Suspense)
	if err != nil {
		return "", fmt.Errorf("resolving nominal %q and suspense fallback: %w", name, err)
	}
	return n.NominalID, nil
}

// postingContextFor resolves the control, VAT and bank nominals for a header.
func (s *TransactionService) postingContextFor(ctx context.Context, h *domain.TransactionHeader) (postingContext, error) {
	var pc postingContext
	var err error

	pc.VatNominalID, err = s.resolveSystemNominal(ctx, s.accounts.DefaultVat)
	if err != nil {
		return pc, err
	}
	switch h.Module {
	case domain.ModulePurchases:
		pc.ControlNominalID, err = s.resolveSystemNominal(ctx, s.accounts.PurchaseControl)
	case domain.ModuleSales:
		pc.ControlNominalID, err = s.resolveSystemNominal(ctx, s.accounts.SalesControl)
	}
	if err != nil {
		return pc, err
	}
	if h.Type.IsPayment() || h.Module == domain.ModuleCashBook {
		if h.CashBookID == "" {
			return pc, ErrCashBookRequired
		}
		book, err := s.cashBookRepo.GetCashBookByID(ctx, h.CashBookID)
		if err != nil {
			return pc, fmt.Errorf("loading cash book: %w", err)
		}
		pc.BankNominalID = book.NominalID
	}
	return pc, nil
}

// resolvePeriod validates the requested period, defaulting to the module's
// current posting period.
func (s *TransactionService) resolvePeriod(ctx context.Context, module domain.Module, requested string) (string, error) {
	period := requested
	if period == "" {
		settings, err := s.settingsRepo.GetModuleSettings(ctx)
		if err != nil {
			return "", fmt.Errorf("loading module settings: %w", err)
		}
		period = settings.PeriodFor(module)
	}
	cal, err := s.periodRepo.GetCalendar(ctx)
	if err != nil {
		return "", fmt.Errorf("loading calendar: %w", err)
	}
	if _, err := cal.Get(period); err != nil {
		return "", fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}
	return period, nil
}

// buildLines converts user input into stored lines with dense 1-based line
// numbers and stored sign convention.
func buildLines(headerID string, t domain.TransactionType, inputs []dto.LineInput) ([]domain.TransactionLine, error) {
	sign := decimal.NewFromInt(t.SignFactor())
	lines := make([]domain.TransactionLine, 0, len(inputs))
	for i, in := range inputs {
		goods := in.Goods.Mul(sign)
		vat := in.Vat.Mul(sign)
		if goods.IsZero() && vat.IsZero() {
			return nil, ErrZeroValueLine
		}
		if t.RequiresAnalysis() && in.NominalID == "" {
			return nil, ErrNominalRequired
		}
		id := in.LineID
		if id == "" {
			id = uuid.NewString()
		}
		lines = append(lines, domain.TransactionLine{
			LineID:      id,
			HeaderID:    headerID,
			LineNo:      i + 1,
			Description: in.Description,
			Goods:       goods,
			Vat:         vat,
			NominalID:   in.NominalID,
			VatCodeID:   in.VatCodeID,
		})
	}
	return lines, nil
}

// validateTotal checks the entered total against the entered lines. Journals
// must balance to zero with the total agreeing with the debit side; other
// line-carrying types must have total equal to the sum of the lines.
func validateTotal(t domain.TransactionType, total *decimal.Decimal, inputs []dto.LineInput) (decimal.Decimal, error) {
	debits, credits := decimal.Zero, decimal.Zero
	for _, in := range inputs {
		lt := in.Goods.Add(in.Vat)
		if lt.IsNegative() {
			credits = credits.Add(lt)
		} else {
			debits = debits.Add(lt)
		}
	}
	if t.IsPayment() && !t.RequiresLines() {
		if total == nil {
			return decimal.Zero, ErrMissingTotal
		}
		return *total, nil
	}
	if total == nil {
		return decimal.Zero, ErrMissingTotal
	}
	if t == domain.TypeJournal {
		if !debits.Add(credits).IsZero() || !total.Equal(debits) {
			return decimal.Zero, &InvalidTotalError{Total: *total, Debits: debits, Credits: credits.Abs()}
		}
		return *total, nil
	}
	if !total.Equal(debits.Add(credits)) {
		return decimal.Zero, &InvalidTotalError{Total: *total, Debits: debits, Credits: credits.Abs()}
	}
	return *total, nil
}

// loadVatCodes fetches the VAT codes the lines reference.
func (s *TransactionService) loadVatCodes(ctx context.Context, lines []domain.TransactionLine) (map[string]domain.VatCode, error) {
	out := make(map[string]domain.VatCode)
	for _, l := range lines {
		if l.VatCodeID == "" {
			continue
		}
		if _, ok := out[l.VatCodeID]; ok {
			continue
		}
		code, err := s.vatRepo.GetVatCodeByID(ctx, l.VatCodeID)
		if err != nil {
			return nil, fmt.Errorf("loading VAT code %s: %w", l.VatCodeID, err)
		}
		out[l.VatCodeID] = *code
	}
	return out, nil
}

// loadCounters fetches and indexes the counter headers named by match inputs.
func (s *TransactionService) loadCounters(ctx context.Context, module domain.Module, inputs []dto.MatchInput) (map[string]*domain.TransactionHeader, []string, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.HeaderID)
	}
	if len(ids) == 0 {
		return map[string]*domain.TransactionHeader{}, nil, nil
	}
	headers, err := s.txRepo.GetHeadersByIDs(ctx, module, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("loading matched transactions: %w", err)
	}
	out := make(map[string]*domain.TransactionHeader, len(headers))
	for i := range headers {
		out[headers[i].HeaderID] = &headers[i]
	}
	return out, ids, nil
}

// Create validates, posts and matches a new transaction.
func (s *TransactionService) Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	info, ok := req.Type.Info()
	if !ok {
		return nil, ErrUnknownType
	}
	if info.LinesRequired && len(req.Lines) == 0 {
		return nil, ErrLinesRequired
	}
	if !info.LinesRequired && len(req.Lines) > 0 {
		return nil, ErrLinesNotAllowed
	}

	enteredTotal, err := validateTotal(req.Type, req.Total, req.Lines)
	if err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(ctx, info.Module, req.Period)
	if err != nil {
		return nil, err
	}

	sign := decimal.NewFromInt(req.Type.SignFactor())
	header := &domain.TransactionHeader{
		HeaderID:   uuid.NewString(),
		Module:     info.Module,
		Type:       req.Type,
		Ref:        req.Ref,
		Period:     period,
		Date:       req.Date,
		DueDate:    req.DueDate,
		Status:     domain.StatusCreated,
		Total:      enteredTotal.Mul(sign),
		CashBookID: req.CashBookID,
		PartyID:    req.PartyID,
	}

	lines, err := buildLines(header.HeaderID, req.Type, req.Lines)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		header.Goods = header.Goods.Add(l.Goods)
		header.Vat = header.Vat.Add(l.Vat)
	}
	header.Due = header.Total

	pc, err := s.postingContextFor(ctx, header)
	if err != nil {
		return nil, err
	}
	vatCodes, err := s.loadVatCodes(ctx, lines)
	if err != nil {
		return nil, err
	}
	postings := buildPostings(header, lines, vatCodes, pc)

	counters, _, err := s.loadCounters(ctx, header.Module, req.Matches)
	if err != nil {
		return nil, err
	}
	requests, err := normaliseMatchInputs(req.Matches, counters)
	if err != nil {
		return nil, err
	}
	matchRes, err := buildMatches(header, requests, nil)
	if err != nil {
		return nil, err
	}
	header.Paid = matchRes.SubjectPaid
	header.Due = matchRes.SubjectDue

	batch := &domain.PostingBatch{
		Module:         header.Module,
		Header:         header,
		HeaderIsNew:    true,
		HeaderUpdate:   matchRes.CounterUpdates,
		LinesInsert:    lines,
		NominalInsert:  postings.Nominal,
		VatInsert:      postings.Vat,
		CashBookInsert: postings.CashBook,
		MatchesInsert:  matchRes.Inserts,
	}
	if err := s.txRepo.SaveBatch(ctx, batch); err != nil {
		logger.Error("failed to post transaction", slog.String("type", string(req.Type)), slog.Any("error", err))
		return nil, err
	}
	logger.Info("transaction posted",
		slog.String("headerID", header.HeaderID),
		slog.String("type", string(header.Type)),
		slog.String("period", header.Period),
	)
	s.recordAudit(ctx, header, domain.AuditCreated)

	resp := dto.NewTransactionResponse(header)
	resp.Lines = dto.NewLineResponses(header.Type, lines)
	return &resp, nil
}

// Edit updates a posted transaction. Changed and new lines are reposted,
// removed lines lose their postings, and a period, ref or date change
// reposts everything. Matches replace the allocations against the listed
// counters.
func (s *TransactionService) Edit(ctx context.Context, module domain.Module, headerID string, req dto.EditTransactionRequest) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	header, err := s.txRepo.GetHeaderByID(ctx, module, headerID)
	if err != nil {
		return nil, err
	}
	if header.IsVoid() {
		return nil, ErrVoidEdit
	}
	if req.Type != "" && req.Type != header.Type {
		return nil, ErrTypeImmutable
	}
	info, _ := header.Type.Info()
	if info.LinesRequired && len(req.Lines) == 0 {
		return nil, ErrLinesRequired
	}
	if !info.LinesRequired && len(req.Lines) > 0 {
		return nil, ErrLinesNotAllowed
	}

	enteredTotal, err := validateTotal(header.Type, req.Total, req.Lines)
	if err != nil {
		return nil, err
	}
	period, err := s.resolvePeriod(ctx, module, req.Period)
	if err != nil {
		return nil, err
	}

	oldLines, err := s.txRepo.GetLinesForHeader(ctx, headerID)
	if err != nil {
		return nil, err
	}
	oldNominal, err := s.txRepo.GetNominalTransactions(ctx, module, headerID)
	if err != nil {
		return nil, err
	}
	oldVat, err := s.txRepo.GetVatTransactions(ctx, module, headerID)
	if err != nil {
		return nil, err
	}
	oldCashBook, err := s.txRepo.GetCashBookTransactions(ctx, module, headerID)
	if err != nil {
		return nil, err
	}

	fullRepost := period != header.Period ||
		req.Ref != header.Ref ||
		!req.Date.Equal(header.Date) ||
		req.CashBookID != header.CashBookID

	sign := decimal.NewFromInt(header.Type.SignFactor())
	header.Ref = req.Ref
	header.Period = period
	header.Date = req.Date
	header.DueDate = req.DueDate
	header.CashBookID = req.CashBookID
	if req.PartyID != "" {
		header.PartyID = req.PartyID
	}
	header.Total = enteredTotal.Mul(sign)
	header.Goods = decimal.Zero
	header.Vat = decimal.Zero

	lines, err := buildLines(headerID, header.Type, req.Lines)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		header.Goods = header.Goods.Add(l.Goods)
		header.Vat = header.Vat.Add(l.Vat)
	}

	pc, err := s.postingContextFor(ctx, header)
	if err != nil {
		return nil, err
	}
	vatCodes, err := s.loadVatCodes(ctx, lines)
	if err != nil {
		return nil, err
	}

	batch := &domain.PostingBatch{Module: module, Header: header}
	diffLinesAndPostings(batch, header, lines, oldLines, oldNominal, oldVat, oldCashBook, vatCodes, pc, fullRepost)

	counters, counterIDs, err := s.loadCounters(ctx, module, req.Matches)
	if err != nil {
		return nil, err
	}
	var existing []domain.MatchedHeaders
	if len(counterIDs) > 0 {
		existing, err = s.matchRepo.GetMatchesBetween(ctx, module, headerID, counterIDs)
		if err != nil {
			return nil, err
		}
	}
	requests, err := normaliseMatchInputs(req.Matches, counters)
	if err != nil {
		return nil, err
	}
	matchRes, err := buildMatches(header, requests, existing)
	if err != nil {
		return nil, err
	}
	header.Paid = matchRes.SubjectPaid
	header.Due = matchRes.SubjectDue
	batch.HeaderUpdate = matchRes.CounterUpdates
	batch.MatchesInsert = matchRes.Inserts
	batch.MatchesUpdate = matchRes.Updates
	batch.MatchesDelete = matchRes.Deletes

	if err := s.txRepo.SaveBatch(ctx, batch); err != nil {
		logger.Error("failed to edit transaction", slog.String("headerID", headerID), slog.Any("error", err))
		return nil, err
	}
	logger.Info("transaction edited", slog.String("headerID", headerID), slog.Bool("fullRepost", fullRepost))
	s.recordAudit(ctx, header, domain.AuditUpdated)

	resp := dto.NewTransactionResponse(header)
	resp.Lines = dto.NewLineResponses(header.Type, lines)
	return &resp, nil
}

// Void marks a transaction void, removes every posting it generated and
// unwinds its matches so counters get their outstanding amounts back.
func (s *TransactionService) Void(ctx context.Context, module domain.Module, headerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	header, err := s.txRepo.GetHeaderByID(ctx, module, headerID)
	if err != nil {
		return err
	}
	if header.IsVoid() {
		return ErrAlreadyVoid
	}

	nominal, err := s.txRepo.GetNominalTransactions(ctx, module, headerID)
	if err != nil {
		return err
	}
	vat, err := s.txRepo.GetVatTransactions(ctx, module, headerID)
	if err != nil {
		return err
	}
	cashBook, err := s.txRepo.GetCashBookTransactions(ctx, module, headerID)
	if err != nil {
		return err
	}
	matches, err := s.matchRepo.GetMatchesForHeader(ctx, module, headerID)
	if err != nil {
		return err
	}

	var counterIDs []string
	for _, m := range matches {
		if m.MatchedByID != headerID {
			counterIDs = append(counterIDs, m.MatchedByID)
		}
		if m.MatchedToID != headerID {
			counterIDs = append(counterIDs, m.MatchedToID)
		}
	}
	counters := make(map[string]*domain.TransactionHeader)
	if len(counterIDs) > 0 {
		headers, err := s.txRepo.GetHeadersByIDs(ctx, module, counterIDs)
		if err != nil {
			return err
		}
		for i := range headers {
			counters[headers[i].HeaderID] = &headers[i]
		}
	}
	counterUpdates, matchDeletes := unwindMatches(headerID, matches, counters)

	header.Status = domain.StatusVoid
	header.Paid = decimal.Zero
	header.Due = decimal.Zero

	batch := &domain.PostingBatch{
		Module:        module,
		Header:        header,
		HeaderUpdate:  counterUpdates,
		MatchesDelete: matchDeletes,
	}
	for _, row := range nominal {
		batch.NominalDelete = append(batch.NominalDelete, row.ID)
	}
	for _, row := range vat {
		batch.VatDelete = append(batch.VatDelete, row.ID)
	}
	for _, row := range cashBook {
		batch.CashBookDelete = append(batch.CashBookDelete, row.ID)
	}

	if err := s.txRepo.SaveBatch(ctx, batch); err != nil {
		logger.Error("failed to void transaction", slog.String("headerID", headerID), slog.Any("error", err))
		return err
	}
	logger.Info("transaction voided", slog.String("headerID", headerID), slog.String("type", string(header.Type)))
	s.recordAudit(ctx, header, domain.AuditVoided)
	return nil
}

// Get returns one transaction with lines and matches, in user-facing signs.
func (s *TransactionService) Get(ctx context.Context, module domain.Module, headerID string) (*dto.TransactionResponse, error) {
	header, err := s.txRepo.GetHeaderByID(ctx, module, headerID)
	if err != nil {
		return nil, err
	}
	lines, err := s.txRepo.GetLinesForHeader(ctx, headerID)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.GetMatchesForHeader(ctx, module, headerID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTransactionResponse(header)
	resp.Lines = dto.NewLineResponses(header.Type, lines)
	for i := range matches {
		m := &matches[i]
		counterID := m.MatchedByID
		subjectIsTo := true
		if m.MatchedByID == headerID {
			counterID = m.MatchedToID
			subjectIsTo = false
		}
		resp.Matches = append(resp.Matches, dto.MatchResponse{
			MatchID:     m.MatchID,
			CounterID:   counterID,
			Value:       m.Value,
			Period:      m.Period,
			SubjectIsTo: subjectIsTo,
		})
	}
	return &resp, nil
}

// List returns headers matching the filter.
func (s *TransactionService) List(ctx context.Context, filter repositories.HeaderFilter) ([]dto.TransactionResponse, error) {
	headers, err := s.txRepo.ListHeaders(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(headers))
	for i := range headers {
		out = append(out, dto.NewTransactionResponse(&headers[i]))
	}
	return out, nil
}
