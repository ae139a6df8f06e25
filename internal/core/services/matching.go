package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerbooks/bookkeeping/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
	"github.com/shopspring/decimal"
)

// matchRequest is one requested allocation after sign normalisation: Value is
// the counter's allocation in stored sign convention.
type matchRequest struct {
	Counter *domain.TransactionHeader
	Value   decimal.Decimal
}

// matchResult is every row change the matching engine produced.
type matchResult struct {
	Inserts        []domain.MatchedHeaders
	Updates        []domain.MatchedHeaders
	Deletes        []string
	CounterUpdates []domain.TransactionHeader
	SubjectPaid    decimal.Decimal
	SubjectDue     decimal.Decimal
}

// buildMatches applies the requested allocations between subject and the
// given counters, replacing any existing allocation between each pair.
//
// The invariant preserved on both sides is paid = allocated-to minus
// allocated-by and due = total - paid. Each counter's new allocation must lie
// between zero and its outstanding amount plus whatever was already allocated
// between the pair; the bounds mirror for negative counters. A zero value
// subject must come out fully matched, with at least one allocation, or the
// whole thing is pointless.
func buildMatches(subject *domain.TransactionHeader, requests []matchRequest, existing []domain.MatchedHeaders) (*matchResult, error) {
	if len(requests) > 0 && subject.Module != domain.ModulePurchases && subject.Module != domain.ModuleSales {
		return nil, ErrMatchingNotSupported
	}
	if subject.IsVoid() {
		return nil, ErrMatchVoid
	}

	existingByCounter := make(map[string]*domain.MatchedHeaders, len(existing))
	for i := range existing {
		m := &existing[i]
		if m.MatchedByID == subject.HeaderID {
			existingByCounter[m.MatchedToID] = m
		} else {
			existingByCounter[m.MatchedByID] = m
		}
	}

	res := &matchResult{}
	subjectAllocated := decimal.Zero // seen from the subject

	for _, req := range requests {
		c := req.Counter
		if c.HeaderID == subject.HeaderID {
			return nil, ErrSelfMatch
		}
		if c.IsVoid() {
			return nil, ErrMatchVoid
		}
		if c.Module != subject.Module {
			return nil, fmt.Errorf("transaction %s belongs to another ledger: %w", c.HeaderID, apperrors.ErrValidation)
		}

		initial := decimal.Zero
		prev := existingByCounter[c.HeaderID]
		if prev != nil {
			initial = prev.AllocationFor(c.HeaderID)
		}

		if err := checkAllocationRange(c, req.Value, initial); err != nil {
			return nil, err
		}

		diff := req.Value.Sub(initial)
		if !diff.IsZero() {
			updated := *c
			updated.Paid = updated.Paid.Add(diff)
			updated.Due = updated.Due.Sub(diff)
			res.CounterUpdates = append(res.CounterUpdates, updated)
		}
		subjectAllocated = subjectAllocated.Sub(req.Value.Sub(initial))

		switch {
		case prev == nil && !req.Value.IsZero():
			res.Inserts = append(res.Inserts, domain.MatchedHeaders{
				MatchID:     uuid.NewString(),
				Module:      subject.Module,
				MatchedByID: subject.HeaderID,
				MatchedToID: c.HeaderID,
				Value:       req.Value,
				Period:      subject.Period,
			})
		case prev != nil && req.Value.IsZero():
			res.Deletes = append(res.Deletes, prev.MatchID)
		case prev != nil && !req.Value.Equal(initial):
			row := *prev
			if row.MatchedToID == c.HeaderID {
				row.Value = req.Value
			} else {
				row.Value = req.Value.Neg()
			}
			res.Updates = append(res.Updates, row)
		}
	}

	res.SubjectPaid = subject.Paid.Add(subjectAllocated)
	res.SubjectDue = subject.Total.Sub(res.SubjectPaid)

	if err := checkSubjectOutstanding(subject, res, len(requests)); err != nil {
		return nil, err
	}
	return res, nil
}

// checkAllocationRange validates a counter's new allocation. Positive
// counters accept [0, due+initial], negative counters the mirror image.
func checkAllocationRange(c *domain.TransactionHeader, value, initial decimal.Decimal) error {
	limit := c.Due.Add(initial)
	lo, hi := decimal.Zero, limit
	if c.Type.IsNegative() {
		lo, hi = limit, decimal.Zero
	}
	if value.LessThan(lo) || value.GreaterThan(hi) {
		sign := decimal.NewFromInt(c.Type.SignFactor())
		uLo, uHi := lo.Mul(sign), hi.Mul(sign)
		if uLo.GreaterThan(uHi) {
			uLo, uHi = uHi, uLo
		}
		return &MatchOutOfRangeError{
			CounterID: c.HeaderID,
			Value:     value.Mul(sign),
			Min:       uLo,
			Max:       uHi,
		}
	}
	return nil
}

// checkSubjectOutstanding enforces the subject side of the invariant: due
// stays between zero and total, and a zero total subject with matches must
// net out to exactly zero.
func checkSubjectOutstanding(subject *domain.TransactionHeader, res *matchResult, requested int) error {
	if subject.Total.IsZero() {
		if subject.Module == domain.ModulePurchases || subject.Module == domain.ModuleSales {
			if requested == 0 || !res.SubjectPaid.IsZero() {
				return ErrPointlessMatch
			}
		}
		return nil
	}
	lo, hi := decimal.Zero, subject.Total
	if subject.Type.IsNegative() {
		lo, hi = subject.Total, decimal.Zero
	}
	if res.SubjectDue.LessThan(lo) || res.SubjectDue.GreaterThan(hi) {
		sign := decimal.NewFromInt(subject.Type.SignFactor())
		return &OverMatchedError{Due: res.SubjectDue.Mul(sign)}
	}
	return nil
}

// unwindMatches reverses every allocation a header is party to, used when the
// header is voided. Counters get their paid and due restored; the match rows
// themselves are deleted.
func unwindMatches(headerID string, matches []domain.MatchedHeaders, counters map[string]*domain.TransactionHeader) ([]domain.TransactionHeader, []string) {
	var updates []domain.TransactionHeader
	var deletes []string
	for i := range matches {
		m := &matches[i]
		counterID := m.MatchedByID
		if counterID == headerID {
			counterID = m.MatchedToID
		}
		if c, ok := counters[counterID]; ok {
			alloc := m.AllocationFor(counterID)
			c.Paid = c.Paid.Sub(alloc)
			c.Due = c.Due.Add(alloc)
			updates = append(updates, *c)
		}
		deletes = append(deletes, m.MatchID)
	}
	return updates, deletes
}

// normaliseMatchInputs converts user-entered allocations into stored sign
// convention against the loaded counter headers.
func normaliseMatchInputs(inputs []dto.MatchInput, counters map[string]*domain.TransactionHeader) ([]matchRequest, error) {
	out := make([]matchRequest, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		// each counter validates against its own outstanding amount, so a
		// repeated counter would let two allocations share the same headroom
		if _, dup := seen[in.HeaderID]; dup {
			return nil, fmt.Errorf("transaction %s: %w", in.HeaderID, ErrDuplicateMatch)
		}
		seen[in.HeaderID] = struct{}{}
		c, ok := counters[in.HeaderID]
		if !ok {
			return nil, fmt.Errorf("transaction %s: %w", in.HeaderID, apperrors.ErrNotFound)
		}
		out = append(out, matchRequest{
			Counter: c,
			Value:   in.Value.Mul(decimal.NewFromInt(c.Type.SignFactor())),
		})
	}
	return out, nil
}
