package services

import (
	"fmt"

	"github.com/ledgerbooks/bookkeeping/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Validation failures for transaction input. All unwrap to
// apperrors.ErrValidation so handlers map them uniformly.
var (
	ErrUnknownType      = fmt.Errorf("unknown transaction type: %w", apperrors.ErrValidation)
	ErrMissingTotal     = fmt.Errorf("a total is required: %w", apperrors.ErrValidation)
	ErrLinesRequired    = fmt.Errorf("at least one line is required: %w", apperrors.ErrValidation)
	ErrLinesNotAllowed  = fmt.Errorf("this transaction type does not take lines: %w", apperrors.ErrValidation)
	ErrZeroValueLine    = fmt.Errorf("lines cannot have a zero value: %w", apperrors.ErrValidation)
	ErrNominalRequired  = fmt.Errorf("each line must name a nominal: %w", apperrors.ErrValidation)
	ErrCashBookRequired = fmt.Errorf("payments must name a cash book: %w", apperrors.ErrValidation)
	ErrTypeImmutable    = fmt.Errorf("the transaction type cannot be changed: %w", apperrors.ErrValidation)
)

// State conflicts.
var (
	ErrAlreadyVoid = fmt.Errorf("transaction is already void: %w", apperrors.ErrConflict)
	ErrVoidEdit    = fmt.Errorf("a void transaction cannot be edited: %w", apperrors.ErrConflict)
)

// Matching failures.
var (
	ErrMatchingNotSupported = fmt.Errorf("matching is only available in the purchase and sales ledgers: %w", apperrors.ErrValidation)
	ErrSelfMatch            = fmt.Errorf("a transaction cannot be matched to itself: %w", apperrors.ErrValidation)
	ErrMatchVoid            = fmt.Errorf("a void transaction cannot be matched: %w", apperrors.ErrValidation)
	ErrPointlessMatch       = fmt.Errorf("a zero value transaction must be fully matched when it is created: %w", apperrors.ErrValidation)
	ErrDuplicateMatch       = fmt.Errorf("a transaction can only be matched once per request: %w", apperrors.ErrValidation)
)

// InvalidTotalError reports a header total that disagrees with its lines,
// with the debit and credit breakdown in user-facing signs.
type InvalidTotalError struct {
	Total   decimal.Decimal
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *InvalidTotalError) Error() string {
	return fmt.Sprintf("the total %s does not agree with the lines entered, debits %s credits %s",
		e.Total.StringFixed(2), e.Debits.StringFixed(2), e.Credits.StringFixed(2))
}

func (e *InvalidTotalError) Unwrap() error { return apperrors.ErrValidation }

// MatchOutOfRangeError reports an allocation outside the counter's legal
// range. Min and Max are in the counter's user-facing sign.
type MatchOutOfRangeError struct {
	CounterID string
	Value     decimal.Decimal
	Min       decimal.Decimal
	Max       decimal.Decimal
}

func (e *MatchOutOfRangeError) Error() string {
	return fmt.Sprintf("value %s is outside the legal range, it must be between %s and %s",
		e.Value.StringFixed(2), e.Min.StringFixed(2), e.Max.StringFixed(2))
}

func (e *MatchOutOfRangeError) Unwrap() error { return apperrors.ErrValidation }

// OverMatchedError reports a subject left paid beyond its total.
type OverMatchedError struct {
	Due decimal.Decimal
}

func (e *OverMatchedError) Error() string {
	return fmt.Sprintf("the matches would leave this transaction with an outstanding amount of %s, which is not allowed",
		e.Due.StringFixed(2))
}

func (e *OverMatchedError) Unwrap() error { return apperrors.ErrValidation }
