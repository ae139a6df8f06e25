package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that forbids the operation,
// e.g. voiding a transaction that is already void. Distinct from ErrValidation
// so callers can render different messaging.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected failure the caller cannot recover from.
var ErrInternal = errors.New("internal error")
