package repositories

import (
	"context"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
)

// AuditWriter records audit trail events. Writes are best effort: services
// log a failure but never roll back the business operation for one.
type AuditWriter interface {
	RecordEvent(ctx context.Context, event domain.AuditEvent) error
}
