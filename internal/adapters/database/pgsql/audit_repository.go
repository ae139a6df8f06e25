package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
)

// AuditRepository persists audit trail events.
type AuditRepository struct {
	*BaseRepository
}

// NewAuditRepository creates an AuditRepository.
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *AuditRepository) RecordEvent(ctx context.Context, event domain.AuditEvent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_log (event_id, module, entity, entity_id, action, detail)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.EventID, event.Module, event.Entity, event.EntityID, event.Action, event.Detail)
	return translateError(err, "recording audit event")
}
