package domain

// AuditAction is what happened to the entity.
type AuditAction string

const (
	AuditCreated AuditAction = "created"
	AuditUpdated AuditAction = "updated"
	AuditVoided  AuditAction = "voided"
	AuditDeleted AuditAction = "deleted"
)

// AuditEvent is one entry in the audit trail. Detail carries a short
// human-readable summary, not a full diff.
type AuditEvent struct {
	EventID  string
	Module   Module
	Entity   string
	EntityID string
	Action   AuditAction
	Detail   string
}
