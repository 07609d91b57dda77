package domain

import "time"

// Audit actions recorded for moderation and admission decisions.
const (
	AuditEventCreated = "event_created"
	AuditEventUpdated = "event_updated"
	AuditSubmitted    = "submitted"
	AuditApproved     = "approved"
	AuditRejected     = "rejected"
	AuditArchived     = "archived"
	AuditAdmitted     = "registration_admitted"
	AuditCheckedIn    = "checked_in"
	AuditRoleChanged  = "role_changed"
)

// AuditEntry records a single actor decision against an event.
type AuditEntry struct {
	EventID   string    `json:"event_id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
