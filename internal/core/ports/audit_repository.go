package ports

import (
	"context"

	"github.com/campuslink/events-api/internal/core/domain"
)

// AuditRepository persists audit entries to the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
