package ports

import (
	"context"

	"github.com/campuslink/events-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateRole sets the role on an existing account and returns the updated record.
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
}
