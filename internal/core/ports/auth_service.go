package ports

import (
	"context"

	"github.com/campuslink/events-api/internal/core/domain"
)

// AuthService defines sign-up, login, and admin role management.
type AuthService interface {
	Signup(ctx context.Context, name, email, password, role string) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangeRole(ctx context.Context, userID, role string) (*domain.User, error)
}
