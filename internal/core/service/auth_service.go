package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuslink/events-api/internal/core/domain"
	"github.com/campuslink/events-api/internal/core/ports"
)

// ErrInvalidRole is returned when a sign-up or role change names an unknown
// role, or when a sign-up tries to self-assign admin.
var ErrInvalidRole = errors.New("invalid role")

// AuthService implements sign-up, login, and admin role changes.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Signup creates an account with a bcrypt-hashed password. The role defaults
// to participant; admin accounts are never created through sign-up.
func (s *AuthService) Signup(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleParticipant
	}
	if role != domain.RoleParticipant && role != domain.RoleOrganizer {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login verifies the password against the stored hash and issues a bearer
// token. A missing account and a wrong password both surface as
// ErrInvalidCredentials so callers cannot probe for registered emails.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ChangeRole sets a new role on an existing account. The RBAC middleware
// restricts the endpoint to admins; the service only validates the target role.
func (s *AuthService) ChangeRole(ctx context.Context, userID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, userID, role)
}

// generateToken mints an HS256 token carrying the account id and a role
// snapshot. The role claim is a capability for the token lifetime; a role
// change only takes effect on the next login.
func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Name,
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
