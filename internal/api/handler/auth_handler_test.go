package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/events-api/internal/core/domain"
)

// stubAuthService implements ports.AuthService with canned behavior per test.
type stubAuthService struct {
	signupFn     func(ctx context.Context, name, email, password, role string) (*domain.User, error)
	loginFn      func(ctx context.Context, email, password string) (string, *domain.User, error)
	changeRoleFn func(ctx context.Context, userID, role string) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	return s.signupFn(ctx, name, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangeRole(ctx context.Context, userID, role string) (*domain.User, error) {
	return s.changeRoleFn(ctx, userID, role)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(_ context.Context, name, email, password, role string) (*domain.User, error) {
			if role != "" {
				t.Fatalf("unexpected role %q", role)
			}
			return &domain.User{ID: "u1", Name: name, Email: email, Role: domain.RoleParticipant}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/auth/signup",
		`{"name":"Alice","email":"alice@campus.edu","password":"longenough"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User == nil || resp.User.ID != "u1" || resp.User.Role != domain.RoleParticipant {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not expose password material")
	}
}

func TestAuthHandler_Signup_ValidationRejects(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		signupFn: func(context.Context, string, string, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"A","password":"longenough"}`},
		{"bad email", `{"name":"A","email":"not-an-email","password":"longenough"}`},
		{"short password", `{"name":"A","email":"a@b.c","password":"short"}`},
		{"admin role", `{"name":"A","email":"a@b.c","password":"longenough","role":"admin"}`},
	}

	for _, tc := range cases {
		c, _ := newTestContext(http.MethodPost, "/auth/signup", tc.body)
		err := h.Signup(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %v", tc.name, err)
		}
	}
}

func TestAuthHandler_Signup_DuplicateEmailPropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		signupFn: func(context.Context, string, string, string, string) (*domain.User, error) {
			return nil, domain.ErrEmailExists
		},
	})

	c, _ := newTestContext(http.MethodPost, "/auth/signup",
		`{"name":"A","email":"dup@campus.edu","password":"longenough"}`)

	if err := h.Signup(c); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "signed.jwt.token", &domain.User{ID: "u1", Name: "Alice", Role: domain.RoleOrganizer}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"alice@campus.edu","password":"longenough"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Fatalf("expected token in response, got %q", resp.Token)
	}
}

func TestAuthHandler_Login_BadCredentialsPropagate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"alice@campus.edu","password":"wrong-password"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_ChangeRole(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		changeRoleFn: func(_ context.Context, userID, role string) (*domain.User, error) {
			if userID != "u42" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &domain.User{ID: userID, Name: "Bob", Role: role}, nil
		},
	})

	c, rec := newTestContext(http.MethodPatch, "/users/u42/role", `{"role":"organizer"}`)
	c.SetParamNames("id")
	c.SetParamValues("u42")

	if err := h.ChangeRole(c); err != nil {
		t.Fatalf("change role: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp publicUser
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Role != domain.RoleOrganizer {
		t.Fatalf("expected organizer role, got %q", resp.Role)
	}
}

func TestAuthHandler_ChangeRole_InvalidRole(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		changeRoleFn: func(context.Context, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	c, _ := newTestContext(http.MethodPatch, "/users/u42/role", `{"role":"superuser"}`)
	c.SetParamNames("id")
	c.SetParamValues("u42")

	err := h.ChangeRole(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
