package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/auth-service/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, email, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	listFn     func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, email, role string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, email, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

type stubTokenIssuer struct {
	signFn func(claims domain.Claims) (string, error)
}

func (s *stubTokenIssuer) Issue(subject string) domain.Claims {
	return domain.Claims{Subject: subject}
}

func (s *stubTokenIssuer) Sign(claims domain.Claims) (string, error) {
	return s.signFn(claims)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			if username != "alice" || role != "user" {
				t.Fatalf("unexpected args: %s %s", username, role)
			}
			return &domain.User{Username: username, Role: role}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubTokenIssuer{})

	c, rec := postJSON(e, "/auth/register", `{"username":"alice","password":"secret123","email":"a@example.com","role":"user"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, &stubTokenIssuer{})

	c, rec := postJSON(e, "/auth/register", `{"username":"bob","password":"secret123"}`)
	_ = handler.Register(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubTokenIssuer{})

	// Password too short, role outside the allowed set.
	c, rec := postJSON(e, "/auth/register", `{"username":"bob","password":"x","role":"root"}`)
	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, role string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubTokenIssuer{})

	c, rec := postJSON(e, "/auth/register", "not-json")
	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "alice" || password != "secret123" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "signed-token", &domain.User{Username: "alice", Role: "user"}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubTokenIssuer{})

	c, rec := postJSON(e, "/auth/login", `{"username":"alice","password":"secret123"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, &stubTokenIssuer{})

	c, rec := postJSON(e, "/auth/login", `{"username":"alice","password":"wrong"}`)
	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrTooManyAttempts
		},
	}
	handler := NewAuthHandler(stub, &stubTokenIssuer{})

	c, rec := postJSON(e, "/auth/login", `{"username":"alice","password":"secret123"}`)
	_ = handler.Login(c)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, &stubTokenIssuer{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("claims", domain.Claims{Subject: "alice", ExpiresAt: 1767225600})

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp claimsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Subject != "alice" || resp.ExpiresAt != 1767225600 {
		t.Fatalf("unexpected claims payload: %+v", resp)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, &stubTokenIssuer{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Me(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := newTestEcho()
	issuer := &stubTokenIssuer{
		signFn: func(claims domain.Claims) (string, error) {
			if claims.Subject != "alice" {
				t.Fatalf("unexpected subject: %q", claims.Subject)
			}
			return "fresh-token", nil
		},
	}
	handler := NewAuthHandler(&stubAuthService{}, issuer)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("claims", domain.Claims{Subject: "alice", ExpiresAt: 1767225600})

	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "fresh-token" {
		t.Fatalf("expected fresh token, got %+v", resp)
	}
}

func TestAuthHandler_Users(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{Username: "alice", Role: domain.RoleAdmin},
				{Username: "bob", Role: domain.RoleUser},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubTokenIssuer{})

	req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Users(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp usersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp.Users))
	}
}
