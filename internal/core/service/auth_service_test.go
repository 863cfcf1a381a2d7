package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatewise/auth-service/internal/core/domain"
	"github.com/gatewise/auth-service/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

type stubLimiter struct {
	throttled bool
	failures  int
	resets    int
}

func (l *stubLimiter) TooMany(context.Context, string) (bool, error) { return l.throttled, nil }
func (l *stubLimiter) RecordFailure(context.Context, string) error   { l.failures++; return nil }
func (l *stubLimiter) Reset(context.Context, string) error           { l.resets++; return nil }

type stubSink struct {
	events []ports.AuthEventInput
}

func (s *stubSink) Enqueue(event ports.AuthEventInput) {
	s.events = append(s.events, event)
}

func (s *stubSink) last(t *testing.T) ports.AuthEventInput {
	t.Helper()
	if len(s.events) == 0 {
		t.Fatalf("expected at least one audit event")
	}
	return s.events[len(s.events)-1]
}

func newAuthService(repo *stubUserRepo, limiter *stubLimiter, sink *stubSink) *AuthService {
	tokens := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, tokens, limiter, sink, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	sink := &stubSink{}
	svc := newAuthService(newStubUserRepo(), &stubLimiter{}, sink)

	user, err := svc.Register(context.Background(), "alice", "pass1234", "alice@example.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	event := sink.last(t)
	if event.Action != domain.AuditActionRegister || event.Outcome != domain.AuditOutcomeSuccess {
		t.Fatalf("unexpected audit event: %+v", event)
	}
}

func TestAuthService_Register_DefaultsRole(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubLimiter{}, &stubSink{})

	user, err := svc.Register(context.Background(), "bob", "pass1234", "", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubLimiter{}, &stubSink{})

	if _, err := svc.Register(context.Background(), "", "pass", "", domain.RoleUser); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "", "", domain.RoleUser); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pass", "", "superuser"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubLimiter{}, &stubSink{})

	_, _ = svc.Register(context.Background(), "bob", "pass1234", "", domain.RoleUser)
	if _, err := svc.Register(context.Background(), "bob", "pass5678", "", domain.RoleUser); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	limiter := &stubLimiter{}
	sink := &stubSink{}
	svc := newAuthService(newStubUserRepo(), limiter, sink)

	if _, err := svc.Register(context.Background(), "carol", "s3cret99", "", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset on success, got %d", limiter.resets)
	}

	// The returned token must authenticate back to the same subject.
	authn := NewTokenService("secret", time.Hour)
	claims, err := authn.Authenticate("Bearer " + token)
	if err != nil {
		t.Fatalf("token did not authenticate: %v", err)
	}
	if claims.Subject != "carol" {
		t.Fatalf("expected subject carol, got %q", claims.Subject)
	}

	event := sink.last(t)
	if event.Action != domain.AuditActionLogin || event.Outcome != domain.AuditOutcomeSuccess {
		t.Fatalf("unexpected audit event: %+v", event)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	limiter := &stubLimiter{}
	sink := &stubSink{}
	svc := newAuthService(newStubUserRepo(), limiter, sink)

	_, _ = svc.Register(context.Background(), "dave", "goodpass", "", domain.RoleUser)
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures != 1 {
		t.Fatalf("expected failure recorded, got %d", limiter.failures)
	}
	if event := sink.last(t); event.Outcome != domain.AuditOutcomeFailure {
		t.Fatalf("unexpected audit event: %+v", event)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	limiter := &stubLimiter{}
	svc := newAuthService(newStubUserRepo(), limiter, &stubSink{})

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if limiter.failures != 1 {
		t.Fatalf("expected failure recorded, got %d", limiter.failures)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	limiter := &stubLimiter{throttled: true}
	sink := &stubSink{}
	svc := newAuthService(newStubUserRepo(), limiter, sink)

	_, _ = svc.Register(context.Background(), "erin", "goodpass", "", domain.RoleUser)
	if _, _, err := svc.Login(context.Background(), "erin", "goodpass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if event := sink.last(t); event.Outcome != domain.AuditOutcomeThrottled {
		t.Fatalf("unexpected audit event: %+v", event)
	}
}

func TestAuthService_ListUsers(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubLimiter{}, &stubSink{})

	_, _ = svc.Register(context.Background(), "alice", "pass1234", "", domain.RoleAdmin)
	_, _ = svc.Register(context.Background(), "bob", "pass1234", "", domain.RoleUser)

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
