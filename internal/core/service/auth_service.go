package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatewise/auth-service/internal/core/domain"
	"github.com/gatewise/auth-service/internal/core/ports"
)

// LoginLimiter abstracts the per-account attempt throttle (Redis).
type LoginLimiter interface {
	TooMany(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration and login on top of the token issuer.
type AuthService struct {
	repo    ports.UserRepository
	tokens  ports.TokenIssuer
	limiter LoginLimiter
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	tokens ports.TokenIssuer,
	limiter LoginLimiter,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, audit: audit, log: log}
}

func (s *AuthService) Register(ctx context.Context, username, password, email, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.record(username, domain.AuditActionRegister, domain.AuditOutcomeFailure, err.Error())
		return nil, err
	}

	s.record(username, domain.AuditActionRegister, domain.AuditOutcomeSuccess, "")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	throttled, err := s.limiter.TooMany(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, allowing attempt")
	} else if throttled {
		s.record(username, domain.AuditActionLogin, domain.AuditOutcomeThrottled, "")
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		s.failLogin(ctx, username, err)
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.failLogin(ctx, username, domain.ErrInvalidCredentials)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(s.tokens.Issue(user.Username))
	if err != nil {
		return "", nil, err
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login limiter")
	}
	s.record(username, domain.AuditActionLogin, domain.AuditOutcomeSuccess, "")

	return token, user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *AuthService) failLogin(ctx context.Context, username string, cause error) {
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
	s.record(username, domain.AuditActionLogin, domain.AuditOutcomeFailure, cause.Error())
}

func (s *AuthService) record(subject, action, outcome, reason string) {
	s.audit.Enqueue(ports.AuthEventInput{
		Subject:   subject,
		Action:    action,
		Outcome:   outcome,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}
