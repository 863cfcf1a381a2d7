package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gatewise/auth-service/internal/core/domain"
)

// bearerPrefix is the exact credential scheme: the literal word, one space,
// then the token. Nothing else is accepted.
const bearerPrefix = "Bearer "

// DefaultTokenTTL bounds token validity when no TTL is configured.
const DefaultTokenTTL = 5 * time.Minute

// TokenService implements ports.Authenticator and ports.TokenIssuer with
// HS256-signed JWTs. The signing secret and TTL are fixed at construction;
// the service holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the wall clock. Intended for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue constructs unsigned claims for subject. The expiry stays zero until
// Sign stamps it, so claim construction is testable independent of the clock.
func (s *TokenService) Issue(subject string) domain.Claims {
	return domain.Claims{Subject: subject}
}

// Sign stamps ExpiresAt = now + TTL and encodes the claims into a signed
// token. Each token carries a unique jti so two tokens for the same subject
// signed within the same second still differ.
func (s *TokenService) Sign(claims domain.Claims) (string, error) {
	expiry := s.now().Add(s.ttl)
	claims.ExpiresAt = expiry.Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   claims.Subject,
		ExpiresAt: jwt.NewNumericDate(expiry),
		ID:        uuid.NewString(),
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies an Authorization header value and returns the decoded
// claims.
//
//  1. The value must match "Bearer <token>" exactly (one surrounding trim is
//     tolerated, nothing else) or the credential is treated as missing.
//  2. The token signature is verified against the configured secret and the
//     expiry claim against the current time.
//  3. An expired-but-otherwise-valid token reports domain.ErrTokenExpired;
//     every other parse or verification failure reports domain.ErrTokenDecoding.
func (s *TokenService) Authenticate(header string) (domain.Claims, error) {
	token, ok := strings.CutPrefix(strings.TrimSpace(header), bearerPrefix)
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return domain.Claims{}, domain.ErrCredentialMissing
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	var rc jwt.RegisteredClaims
	if _, err := parser.ParseWithClaims(token, &rc, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		if onlyExpired(err) {
			return domain.Claims{}, domain.ErrTokenExpired
		}
		return domain.Claims{}, fmt.Errorf("%w: %v", domain.ErrTokenDecoding, err)
	}

	if rc.Subject == "" {
		return domain.Claims{}, fmt.Errorf("%w: missing sub claim", domain.ErrTokenDecoding)
	}

	return domain.Claims{Subject: rc.Subject, ExpiresAt: rc.ExpiresAt.Unix()}, nil
}

// onlyExpired reports whether err is an expiry failure and nothing else, so a
// stale-but-genuine token is never misreported as a decoding failure — and a
// tampered expired token never passes as merely stale.
func onlyExpired(err error) bool {
	if !errors.Is(err, jwt.ErrTokenExpired) {
		return false
	}
	return !errors.Is(err, jwt.ErrTokenMalformed) &&
		!errors.Is(err, jwt.ErrTokenUnverifiable) &&
		!errors.Is(err, jwt.ErrTokenSignatureInvalid)
}
