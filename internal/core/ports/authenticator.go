package ports

import "github.com/gatewise/auth-service/internal/core/domain"

// Authenticator converts an inbound Authorization header value into validated
// claims. Implementations are stateless and safe for concurrent use; the
// routing layer depends on this capability only, never on a concrete token
// codec.
//
// Failures are exactly one of domain.ErrCredentialMissing,
// domain.ErrTokenDecoding (wrapped with a diagnostic), or
// domain.ErrTokenExpired.
type Authenticator interface {
	Authenticate(header string) (domain.Claims, error)
}

// TokenIssuer mints signed bearer tokens.
//
// Issue is pure construction: the returned claims carry no expiry. Sign stamps
// the expiry from the issuer's clock plus its fixed TTL, then encodes the
// claims into an opaque signed string. A Sign error is an internal encoding
// failure and is not part of normal control flow.
type TokenIssuer interface {
	Issue(subject string) domain.Claims
	Sign(claims domain.Claims) (string, error)
}
