package domain

// Claims is the payload carried inside a signed bearer token. It identifies
// the authenticated principal and the moment the token stops being valid.
//
// A Claims value moves through exactly two states: unsigned (ExpiresAt zero,
// as produced by Issue) and signed (ExpiresAt stamped at signing time).
// ExpiresAt is always derived from the signing clock plus the configured TTL;
// it is never accepted from a client.
type Claims struct {
	Subject   string `json:"subject"`
	ExpiresAt int64  `json:"expires_at"`
}

// Signed reports whether the claims carry an expiry, i.e. have gone through
// signing.
func (c Claims) Signed() bool {
	return c.ExpiresAt != 0
}
