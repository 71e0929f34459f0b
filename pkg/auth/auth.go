package auth

import "errors"

// HeaderName is the request header carrying the client API key
const HeaderName = "X-API-Key"

var (
	// ErrNotConfigured signals that no expected key is set. This is a
	// server misconfiguration (500 class), not a client fault.
	ErrNotConfigured = errors.New("API key not configured")

	// ErrUnauthorized signals a missing or mismatched client key (401 class).
	ErrUnauthorized = errors.New("invalid or missing API key")
)

// Authenticator validates client-supplied API keys against a single
// configured secret
type Authenticator struct {
	secret string
}

// New creates an authenticator for the given expected secret
func New(secret string) *Authenticator {
	return &Authenticator{secret: secret}
}

// Authenticate checks a header value against the expected secret and
// returns the validated key for downstream use. The comparison is exact
// string equality.
func (a *Authenticator) Authenticate(header string) (string, error) {
	if a.secret == "" {
		return "", ErrNotConfigured
	}
	if header == "" || header != a.secret {
		return "", ErrUnauthorized
	}
	return header, nil
}
