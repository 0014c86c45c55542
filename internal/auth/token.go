package auth

import (
	"errors"
	"strings"
)

// ErrAuthFailure covers every way a request can fail authentication:
// missing header, malformed header, or a token not present in the registry.
var ErrAuthFailure = errors.New("invalid or missing token")

// Registry maps opaque tokens to the single service allowed to use each one.
// It is built once at startup and never mutated.
type Registry struct {
	tokens map[string]string
}

// NewRegistry copies the given token -> service mapping into a Registry.
func NewRegistry(tokens map[string]string) *Registry {
	m := make(map[string]string, len(tokens))
	for tok, svc := range tokens {
		m[tok] = svc
	}
	return &Registry{tokens: m}
}

// ParseAuthHeader extracts the token value from an Authorization header of
// the form "Token <value>". The scheme keyword is case-insensitive and the
// header must have exactly two whitespace-separated parts.
func ParseAuthHeader(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "token") {
		return "", false
	}
	return parts[1], true
}

// Authenticate validates the Authorization header against the registry and
// returns the token on success so the caller can resolve its bound service.
func (r *Registry) Authenticate(header string) (string, error) {
	token, ok := ParseAuthHeader(header)
	if !ok {
		return "", ErrAuthFailure
	}
	if _, known := r.tokens[token]; !known {
		return "", ErrAuthFailure
	}
	return token, nil
}

// ServiceFor returns the service bound to token, or "" when the token is
// unknown or carries no binding.
func (r *Registry) ServiceFor(token string) string {
	return r.tokens[token]
}
