package transport

import "net/http"

// Authenticator stamps credentials onto an outgoing request.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// AuthFunc adapts a plain function to Authenticator.
type AuthFunc func(req *http.Request, token string)

// Apply calls f.
func (f AuthFunc) Apply(req *http.Request, token string) { f(req, token) }

// NoAuth sends requests unauthenticated.
type NoAuth struct{}

// Apply does nothing.
func (NoAuth) Apply(*http.Request, string) {}

// BearerAuth sets "Authorization: Bearer <token>". Canvas access tokens and
// OpenAI keys both use it.
type BearerAuth struct{}

// Apply sets the Authorization header.
func (BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}
