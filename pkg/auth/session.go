// Package auth carries the session model and its request-context plumbing.
package auth

import (
	"context"
)

// Session is the closed set of persistence modes. Exactly one of the two
// variants exists per request: an authenticated session scoped to a user id,
// or local-only operation with no remote counterpart.
type Session struct {
	authenticated bool
	userID        string
}

// Authenticated builds a session bound to a remote user.
func Authenticated(userID string) Session {
	return Session{authenticated: true, userID: userID}
}

// LocalOnly builds the device-scoped session with no remote store.
func LocalOnly() Session {
	return Session{}
}

// IsAuthenticated reports whether a remote session exists.
func (s Session) IsAuthenticated() bool {
	return s.authenticated
}

// UserID returns the owning user id; empty in local-only mode.
func (s Session) UserID() string {
	return s.userID
}

type contextKey string

const sessionKey contextKey = "session"

// WithSession stores the session in the request context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session for the request. A request that
// never passed the auth middleware operates local-only.
func SessionFromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(sessionKey).(Session); ok {
		return s
	}
	return LocalOnly()
}
