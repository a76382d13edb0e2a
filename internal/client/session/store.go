// Package session holds the current-user identity: set at login or
// signup, cleared at logout, durable across process restarts. Components
// needing identity read through the Store interface instead of keeping
// their own copy, so nothing diverges after a logout.
package session

import "context"

// Session is the authenticated identity of the current user.
type Session struct {
	UserID   string
	Token    string
	Username string
}

// Store persists the session. Get returns common.ErrorNoSession when no
// session is active.
type Store interface {
	Get(ctx context.Context) (Session, error)
	Set(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}
