package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/acemeet/aceletters/internal/client/api"
	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/client/session"
	"github.com/acemeet/aceletters/internal/common"
	"github.com/acemeet/aceletters/internal/logging"
)

// AuthService defines the authentication operations of the client.
//
// Contract:
//   - Login / Signup: authenticate against the server and persist the
//     returned identity in the session store.
//   - Restore: resume a persisted session after a process restart.
//   - Logout: clear the persisted session and the transport identity.
//   - Ping: check server liveness.
//
// All methods honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (session.Session, error)
	Signup(ctx context.Context, draft models.ProfileDraft, password []byte) (session.Session, error)
	Restore(ctx context.Context) (session.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client   api.Client
	sessions session.Store
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and session store.
func NewAuthService(client api.Client, sessions session.Store, log logging.Logger) AuthService {
	return &authService{client: client, sessions: sessions, log: log}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (session.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return session.Session{}, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	creds, err := a.client.Login(ctx, username, password)
	if err != nil {
		return session.Session{}, fmt.Errorf("login: %w", err)
	}
	return a.establish(ctx, creds, username)
}

func (a *authService) Signup(ctx context.Context, draft models.ProfileDraft, password []byte) (session.Session, error) {
	if err := draft.Validate(); err != nil {
		return session.Session{}, err
	}
	if len(password) == 0 {
		return session.Session{}, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	creds, err := a.client.Signup(ctx, draft, password)
	if err != nil {
		return session.Session{}, fmt.Errorf("signup: %w", err)
	}
	return a.establish(ctx, creds, draft.Username)
}

// establish persists the credentials and arms the transport with them.
func (a *authService) establish(ctx context.Context, creds api.Credentials, username string) (session.Session, error) {
	sess := session.Session{UserID: creds.UserID, Token: creds.Token, Username: username}
	if err := a.sessions.Set(ctx, sess); err != nil {
		return session.Session{}, fmt.Errorf("persist session: %w", err)
	}
	a.client.SetIdentity(sess.UserID, sess.Token)
	a.log.Info(ctx, "session established", "user", sess.UserID)
	return sess, nil
}

func (a *authService) Restore(ctx context.Context) (session.Session, error) {
	sess, err := a.sessions.Get(ctx)
	if err != nil {
		return session.Session{}, err
	}
	a.client.SetIdentity(sess.UserID, sess.Token)
	return sess, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.client.SetIdentity("", "")
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
