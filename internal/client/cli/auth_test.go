package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/client/session"
	"github.com/acemeet/aceletters/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func stubInputs(t *testing.T, username string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

type fakeAuth struct {
	loginUser string
	loginPass []byte
	loginSess session.Session
	loginErr  error

	logoutCalled bool
	logoutErr    error

	restoreSess session.Session
	restoreErr  error
}

func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) (session.Session, error) {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	return f.loginSess, f.loginErr
}
func (f *fakeAuth) Signup(_ context.Context, draft models.ProfileDraft, pass []byte) (session.Session, error) {
	return f.loginSess, f.loginErr
}
func (f *fakeAuth) Restore(context.Context) (session.Session, error) {
	return f.restoreSess, f.restoreErr
}
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}
func (f *fakeAuth) Ping(context.Context) error { return nil }

func TestLogin_Success(t *testing.T) {
	silencePrintln(t)
	f := &fakeAuth{loginSess: session.Session{UserID: "u1", Token: "tok", Username: "alice"}}
	a := &App{auth: f, log: testLogger()}

	restore := stubInputs(t, "alice", []byte("secret"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginUser != "alice" {
		t.Fatalf("Login user mismatch: %q", f.loginUser)
	}
	if string(f.loginPass) != "secret" {
		t.Fatalf("Login pass mismatch: %q", string(f.loginPass))
	}
	if !a.isLoggedIn() {
		t.Fatal("expected logged-in state")
	}
	if a.favorites == nil || a.inbox == nil {
		t.Fatal("per-user services not armed")
	}
}

func TestLogin_Failure(t *testing.T) {
	silencePrintln(t)
	f := &fakeAuth{loginErr: errors.New("bad credentials")}
	a := &App{auth: f, log: testLogger()}

	restore := stubInputs(t, "alice", []byte("wrong"))
	defer restore()

	if err := a.Login(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if a.isLoggedIn() {
		t.Fatal("must not be logged in after failure")
	}
}

func TestLogout(t *testing.T) {
	silencePrintln(t)
	f := &fakeAuth{}
	a := &App{auth: f, log: testLogger()}
	a.arm(session.Session{UserID: "u1", Token: "tok", Username: "alice"})

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !f.logoutCalled {
		t.Fatal("auth.Logout not called")
	}
	if a.isLoggedIn() {
		t.Fatal("session not cleared")
	}
	if a.favorites != nil || a.inbox != nil {
		t.Fatal("per-user services not disarmed")
	}
}
