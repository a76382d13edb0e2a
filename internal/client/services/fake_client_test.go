package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/acemeet/aceletters/internal/client/api"
	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeClient is a scriptable api.Client. Unset presets make the call
// succeed with zero values; hooks let tests observe in-flight state.
type fakeClient struct {
	api.Client

	mu sync.Mutex

	LoginCreds  api.Credentials
	LoginErr    error
	SignupCreds api.Credentials
	SignupErr   error

	Page     api.ProfilePage
	PageErr  error
	Saved    []models.Profile
	SavedErr error
	One      models.Profile
	OneErr   error
	Updated  models.Profile
	UpdErr   error

	LikedIDs    []string
	LikedErr    error
	AddLikeErr  error
	RemLikeErr  error
	AddLikeHook func()
	likeCalls   []string

	Inbox      []models.Letter
	InboxErr   error
	ReadAt     models.OptionalTime
	ReadErr    error
	DeleteErr  error
	sentBodies []string
	SendErr    error

	identityUser, identityToken string
}

func (f *fakeClient) Login(ctx context.Context, username string, password []byte) (api.Credentials, error) {
	return f.LoginCreds, f.LoginErr
}

func (f *fakeClient) Signup(ctx context.Context, draft models.ProfileDraft, password []byte) (api.Credentials, error) {
	return f.SignupCreds, f.SignupErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) SetIdentity(userID, token string) {
	f.identityUser, f.identityToken = userID, token
}

func (f *fakeClient) FetchAll(ctx context.Context, limit int, cursor string) (api.ProfilePage, error) {
	return f.Page, f.PageErr
}

func (f *fakeClient) FetchSaved(ctx context.Context, viewerID string) ([]models.Profile, error) {
	return f.Saved, f.SavedErr
}

func (f *fakeClient) FetchOne(ctx context.Context, profileID string) (models.Profile, error) {
	return f.One, f.OneErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, profileID string, draft models.ProfileDraft) (models.Profile, error) {
	return f.Updated, f.UpdErr
}

func (f *fakeClient) FetchLikedIDs(ctx context.Context, viewerID string) ([]string, error) {
	return f.LikedIDs, f.LikedErr
}

func (f *fakeClient) AddLike(ctx context.Context, viewerID, targetID string) error {
	f.mu.Lock()
	f.likeCalls = append(f.likeCalls, "add:"+targetID)
	f.mu.Unlock()
	if f.AddLikeHook != nil {
		f.AddLikeHook()
	}
	return f.AddLikeErr
}

func (f *fakeClient) RemoveLike(ctx context.Context, viewerID, targetID string) error {
	f.mu.Lock()
	f.likeCalls = append(f.likeCalls, "remove:"+targetID)
	f.mu.Unlock()
	return f.RemLikeErr
}

func (f *fakeClient) FetchInbox(ctx context.Context, userID string) ([]models.Letter, error) {
	return f.Inbox, f.InboxErr
}

func (f *fakeClient) SendLetter(ctx context.Context, senderID, recipientID, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return f.SendErr
	}
	f.sentBodies = append(f.sentBodies, body)
	return nil
}

func (f *fakeClient) MarkRead(ctx context.Context, letterID, userID string) (models.OptionalTime, error) {
	return f.ReadAt, f.ReadErr
}

func (f *fakeClient) DeleteLetter(ctx context.Context, letterID, userID string) error {
	return f.DeleteErr
}

func (f *fakeClient) DeleteAsset(ctx context.Context, publicID string) error { return nil }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) LikeCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.likeCalls))
	copy(out, f.likeCalls)
	return out
}

func (f *fakeClient) SentBodies() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sentBodies))
	copy(out, f.sentBodies)
	return out
}
