// Package api is the HTTP/JSON transport of the aceletters client. It
// exposes the remote service behind the Client interface so services can
// be tested against fakes.
package api

import (
	"context"

	"github.com/acemeet/aceletters/internal/client/models"
)

// Credentials is the identity a successful login or signup returns.
type Credentials struct {
	UserID string
	Token  string
}

// ProfilePage is one page of the directory listing.
type ProfilePage struct {
	Items      []models.Profile
	NextCursor string
	HasMore    bool
}

// Client is the remote API surface consumed by the services layer.
//
// Every call applies the configured request timeout; connectivity failures
// and timeouts come back wrapped in ErrUnavailable, non-2xx responses as
// *RemoteError. Nothing here retries: all retries are user-initiated.
type Client interface {
	// Auth.
	Login(ctx context.Context, username string, password []byte) (Credentials, error)
	Signup(ctx context.Context, draft models.ProfileDraft, password []byte) (Credentials, error)
	Ping(ctx context.Context) error

	// SetIdentity sets the identity carried on subsequent requests
	// (bearer token and user-id header). Empty values clear it.
	SetIdentity(userID, token string)

	// Profiles.
	FetchAll(ctx context.Context, limit int, cursor string) (ProfilePage, error)
	FetchSaved(ctx context.Context, viewerID string) ([]models.Profile, error)
	FetchOne(ctx context.Context, profileID string) (models.Profile, error)
	UpdateProfile(ctx context.Context, profileID string, draft models.ProfileDraft) (models.Profile, error)

	// Likes.
	FetchLikedIDs(ctx context.Context, viewerID string) ([]string, error)
	AddLike(ctx context.Context, viewerID, targetID string) error
	RemoveLike(ctx context.Context, viewerID, targetID string) error

	// Letters.
	FetchInbox(ctx context.Context, userID string) ([]models.Letter, error)
	SendLetter(ctx context.Context, senderID, recipientID, body string) error
	MarkRead(ctx context.Context, letterID, userID string) (models.OptionalTime, error)
	DeleteLetter(ctx context.Context, letterID, userID string) error

	// Assets.
	DeleteAsset(ctx context.Context, publicID string) error

	Close() error
}
