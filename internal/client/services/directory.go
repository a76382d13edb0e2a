package services

import (
	"context"
	"fmt"

	"github.com/acemeet/aceletters/internal/client/api"
	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/logging"
)

// DirectoryService fetches profile collections from the remote API and
// normalizes them into in-memory lists. It never filters server-side:
// excluding the viewer and applying filter specs is the filter engine's
// job.
type DirectoryService struct {
	client api.Client
	log    logging.Logger
}

func NewDirectoryService(client api.Client, log logging.Logger) *DirectoryService {
	return &DirectoryService{client: client, log: log}
}

// FetchAll retrieves up to limit profiles from the start of the
// directory.
func (s *DirectoryService) FetchAll(ctx context.Context, limit int) ([]models.Profile, error) {
	page, err := s.FetchPage(ctx, limit, "")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// FetchPage retrieves one directory page; pass the previous page's
// NextCursor to continue.
func (s *DirectoryService) FetchPage(ctx context.Context, limit int, cursor string) (api.ProfilePage, error) {
	page, err := s.client.FetchAll(ctx, limit, cursor)
	if err != nil {
		return api.ProfilePage{}, fmt.Errorf("fetch profiles: %w", err)
	}
	return page, nil
}

// FetchSaved retrieves the profiles the viewer has liked.
func (s *DirectoryService) FetchSaved(ctx context.Context, viewerID string) ([]models.Profile, error) {
	items, err := s.client.FetchSaved(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("fetch saved profiles: %w", err)
	}
	return items, nil
}

// FetchOne retrieves a single profile, e.g. to show the recipient's
// display name while composing a letter.
func (s *DirectoryService) FetchOne(ctx context.Context, profileID string) (models.Profile, error) {
	p, err := s.client.FetchOne(ctx, profileID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("fetch profile %s: %w", profileID, err)
	}
	return p, nil
}

// Update validates the draft and writes it to the owner's profile,
// returning the server's post-update view.
func (s *DirectoryService) Update(ctx context.Context, profileID string, draft models.ProfileDraft) (models.Profile, error) {
	if err := draft.Validate(); err != nil {
		return models.Profile{}, err
	}
	p, err := s.client.UpdateProfile(ctx, profileID, draft)
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	s.log.Info(ctx, "profile updated", "profile", profileID)
	return p, nil
}
