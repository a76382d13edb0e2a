package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/acemeet/aceletters/internal/client/api"
	"github.com/acemeet/aceletters/internal/common"
	"github.com/acemeet/aceletters/internal/logging"
)

// FavoriteService mirrors the viewer's liked-profile set locally for
// instantaneous feedback; the authoritative copy lives on the server.
// Toggles are applied optimistically and rolled back on failure.
//
// Cross-session reconciliation is not attempted: the server is
// last-write-wins and the local mirror is refreshed on the next Refresh.
type FavoriteService struct {
	client api.Client
	log    logging.Logger
	viewer string

	mu    sync.Mutex
	liked map[string]struct{}
	gen   uint64

	targetsMu sync.Mutex
	targets   map[string]*sync.Mutex
}

func NewFavoriteService(client api.Client, viewerID string, log logging.Logger) *FavoriteService {
	return &FavoriteService{
		client:  client,
		log:     log,
		viewer:  viewerID,
		liked:   make(map[string]struct{}),
		targets: make(map[string]*sync.Mutex),
	}
}

// Refresh replaces the local mirror with the server's liked-id set.
// Any rollback belonging to a toggle that was in flight across the
// refresh is discarded: the fresh server state wins.
func (s *FavoriteService) Refresh(ctx context.Context) error {
	ids, err := s.client.FetchLikedIDs(ctx, s.viewer)
	if err != nil {
		return fmt.Errorf("load liked ids: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.liked = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.liked[id] = struct{}{}
	}
	s.gen++
	return nil
}

// IsLiked reports current local membership.
func (s *FavoriteService) IsLiked(targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liked[targetID]
	return ok
}

// LikedIDs returns the local liked set, sorted for stable display.
func (s *FavoriteService) LikedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.liked))
	for id := range s.liked {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// targetLock returns the mutex serializing toggles for one target, so a
// rollback can never interleave with a later toggle of the same target.
func (s *FavoriteService) targetLock(targetID string) *sync.Mutex {
	s.targetsMu.Lock()
	defer s.targetsMu.Unlock()
	m, ok := s.targets[targetID]
	if !ok {
		m = &sync.Mutex{}
		s.targets[targetID] = m
	}
	return m
}

// Toggle flips the local membership of targetID immediately, then issues
// the matching add or remove request. On failure the membership reverts
// to its pre-toggle value and the error is returned; there is no
// automatic retry.
func (s *FavoriteService) Toggle(ctx context.Context, targetID string) (liked bool, err error) {
	if targetID == "" {
		return false, fmt.Errorf("%w: empty target id", common.ErrorValidation)
	}
	if targetID == s.viewer {
		return false, fmt.Errorf("%w: cannot like your own profile", common.ErrorValidation)
	}

	lock := s.targetLock(targetID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	_, wasLiked := s.liked[targetID]
	startGen := s.gen
	s.mu.Unlock()

	liked = !wasLiked

	apply := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if liked {
			s.liked[targetID] = struct{}{}
		} else {
			delete(s.liked, targetID)
		}
	}
	send := func(ctx context.Context) error {
		if liked {
			return s.client.AddLike(ctx, s.viewer, targetID)
		}
		return s.client.RemoveLike(ctx, s.viewer, targetID)
	}
	rollback := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != startGen {
			// the set was reloaded while the request was in flight;
			// the fresh server state wins over the rollback
			return
		}
		if wasLiked {
			s.liked[targetID] = struct{}{}
		} else {
			delete(s.liked, targetID)
		}
	}

	if err := optimistic(ctx, apply, send, rollback); err != nil {
		s.log.Warn(ctx, "favorite toggle rolled back", "target", targetID, "error", err)
		return wasLiked, fmt.Errorf("toggle favorite: %w", err)
	}
	return liked, nil
}
