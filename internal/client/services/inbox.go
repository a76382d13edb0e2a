package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/acemeet/aceletters/internal/client/api"
	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/common"
	"github.com/acemeet/aceletters/internal/logging"
)

// InboxService owns the in-memory inbox list. Mutations (mark-read,
// delete) follow the optimistic protocol; reloads bump a generation
// counter so a late rollback from an abandoned view cannot corrupt a
// freshly loaded list.
type InboxService struct {
	client api.Client
	log    logging.Logger
	user   string

	mu    sync.Mutex
	items []models.Letter
	gen   uint64
}

func NewInboxService(client api.Client, userID string, log logging.Logger) *InboxService {
	return &InboxService{client: client, log: log, user: userID}
}

// Load fetches the inbox and re-sorts it newest first by created_at,
// whatever order the server returned. Letters without a parsable
// created_at sort last.
func (s *InboxService) Load(ctx context.Context) ([]models.Letter, error) {
	items, err := s.client.FetchInbox(ctx, s.user)
	if err != nil {
		return nil, fmt.Errorf("load inbox: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].CreatedAt, items[j].CreatedAt
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Time.After(b.Time)
	})

	s.mu.Lock()
	s.items = items
	s.gen++
	s.mu.Unlock()

	return s.Items(), nil
}

// Items returns a copy of the current list.
func (s *InboxService) Items() []models.Letter {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Letter, len(s.items))
	copy(out, s.items)
	return out
}

// Unread counts letters without a read timestamp.
func (s *InboxService) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.items {
		if !l.Read() {
			n++
		}
	}
	return n
}

func (s *InboxService) find(letterID string) (int, models.Letter, bool) {
	for i, l := range s.items {
		if l.ID == letterID {
			return i, l, true
		}
	}
	return 0, models.Letter{}, false
}

// MarkRead marks a letter read. Calling it on an already-read letter is a
// local no-op: the first-read timestamp is authoritative and is returned
// unchanged. The local copy is stamped optimistically and reconciled with
// the server's read_at on success, or reverted to unread on failure.
func (s *InboxService) MarkRead(ctx context.Context, letterID string) (models.OptionalTime, error) {
	s.mu.Lock()
	idx, letter, ok := s.find(letterID)
	if !ok {
		s.mu.Unlock()
		return models.OptionalTime{}, fmt.Errorf("%w: letter %s", common.ErrorNotFound, letterID)
	}
	if letter.Read() {
		s.mu.Unlock()
		return letter.ReadAt, nil
	}
	startGen := s.gen
	s.mu.Unlock()

	var serverReadAt models.OptionalTime

	apply := func() {
		s.stamp(idx, letterID, startGen, models.OptionalTime{Time: time.Now().UTC(), Valid: true})
	}
	send := func(ctx context.Context) error {
		readAt, err := s.client.MarkRead(ctx, letterID, s.user)
		if err != nil {
			return err
		}
		serverReadAt = readAt
		return nil
	}
	rollback := func() {
		s.stamp(idx, letterID, startGen, models.OptionalTime{})
	}

	if err := optimistic(ctx, apply, send, rollback); err != nil {
		s.log.Warn(ctx, "mark-read rolled back", "letter", letterID, "error", err)
		return models.OptionalTime{}, fmt.Errorf("mark read: %w", err)
	}

	// the server's timestamp is authoritative when it sent one
	if serverReadAt.Valid {
		s.stamp(idx, letterID, startGen, serverReadAt)
		return serverReadAt, nil
	}

	s.mu.Lock()
	_, letter, _ = s.find(letterID)
	s.mu.Unlock()
	return letter.ReadAt, nil
}

// stamp sets read_at on the letter if the list has not been reloaded in
// the meantime. Late writes against an abandoned generation are dropped.
func (s *InboxService) stamp(idx int, letterID string, gen uint64, readAt models.OptionalTime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	if idx < len(s.items) && s.items[idx].ID == letterID {
		s.items[idx].ReadAt = readAt
	}
}

// Delete removes the letter from the in-memory list immediately and
// issues the remote delete. Deletion is irreversible on the server, so
// callers must confirm with the user first. On failure the letter is
// restored at its original position.
func (s *InboxService) Delete(ctx context.Context, letterID string) error {
	s.mu.Lock()
	idx, letter, ok := s.find(letterID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: letter %s", common.ErrorNotFound, letterID)
	}
	startGen := s.gen
	s.mu.Unlock()

	apply := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != startGen {
			return
		}
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
	send := func(ctx context.Context) error {
		return s.client.DeleteLetter(ctx, letterID, s.user)
	}
	rollback := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != startGen {
			return
		}
		s.items = append(s.items[:idx], append([]models.Letter{letter}, s.items[idx:]...)...)
	}

	if err := optimistic(ctx, apply, send, rollback); err != nil {
		s.log.Warn(ctx, "letter delete rolled back", "letter", letterID, "error", err)
		return fmt.Errorf("delete letter: %w", err)
	}
	return nil
}
