package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/acemeet/aceletters/internal/client/api"
	"github.com/acemeet/aceletters/internal/common"
	"github.com/acemeet/aceletters/internal/logging"
)

// MaxLetterLen is the maximum letter body length in characters.
const MaxLetterLen = 2000

// LetterService sends letters. The server allows at most one outstanding
// letter per ordered (sender, recipient) pair; a conflict response is
// terminal and must never be retried silently.
type LetterService struct {
	client api.Client
	log    logging.Logger
}

func NewLetterService(client api.Client, log logging.Logger) *LetterService {
	return &LetterService{client: client, log: log}
}

// Send validates the body locally and creates the letter. The body is
// trimmed before sending. A duplicate-pair conflict surfaces as
// api.ErrAlreadySent, matchable with errors.Is through the wrapping.
func (s *LetterService) Send(ctx context.Context, senderID, recipientID, body string) error {
	if senderID == "" {
		return fmt.Errorf("%w: missing sender id", common.ErrorValidation)
	}
	if recipientID == "" {
		return fmt.Errorf("%w: missing recipient id", common.ErrorValidation)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return fmt.Errorf("%w: letter is empty", common.ErrorValidation)
	}
	if utf8.RuneCountInString(body) > MaxLetterLen {
		return fmt.Errorf("%w: letter exceeds %d characters", common.ErrorValidation, MaxLetterLen)
	}

	if err := s.client.SendLetter(ctx, senderID, recipientID, body); err != nil {
		return fmt.Errorf("send letter: %w", err)
	}
	s.log.Info(ctx, "letter sent", "recipient", recipientID)
	return nil
}

// ComposeState is the client-observed lifecycle of one compose session.
type ComposeState int

const (
	// ComposeUnsent: editable, nothing sent yet.
	ComposeUnsent ComposeState = iota
	// ComposeSent: the letter was created; further edits are refused.
	ComposeSent
	// ComposeBlocked: the pair already has an outstanding letter. Dead
	// end until one of the parties deletes it.
	ComposeBlocked
)

// Compose tracks a single letter being written to one recipient and
// enforces the send-once state machine on top of LetterService.
type Compose struct {
	svc       *LetterService
	sender    string
	recipient string
	state     ComposeState
}

func (s *LetterService) NewCompose(senderID, recipientID string) *Compose {
	return &Compose{svc: s, sender: senderID, recipient: recipientID}
}

func (c *Compose) State() ComposeState { return c.state }

// Send attempts to create the letter. After a success the compose is
// sealed. A conflict seals it too: resending is pointless until the
// existing letter is deleted, so every later call short-circuits to
// api.ErrAlreadySent without touching the network. Any other failure
// leaves the compose editable and retryable by the user.
func (c *Compose) Send(ctx context.Context, body string) error {
	switch c.state {
	case ComposeSent:
		return fmt.Errorf("%w: letter already sent", common.ErrorValidation)
	case ComposeBlocked:
		return api.ErrAlreadySent
	}

	err := c.svc.Send(ctx, c.sender, c.recipient, body)
	if err == nil {
		c.state = ComposeSent
		return nil
	}
	if errors.Is(err, api.ErrAlreadySent) {
		c.state = ComposeBlocked
	}
	return err
}
