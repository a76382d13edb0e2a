package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/acemeet/aceletters/internal/client/api"
	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/client/services"
	"github.com/acemeet/aceletters/internal/common"
)

// composeFor returns the compose session for a recipient, reusing a
// blocked one so the dead end is remembered, and starting fresh after a
// successful send.
func (a *App) composeFor(recipientID string) *services.Compose {
	if a.composes == nil {
		a.composes = make(map[string]*services.Compose)
	}
	c, ok := a.composes[recipientID]
	if !ok || c.State() == services.ComposeSent {
		c = a.letters.NewCompose(a.viewerID(), recipientID)
		a.composes[recipientID] = c
	}
	return c
}

// Write composes and sends a letter to a profile. A conflict means this
// pair already has an outstanding letter; the pair stays blocked without
// another network round trip until the existing letter is deleted.
func (a *App) Write(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	recipientID, ok := a.resolveProfile(args[0])
	if !ok {
		return nil
	}

	compose := a.composeFor(recipientID)
	if compose.State() == services.ComposeBlocked {
		printlnFn("You already have an unanswered letter to this person. It must be deleted before you can write again.")
		return api.ErrAlreadySent
	}

	if p, found := a.findListed(recipientID); found {
		printlnFn("To:", p.DisplayName())
	}

	body, err := getMultiline(a.reader, "Your letter", os.Stdout)
	if err != nil {
		return err
	}

	if err := compose.Send(ctx, body); err != nil {
		switch {
		case errors.Is(err, api.ErrAlreadySent):
			printlnFn("You already have an unanswered letter to this person. It must be deleted before you can write again.")
		case errors.Is(err, common.ErrorValidation):
			printlnFn(err.Error())
		default:
			a.log.Error(ctx, "send letter failed", "recipient", recipientID, "error", err)
			printlnFn("Could not send the letter:", err.Error())
		}
		return err
	}

	printlnFn("Letter sent")
	return nil
}

// resolveLetter turns a 1-based inbox number into the letter shown at
// that position of the last 'inbox' output.
func (a *App) resolveLetter(arg string) (models.Letter, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.inboxed) {
		printlnFn("No such letter; run 'inbox' first")
		return models.Letter{}, false
	}
	return a.inboxed[n-1], true
}

// Inbox lists received letters, newest first.
func (a *App) Inbox(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	items, err := a.inbox.Load(ctx)
	if err != nil {
		a.log.Error(ctx, "inbox load failed", "error", err)
		printlnFn("Could not load the inbox:", err.Error())
		return err
	}
	a.inboxed = items

	if len(items) == 0 {
		printlnFn("Your inbox is empty")
		return nil
	}

	for i, l := range items {
		mark := "new"
		if l.Read() {
			mark = "   "
		}
		when := "unknown date"
		if l.CreatedAt.Valid {
			when = l.CreatedAt.Time.Format("2006-01-02 15:04")
		}
		printlnFn(fmt.Sprintf("%3d %s %s  from %s", i+1, mark, when, l.SenderLabel()))
	}
	printlnFn(fmt.Sprintf("%d letter(s), %d unread", len(items), a.inbox.Unread()))
	return nil
}

// Read shows a letter's body and marks it read.
func (a *App) Read(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	letter, ok := a.resolveLetter(args[0])
	if !ok {
		return nil
	}

	printlnFn("From:", letter.SenderLabel())
	if letter.CreatedAt.Valid {
		printlnFn("Date:", letter.CreatedAt.Time.Format("2006-01-02 15:04"))
	}
	printlnFn("")
	printlnFn(letter.Body)
	printlnFn("")

	if _, err := a.inbox.MarkRead(ctx, letter.ID); err != nil {
		a.log.Warn(ctx, "mark read failed", "letter", letter.ID, "error", err)
	}
	a.inboxed = a.inbox.Items()
	return nil
}

// Delete removes a letter after confirmation. Deletion also lifts the
// one-letter restriction for the sender, so it is irreversible.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	letter, ok := a.resolveLetter(args[0])
	if !ok {
		return nil
	}

	yes, err := confirm(a.reader, "Delete the letter from "+letter.SenderLabel()+"? This cannot be undone.", os.Stdout)
	if err != nil {
		return err
	}
	if !yes {
		printlnFn("Kept")
		return nil
	}

	if err := a.inbox.Delete(ctx, letter.ID); err != nil {
		a.log.Error(ctx, "letter delete failed", "letter", letter.ID, "error", err)
		printlnFn("Could not delete the letter:", err.Error())
		return err
	}
	a.inboxed = a.inbox.Items()
	printlnFn("Deleted")
	return nil
}
