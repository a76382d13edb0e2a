package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/common"
)

// resolveProfile turns a command argument into a profile id: a number
// addresses the last listing, anything else is taken as a raw id.
func (a *App) resolveProfile(arg string) (string, bool) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(a.listing) {
			printlnFn("No such entry in the last listing; run 'browse' first")
			return "", false
		}
		return a.listing[n-1].ID, true
	}
	return arg, true
}

// Like toggles a like on a profile. The listing marker is updated
// immediately; a failed request rolls it back.
func (a *App) Like(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	targetID, ok := a.resolveProfile(args[0])
	if !ok {
		return nil
	}

	liked, err := a.favorites.Toggle(ctx, targetID)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			printlnFn(err.Error())
			return nil
		}
		a.log.Error(ctx, "like toggle failed", "target", targetID, "error", err)
		printlnFn("Could not update like:", err.Error())
		return err
	}

	if liked {
		printlnFn("Liked", a.labelFor(targetID))
	} else {
		printlnFn("Unliked", a.labelFor(targetID))
	}
	return nil
}

func (a *App) labelFor(profileID string) string {
	for _, p := range a.listing {
		if p.ID == profileID {
			return p.DisplayName()
		}
	}
	return profileID
}

func (a *App) findListed(profileID string) (models.Profile, bool) {
	for _, p := range a.listing {
		if p.ID == profileID {
			return p, true
		}
	}
	return models.Profile{}, false
}
