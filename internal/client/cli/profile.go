package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/acemeet/aceletters/internal/client/filter"
	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/client/upload"
	"github.com/acemeet/aceletters/internal/common"
)

// avatarPublicID is the Cloudinary public id used for the viewer's
// avatar. Uploading under a fixed id replaces the previous image, so no
// orphan cleanup is needed on re-upload.
func avatarPublicID(userID string) string {
	return "aceletters/avatars/" + userID
}

func (a *App) showProfile(p models.Profile) {
	printlnFn(p.DisplayName())
	if p.Age.Valid {
		printlnFn("Age:", strconv.Itoa(p.Age.Value))
	}
	if p.City != "" {
		printlnFn("City:", filter.Label(filter.CityOptions, p.City))
	}
	if p.Orientation != "" {
		printlnFn("Orientation:", filter.Label(filter.OrientationOptions, p.Orientation))
	}
	if p.LookingFor != "" {
		printlnFn("Looking for:", filter.Label(filter.LookingForOptions, p.LookingFor))
	}
	if p.Gender != "" {
		printlnFn("Gender:", filter.Label(filter.GenderOptions, p.Gender))
	}
	if p.Info != "" {
		printlnFn("")
		printlnFn(p.Info)
	}
	if p.Contact != "" {
		printlnFn("")
		printlnFn("Contact:", p.Contact)
	}
	if p.ImageURL != "" {
		printlnFn("Photo:", p.ImageURL)
	}
}

// Profile shows the viewer's own profile.
func (a *App) Profile(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	p, err := a.dir.FetchOne(ctx, a.viewerID())
	if err != nil {
		a.log.Error(ctx, "profile fetch failed", "error", err)
		printlnFn("Could not load your profile:", err.Error())
		return err
	}
	a.showProfile(p)
	return nil
}

func draftFromProfile(p models.Profile) models.ProfileDraft {
	return models.ProfileDraft{
		Username:    p.Username,
		Name:        p.Name,
		Age:         p.Age.Value,
		Gender:      p.Gender,
		Orientation: p.Orientation,
		LookingFor:  p.LookingFor,
		City:        p.City,
		Info:        p.Info,
		Contact:     p.Contact,
		ImageURL:    p.ImageURL,
	}
}

// Edit re-prompts the profile fields with the current values as defaults
// and saves the result. Validation failures are reported without hitting
// the server.
func (a *App) Edit(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	current, err := a.dir.FetchOne(ctx, a.viewerID())
	if err != nil {
		printlnFn("Could not load your profile:", err.Error())
		return err
	}

	draft, err := a.promptDraft(draftFromProfile(current))
	if err != nil {
		return err
	}

	updated, err := a.dir.Update(ctx, a.viewerID(), draft)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			printlnFn("Invalid profile:", err.Error())
			return nil
		}
		a.log.Error(ctx, "profile update failed", "error", err)
		printlnFn("Could not save the profile:", err.Error())
		return err
	}

	printlnFn("Saved")
	a.showProfile(updated)
	return nil
}

// Upload pushes a new avatar image and stores the resulting URL on the
// profile. 'upload remove' deletes the current avatar instead.
func (a *App) Upload(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	current, err := a.dir.FetchOne(ctx, a.viewerID())
	if err != nil {
		printlnFn("Could not load your profile:", err.Error())
		return err
	}
	draft := draftFromProfile(current)

	if args[0] == "remove" {
		if current.ImageURL == "" {
			printlnFn("No avatar to remove")
			return nil
		}
		if err := a.client.DeleteAsset(ctx, avatarPublicID(a.viewerID())); err != nil {
			a.log.Error(ctx, "asset delete failed", "error", err)
			printlnFn("Could not remove the avatar:", err.Error())
			return err
		}
		draft.ImageURL = ""
		if _, err := a.dir.Update(ctx, a.viewerID(), draft); err != nil {
			printlnFn("Could not save the profile:", err.Error())
			return err
		}
		printlnFn("Avatar removed")
		return nil
	}

	uploader, err := upload.NewUploader(a.log)
	if err != nil {
		if errors.Is(err, upload.ErrNotConfigured) {
			printlnFn("Image uploads are not configured on this machine (CLOUDINARY_URL is unset)")
			return nil
		}
		return err
	}

	url, err := uploader.UploadAvatarFile(ctx, a.viewerID(), args[0])
	if err != nil {
		a.log.Error(ctx, "avatar upload failed", "error", err)
		printlnFn("Upload failed:", err.Error())
		return err
	}

	draft.ImageURL = url
	if _, err := a.dir.Update(ctx, a.viewerID(), draft); err != nil {
		printlnFn("Could not save the profile:", err.Error())
		return err
	}
	printlnFn("Avatar updated:", url)
	return nil
}
