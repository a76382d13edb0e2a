// Package upload pushes avatar images to Cloudinary. The upload goes
// straight from the client to Cloudinary; only the resulting secure URL
// is stored in the profile, and asset deletion goes through the API
// server which holds the admin credentials.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/acemeet/aceletters/internal/logging"
)

// ErrNotConfigured is returned when no CLOUDINARY_URL is set. The caller
// should tell the user to configure it rather than attempt the upload.
var ErrNotConfigured = errors.New("cloudinary is not configured, set CLOUDINARY_URL")

const (
	avatarFolder = "aceletters/avatars"
	// server-side downscale so oversized originals never hit clients
	avatarTransformation = "c_limit,w_400,h_400,q_auto"
)

// Uploader wraps the Cloudinary SDK for avatar uploads.
type Uploader struct {
	cld *cloudinary.Cloudinary
	log logging.Logger
}

// NewUploader builds an Uploader from the CLOUDINARY_URL environment
// variable. Returns ErrNotConfigured when the variable is empty.
func NewUploader(log logging.Logger) (*Uploader, error) {
	url := os.Getenv("CLOUDINARY_URL")
	if url == "" {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	return &Uploader{cld: cld, log: log}, nil
}

// NewUploaderWith wraps an already-configured Cloudinary handle.
func NewUploaderWith(cld *cloudinary.Cloudinary, log logging.Logger) *Uploader {
	return &Uploader{cld: cld, log: log}
}

// UploadAvatar uploads the image under the viewer's public id and
// returns the secure delivery URL to store on the profile.
func (u *Uploader) UploadAvatar(ctx context.Context, userID string, r io.Reader) (string, error) {
	if userID == "" {
		return "", errors.New("missing user id")
	}

	res, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         avatarFolder,
		PublicID:       userID,
		Transformation: avatarTransformation,
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	u.log.Info(ctx, "avatar uploaded", "user", userID, "url", res.SecureURL)
	return res.SecureURL, nil
}

// UploadAvatarFile opens path and uploads it.
func (u *Uploader) UploadAvatarFile(ctx context.Context, userID, path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return u.UploadAvatar(ctx, userID, f)
}
