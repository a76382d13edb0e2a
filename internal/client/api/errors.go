package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/acemeet/aceletters/internal/common"
)

var (
	// ErrUnavailable covers connectivity failures and request timeouts.
	ErrUnavailable = errors.New("server unavailable")

	// ErrAlreadySent is the 409 conflict on letter creation: an
	// outstanding letter for this (sender, recipient) pair already
	// exists. Terminal; the existing letter must be deleted before a
	// new one can be sent.
	ErrAlreadySent = errors.New("letter already sent to this recipient")
)

// RemoteError is a non-2xx response with the server's error message
// preserved. It matches the relevant sentinel errors through errors.Is, so
// callers can both inspect the status and branch on kind.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrAlreadySent:
		return e.Status == http.StatusConflict
	case common.ErrorNotFound:
		return e.Status == http.StatusNotFound
	case common.ErrorUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}
