// Package services contains the application services of the aceletters
// client: authentication, the profile directory, and the interaction
// synchronizer (likes, letters, inbox) with its optimistic local state.
package services

import "context"

// optimistic runs the three-step mutation protocol shared by every
// remote-mutating operation: apply the local change, send the remote
// request, and roll the local change back if the request fails. The
// rollback itself is the user-visible signal; the error is returned so
// the caller can surface the message. Nothing here retries.
//
// apply happens-before the request is issued; rollback happens-after the
// response (or timeout) is observed. Callers that can be triggered
// concurrently for the same entity must serialize invocations so two
// rollback paths never interleave.
func optimistic(ctx context.Context, apply func(), send func(ctx context.Context) error, rollback func()) error {
	apply()
	if err := send(ctx); err != nil {
		rollback()
		return err
	}
	return nil
}
