// Package common defines shared constants, sentinel errors and small
// utilities used across the aceletters client layers. Callers should use
// errors.Is to match sentinel values.
package common

import "errors"

var (
	// Transport / resource errors.
	ErrorNotFound     = errors.New("not found")
	ErrorUnauthorized = errors.New("unauthorized")

	// Local precondition failures (empty letter body, bad age,
	// missing recipient and the like).
	ErrorValidation = errors.New("validation error")

	// Session store errors.
	ErrorNoSession = errors.New("no active session")
)
