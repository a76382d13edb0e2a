package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/acemeet/aceletters/internal/common"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the draft against the field rules declared on
// ProfileDraft. Failures wrap common.ErrorValidation so callers can match
// them with errors.Is.
func (d ProfileDraft) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}
