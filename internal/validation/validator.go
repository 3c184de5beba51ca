package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns the validator used for API payloads. Kept as a constructor so
// custom rules have a single place to live.
func New() *validatorv10.Validate {
	return validatorv10.New()
}
