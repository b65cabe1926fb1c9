package service

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	minPasswordLength   = 8
	maxPasswordLength   = 128
	maxResetTokenLength = 512
)

var (
	ErrInvalidInput = errors.New("invalid input")

	verificationTokenRegexp = regexp.MustCompile(`^[0-9a-f]{64}$`)
	resetTokenRegexp        = regexp.MustCompile(`^[A-Za-z0-9._~+/=-]+$`)
	languageRegexp          = regexp.MustCompile(`^[a-z]{2}$`)
)

func validateFields(fields validation.Errors) error {
	err := fields.Filter()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

func emailRules() []validation.Rule {
	return []validation.Rule{validation.Required, is.Email}
}

func languageRules() []validation.Rule {
	return []validation.Rule{validation.Match(languageRegexp)}
}

func newPasswordRules() []validation.Rule {
	return []validation.Rule{validation.Required, validation.Length(minPasswordLength, maxPasswordLength)}
}
