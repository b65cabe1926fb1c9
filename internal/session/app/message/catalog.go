package message

import (
	"strings"

	"github.com/klwxsrx/go-auth-session/internal/pkg/apierror"
	"github.com/klwxsrx/go-auth-session/internal/session/app/authapi"
)

const DefaultLanguage = "en"

type (
	Messages map[string]string

	// Catalog maps auth API error codes to localized messages.
	Catalog struct {
		languages map[string]Messages
	}
)

func NewCatalog() Catalog {
	return Catalog{
		languages: map[string]Messages{
			"en": {
				apierror.CodeInvalidCredentials: "Invalid email or password.",
				apierror.CodeEmailNotVerified:   "Please verify your email address first.",
				apierror.CodeEmailAlreadyUsed:   "An account with this email already exists.",
				apierror.CodeTokenExpired:       "This link has expired. Please request a new one.",
				apierror.CodeTokenAlreadyUsed:   "This link has already been used.",
				apierror.CodeTokenNotFound:      "This link is invalid.",
				apierror.CodeUnauthorized:       "Your session has expired. Please log in again.",
				apierror.CodeValidationError:    "Please check the entered data.",
				apierror.CodeInternalError:      "Something went wrong. Please try again later.",
			},
			"de": {
				apierror.CodeInvalidCredentials: "E-Mail-Adresse oder Passwort ist falsch.",
				apierror.CodeEmailNotVerified:   "Bitte bestätige zuerst deine E-Mail-Adresse.",
				apierror.CodeEmailAlreadyUsed:   "Für diese E-Mail-Adresse existiert bereits ein Konto.",
				apierror.CodeTokenExpired:       "Dieser Link ist abgelaufen. Bitte fordere einen neuen an.",
				apierror.CodeTokenAlreadyUsed:   "Dieser Link wurde bereits verwendet.",
				apierror.CodeTokenNotFound:      "Dieser Link ist ungültig.",
				apierror.CodeUnauthorized:       "Deine Sitzung ist abgelaufen. Bitte melde dich erneut an.",
				apierror.CodeValidationError:    "Bitte überprüfe deine Eingaben.",
				apierror.CodeInternalError:      "Etwas ist schiefgelaufen. Bitte versuche es später erneut.",
			},
		},
	}
}

// Message returns the message for code, unknown codes get the internal error message
// and unknown languages fall back to DefaultLanguage.
func (c Catalog) Message(code, language string) string {
	messages, ok := c.languages[strings.ToLower(language)]
	if !ok {
		messages = c.languages[DefaultLanguage]
	}

	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[apierror.CodeInternalError]
}

// ErrorMessage localizes any error, errors without an API code get the internal error message.
func (c Catalog) ErrorMessage(err error, language string) string {
	code, _ := authapi.ErrorCode(err)
	return c.Message(code, language)
}
