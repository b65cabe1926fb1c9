//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Mailer=Mailer"
package mail

import "context"

type (
	VerificationLetter struct {
		Email    string
		Language string
		Link     string
	}

	Mailer interface {
		SendVerificationLetter(context.Context, VerificationLetter) error
	}
)
