// Package apierror holds the error payload shared by the auth API and the verification service.
package apierror

const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailNotVerified   = "EMAIL_NOT_VERIFIED"
	CodeEmailAlreadyUsed   = "EMAIL_ALREADY_USED"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeTokenAlreadyUsed   = "TOKEN_ALREADY_USED"
	CodeTokenNotFound      = "TOKEN_NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

type (
	Body struct {
		Code    string `json:"code"`
		Message string `json:"message,omitempty"`
	}

	Response struct {
		Success bool  `json:"success"`
		Error   *Body `json:"error,omitempty"`
	}
)

func New(code, message string) Response {
	return Response{
		Success: false,
		Error: &Body{
			Code:    code,
			Message: message,
		},
	}
}

func Success() Response {
	return Response{Success: true}
}
