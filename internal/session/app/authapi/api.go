//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "API=API,CookieRefresher=CookieRefresher"
package authapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/klwxsrx/go-auth-session/internal/session/domain"
)

const RefreshTokenCookieName = "refreshToken"

var (
	ErrTransport    = errors.New("auth api transport failure")
	ErrUnauthorized = errors.New("auth api unauthorized")
)

type (
	// Grant is returned by the login and refresh endpoints.
	Grant struct {
		User        domain.User
		AccessToken domain.AccessToken
	}

	SignupRequest struct {
		Email    string
		Password string
		Language string
	}

	SignupResponse struct {
		VerificationEmailSent bool
	}

	API interface {
		Login(ctx context.Context, email, password string) (Grant, error)
		Logout(ctx context.Context) error
		Signup(ctx context.Context, req SignupRequest) (SignupResponse, error)
		Refresh(ctx context.Context) (Grant, error)
		ForgotPassword(ctx context.Context, email, language string) error
		ResetPassword(ctx context.Context, token, password string) error
		VerifyEmail(ctx context.Context, token string) error
		ResendVerification(ctx context.Context, email string) error
	}

	// CookieRefresher exchanges an explicitly forwarded refresh cookie for a grant.
	CookieRefresher interface {
		RefreshWithCookie(ctx context.Context, cookie *http.Cookie) (Grant, error)
	}

	// Error is a structured error reported by the auth API.
	Error struct {
		Status  int
		Code    string
		Message string
	}
)

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth api error %s (status %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("auth api error %s (status %d): %s", e.Code, e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// ErrorCode extracts the API error code, it reports false for errors without the tagged payload.
func ErrorCode(err error) (string, bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Code == "" {
		return "", false
	}

	return apiErr.Code, true
}
