package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/net/publicsuffix"

	"github.com/klwxsrx/go-auth-session/internal/pkg/apierror"
	"github.com/klwxsrx/go-auth-session/internal/session/app/authapi"
	"github.com/klwxsrx/go-auth-session/internal/session/domain"
	pkghttp "github.com/klwxsrx/go-auth-session/pkg/http"
)

const Destination pkghttp.Destination = "auth"

var (
	loginRoute              = pkghttp.Route{Method: http.MethodPost, URL: "/auth/login"}
	logoutRoute             = pkghttp.Route{Method: http.MethodPost, URL: "/auth/logout"}
	signupRoute             = pkghttp.Route{Method: http.MethodPost, URL: "/auth/signup"}
	refreshRoute            = pkghttp.Route{Method: http.MethodPost, URL: "/auth/refresh"}
	forgotPasswordRoute     = pkghttp.Route{Method: http.MethodPost, URL: "/auth/forgot-password"}
	resetPasswordRoute      = pkghttp.Route{Method: http.MethodPost, URL: "/auth/reset-password"}
	verifyEmailRoute        = pkghttp.Route{Method: http.MethodPost, URL: "/auth/verify-email"}
	resendVerificationRoute = pkghttp.Route{Method: http.MethodPost, URL: "/auth/resend-verification"}

	errMalformedResponse = errors.New("malformed auth api response")
)

// CredentialPolicy defines how the refresh cookie travels with outgoing requests.
type CredentialPolicy int

const (
	// CredentialsInclude keeps cookies set by the auth API in a client cookie jar and sends them back.
	CredentialsInclude CredentialPolicy = iota
	// CredentialsOmit sends only cookies set explicitly on a request.
	CredentialsOmit
)

type authAPI struct {
	client pkghttp.Client
}

func NewAPI(client pkghttp.Client, policy CredentialPolicy) (authapi.API, error) {
	client, err := withCredentialPolicy(client, policy)
	if err != nil {
		return nil, err
	}

	return authAPI{client: client}, nil
}

// NewCookieRefresher returns a refresher for request scoped checks, it never keeps cookies between calls.
func NewCookieRefresher(client pkghttp.Client) authapi.CookieRefresher {
	return authAPI{client: client.With(pkghttp.WithCookieJar(nil))}
}

func (a authAPI) Login(ctx context.Context, email, password string) (authapi.Grant, error) {
	req := a.client.NewRequest(ctx, loginRoute).
		SetJSONBody(loginIn{
			Email:    email,
			Password: password,
		})
	return sendForGrant(req, "login")
}

func (a authAPI) Logout(ctx context.Context) error {
	_, err := send(a.client.NewRequest(ctx, logoutRoute), "logout")
	return err
}

func (a authAPI) Signup(ctx context.Context, in authapi.SignupRequest) (authapi.SignupResponse, error) {
	resp, err := send(a.client.NewRequest(ctx, signupRoute).SetJSONBody(signupIn(in)), "signup")
	if err != nil {
		return authapi.SignupResponse{}, err
	}

	out := pkghttp.ParseResponseOptional(resp, pkghttp.JSONBody[signupOut](), nil)
	if out == nil {
		return authapi.SignupResponse{}, nil
	}

	return authapi.SignupResponse{VerificationEmailSent: out.VerificationEmailSent}, nil
}

func (a authAPI) Refresh(ctx context.Context) (authapi.Grant, error) {
	return sendForGrant(a.client.NewRequest(ctx, refreshRoute), "refresh")
}

func (a authAPI) RefreshWithCookie(ctx context.Context, cookie *http.Cookie) (authapi.Grant, error) {
	req := a.client.NewRequest(ctx, refreshRoute).
		SetCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	return sendForGrant(req, "refresh")
}

func (a authAPI) ForgotPassword(ctx context.Context, email, language string) error {
	req := a.client.NewRequest(ctx, forgotPasswordRoute).
		SetJSONBody(forgotPasswordIn{
			Email:    email,
			Language: language,
		})
	_, err := send(req, "forgot password")
	return err
}

func (a authAPI) ResetPassword(ctx context.Context, token, password string) error {
	req := a.client.NewRequest(ctx, resetPasswordRoute).
		SetJSONBody(resetPasswordIn{
			Token:    token,
			Password: password,
		})
	_, err := send(req, "reset password")
	return err
}

func (a authAPI) VerifyEmail(ctx context.Context, token string) error {
	req := a.client.NewRequest(ctx, verifyEmailRoute).
		SetJSONBody(verifyEmailIn{Token: token})
	_, err := send(req, "verify email")
	return err
}

func (a authAPI) ResendVerification(ctx context.Context, email string) error {
	req := a.client.NewRequest(ctx, resendVerificationRoute).
		SetJSONBody(resendVerificationIn{Email: email})
	_, err := send(req, "resend verification")
	return err
}

func withCredentialPolicy(client pkghttp.Client, policy CredentialPolicy) (pkghttp.Client, error) {
	switch policy {
	case CredentialsInclude:
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		return client.With(pkghttp.WithCookieJar(jar)), nil
	case CredentialsOmit:
		return client.With(pkghttp.WithCookieJar(nil)), nil
	default:
		return nil, fmt.Errorf("unknown credential policy %d", policy)
	}
}

func sendForGrant(req pkghttp.Request, op string) (authapi.Grant, error) {
	resp, err := send(req, op)
	if err != nil {
		return authapi.Grant{}, err
	}

	out, err := pkghttp.ParseResponse(resp, pkghttp.JSONBody[grantOut](), nil)
	if err != nil {
		return authapi.Grant{}, fmt.Errorf("%s: %w: %w", op, errMalformedResponse, err)
	}
	if out.User == nil || out.AccessToken == "" {
		return authapi.Grant{}, fmt.Errorf("%s: %w: user and access token are required", op, errMalformedResponse)
	}

	return authapi.Grant{
		User: domain.User{
			ID:            domain.UserID(out.User.ID),
			Email:         out.User.Email,
			EmailVerified: out.User.EmailVerified,
		},
		AccessToken: domain.AccessToken(out.AccessToken),
	}, nil
}

// send turns transport failures into authapi.ErrTransport and error payloads into *authapi.Error.
func send(req pkghttp.Request, op string) (pkghttp.Response, error) {
	resp, err := req.Send()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, authapi.ErrTransport, err)
	}

	envelope := pkghttp.ParseResponseOptional(resp, pkghttp.JSONBody[apierror.Response](), nil)
	failed := envelope != nil && !envelope.Success && envelope.Error != nil
	if resp.StatusCode() < http.StatusBadRequest && !failed {
		return resp, nil
	}

	apiErr := &authapi.Error{Status: resp.StatusCode()}
	if envelope != nil && envelope.Error != nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	if apiErr.Code == "" && apiErr.Status == http.StatusUnauthorized {
		apiErr.Code = apierror.CodeUnauthorized
	}

	return nil, fmt.Errorf("%s: %w", op, apiErr)
}

type (
	loginIn struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	signupIn struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Language string `json:"language,omitempty"`
	}

	forgotPasswordIn struct {
		Email    string `json:"email"`
		Language string `json:"language,omitempty"`
	}

	resetPasswordIn struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}

	verifyEmailIn struct {
		Token string `json:"token"`
	}

	resendVerificationIn struct {
		Email string `json:"email"`
	}

	userOut struct {
		ID            int64  `json:"id"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"emailVerified"`
	}

	grantOut struct {
		User        *userOut `json:"user"`
		AccessToken string   `json:"accessToken"`
	}

	signupOut struct {
		VerificationEmailSent bool `json:"verificationEmailSent"`
	}
)
