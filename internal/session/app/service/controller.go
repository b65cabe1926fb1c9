package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"golang.org/x/sync/singleflight"

	"github.com/klwxsrx/go-auth-session/internal/pkg/apierror"
	"github.com/klwxsrx/go-auth-session/internal/session/app/authapi"
	"github.com/klwxsrx/go-auth-session/internal/session/app/store"
	"github.com/klwxsrx/go-auth-session/internal/session/domain"
	"github.com/klwxsrx/go-auth-session/pkg/log"
)

const (
	refreshGroupKey = "refresh"

	DefaultRenewalLeeway   = time.Minute
	defaultMinRenewalDelay = time.Second
)

var (
	ErrNotAuthenticated = errors.New("session is not authenticated")
	// ErrSessionChanged is returned when a later started operation already changed the session
	// and the result was dropped.
	ErrSessionChanged = errors.New("session was changed by a later operation")

	ErrVerificationTokenExpired  = errors.New("verification token expired")
	ErrVerificationTokenUsed     = errors.New("verification token already used")
	ErrVerificationTokenNotFound = errors.New("verification token not found")
)

type (
	SignupParams struct {
		Email    string
		Password string
		Language string
	}

	SignupResult struct {
		VerificationEmailSent bool
	}

	// AuthorizedCall is an API call which requires the current access token.
	AuthorizedCall func(ctx context.Context, token domain.AccessToken) error

	ControllerOption func(*Controller)

	// Controller is the only writer of the session store.
	Controller struct {
		api    authapi.API
		store  store.Store
		logger log.Logger

		renewalLeeway   time.Duration
		minRenewalDelay time.Duration

		refreshGroup singleflight.Group
		initOnce     sync.Once
	}
)

func WithRenewalLeeway(leeway time.Duration) ControllerOption {
	return func(c *Controller) {
		c.renewalLeeway = leeway
	}
}

func WithMinRenewalDelay(delay time.Duration) ControllerOption {
	return func(c *Controller) {
		c.minRenewalDelay = delay
	}
}

func NewController(
	api authapi.API,
	store store.Store,
	logger log.Logger,
	opts ...ControllerOption,
) (*Controller, error) {
	if api == nil {
		return nil, errors.New("auth api is required")
	}
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	c := &Controller{
		api:             api,
		store:           store,
		logger:          logger,
		renewalLeeway:   DefaultRenewalLeeway,
		minRenewalDelay: defaultMinRenewalDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Controller) Session() domain.Session {
	return c.store.Get()
}

func (c *Controller) Subscribe(fn func(domain.Session)) (unsubscribe func()) {
	return c.store.Subscribe(fn)
}

// Initialize restores the session from the refresh cookie once, concurrent and later calls wait for it
// and get the resolved session.
func (c *Controller) Initialize(ctx context.Context) domain.Session {
	c.initOnce.Do(func() {
		err := c.Refresh(ctx)
		if err != nil {
			c.logger.WithError(err).Debug(ctx, "session was not restored")
		}
	})

	return c.store.Get()
}

func (c *Controller) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	err := validateFields(validation.Errors{
		"email":    validation.Validate(email, emailRules()...),
		"password": validation.Validate(password, validation.Required),
	})
	if err != nil {
		return domain.User{}, err
	}

	ticket := c.store.Begin()
	grant, err := c.api.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, fmt.Errorf("login: %w", err)
	}

	applied, err := c.store.SetFor(ticket, grant.User, grant.AccessToken)
	if err != nil {
		return domain.User{}, fmt.Errorf("store login grant: %w", err)
	}
	if !applied {
		return domain.User{}, fmt.Errorf("login: %w", ErrSessionChanged)
	}

	return grant.User, nil
}

// Logout always ends the local session, the remote call failure is only logged.
func (c *Controller) Logout(ctx context.Context) {
	ticket := c.store.Begin()
	err := c.api.Logout(ctx)
	if err != nil {
		c.logger.WithError(err).Warn(ctx, "remote logout failed")
	}

	c.store.ClearFor(ticket)
}

func (c *Controller) Signup(ctx context.Context, params SignupParams) (SignupResult, error) {
	params.Email = strings.TrimSpace(params.Email)
	err := validateFields(validation.Errors{
		"email":    validation.Validate(params.Email, emailRules()...),
		"password": validation.Validate(params.Password, newPasswordRules()...),
		"language": validation.Validate(params.Language, languageRules()...),
	})
	if err != nil {
		return SignupResult{}, err
	}

	resp, err := c.api.Signup(ctx, authapi.SignupRequest{
		Email:    params.Email,
		Password: params.Password,
		Language: params.Language,
	})
	if err != nil {
		return SignupResult{}, fmt.Errorf("signup: %w", err)
	}

	return SignupResult{VerificationEmailSent: resp.VerificationEmailSent}, nil
}

// Refresh exchanges the refresh cookie for a new access token, concurrent calls share one request
// and its outcome. Any failure ends the session unless a later started operation changed it.
func (c *Controller) Refresh(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do(refreshGroupKey, func() (any, error) {
		return nil, c.refresh(context.WithoutCancel(ctx))
	})
	return err
}

func (c *Controller) refresh(ctx context.Context) error {
	ticket := c.store.Begin()
	grant, err := c.api.Refresh(ctx)
	if err != nil {
		c.store.ClearFor(ticket)
		return fmt.Errorf("refresh: %w", err)
	}

	applied, err := c.store.SetFor(ticket, grant.User, grant.AccessToken)
	if err != nil {
		c.store.ClearFor(ticket)
		return fmt.Errorf("store refresh grant: %w", err)
	}
	if !applied {
		c.logger.Debug(ctx, "refreshed session dropped, it was changed by a later operation")
		return fmt.Errorf("refresh: %w", ErrSessionChanged)
	}

	return nil
}

func (c *Controller) ForgotPassword(ctx context.Context, email, language string) error {
	email = strings.TrimSpace(email)
	err := validateFields(validation.Errors{
		"email":    validation.Validate(email, emailRules()...),
		"language": validation.Validate(language, languageRules()...),
	})
	if err != nil {
		return err
	}

	err = c.api.ForgotPassword(ctx, email, language)
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	return nil
}

func (c *Controller) ResetPassword(ctx context.Context, token, password string) error {
	err := validateFields(validation.Errors{
		"token": validation.Validate(
			token,
			validation.Required,
			validation.Length(1, maxResetTokenLength),
			validation.Match(resetTokenRegexp),
		),
		"password": validation.Validate(password, newPasswordRules()...),
	})
	if err != nil {
		return err
	}

	err = c.api.ResetPassword(ctx, token, password)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	return nil
}

// VerifyEmail never changes the session, even the verified flag of the current user.
func (c *Controller) VerifyEmail(ctx context.Context, token string) error {
	err := validateFields(validation.Errors{
		"token": validation.Validate(token, validation.Required, validation.Match(verificationTokenRegexp)),
	})
	if err != nil {
		return err
	}

	err = c.api.VerifyEmail(ctx, token)
	if err == nil {
		return nil
	}

	code, _ := authapi.ErrorCode(err)
	switch code {
	case apierror.CodeTokenExpired:
		return fmt.Errorf("%w: %w", ErrVerificationTokenExpired, err)
	case apierror.CodeTokenAlreadyUsed:
		return fmt.Errorf("%w: %w", ErrVerificationTokenUsed, err)
	case apierror.CodeTokenNotFound:
		return fmt.Errorf("%w: %w", ErrVerificationTokenNotFound, err)
	default:
		return fmt.Errorf("verify email: %w", err)
	}
}

func (c *Controller) ResendEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	err := validateFields(validation.Errors{
		"email": validation.Validate(email, emailRules()...),
	})
	if err != nil {
		return err
	}

	err = c.api.ResendVerification(ctx, email)
	if err != nil {
		return fmt.Errorf("resend verification: %w", err)
	}

	return nil
}

// Authorized runs call with the current access token and retries it once after a refresh
// when the token was rejected.
func (c *Controller) Authorized(ctx context.Context, call AuthorizedCall) error {
	session := c.store.Get()
	if !session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	err := call(ctx, session.AccessToken)
	if !errors.Is(err, authapi.ErrUnauthorized) {
		return err
	}

	refreshErr := c.Refresh(ctx)
	if refreshErr != nil && !errors.Is(refreshErr, ErrSessionChanged) {
		return errors.Join(err, refreshErr)
	}

	session = c.store.Get()
	if !session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	return call(ctx, session.AccessToken)
}
