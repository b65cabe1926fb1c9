//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Verification=Verification"
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/klwxsrx/go-auth-session/internal/verification/app/mail"
	"github.com/klwxsrx/go-auth-session/internal/verification/app/token"
	"github.com/klwxsrx/go-auth-session/internal/verification/domain"
	"github.com/klwxsrx/go-auth-session/pkg/log"
	pkgtime "github.com/klwxsrx/go-auth-session/pkg/time"
)

const linkTokenQueryParam = "token"

var tokenValueRegexp = regexp.MustCompile(`^[0-9a-f]{64}$`)

var (
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidTokenValue = errors.New("invalid token value")
)

type (
	Verification interface {
		Request(ctx context.Context, email, language string) error
		Resend(ctx context.Context, email, language string) error
		Verify(ctx context.Context, value domain.TokenValue) (email string, err error)
	}

	Config struct {
		LinkURL       string
		ValidityHours int
	}

	verification struct {
		issuer    token.Issuer
		tokenRepo domain.TokenRepo
		mailer    mail.Mailer
		clock     pkgtime.Clock
		logger    log.Logger
		config    Config
		linkURL   *url.URL
	}
)

func NewVerification(
	issuer token.Issuer,
	tokenRepo domain.TokenRepo,
	mailer mail.Mailer,
	clock pkgtime.Clock,
	logger log.Logger,
	config Config,
) (Verification, error) {
	if config.ValidityHours == 0 {
		config.ValidityHours = token.DefaultValidityHours
	}
	if config.ValidityHours < 0 || config.ValidityHours > token.MaxValidityHours {
		return nil, fmt.Errorf("%w: got %d", token.ErrInvalidValidityHours, config.ValidityHours)
	}

	err := validation.Validate(config.LinkURL, validation.Required, is.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification link url: %w", err)
	}
	linkURL, err := url.Parse(config.LinkURL)
	if err != nil {
		return nil, fmt.Errorf("parse verification link url: %w", err)
	}

	return &verification{
		issuer:    issuer,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		clock:     clock,
		logger:    logger,
		config:    config,
		linkURL:   linkURL,
	}, nil
}

func (s *verification) Request(ctx context.Context, email, language string) error {
	email = strings.TrimSpace(email)
	err := validation.Validate(email, validation.Required, is.Email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	}

	tok, err := s.issuer.Issue(ctx, email, s.config.ValidityHours)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	err = s.tokenRepo.Store(ctx, tok)
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	err = s.mailer.SendVerificationLetter(ctx, mail.VerificationLetter{
		Email:    email,
		Language: language,
		Link:     s.buildLink(tok.Value),
	})
	if err != nil {
		return fmt.Errorf("send verification letter: %w", err)
	}

	return nil
}

// Resend always issues a fresh token, previously sent ones stay valid until they expire.
func (s *verification) Resend(ctx context.Context, email, language string) error {
	err := s.Request(ctx, email, language)
	if err != nil {
		return err
	}

	s.logger.WithField("email", email).Info(ctx, "verification letter resent")
	return nil
}

func (s *verification) Verify(ctx context.Context, value domain.TokenValue) (string, error) {
	err := validation.Validate(string(value), validation.Required, validation.Match(tokenValueRegexp))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidTokenValue, err)
	}

	tok, err := s.tokenRepo.FindOne(ctx, value)
	if err != nil {
		return "", err
	}

	now := s.clock.Now(ctx)
	err = tok.Consume(now)
	if err != nil {
		return "", err
	}

	err = s.tokenRepo.MarkConsumed(ctx, tok.Value, now)
	if err != nil {
		return "", err
	}

	return tok.Email, nil
}

func (s *verification) buildLink(value domain.TokenValue) string {
	link := *s.linkURL
	query := link.Query()
	query.Set(linkTokenQueryParam, string(value))
	link.RawQuery = query.Encode()
	return link.String()
}
