package verification

import (
	"fmt"
	"time"

	"github.com/klwxsrx/go-auth-session/internal/verification/app/mail"
	"github.com/klwxsrx/go-auth-session/internal/verification/app/service"
	"github.com/klwxsrx/go-auth-session/internal/verification/app/token"
	"github.com/klwxsrx/go-auth-session/internal/verification/domain"
	"github.com/klwxsrx/go-auth-session/internal/verification/infra/http"
	verificationinframail "github.com/klwxsrx/go-auth-session/internal/verification/infra/mail"
	verificationinfrasql "github.com/klwxsrx/go-auth-session/internal/verification/infra/sql"
	"github.com/klwxsrx/go-auth-session/pkg/env"
	pkghttp "github.com/klwxsrx/go-auth-session/pkg/http"
	"github.com/klwxsrx/go-auth-session/pkg/lazy"
	"github.com/klwxsrx/go-auth-session/pkg/log"
	"github.com/klwxsrx/go-auth-session/pkg/sql"
	pkgtime "github.com/klwxsrx/go-auth-session/pkg/time"
)

type DependencyContainer struct {
	VerificationService lazy.Loader[service.Verification]

	requestTokenHandler lazy.Loader[http.RequestTokenHandler]
	resendTokenHandler  lazy.Loader[http.ResendTokenHandler]
	consumeTokenHandler lazy.Loader[http.ConsumeTokenHandler]
}

func NewDependencyContainer(
	db lazy.Loader[sql.Database],
	logger lazy.Loader[log.Logger],
) DependencyContainer {
	clock := clockProvider()
	tokenRepo := tokenRepoProvider(db)
	mailer := mailerProvider(logger)
	issuer := issuerProvider(clock)

	verificationService := verificationServiceProvider(issuer, tokenRepo, mailer, clock, logger)
	return DependencyContainer{
		VerificationService: verificationService,
		requestTokenHandler: lazy.New(func() (http.RequestTokenHandler, error) {
			return http.NewRequestTokenHandler(verificationService.MustLoad()), nil
		}),
		resendTokenHandler: lazy.New(func() (http.ResendTokenHandler, error) {
			return http.NewResendTokenHandler(verificationService.MustLoad()), nil
		}),
		consumeTokenHandler: lazy.New(func() (http.ConsumeTokenHandler, error) {
			return http.NewConsumeTokenHandler(verificationService.MustLoad()), nil
		}),
	}
}

func (c *DependencyContainer) MustRegisterHTTPHandlers(registry pkghttp.HandlerRegistry) {
	registry.Register(c.requestTokenHandler.MustLoad())
	registry.Register(c.resendTokenHandler.MustLoad())
	registry.Register(c.consumeTokenHandler.MustLoad())
}

func clockProvider() lazy.Loader[pkgtime.Clock] {
	return lazy.New(func() (pkgtime.Clock, error) {
		return pkgtime.NewAdjustableClock(pkgtime.WithPrecision(time.Microsecond)), nil
	})
}

func tokenRepoProvider(db lazy.Loader[sql.Database]) lazy.Loader[domain.TokenRepo] {
	return lazy.New(func() (domain.TokenRepo, error) {
		return verificationinfrasql.NewTokenRepo(db.MustLoad()), nil
	})
}

func mailerProvider(logger lazy.Loader[log.Logger]) lazy.Loader[mail.Mailer] {
	return lazy.New(func() (mail.Mailer, error) {
		return verificationinframail.NewLogMailer(logger.MustLoad()), nil
	})
}

func issuerProvider(clock lazy.Loader[pkgtime.Clock]) lazy.Loader[token.Issuer] {
	return lazy.New(func() (token.Issuer, error) {
		return token.NewIssuer(token.WithClock(clock.MustLoad())), nil
	})
}

func verificationServiceProvider(
	issuer lazy.Loader[token.Issuer],
	tokenRepo lazy.Loader[domain.TokenRepo],
	mailer lazy.Loader[mail.Mailer],
	clock lazy.Loader[pkgtime.Clock],
	logger lazy.Loader[log.Logger],
) lazy.Loader[service.Verification] {
	return lazy.New(func() (service.Verification, error) {
		linkURL, err := env.Parse[string]("VERIFICATION_LINK_URL")
		if err != nil {
			return nil, err
		}
		validityHours, err := env.ParseOrDefault[int]("VERIFICATION_TOKEN_TTL_HOURS", token.DefaultValidityHours)
		if err != nil {
			return nil, err
		}

		verification, err := service.NewVerification(
			issuer.MustLoad(),
			tokenRepo.MustLoad(),
			mailer.MustLoad(),
			clock.MustLoad(),
			logger.MustLoad(),
			service.Config{
				LinkURL:       linkURL,
				ValidityHours: validityHours,
			},
		)
		if err != nil {
			return nil, fmt.Errorf("init verification service: %w", err)
		}

		return verification, nil
	})
}
