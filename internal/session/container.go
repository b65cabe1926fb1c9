package session

import (
	"fmt"
	"time"

	"github.com/klwxsrx/go-auth-session/internal/pkg/cmd"
	"github.com/klwxsrx/go-auth-session/internal/session/app/guard"
	"github.com/klwxsrx/go-auth-session/internal/session/app/message"
	"github.com/klwxsrx/go-auth-session/internal/session/app/service"
	"github.com/klwxsrx/go-auth-session/internal/session/app/store"
	"github.com/klwxsrx/go-auth-session/internal/session/infra/http"
	"github.com/klwxsrx/go-auth-session/pkg/env"
	pkghttp "github.com/klwxsrx/go-auth-session/pkg/http"
	"github.com/klwxsrx/go-auth-session/pkg/lazy"
	"github.com/klwxsrx/go-auth-session/pkg/log"
)

const defaultLoginPageURL = "/login"

type DependencyContainer struct {
	Controller lazy.Loader[*service.Controller]
	Guard      lazy.Loader[guard.Guard]
	Messages   lazy.Loader[message.Catalog]

	accountPageHandler lazy.Loader[http.AccountPageHandler]
}

func NewDependencyContainer(
	httpClients lazy.Loader[cmd.HTTPClientFactory],
	logger lazy.Loader[log.Logger],
) DependencyContainer {
	authClient := authClientProvider(httpClients)

	return DependencyContainer{
		Controller: controllerProvider(authClient, logger),
		Guard:      guardProvider(authClient, logger),
		Messages: lazy.New(func() (message.Catalog, error) {
			return message.NewCatalog(), nil
		}),
		accountPageHandler: lazy.New(func() (http.AccountPageHandler, error) {
			return http.NewAccountPageHandler(), nil
		}),
	}
}

func (c *DependencyContainer) MustRegisterHTTPHandlers(registry pkghttp.HandlerRegistry) {
	registry.Register(c.accountPageHandler.MustLoad(), c.RequireAuthentication())
}

// RequireAuthentication guards server-rendered pages, anonymous visitors are sent to LOGIN_PAGE_URL.
func (c *DependencyContainer) RequireAuthentication() pkghttp.HandlerOption {
	loginURL := env.Must(env.ParseOrDefault[string]("LOGIN_PAGE_URL", defaultLoginPageURL))
	return pkghttp.WithMW(http.RequireAuthentication(c.Guard.MustLoad(), loginURL))
}

func authClientProvider(httpClients lazy.Loader[cmd.HTTPClientFactory]) lazy.Loader[pkghttp.Client] {
	return lazy.New(func() (pkghttp.Client, error) {
		return httpClients.MustLoad().MustInitClient(http.Destination), nil
	})
}

func controllerProvider(
	authClient lazy.Loader[pkghttp.Client],
	logger lazy.Loader[log.Logger],
) lazy.Loader[*service.Controller] {
	return lazy.New(func() (*service.Controller, error) {
		api, err := http.NewAPI(authClient.MustLoad(), http.CredentialsInclude)
		if err != nil {
			return nil, fmt.Errorf("init auth api: %w", err)
		}

		leeway, err := env.ParseOrDefault[time.Duration]("SESSION_RENEWAL_LEEWAY", service.DefaultRenewalLeeway)
		if err != nil {
			return nil, err
		}

		return service.NewController(
			api,
			store.New(),
			logger.MustLoad(),
			service.WithRenewalLeeway(leeway),
		)
	})
}

func guardProvider(
	authClient lazy.Loader[pkghttp.Client],
	logger lazy.Loader[log.Logger],
) lazy.Loader[guard.Guard] {
	return lazy.New(func() (guard.Guard, error) {
		return guard.NewGuard(http.NewCookieRefresher(authClient.MustLoad()), logger.MustLoad()), nil
	})
}
