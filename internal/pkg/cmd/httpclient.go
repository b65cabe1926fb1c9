package cmd

import (
	"fmt"
	"time"

	"github.com/klwxsrx/go-auth-session/pkg/env"
	"github.com/klwxsrx/go-auth-session/pkg/http"
	"github.com/klwxsrx/go-auth-session/pkg/strings"
)

const defaultServiceTimeout = 10 * time.Second

type HTTPClientFactory struct {
	impl http.ClientFactory
}

func NewHTTPClientFactory(opts ...http.ClientOption) HTTPClientFactory {
	return HTTPClientFactory{
		impl: http.NewClientFactory(opts...),
	}
}

// MustInitClient configures the client of dest from the environment, e.g. for "auth":
// AUTH_SERVICE_URL is required and AUTH_SERVICE_TIMEOUT defaults to 10s.
func (f HTTPClientFactory) MustInitClient(dest http.Destination, extraOpts ...http.ClientOption) http.Client {
	envPrefix := strings.ToScreamingSnakeCase(string(dest))
	host := env.Must(env.Parse[string](fmt.Sprintf("%s_SERVICE_URL", envPrefix)))
	timeout := env.Must(env.ParseOrDefault[time.Duration](fmt.Sprintf("%s_SERVICE_TIMEOUT", envPrefix), defaultServiceTimeout))

	opts := append([]http.ClientOption{http.WithClientTimeout(timeout)}, extraOpts...)
	return f.impl.InitClient(dest, host, opts...)
}
