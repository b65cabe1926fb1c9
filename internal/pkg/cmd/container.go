package cmd

import (
	"context"

	"github.com/klwxsrx/go-auth-session/pkg/cmd"
	"github.com/klwxsrx/go-auth-session/pkg/env"
	"github.com/klwxsrx/go-auth-session/pkg/http"
	"github.com/klwxsrx/go-auth-session/pkg/lazy"
	"github.com/klwxsrx/go-auth-session/pkg/log"
	"github.com/klwxsrx/go-auth-session/pkg/metric"
	"github.com/klwxsrx/go-auth-session/pkg/observability"
	"github.com/klwxsrx/go-auth-session/pkg/sql"
)

type (
	InfrastructureContainer struct {
		HTTPServer        lazy.Loader[http.Server]
		HTTPClientFactory lazy.Loader[HTTPClientFactory]
		DB                lazy.Loader[sql.Database]
		Metrics           lazy.Loader[metric.Registry]
		Observer          lazy.Loader[observability.Observer]
		Logger            lazy.Loader[log.Logger]
	}

	InfrastructureOption func(*infrastructureConfig)

	infrastructureConfig struct {
		logger        lazy.Loader[log.Logger]
		sqlMigrations []sql.MigrationSource
	}
)

// WithLogger replaces the default stdout logger, e.g. for interactive binaries.
func WithLogger(logger log.Logger) InfrastructureOption {
	return func(c *infrastructureConfig) {
		c.logger = lazy.New(func() (log.Logger, error) { return logger, nil })
	}
}

func WithSQLMigrations(sources ...sql.MigrationSource) InfrastructureOption {
	return func(c *infrastructureConfig) {
		c.sqlMigrations = append(c.sqlMigrations, sources...)
	}
}

func NewInfrastructureContainer(ctx context.Context, opts ...InfrastructureOption) *InfrastructureContainer {
	config := infrastructureConfig{
		logger: loggerProvider(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	logger := config.logger
	metrics := metricsProvider()
	observer := observerProvider(logger)

	return &InfrastructureContainer{
		HTTPServer:        httpServerProvider(observer, metrics, logger),
		HTTPClientFactory: httpClientFactoryProvider(observer, metrics, logger),
		DB:                sqlDatabaseProvider(ctx, logger, config.sqlMigrations),
		Metrics:           metrics,
		Observer:          observer,
		Logger:            logger,
	}
}

func (i *InfrastructureContainer) Close(ctx context.Context) {
	i.DB.IfLoaded(func(db sql.Database) { db.Close(ctx) })
}

func metricsProvider() lazy.Loader[metric.Registry] {
	return lazy.New(func() (metric.Registry, error) {
		return metric.NewPrometheusRegistry(), nil
	})
}

func loggerProvider() lazy.Loader[log.Logger] {
	return lazy.New(func() (log.Logger, error) {
		return cmd.InitLogger(), nil
	})
}

func observerProvider(
	logger lazy.Loader[log.Logger],
) lazy.Loader[observability.Observer] {
	return lazy.New(func() (observability.Observer, error) {
		return observability.New(
			observability.WithFieldsLogging(logger.MustLoad(), observability.FieldRequestID),
		), nil
	})
}

func sqlDatabaseProvider(
	ctx context.Context,
	logger lazy.Loader[log.Logger],
	migrations []sql.MigrationSource,
) lazy.Loader[sql.Database] {
	return lazy.New(func() (sql.Database, error) {
		return cmd.MustInitSQL(ctx, logger.MustLoad(), migrations...), nil
	})
}

func httpServerProvider(
	observer lazy.Loader[observability.Observer],
	metrics lazy.Loader[metric.Registry],
	logger lazy.Loader[log.Logger],
) lazy.Loader[http.Server] {
	return lazy.New(func() (http.Server, error) {
		address, err := env.ParseOrDefault[string]("HTTP_ADDRESS", http.DefaultServerAddress)
		if err != nil {
			return nil, err
		}

		return http.NewServer(
			address,
			http.WithHealthCheck(),
			http.WithMetricsEndpoint(metrics.MustLoad().Handler()),
			http.WithObservability(
				observer.MustLoad(),
				http.NewHTTPHeaderRequestIDExtractor(http.DefaultRequestIDHeader),
				http.NewRandomUUIDRequestIDExtractor(),
			),
			http.WithMetrics(metrics.MustLoad()),
			http.WithLogging(logger.MustLoad(), log.LevelInfo, log.LevelError),
		), nil
	})
}

func httpClientFactoryProvider(
	observer lazy.Loader[observability.Observer],
	metrics lazy.Loader[metric.Registry],
	logger lazy.Loader[log.Logger],
) lazy.Loader[HTTPClientFactory] {
	return lazy.New(func() (HTTPClientFactory, error) {
		return NewHTTPClientFactory(
			http.WithRequestObservability(observer.MustLoad(), http.DefaultRequestIDHeader),
			http.WithRequestMetrics(metrics.MustLoad()),
			http.WithRequestLogging(logger.MustLoad(), log.LevelDebug, log.LevelWarn),
		), nil
	})
}
