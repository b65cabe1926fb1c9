package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klwxsrx/go-auth-session/pkg/env"
	"github.com/klwxsrx/go-auth-session/pkg/log"
	"github.com/klwxsrx/go-auth-session/pkg/sql"
)

const (
	defaultSQLMaxOpenConnections = 10
	defaultSQLMaxIdleConnections = 2
)

func InitLogger() log.Logger {
	return InitLoggerWithWriter(os.Stdout)
}

// InitLoggerWithWriter reads the level from LOG_LEVEL, info is used when it is absent or unknown.
func InitLoggerWithWriter(w io.Writer) log.Logger {
	logLevel := log.LevelInfo
	logLevelStr, err := env.Parse[string]("LOG_LEVEL")
	if err == nil {
		if level, ok := log.ParseLevel(logLevelStr); ok {
			logLevel = level
		}
	}

	return log.NewWithWriter(logLevel, w)
}

func MustInitSQL(ctx context.Context, logger log.Logger, migrations ...sql.MigrationSource) sql.Database {
	sqlConfig := &sql.Config{
		DSN: sql.DSN{
			User:     env.Must(env.Parse[string]("SQL_USER")),
			Password: env.Must(env.Parse[string]("SQL_PASSWORD")),
			Address:  env.Must(env.Parse[string]("SQL_ADDRESS")),
			Database: env.Must(env.Parse[string]("SQL_DATABASE")),
		},
		MaxOpenConnections: env.Must(env.ParseOrDefault[int]("SQL_MAX_OPEN_CONNECTIONS", defaultSQLMaxOpenConnections)),
		MaxIdleConnections: env.Must(env.ParseOrDefault[int]("SQL_MAX_IDLE_CONNECTIONS", defaultSQLMaxIdleConnections)),
	}
	sqlConnTimeout := env.Must(env.ParseOptional[time.Duration]("SQL_CONNECTION_TIMEOUT"))
	if sqlConnTimeout != nil {
		sqlConfig.ConnectionTimeout = *sqlConnTimeout
	}

	db, err := sql.NewDatabase(ctx, sqlConfig, logger)
	if err != nil {
		panic(fmt.Errorf("open sql connection: %w", err))
	}

	if len(migrations) == 0 {
		return db
	}
	err = sql.NewMigrator(db, logger).Execute(ctx, migrations...)
	if err != nil {
		panic(fmt.Errorf("execute migrations: %w", err))
	}

	return db
}
