package main

import (
	"context"

	sqlverification "github.com/klwxsrx/go-auth-session/data/sql/verification"
	"github.com/klwxsrx/go-auth-session/internal/pkg/cmd"
	"github.com/klwxsrx/go-auth-session/internal/verification"
	pkgcmd "github.com/klwxsrx/go-auth-session/pkg/cmd"
)

func main() {
	ctx := context.Background()
	infra := cmd.NewInfrastructureContainer(ctx,
		cmd.WithSQLMigrations(sqlverification.Migrations),
	)
	defer infra.Close(ctx)
	defer pkgcmd.HandleAppPanic(ctx, infra.Logger.MustLoad())

	container := verification.NewDependencyContainer(
		infra.DB,
		infra.Logger,
	)

	httpServer := infra.HTTPServer.MustLoad()
	container.MustRegisterHTTPHandlers(httpServer)

	pkgcmd.MustRun(ctx, infra.Logger.MustLoad(),
		pkgcmd.TermSignalAwaiter,
		httpServer.Listener,
	)
}
