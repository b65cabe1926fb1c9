package main

import (
	"context"

	"github.com/klwxsrx/go-auth-session/internal/pkg/cmd"
	"github.com/klwxsrx/go-auth-session/internal/session"
	pkgcmd "github.com/klwxsrx/go-auth-session/pkg/cmd"
)

func main() {
	ctx := context.Background()
	infra := cmd.NewInfrastructureContainer(ctx)
	defer infra.Close(ctx)
	defer pkgcmd.HandleAppPanic(ctx, infra.Logger.MustLoad())

	container := session.NewDependencyContainer(
		infra.HTTPClientFactory,
		infra.Logger,
	)

	httpServer := infra.HTTPServer.MustLoad()
	container.MustRegisterHTTPHandlers(httpServer)

	pkgcmd.MustRun(ctx, infra.Logger.MustLoad(),
		pkgcmd.TermSignalAwaiter,
		httpServer.Listener,
	)
}
