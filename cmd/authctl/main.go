package main

import (
	"context"
	"os"

	"github.com/klwxsrx/go-auth-session/internal/pkg/cmd"
	"github.com/klwxsrx/go-auth-session/internal/session"
	"github.com/klwxsrx/go-auth-session/internal/session/app/message"
	pkgcmd "github.com/klwxsrx/go-auth-session/pkg/cmd"
	"github.com/klwxsrx/go-auth-session/pkg/env"
)

func main() {
	ctx := context.Background()
	infra := cmd.NewInfrastructureContainer(ctx,
		cmd.WithLogger(pkgcmd.InitLoggerWithWriter(os.Stderr)),
	)
	defer infra.Close(ctx)
	defer pkgcmd.HandleAppPanic(ctx, infra.Logger.MustLoad())

	container := session.NewDependencyContainer(
		infra.HTTPClientFactory,
		infra.Logger,
	)

	controller := container.Controller.MustLoad()
	language := env.Must(env.ParseOrDefault[string]("AUTHCTL_LANGUAGE", message.DefaultLanguage))
	console := newConsole(controller, container.Messages.MustLoad(), language, os.Stdin, os.Stdout)

	pkgcmd.MustRun(ctx, infra.Logger.MustLoad(),
		pkgcmd.TermSignalAwaiter,
		controller.RunRenewal,
		console.Run,
	)
}
