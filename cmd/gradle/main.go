// Package main is the entry point for the gradle build tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/vladsoroka/gradle/cmd/gradle/commands"
	"github.com/vladsoroka/gradle/internal/adapters/config"
	"github.com/vladsoroka/gradle/internal/app"
	_ "github.com/vladsoroka/gradle/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if container initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	defer func() {
		if err := components.Telemetry.Close(); err != nil {
			components.Logger.Error(err)
		}
	}()

	cli := commands.New(components.App)
	cli.SetConfigHook(func(path string) {
		if loader, ok := components.ConfigLoader.(*config.FileConfigLoader); ok {
			loader.Filename = path
		}
	})

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
