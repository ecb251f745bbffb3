// Package main starts the bowling scoring server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	servercmd "github.com/xtding233/bowling-backend/internal/cmd/server"
	platformcmd "github.com/xtding233/bowling-backend/internal/platform/cmd"
	"github.com/xtding233/bowling-backend/internal/platform/config"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := servercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := platformcmd.Command{
		Service: platformcmd.ServiceServer,
		Run: func(ctx context.Context) error {
			return servercmd.Run(ctx, cfg, os.Stderr)
		},
	}.Execute(ctx)
	stop()
	os.Exit(code)
}
