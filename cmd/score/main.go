// Package main provides a CLI that scores one bowling game.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/xtding233/bowling-backend/internal/bowling"
	scorecmd "github.com/xtding233/bowling-backend/internal/cmd/score"
	platformcmd "github.com/xtding233/bowling-backend/internal/platform/cmd"
	"github.com/xtding233/bowling-backend/internal/platform/config"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := scorecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := platformcmd.Command{
		Service: platformcmd.ServiceScore,
		Run: func(ctx context.Context) error {
			return scorecmd.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
		},
		// Run has already printed "No rolls were entered. Exiting."
		Reported: []error{bowling.ErrNoRolls},
	}.Execute(ctx)
	stop()
	os.Exit(code)
}
