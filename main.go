package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/energyprofiles/reffix/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version, commit, date); err != nil {
		stop()
		os.Exit(1)
	}
}
