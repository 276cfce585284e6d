package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/greenworld-labs/greenctl/internal/cli"
	"github.com/greenworld-labs/greenctl/internal/cli/render"
	"github.com/greenworld-labs/greenctl/internal/config"
)

// Set by -ldflags at release time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		stop()
		os.Exit(1)
	}
}
