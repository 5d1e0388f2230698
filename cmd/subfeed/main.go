// Package main is the entry point for the subfeed CLI
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jamesprial/go-subreddit/internal/cli"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(version, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
