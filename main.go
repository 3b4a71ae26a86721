// Package main is the entry point for the freelance ledger command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/yelinaung/freelance-ledger/internal/cli"
	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(ctx, info, os.Args[1:]); err != nil {
		logger.Log.Error().Err(err).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}
