// Package main is the entry point for the tdtask CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tdtask/internal/cli"
	"tdtask/internal/commands"
)

func main() {
	// Cancel on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.PreviewFactory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
