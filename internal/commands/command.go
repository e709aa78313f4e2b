// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"tdtask/internal/config"
	"tdtask/internal/credential"
	"tdtask/internal/transport"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires an API token.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags. It is called before
	// every run and must reset any state left by a previous run.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths).
	// tr and user are nil if NeedsAuth() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, tr transport.Transport, user *credential.User, args []string, out, errOut io.Writer) int
}
