// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"tdtask/internal/backend/preview"
	"tdtask/internal/commands"
	"tdtask/internal/config"
	"tdtask/internal/credential"
	"tdtask/internal/exitcode"
	"tdtask/internal/logging"
	"tdtask/internal/transport"
)

// TransportFactory creates a Transport from config.
// Used to inject the backend during dispatch.
type TransportFactory func(ctx context.Context, cfg *config.Config, out, errOut io.Writer) (transport.Transport, error)

// PreviewFactory returns a transport that writes request bodies to out.
func PreviewFactory(ctx context.Context, cfg *config.Config, out, errOut io.Writer) (transport.Transport, error) {
	return preview.New(out,
		preview.WithPretty(cfg.Pretty),
		preview.WithLogger(logging.New(errOut, cfg.Debug)),
	), nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  TransportFactory
}

// NewDispatcher creates a new dispatcher with the given registry and transport
// factory. A nil factory means PreviewFactory.
func NewDispatcher(registry *commands.Registry, factory TransportFactory) *Dispatcher {
	if factory == nil {
		factory = PreviewFactory
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> help
	if len(args) == 0 {
		return d.dispatch(ctx, "help", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet, debug, pretty bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")
	fs.BoolVar(&pretty, "pretty", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// Parsing stops at the first positional argument, so a flag after it
	// would silently become part of the arguments. "--" opts out.
	positionalArgs := fs.Args()
	if !afterTerminator(args, positionalArgs) {
		for _, arg := range positionalArgs {
			if isFlagLike(arg) {
				fmt.Fprintf(errOut, "error: flag after arguments: %s (flags go before arguments, or use -- to pass it literally)\n", arg)
				return exitcode.UserError
			}
		}
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.Pretty = pretty

	logger := logging.New(errOut, cfg.Debug)
	logger.Debug("dispatch", zap.String("command", cmd.Name()), zap.String("config", cfg.Dir))

	var (
		tr   transport.Transport
		user *credential.User
	)
	if cmd.NeedsAuth() {
		token, source, err := cfg.LoadToken()
		if err != nil {
			if errors.Is(err, config.ErrNoToken) {
				fmt.Fprintln(errOut, "error: not logged in (run: tdtask login)")
			} else {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
			}
			return exitcode.AuthError
		}
		user = credential.New(token)
		logger.Debug("credential loaded", zap.String("source", source), credential.Field(user))

		tr, err = d.factory(ctx, cfg, out, errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, cfg, tr, user, positionalArgs, out, errOut)
}

// isFlagLike reports whether arg looks like a flag: a dash followed by a letter.
// A lone "-" or a negative number is left alone.
func isFlagLike(arg string) bool {
	name := strings.TrimLeft(arg, "-")
	if name == arg || name == "" {
		return false
	}
	c := name[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// afterTerminator reports whether the positional arguments follow a "--".
func afterTerminator(args, positional []string) bool {
	i := len(args) - len(positional) - 1
	return i >= 0 && args[i] == "--"
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "flag needs an argument:"):
		name := strings.TrimSpace(strings.TrimPrefix(msg, "flag needs an argument:"))
		return "flag needs an argument: " + name
	case strings.HasPrefix(msg, "flag provided but not defined:"):
		name := strings.TrimSpace(strings.TrimPrefix(msg, "flag provided but not defined:"))
		return "unknown flag: " + name
	default:
		return msg
	}
}
