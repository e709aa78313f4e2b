package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"tdtask/internal/config"
	"tdtask/internal/credential"
	"tdtask/internal/exitcode"
	"tdtask/internal/logging"
	"tdtask/internal/transport"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	// In is read for the token when none is given as an argument.
	// Defaults to os.Stdin.
	In io.Reader
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Store an API token" }
func (c *LoginCmd) Usage() string     { return "tdtask login [common flags] [<token>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, tr transport.Transport, user *credential.User, args []string, out, errOut io.Writer) int {
	logger := logging.New(errOut, cfg.Debug)

	if len(args) > 1 {
		fmt.Fprintln(errOut, "error: too many arguments")
		return exitcode.UserError
	}

	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		in := c.In
		if in == nil {
			in = os.Stdin
		}
		if !cfg.Quiet {
			fmt.Fprintln(errOut, "Paste your API token (Todoist settings > Integrations > Developer):")
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			fmt.Fprintf(errOut, "error: failed to read token: %v\n", err)
			return exitcode.UserError
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		fmt.Fprintln(errOut, "error: token required")
		return exitcode.UserError
	}

	if err := cfg.SaveToken(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}
	logger.Debug("token saved", zap.String("path", cfg.CredentialsPath()), credential.Field(credential.New(token)))

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
