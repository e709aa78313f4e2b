package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tdtask/internal/config"
	"tdtask/internal/credential"
	"tdtask/internal/exitcode"
	"tdtask/internal/transport"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd reports which credential would be used, without showing it.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show where the API token comes from" }
func (c *WhoamiCmd) Usage() string     { return "tdtask whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, tr transport.Transport, user *credential.User, args []string, out, errOut io.Writer) int {
	token, source, err := cfg.LoadToken()
	if err != nil {
		if errors.Is(err, config.ErrNoToken) {
			fmt.Fprintln(errOut, "error: not logged in (run: tdtask login)")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.AuthError
	}

	fmt.Fprintf(out, "%v from %s\n", credential.New(token), source)
	return exitcode.Success
}
