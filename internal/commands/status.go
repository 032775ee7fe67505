package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"

	"habitask/internal/config"
	"habitask/internal/exitcode"
	"habitask/internal/service"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd checks that the server is up and can reach Habitica.
type StatusCmd struct{}

func (c *StatusCmd) Name() string       { return "status" }
func (c *StatusCmd) Aliases() []string  { return nil }
func (c *StatusCmd) Synopsis() string   { return "Check that the server can reach Habitica" }
func (c *StatusCmd) Usage() string      { return "habitask status" }
func (c *StatusCmd) NeedsService() bool { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	id := uuid.NewString()
	if _, err := svc.Status(service.WithRequestID(ctx, id)); err != nil {
		cfg.Log().Debug("status check failed", "request_id", id, "error", err)
		return reportSubmitError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "up")
	}
	return exitcode.Success
}
