package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"habitask/internal/config"
	"habitask/internal/draft"
	"habitask/internal/exitcode"
	"habitask/internal/service"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd empties the saved draft. It never contacts the server.
type ClearCmd struct{}

func (c *ClearCmd) Name() string       { return "clear" }
func (c *ClearCmd) Aliases() []string  { return nil }
func (c *ClearCmd) Synopsis() string   { return "Clear the saved draft" }
func (c *ClearCmd) Usage() string      { return "habitask clear" }
func (c *ClearCmd) NeedsService() bool { return false }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if err := draft.New(cfg.DraftPath()).Clear(); err != nil {
		fmt.Fprintf(errOut, "error: failed to clear draft: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
