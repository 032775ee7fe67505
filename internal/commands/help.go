package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"habitask/internal/config"
	"habitask/internal/exitcode"
	"habitask/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "habitask help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  habitask add [common flags] [--creds <source>] [task...]
  habitask submit [common flags] [--creds <source>] [task...]
  habitask shell [common flags] [--creds <source>]
  habitask status [common flags]
  habitask draft [common flags] [text...]
  habitask clear [common flags]
  habitask login [common flags] [--force]
  habitask logout [common flags]
  habitask help
  habitask version

With no task, add submits the saved draft and clears it on success.
shell reads tasks one per line until quit, exit, q or end of input.
Credential sources: prompt, cookie, env (default from config.yaml, else cookie).

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override the server /add_task is sent to
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
