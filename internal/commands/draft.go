package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"habitask/internal/config"
	"habitask/internal/draft"
	"habitask/internal/exitcode"
	"habitask/internal/output"
	"habitask/internal/service"
)

func init() {
	Register(&DraftCmd{})
}

// DraftCmd saves task text for a later `habitask add`, or prints it.
type DraftCmd struct{}

func (c *DraftCmd) Name() string       { return "draft" }
func (c *DraftCmd) Aliases() []string  { return nil }
func (c *DraftCmd) Synopsis() string   { return "Save a task draft, or print it" }
func (c *DraftCmd) Usage() string      { return "habitask draft [text...]" }
func (c *DraftCmd) NeedsService() bool { return false }

func (c *DraftCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DraftCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := draft.New(cfg.DraftPath())

	if len(args) == 0 {
		text, err := store.Get()
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read draft: %v\n", err)
			return exitcode.UserError
		}
		output.FormatDraft(out, text)
		return exitcode.Success
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		fmt.Fprintln(errOut, "error: draft text required (use: habitask clear)")
		return exitcode.UserError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.UserError
	}
	if err := store.Set(text); err != nil {
		fmt.Fprintf(errOut, "error: failed to save draft: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
