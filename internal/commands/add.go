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
	"habitask/internal/submitter"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
// With no arguments the saved draft is submitted and cleared on success.
type AddCmd struct {
	creds string
}

// SetCredentials sets the credential source name (for testing).
func (c *AddCmd) SetCredentials(name string) {
	c.creds = name
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"submit"} }
func (c *AddCmd) Synopsis() string   { return "Submit a task (the saved draft if no text is given)" }
func (c *AddCmd) Usage() string      { return "habitask add [--creds prompt|cookie|env] [task...]" }
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.creds, "creds", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := draft.New(cfg.DraftPath())

	task := strings.Join(args, " ")
	fromDraft := len(args) == 0
	if fromDraft {
		saved, err := store.Get()
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read draft: %v\n", err)
			return exitcode.UserError
		}
		task = saved
	}

	// Validated before any credential source is built.
	if strings.TrimSpace(task) == "" {
		output.FormatError(errOut, submitter.ErrEmptyTask)
		return exitcode.UserError
	}

	src, code := credentialSource(cfg, c.creds, errOut)
	if code != exitcode.Success {
		return code
	}

	sub := submitter.New(svc, src, submitter.WithLogger(cfg.Log()))
	res, err := sub.Submit(ctx, task)
	if err != nil {
		return reportSubmitError(errOut, err)
	}

	if fromDraft {
		if err := store.Clear(); err != nil {
			cfg.Log().Warn("failed to clear draft", "error", err)
		}
	}

	if !cfg.Quiet {
		output.FormatCreated(out, res)
	}
	return exitcode.Success
}
