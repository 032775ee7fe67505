package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"habitask/internal/config"
	"habitask/internal/credentials"
	"habitask/internal/exitcode"
	"habitask/internal/output"
	"habitask/internal/service"
	"habitask/internal/submitter"
)

const shellPrompt = ">>> "

var shellQuit = []string{"quit", "exit", "q"}

func init() {
	Register(&ShellCmd{})
}

// ShellCmd reads tasks one per line and submits each as it is entered.
// Credentials are read once, before the first task.
type ShellCmd struct {
	creds string
}

// SetCredentials sets the credential source name (for testing).
func (c *ShellCmd) SetCredentials(name string) {
	c.creds = name
}

func (c *ShellCmd) Name() string       { return "shell" }
func (c *ShellCmd) Aliases() []string  { return nil }
func (c *ShellCmd) Synopsis() string   { return "Submit tasks interactively, one per line" }
func (c *ShellCmd) Usage() string      { return "habitask shell [--creds prompt|cookie|env]" }
func (c *ShellCmd) NeedsService() bool { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.creds, "creds", "", "")
}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	src, code := credentialSource(cfg, c.creds, errOut)
	if code != exitcode.Success {
		return code
	}

	// Prompt answers and tasks share one buffer.
	var in *bufio.Reader
	if ps, ok := src.(*credentials.PromptSource); ok {
		in = ps.Reader()
	} else {
		in = bufio.NewReader(cfg.Stdin)
	}

	creds, err := src.Credentials(ctx)
	if err != nil {
		return reportSubmitError(errOut, &submitter.CredentialsError{Err: err})
	}
	sub := submitter.New(svc, credentials.Static(creds), submitter.WithLogger(cfg.Log()))

	if !cfg.Quiet {
		fmt.Fprintf(errOut, "Type a task, or %s to finish.\n", strings.Join(shellQuit, ", "))
	}

	failed := 0
	for ctx.Err() == nil {
		fmt.Fprint(errOut, shellPrompt)
		line, readErr := in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			fmt.Fprintf(errOut, "\nerror: failed to read input: %v\n", readErr)
			return exitcode.UserError
		}

		task := strings.TrimSpace(line)
		if isQuit(task) {
			break
		}
		if task != "" {
			res, err := sub.Submit(ctx, task)
			if err != nil {
				failed++
				output.FormatError(errOut, err)
			} else if !cfg.Quiet {
				output.FormatCreated(out, res)
			}
		}

		if errors.Is(readErr, io.EOF) {
			fmt.Fprintln(errOut)
			break
		}
	}

	if ctx.Err() != nil {
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.UserError
	}
	if failed > 0 {
		return exitcode.BackendError
	}
	return exitcode.Success
}

func isQuit(line string) bool {
	for _, q := range shellQuit {
		if strings.EqualFold(line, q) {
			return true
		}
	}
	return false
}
