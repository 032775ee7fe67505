package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"habitask/internal/config"
	"habitask/internal/credentials"
	"habitask/internal/exitcode"
	"habitask/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd prompts for the Habitica user ID and API token and stores them as
// cookies for the configured server, for use by the cookie source.
type LoginCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *LoginCmd) SetForce(force bool) {
	c.force = force
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Store Habitica credentials as cookies" }
func (c *LoginCmd) Usage() string      { return "habitask login [--force]" }
func (c *LoginCmd) NeedsService() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	server, err := cfg.ServerURL()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	store := credentials.NewCookieStore(cfg.CookiePath(), server)

	if !c.force {
		if _, err := store.Credentials(ctx); err == nil {
			if !cfg.Quiet {
				fmt.Fprintln(out, "already logged in")
			}
			return exitcode.Success
		}
	}

	creds, err := credentials.NewPromptSource(cfg.Stdin, errOut).Credentials(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(errOut, "error: cancelled")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	err = store.Save(creds, cfg.CookieMaxAge)
	if errors.Is(err, credentials.ErrCorruptJar) && c.force {
		cfg.Log().Warn("replacing unreadable cookie file", "path", cfg.CookiePath(), "error", err)
		if err = store.Reset(); err == nil {
			err = store.Save(creds, cfg.CookieMaxAge)
		}
	}
	if err != nil {
		if errors.Is(err, credentials.ErrCorruptJar) {
			fmt.Fprintf(errOut, "error: failed to save cookies: %v (run: habitask login --force)\n", err)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: failed to save cookies: %v\n", err)
		return exitcode.AuthError
	}

	cfg.Log().Debug("stored login cookies", "server", server.Host, "path", cfg.CookiePath())

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
