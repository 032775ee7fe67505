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
	Register(&LogoutCmd{})
}

// LogoutCmd removes the credential cookies stored for the configured server.
// Cookies stored for other servers are left alone.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Remove stored credential cookies" }
func (c *LogoutCmd) Usage() string      { return "habitask logout" }
func (c *LogoutCmd) NeedsService() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasCookies() {
		return notLoggedIn(cfg, out)
	}

	server, err := cfg.ServerURL()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	store := credentials.NewCookieStore(cfg.CookiePath(), server)

	removed, err := store.Remove()
	if errors.Is(err, credentials.ErrCorruptJar) {
		// Nothing in an unreadable file can be used, for any server.
		cfg.Log().Warn("removing unreadable cookie file", "path", cfg.CookiePath(), "error", err)
		removed, err = true, store.Reset()
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to remove cookies: %v\n", err)
		return exitcode.AuthError
	}
	if !removed {
		return notLoggedIn(cfg, out)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func notLoggedIn(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "not logged in")
	}
	return exitcode.Success
}
