package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"habitask/internal/config"
	"habitask/internal/credentials"
	"habitask/internal/exitcode"
	"habitask/internal/output"
	"habitask/internal/service"
	"habitask/internal/submitter"
)

// credentialSource builds the source named by flagValue, or by config when
// the flag is empty.
func credentialSource(cfg *config.Config, flagValue string, errOut io.Writer) (credentials.Source, int) {
	name := flagValue
	if name == "" {
		name = cfg.Credentials
	}
	kind, err := credentials.ParseKind(name)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.AuthError
	}

	server, err := cfg.ServerURL()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}

	src, err := credentials.New(kind, credentials.Options{
		In:         cfg.Stdin,
		Out:        errOut,
		CookiePath: cfg.CookiePath(),
		Server:     server,
		DotEnvPath: cfg.DotEnvPath(),
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.AuthError
	}
	return src, exitcode.Success
}

// reportSubmitError prints err and maps it to an exit code.
func reportSubmitError(errOut io.Writer, err error) int {
	var credErr *submitter.CredentialsError
	switch {
	case errors.Is(err, submitter.ErrEmptyTask):
		output.FormatError(errOut, err)
		return exitcode.UserError
	case errors.Is(err, context.Canceled) && service.KindOf(err) == 0:
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.UserError
	case errors.As(err, &credErr), errors.Is(err, service.ErrAuth):
		output.FormatError(errOut, err)
		return exitcode.AuthError
	default:
		output.FormatError(errOut, err)
		return exitcode.BackendError
	}
}
