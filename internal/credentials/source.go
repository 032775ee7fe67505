// Package credentials provides the Habitica user ID and API token to a
// submission. The source is chosen once at setup: an interactive prompt, a
// cookie jar scoped to the server, or the environment.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// Credentials identify a Habitica user.
type Credentials struct {
	UserID   string
	APIToken string
}

// Source yields credentials for one submission.
type Source interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// Static is a Source that always yields the same credentials.
type Static Credentials

// Credentials implements Source.
func (s Static) Credentials(ctx context.Context) (Credentials, error) {
	return Credentials(s), nil
}

// Kind names a credential source.
type Kind string

const (
	Prompt Kind = "prompt"
	Cookie Kind = "cookie"
	Env    Kind = "env"
)

// Kinds lists the accepted source names.
var Kinds = []Kind{Prompt, Cookie, Env}

// ErrUnknownSource is returned by ParseKind for an unsupported name.
var ErrUnknownSource = errors.New("unknown credential source")

// ErrMissing matches every *MissingError.
var ErrMissing = errors.New("missing credentials")

// MissingError reports a credential that was absent or empty.
type MissingError struct {
	Source Kind
	Field  string // user_id or api_token
	Hint   string
}

func (e *MissingError) Error() string {
	msg := fmt.Sprintf("missing credentials: %s", e.Field)
	switch e.Source {
	case Cookie:
		msg += " cookie not set"
	case Env:
		msg += " not set in environment"
	case Prompt:
		msg += " not entered"
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *MissingError) Is(target error) bool {
	return target == ErrMissing
}

// ParseKind parses a source name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be prompt, cookie or env)", ErrUnknownSource, s)
}

// Options carries what the individual sources need.
type Options struct {
	// In and Out are used by the prompt source.
	In  io.Reader
	Out io.Writer

	// CookiePath and Server are used by the cookie source.
	CookiePath string
	Server     *url.URL

	// DotEnvPath and Lookup are used by the env source. Lookup defaults to
	// os.LookupEnv.
	DotEnvPath string
	Lookup     func(key string) (string, bool)
}

// New builds the source for kind.
func New(kind Kind, opts Options) (Source, error) {
	switch kind {
	case Prompt:
		return NewPromptSource(opts.In, opts.Out), nil
	case Cookie:
		if opts.Server == nil {
			return nil, errors.New("cookie source needs a server URL")
		}
		return NewCookieStore(opts.CookiePath, opts.Server), nil
	case Env:
		lookup := opts.Lookup
		if lookup == nil {
			lookup = os.LookupEnv
		}
		return NewEnvSource(opts.DotEnvPath, lookup), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
}

// check returns a *MissingError for the first empty field.
func (c Credentials) check(source Kind, hint string) error {
	if strings.TrimSpace(c.UserID) == "" {
		return &MissingError{Source: source, Field: "user_id", Hint: hint}
	}
	if strings.TrimSpace(c.APIToken) == "" {
		return &MissingError{Source: source, Field: "api_token", Hint: hint}
	}
	return nil
}
