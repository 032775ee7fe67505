// Package logging builds the CLI's slog logger.
//
// Two formats are supported: "plain" (text) and "structured" (JSON). Logs
// always go to the given writer, normally stderr, so stdout stays reserved for
// command output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	// FormatPlain renders key=value text lines.
	FormatPlain = "plain"

	// FormatStructured renders one JSON object per line.
	FormatStructured = "structured"
)

// New returns a logger writing to w in the given format. With debug set the
// level is Debug, otherwise only warnings and errors are emitted.
func New(w io.Writer, format string, debug bool) (*slog.Logger, error) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatPlain:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatStructured:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %q (must be %q or %q)", format, FormatPlain, FormatStructured)
	}
}

// Redact masks all but the last four characters of a secret for log output.
func Redact(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
