// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"habitask/internal/service"
)

// FormatCreated prints the confirmation for a created task.
// Format: "task created: {TEXT}\n", or "task created: {TEXT} ({TYPE})\n"
// when the server echoed the task type.
func FormatCreated(w io.Writer, res service.TaskResult) {
	text := normalizeText(res.Text)
	if res.Type != "" {
		fmt.Fprintf(w, "task created: %s (%s)\n", text, res.Type)
		return
	}
	fmt.Fprintf(w, "task created: %s\n", text)
}

// FormatError prints a failure as "error: {MESSAGE}\n".
func FormatError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %s\n", singleLine(err.Error()))
}

// FormatDraft prints the saved draft, or "no draft" when empty.
func FormatDraft(w io.Writer, text string) {
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(w, "no draft")
		return
	}
	fmt.Fprintln(w, text)
}

// normalizeText normalizes a task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = singleLine(text)
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
