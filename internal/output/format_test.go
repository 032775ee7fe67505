package output

import (
	"bytes"
	"errors"
	"testing"

	"habitask/internal/service"
)

func TestFormatCreated(t *testing.T) {
	tests := []struct {
		res  service.TaskResult
		want string
	}{
		{service.TaskResult{Text: "Buy milk"}, "task created: Buy milk\n"},
		{service.TaskResult{Text: "Stretch", Type: "daily"}, "task created: Stretch (daily)\n"},
		{service.TaskResult{Text: "line one\nline two"}, "task created: line one line two\n"},
		{service.TaskResult{Text: "  "}, "task created: (untitled)\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		FormatCreated(&buf, tt.res)
		if buf.String() != tt.want {
			t.Errorf("FormatCreated(%+v) = %q, want %q", tt.res, buf.String(), tt.want)
		}
	}
}

func TestFormatError(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, errors.New("invalid\ntoken"))
	if buf.String() != "error: invalid token\n" {
		t.Errorf("unexpected %q", buf.String())
	}
}

func TestFormatDraft(t *testing.T) {
	var buf bytes.Buffer
	FormatDraft(&buf, "")
	FormatDraft(&buf, "Buy milk")
	if buf.String() != "no draft\nBuy milk\n" {
		t.Errorf("unexpected %q", buf.String())
	}
}
