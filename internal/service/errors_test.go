package service

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestError_UnwrapAndKind(t *testing.T) {
	err := fmt.Errorf("submit: %w", &Error{Kind: KindDecode, Message: "unexpected EOF", Err: io.ErrUnexpectedEOF})

	if KindOf(err) != KindDecode {
		t.Errorf("expected KindDecode, got %v", KindOf(err))
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected wrapped cause to be reachable")
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("expected zero kind for foreign error")
	}
}

func TestKind_String(t *testing.T) {
	if KindHTTP.String() != "http" {
		t.Errorf("unexpected %q", KindHTTP.String())
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("unexpected %q", Kind(42).String())
	}
}
