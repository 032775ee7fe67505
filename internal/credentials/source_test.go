package credentials

import (
	"errors"
	"net/url"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"prompt":   Prompt,
		"cookie":   Cookie,
		" Cookie ": Cookie,
		"ENV":      Env,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		if err != nil {
			t.Errorf("ParseKind(%q): unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseKind(%q) = %q, want %q", in, got, want)
		}
	}

	_, err := ParseKind("keychain")
	if !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
}

func TestNew(t *testing.T) {
	server, _ := url.Parse("http://localhost:8000")

	src, err := New(Cookie, Options{CookiePath: "cookies.json", Server: server})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*CookieStore); !ok {
		t.Errorf("expected *CookieStore, got %T", src)
	}

	if _, err := New(Cookie, Options{}); err == nil {
		t.Error("expected error for cookie source without server")
	}

	src, err = New(Prompt, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*PromptSource); !ok {
		t.Errorf("expected *PromptSource, got %T", src)
	}

	src, err = New(Env, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*EnvSource); !ok {
		t.Errorf("expected *EnvSource, got %T", src)
	}

	if _, err := New(Kind("vault"), Options{}); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
}

func TestMissingError(t *testing.T) {
	err := error(&MissingError{Source: Cookie, Field: "user_id", Hint: "run: habitask login"})
	if !errors.Is(err, ErrMissing) {
		t.Error("expected MissingError to match ErrMissing")
	}
	want := "missing credentials: user_id cookie not set (run: habitask login)"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
