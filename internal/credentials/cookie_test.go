package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("bad url %q: %v", s, err)
	}
	return u
}

func TestCookieStore_NoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	store := NewCookieStore(path, mustURL(t, "http://localhost:8000"))

	_, err := store.Credentials(context.Background())
	var me *MissingError
	if !errors.As(err, &me) {
		t.Fatalf("expected *MissingError, got %v", err)
	}
	if me.Field != "user_id" || me.Source != Cookie {
		t.Errorf("unexpected %+v", me)
	}
	if me.Error() != "missing credentials: user_id cookie not set (run: habitask login)" {
		t.Errorf("unexpected message %q", me.Error())
	}
}

func TestCookieStore_SaveAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	store := NewCookieStore(path, mustURL(t, "http://localhost:8000/app"))

	if err := store.Save(Credentials{UserID: "user-1", APIToken: "token-1"}, time.Hour); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("cookie file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	creds, err := store.Credentials(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.UserID != "user-1" || creds.APIToken != "token-1" {
		t.Errorf("unexpected credentials %+v", creds)
	}
}

func TestCookieStore_SaveReplacesSameServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	store := NewCookieStore(path, mustURL(t, "http://localhost:8000"))

	if err := store.Save(Credentials{UserID: "old", APIToken: "old-token"}, time.Hour); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.Save(Credentials{UserID: "new", APIToken: "new-token"}, time.Hour); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read cookie file: %v", err)
	}
	var f cookieFile
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("invalid cookie file: %v", err)
	}
	if len(f.Cookies) != 2 {
		t.Errorf("expected 2 cookies, got %d", len(f.Cookies))
	}

	creds, err := store.Credentials(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.UserID != "new" {
		t.Errorf("expected new user, got %q", creds.UserID)
	}
}

func TestCookieStore_ScopedToServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	local := NewCookieStore(path, mustURL(t, "http://localhost:8000"))
	if err := local.Save(Credentials{UserID: "user-1", APIToken: "token-1"}, time.Hour); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	other := NewCookieStore(path, mustURL(t, "http://tasks.example.com"))
	if _, err := other.Credentials(context.Background()); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected cookies for another host to be invisible, got %v", err)
	}

	// Saving for the second server keeps the first server's cookies.
	if err := other.Save(Credentials{UserID: "user-2", APIToken: "token-2"}, time.Hour); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	creds, err := local.Credentials(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", creds.UserID)
	}
}

func TestCookieStore_Expired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	store := NewCookieStore(path, mustURL(t, "http://localhost:8000"))
	store.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	if err := store.Save(Credentials{UserID: "user-1", APIToken: "token-1"}, time.Hour); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	if _, err := store.Credentials(context.Background()); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected expired cookies to be missing, got %v", err)
	}
}

func TestCookieStore_MissingAPIToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	f := cookieFile{Cookies: []storedCookie{{
		URL:     "http://localhost:8000/",
		Name:    UserIDCookie,
		Value:   "user-1",
		Path:    "/",
		Expires: time.Now().Add(time.Hour),
	}}}
	data, _ := json.Marshal(f)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write cookie file: %v", err)
	}

	store := NewCookieStore(path, mustURL(t, "http://localhost:8000"))
	_, err := store.Credentials(context.Background())
	var me *MissingError
	if !errors.As(err, &me) || me.Field != "api_token" {
		t.Fatalf("expected missing api_token, got %v", err)
	}
}

func TestCookieStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write cookie file: %v", err)
	}

	store := NewCookieStore(path, mustURL(t, "http://localhost:8000"))
	_, err := store.Credentials(context.Background())
	if err == nil || errors.Is(err, ErrMissing) {
		t.Fatalf("expected a read error, got %v", err)
	}
	if !errors.Is(err, ErrCorruptJar) {
		t.Errorf("expected ErrCorruptJar, got %v", err)
	}
}

func TestCookieStore_SaveRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	store := NewCookieStore(path, mustURL(t, "http://localhost:8000"))

	err := store.Save(Credentials{UserID: "user-1"}, time.Hour)
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cookie file should not have been written")
	}
}

func TestCookieStore_RemoveOnlyThisServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	a := NewCookieStore(path, mustURL(t, "http://a.example.com"))
	b := NewCookieStore(path, mustURL(t, "http://b.example.com"))
	if err := a.Save(Credentials{UserID: "user-a", APIToken: "token-a"}, time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := b.Save(Credentials{UserID: "user-b", APIToken: "token-b"}, time.Hour); err != nil {
		t.Fatal(err)
	}

	removed, err := a.Remove()
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v, %v", removed, err)
	}
	if _, err := a.Credentials(context.Background()); !errors.Is(err, ErrMissing) {
		t.Errorf("expected a removed, got %v", err)
	}
	if creds, err := b.Credentials(context.Background()); err != nil || creds.UserID != "user-b" {
		t.Errorf("expected b kept, got %+v, %v", creds, err)
	}

	removed, err = a.Remove()
	if err != nil || removed {
		t.Errorf("expected nothing left to remove for a, got %v, %v", removed, err)
	}

	if removed, err := b.Remove(); err != nil || !removed {
		t.Fatalf("expected removal of b, got %v, %v", removed, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected the empty cookie file to be deleted")
	}
}

func TestCookieStore_RemoveWithoutFile(t *testing.T) {
	store := NewCookieStore(filepath.Join(t.TempDir(), "cookies.json"), mustURL(t, "http://localhost:8000"))

	removed, err := store.Remove()
	if err != nil || removed {
		t.Errorf("expected nothing removed, got %v, %v", removed, err)
	}
}
