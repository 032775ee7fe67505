package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/net/publicsuffix"
)

const (
	// UserIDCookie and APITokenCookie are the cookie names read by the
	// cookie source.
	UserIDCookie   = "user_id"
	APITokenCookie = "api_token"

	loginHint = "run: habitask login"
)

// ErrCorruptJar is returned when the cookie file exists but cannot be parsed.
var ErrCorruptJar = errors.New("corrupt cookie file")

// storedCookie is one cookie on disk, with the URL it was set for.
type storedCookie struct {
	URL      string    `json:"url"`
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Expires  time.Time `json:"expires"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

type cookieFile struct {
	Cookies []storedCookie `json:"cookies"`
}

// CookieStore is a file-backed cookie jar. Lookups go through
// net/http/cookiejar, so expiry and domain/path matching follow browser rules.
type CookieStore struct {
	path   string
	server *url.URL
	now    func() time.Time
}

// NewCookieStore creates a store at path whose cookies are read for server.
func NewCookieStore(path string, server *url.URL) *CookieStore {
	return &CookieStore{path: path, server: server, now: time.Now}
}

// Credentials reads the user_id and api_token cookies for the server.
// Either one missing or empty is a *MissingError.
func (s *CookieStore) Credentials(ctx context.Context) (Credentials, error) {
	vals, err := s.Lookup()
	if err != nil {
		return Credentials{}, err
	}
	creds := Credentials{UserID: vals[UserIDCookie], APIToken: vals[APITokenCookie]}
	if err := creds.check(Cookie, loginHint); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Lookup returns the name/value pairs the jar would send to the server.
func (s *CookieStore) Lookup() (map[string]string, error) {
	jar, err := s.jar()
	if err != nil {
		return nil, err
	}
	vals := make(map[string]string)
	for _, c := range jar.Cookies(s.server) {
		vals[c.Name] = c.Value
	}
	return vals, nil
}

// Save stores both credentials as cookies for the server, valid for maxAge.
// Cookies already stored for other servers are kept.
func (s *CookieStore) Save(creds Credentials, maxAge time.Duration) error {
	if err := creds.check(Cookie, ""); err != nil {
		return err
	}
	existing, err := s.read()
	if err != nil {
		return err
	}

	origin := s.origin()
	expires := s.now().Add(maxAge).UTC()
	secure := s.server.Scheme == "https"

	var kept []storedCookie
	for _, c := range existing.Cookies {
		if c.URL == origin && (c.Name == UserIDCookie || c.Name == APITokenCookie) {
			continue
		}
		kept = append(kept, c)
	}
	kept = append(kept,
		storedCookie{URL: origin, Name: UserIDCookie, Value: creds.UserID, Path: "/", Expires: expires, Secure: secure},
		storedCookie{URL: origin, Name: APITokenCookie, Value: creds.APIToken, Path: "/", Expires: expires, Secure: secure, HttpOnly: true},
	)

	return s.write(cookieFile{Cookies: kept})
}

// Remove deletes the user_id and api_token cookies stored for the server and
// reports whether there were any. Cookies for other servers are kept; the
// file is deleted once it holds nothing.
func (s *CookieStore) Remove() (bool, error) {
	existing, err := s.read()
	if err != nil {
		return false, err
	}

	origin := s.origin()
	var kept []storedCookie
	for _, c := range existing.Cookies {
		if c.URL == origin && (c.Name == UserIDCookie || c.Name == APITokenCookie) {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == len(existing.Cookies) {
		return false, nil
	}
	if len(kept) == 0 {
		return true, s.Reset()
	}
	return true, s.write(cookieFile{Cookies: kept})
}

// Reset deletes the cookie file, including cookies for other servers.
func (s *CookieStore) Reset() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// origin returns scheme://host/ for the server.
func (s *CookieStore) origin() string {
	u := url.URL{Scheme: s.server.Scheme, Host: s.server.Host, Path: "/"}
	return u.String()
}

// jar loads every stored cookie into a fresh cookie jar.
func (s *CookieStore) jar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	f, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, c := range f.Cookies {
		u, err := url.Parse(c.URL)
		if err != nil {
			continue
		}
		jar.SetCookies(u, []*http.Cookie{{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}})
	}
	return jar, nil
}

func (s *CookieStore) read() (cookieFile, error) {
	var f cookieFile
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("failed to read %s: %w", filepath.Base(s.path), err)
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("%w (%s: %v)", ErrCorruptJar, filepath.Base(s.path), err)
	}
	return f, nil
}

// write replaces the cookie file atomically with mode 0600.
func (s *CookieStore) write(f cookieFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cookies-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
