// Package config handles the XDG configuration directory, its files, and the
// optional config.yaml settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "habitask"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// CookieFile is the stored credential cookie jar filename.
	CookieFile = "cookies.json"

	// DraftFile holds the task input between invocations.
	DraftFile = "draft.txt"

	// DotEnvFile is the optional env file consulted by the env credential source.
	DotEnvFile = ".env"

	// DefaultServer is where /add_task is served when nothing else is configured.
	DefaultServer = "http://localhost:8000"

	// DefaultCredentials is the credential source used when none is configured.
	DefaultCredentials = "cookie"

	// DefaultCookieMaxAge is how long login cookies stay valid.
	DefaultCookieMaxAge = 365 * 24 * time.Hour

	// ServerEnv overrides the server URL from config.yaml.
	ServerEnv = "HABITASK_SERVER"
)

// ErrInvalid indicates a malformed config.yaml or setting.
var ErrInvalid = errors.New("invalid config")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Server is the base URL /add_task is resolved against.
	Server string

	// Credentials names the credential source: prompt, cookie or env.
	Credentials string

	// Timeout bounds a submission. Zero waits indefinitely.
	Timeout time.Duration

	// LogFormat is "plain" or "structured".
	LogFormat string

	// CookieMaxAge is the lifetime of cookies written by login.
	CookieMaxAge time.Duration

	// OAuth configures an optional token-protected gateway in front of the server.
	OAuth OAuthConfig

	// Stdin is where interactive prompts read from.
	Stdin io.Reader

	// Logger receives debug and warning logs. Nil discards them.
	Logger *slog.Logger
}

// OAuthConfig describes how to authenticate against a gateway that fronts
// /add_task. With TokenURL set the client-credentials flow is used; with only
// AccessToken set a static bearer token is sent.
type OAuthConfig struct {
	TokenURL     string   `yaml:"token_url"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	Scopes       []string `yaml:"scopes"`
	AccessToken  string   `yaml:"access_token"`
}

// Enabled reports whether any gateway auth is configured.
func (o OAuthConfig) Enabled() bool {
	return o.TokenURL != "" || o.AccessToken != ""
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/habitask or $HOME/.config/habitask.
// Settings from config.yaml are applied when the file exists, then
// HABITASK_SERVER overrides the server.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:          dir,
		Server:       DefaultServer,
		Credentials:  DefaultCredentials,
		LogFormat:    "plain",
		CookieMaxAge: DefaultCookieMaxAge,
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	if server := os.Getenv(ServerEnv); server != "" {
		cfg.Server = server
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// CookiePath returns the path to the stored cookie jar.
func (c *Config) CookiePath() string {
	return filepath.Join(c.Dir, CookieFile)
}

// DraftPath returns the path to the saved task draft.
func (c *Config) DraftPath() string {
	return filepath.Join(c.Dir, DraftFile)
}

// DotEnvPath returns the path to the optional .env file.
func (c *Config) DotEnvPath() string {
	return filepath.Join(c.Dir, DotEnvFile)
}

// ServerURL parses Server. Only http and https are accepted.
func (c *Config) ServerURL() (*url.URL, error) {
	u, err := url.Parse(c.Server)
	if err != nil {
		return nil, fmt.Errorf("%w: server: %v", ErrInvalid, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: server must be an http or https URL: %s", ErrInvalid, c.Server)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: server has no host: %s", ErrInvalid, c.Server)
	}
	return u, nil
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasCookies checks if the cookie jar file exists.
func (c *Config) HasCookies() bool {
	_, err := os.Stat(c.CookiePath())
	return err == nil
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
