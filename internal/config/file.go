package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileSettings mirrors config.yaml. Pointer fields distinguish "unset" from
// zero values so defaults survive a partial file.
type fileSettings struct {
	Server       *string        `yaml:"server"`
	Credentials  *string        `yaml:"credentials"`
	Timeout      *time.Duration `yaml:"timeout"`
	LogFormat    *string        `yaml:"log_format"`
	CookieMaxAge *time.Duration `yaml:"cookie_max_age"`
	OAuth        *OAuthConfig   `yaml:"oauth"`
}

// load applies config.yaml on top of the defaults. A missing file is not an error.
func (c *Config) load() error {
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fs fileSettings
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, ConfigFile, err)
	}

	if fs.Server != nil {
		c.Server = *fs.Server
	}
	if fs.Credentials != nil {
		c.Credentials = *fs.Credentials
	}
	if fs.Timeout != nil {
		if *fs.Timeout < 0 {
			return fmt.Errorf("%w: timeout must not be negative", ErrInvalid)
		}
		c.Timeout = *fs.Timeout
	}
	if fs.LogFormat != nil {
		c.LogFormat = *fs.LogFormat
	}
	if fs.CookieMaxAge != nil {
		if *fs.CookieMaxAge <= 0 {
			return fmt.Errorf("%w: cookie_max_age must be positive", ErrInvalid)
		}
		c.CookieMaxAge = *fs.CookieMaxAge
	}
	if fs.OAuth != nil {
		c.OAuth = *fs.OAuth
	}
	return nil
}
