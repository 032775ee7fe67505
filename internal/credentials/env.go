package credentials

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

const (
	// UserIDEnv holds the Habitica user ID.
	UserIDEnv = "HABITICA_USER_ID"

	// APITokenEnv holds the Habitica API token.
	APITokenEnv = "HABITICA_API_TOKEN"
)

// EnvSource reads credentials from the process environment, falling back to
// a .env file. The process environment wins when both are set.
type EnvSource struct {
	dotEnvPath string
	lookup     func(string) (string, bool)
}

// NewEnvSource creates an env source. dotEnvPath may be empty or point to a
// file that does not exist.
func NewEnvSource(dotEnvPath string, lookup func(string) (string, bool)) *EnvSource {
	return &EnvSource{dotEnvPath: dotEnvPath, lookup: lookup}
}

func (e *EnvSource) Credentials(ctx context.Context) (Credentials, error) {
	file, err := e.readDotEnv()
	if err != nil {
		return Credentials{}, err
	}

	get := func(key string) string {
		if v, ok := e.lookup(key); ok && v != "" {
			return v
		}
		return file[key]
	}

	creds := Credentials{UserID: get(UserIDEnv), APIToken: get(APITokenEnv)}
	if err := creds.check(Env, "set "+UserIDEnv+" and "+APITokenEnv); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (e *EnvSource) readDotEnv() (map[string]string, error) {
	if e.dotEnvPath == "" {
		return nil, nil
	}
	vals, err := godotenv.Read(e.dotEnvPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", e.dotEnvPath, err)
	}
	return vals, nil
}
