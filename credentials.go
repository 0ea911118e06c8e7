package utapi

import (
	"fmt"
	"os"
	"strings"
)

// EnvSecret is the environment variable consulted when no API key is supplied
// explicitly.
const EnvSecret = "UPLOADTHING_SECRET"

// CredentialSource supplies the API secret when none is given explicitly. The
// default source reads the process environment; tests substitute a fixed source
// so they never have to mutate the environment.
type CredentialSource interface {
	// ReadSecret returns the value stored under name and whether it was present.
	ReadSecret(name string) (string, bool)
}

// EnvSource is the default CredentialSource, backed by the process environment.
type EnvSource struct{}

// ReadSecret looks name up with os.LookupEnv.
func (EnvSource) ReadSecret(name string) (string, bool) {
	return os.LookupEnv(name)
}

// StaticSource is a CredentialSource holding fixed values, keyed by name.
// Useful for tests and for processes that load secrets themselves.
type StaticSource map[string]string

// ReadSecret returns the stored value for name and whether one exists.
func (s StaticSource) ReadSecret(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// APIKey is a parsed UploadThing secret such as "sk_live_abc123". Prefix holds
// everything before the last underscore ("sk_live"); secrets without one parse
// with an empty Prefix. The service remains the authority on key validity.
type APIKey struct {
	Prefix string
	Key    string
}

// String reassembles the full secret.
func (k APIKey) String() string {
	if k.Prefix == "" {
		return k.Key
	}
	return k.Prefix + "_" + k.Key
}

// ParseKey splits a secret into prefix and key parts. Only blank input is
// rejected.
func ParseKey(secret string) (APIKey, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return APIKey{}, fmt.Errorf("parse api key: %w", ErrMissingCredentials)
	}
	i := strings.LastIndex(secret, "_")
	if i <= 0 || i == len(secret)-1 {
		return APIKey{Key: secret}, nil
	}
	return APIKey{Prefix: secret[:i], Key: secret[i+1:]}, nil
}

// resolveAPIKey picks the explicit secret when non-blank, then asks the
// credential source for EnvSecret. The winner is fixed on the client's Config
// and never re-read, so rotating the environment does not affect live clients.
func resolveAPIKey(explicit string, source CredentialSource) (string, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		return s, nil
	}
	if source == nil {
		source = EnvSource{}
	}
	if v, ok := source.ReadSecret(EnvSecret); ok {
		if s := strings.TrimSpace(v); s != "" {
			return s, nil
		}
	}
	return "", fmt.Errorf("resolve api key: %w", ErrMissingCredentials)
}
