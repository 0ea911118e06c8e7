package utapi

import "fmt"

// Version is the library version reported to the service through the
// x-uploadthing-version header and the default user agent.
const Version = "0.4.0"

// DefaultHost is the UploadThing API host requests are sent to unless overridden.
const DefaultHost = "https://uploadthing.com"

// Config holds the client-level settings for talking to UploadThing. Zero-value
// fields are filled from DefaultConfig at construction, so callers only set what
// they want to change.
type Config struct {
	// Host is the scheme://host[:port] prefix every request path is joined to.
	Host string

	// UserAgent is sent verbatim as the User-Agent header.
	UserAgent string

	// APIKey is the UploadThing secret ("sk_live_..."). Leave blank to resolve it
	// from the credential source at construction.
	APIKey string

	// Version is the value of the x-uploadthing-version header.
	Version string
}

// DefaultConfig returns the stock configuration: production host, versioned
// user agent, and no API key.
func DefaultConfig() Config {
	return Config{
		Host:      DefaultHost,
		UserAgent: fmt.Sprintf("utapi-go/%s/go", Version),
		Version:   Version,
	}
}

// withDefaults fills any blank field from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Host == "" {
		c.Host = def.Host
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Version == "" {
		c.Version = def.Version
	}
	return c
}
