package utapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// defaultTimeout bounds a whole round trip when the caller's context carries no
// deadline of its own.
const defaultTimeout = 30 * time.Second

// Transport performs the HTTP round trips for a Client. *http.Client satisfies
// it; tests substitute a MockTransport, and callers with their own pooling or
// instrumentation pass whatever they already have.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the UploadThing API. Build one with New or NewFromConfig; the
// zero value is not usable. A Client is immutable after construction and safe
// for concurrent use.
type Client struct {
	config    Config
	transport Transport
	logger    zerolog.Logger
}

// settings collects everything the functional options can change.
type settings struct {
	config    Config
	apiKey    string
	source    CredentialSource
	transport Transport
	logger    zerolog.Logger
}

func defaultSettings() settings {
	return settings{
		config:    DefaultConfig(),
		transport: &http.Client{Timeout: defaultTimeout},
		logger:    zerolog.Nop(),
	}
}

// Option alters client construction.
type Option func(*settings)

// WithAPIKey supplies the secret explicitly. An explicit key always wins over
// the credential source.
func WithAPIKey(key string) Option {
	return func(s *settings) { s.apiKey = key }
}

// WithHost points the client at a different host, usually a test server.
func WithHost(host string) Option {
	return func(s *settings) { s.config.Host = host }
}

// WithUserAgent overrides the User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(s *settings) { s.config.UserAgent = ua }
}

// WithCredentialSource replaces the environment-backed secret lookup.
func WithCredentialSource(source CredentialSource) Option {
	return func(s *settings) { s.source = source }
}

// WithTransport replaces the HTTP client used for round trips.
func WithTransport(t Transport) Option {
	return func(s *settings) { s.transport = t }
}

// WithLogger attaches a logger for request-level diagnostics. The default
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// New builds a Client, resolving the API key eagerly: an explicit WithAPIKey
// wins, then the credential source (UPLOADTHING_SECRET by default). When
// neither yields a key, New fails with ErrMissingCredentials rather than
// leaving a client that cannot authenticate.
func New(opts ...Option) (*Client, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	key, err := resolveAPIKey(s.apiKey, s.source)
	if err != nil {
		return nil, err
	}
	s.config.APIKey = key

	return &Client{config: s.config, transport: s.transport, logger: s.logger}, nil
}

// NewFromConfig builds a Client from a caller-assembled Config. Blank Config
// fields fall back to defaults, and options apply on top: WithAPIKey replaces
// the config's key, and a credential source given with WithCredentialSource is
// consulted when the key is still blank. Without those options the config is
// taken as-is; in particular the environment is never read. A client left
// keyless is still returned, and its operations fail with
// ErrMissingCredentials before any request is sent.
func NewFromConfig(config Config, opts ...Option) *Client {
	s := defaultSettings()
	s.config = config.withDefaults()
	for _, opt := range opts {
		opt(&s)
	}

	if key := strings.TrimSpace(s.apiKey); key != "" {
		s.config.APIKey = key
	} else if strings.TrimSpace(s.config.APIKey) == "" && s.source != nil {
		// A source with nothing to offer leaves the key blank; the failure
		// surfaces at the first operation.
		if key, err := resolveAPIKey("", s.source); err == nil {
			s.config.APIKey = key
		}
	}

	return &Client{config: s.config, transport: s.transport, logger: s.logger}
}

// Config returns a copy of the client's resolved configuration.
func (c *Client) Config() Config { return c.config }

// requireCredentials guards every operation for clients built without a key.
func (c *Client) requireCredentials() error {
	if strings.TrimSpace(c.config.APIKey) == "" {
		return fmt.Errorf("client has no api key: %w", ErrMissingCredentials)
	}
	return nil
}

// RequestUploadthing sends an authenticated POST to pathname (for example
// "/api/deleteFile") with payload serialized as JSON, and returns the raw
// response when the status is 2xx. A nil payload goes out as JSON null.
// Non-2xx statuses come back as *RemoteError or *TransportError. The caller
// owns the returned response and must close its body.
//
// Every typed operation is built on this; it is exported for endpoints the
// typed surface does not cover yet.
func (c *Client) RequestUploadthing(ctx context.Context, pathname string, payload any) (*http.Response, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}
	req, err := buildRequest(ctx, c.config, pathname, payload)
	if err != nil {
		return nil, err
	}
	return c.send(req)
}

// getUploadthing is the GET counterpart, used only by PollUpload.
func (c *Client) getUploadthing(ctx context.Context, pathname string) (*http.Response, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}
	req, err := buildGetRequest(ctx, c.config, pathname)
	if err != nil {
		return nil, err
	}
	return c.send(req)
}

// send runs one request through the transport and normalizes failures. Round
// trip errors become *TransportError; non-2xx statuses are decoded by
// decodeError, which consumes the body.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := c.transport.Do(req)
	if err != nil {
		c.logger.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Err(err).
			Msg("uploadthing request failed")
		return nil, &TransportError{Err: err}
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("uploadthing request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}
	return resp, nil
}
