// Package casinodog is a client for the CasinoDog game aggregation API.
//
// A Client holds a mutable base URL and optional bearer access key, both
// persisted to a prefs.Store. Every call snapshots the configuration when it
// starts, so edits made while a request is in flight only affect later calls.
package casinodog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mrfortune94/casinodog/prefs"
	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL is the placeholder host used until the user configures one.
const DefaultBaseURL = "https://your-casinodog-server.com"

// DefaultPingTimeout bounds the connectivity probe.
const DefaultPingTimeout = 5 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 32 << 20

// ClientConfig is the connection configuration. An empty AccessKey means
// requests are sent unauthenticated.
type ClientConfig struct {
	BaseURL   string
	AccessKey string
}

// Header builds the request headers for this configuration.
func (c ClientConfig) Header() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	if c.AccessKey != "" {
		h.Set("Authorization", "Bearer "+c.AccessKey)
	}
	return h
}

// Client calls the aggregation API. It is safe for concurrent use.
type Client struct {
	mu         sync.RWMutex
	cfg        ClientConfig
	baseEdited bool
	keyEdited  bool

	store          prefs.Store
	http           *http.Client
	pingTimeout    time.Duration
	requestTimeout time.Duration
	maxBody        int64
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient sets the transport used for every call.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithPingTimeout overrides DefaultPingTimeout.
func WithPingTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pingTimeout = d
		}
	}
}

// WithRequestTimeout bounds every call other than PingAccess. Zero leaves
// them bounded only by the caller's context.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.requestTimeout = d
	}
}

// NewClient returns a client starting from defaults. Persisted values are
// not read until Restore or RestoreAsync is called.
func NewClient(store prefs.Store, defaults ClientConfig, opts ...Option) *Client {
	if store == nil {
		store = &prefs.Memory{}
	}
	if defaults.BaseURL == "" {
		defaults.BaseURL = DefaultBaseURL
	}
	c := &Client{
		cfg:         defaults,
		store:       store,
		http:        &http.Client{},
		pingTimeout: DefaultPingTimeout,
		maxBody:     DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns a snapshot of the current configuration.
func (c *Client) Config() ClientConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Restore loads the persisted base URL and access key. Non-empty stored
// values replace the defaults unless a setter already ran.
func (c *Client) Restore() error {
	baseURL, hasURL, err := prefs.Lookup(c.store, prefs.KeyAPIBaseURL)
	if err != nil {
		log.Errorf("error restoring API base URL: %v", err)
		return fmt.Errorf("casinodog: restore: %w", err)
	}
	accessKey, hasKey, err := prefs.Lookup(c.store, prefs.KeyAccessKey)
	if err != nil {
		log.Errorf("error restoring access key: %v", err)
		return fmt.Errorf("casinodog: restore: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if hasURL && baseURL != "" && !c.baseEdited {
		c.cfg.BaseURL = baseURL
	}
	if hasKey && accessKey != "" && !c.keyEdited {
		c.cfg.AccessKey = accessKey
	}
	return nil
}

// RestoreAsync runs Restore in the background. Calls made before the
// returned channel delivers use the defaults.
func (c *Client) RestoreAsync() <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- c.Restore()
	}()
	return done
}

// SetBaseURL switches the API host and persists it. The URL is not
// validated; a malformed one makes later calls fail. The new value is in
// effect even when persisting fails.
func (c *Client) SetBaseURL(url string) error {
	c.mu.Lock()
	c.cfg.BaseURL = url
	c.baseEdited = true
	c.mu.Unlock()
	if err := c.store.Set(prefs.KeyAPIBaseURL, url); err != nil {
		log.Errorf("failed to persist API base URL: %v", err)
		return fmt.Errorf("casinodog: persist base URL: %w", err)
	}
	return nil
}

// SetAccessKey replaces the bearer token and persists it. An empty key
// disables the Authorization header.
func (c *Client) SetAccessKey(key string) error {
	c.mu.Lock()
	c.cfg.AccessKey = key
	c.keyEdited = true
	c.mu.Unlock()
	if err := c.store.Set(prefs.KeyAccessKey, key); err != nil {
		log.Errorf("failed to persist access key: %v", err)
		return fmt.Errorf("casinodog: persist access key: %w", err)
	}
	return nil
}

// get performs one GET against the API and returns the validated JSON body.
func (c *Client) get(ctx context.Context, op, path string, query Params, timeout time.Duration) (json.RawMessage, error) {
	cfg := c.Config()
	reqID := uuid.NewString()[:8]
	entry := log.WithFields(log.Fields{"request_id": reqID, "op": op})

	target := cfg.BaseURL + path
	if q := query.Encode(); q != "" {
		target += "?" + q
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := c.do(ctx, cfg, target)
	if err != nil {
		entry.Errorf("failed to %s: %v", op, err)
		return nil, fmt.Errorf("casinodog: %s: %w", op, err)
	}
	entry.Debugf("GET %s ok (%d bytes)", path, len(body))
	return body, nil
}

func (c *Client) do(ctx context.Context, cfg ClientConfig, target string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header = cfg.Header()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: data}
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBody)
	}
	var body json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return body, nil
}
