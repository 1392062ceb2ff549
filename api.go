package casinodog

import (
	"context"
	"encoding/json"
	"fmt"
)

// Layout selects the games list representation.
type Layout string

const (
	LayoutFull    Layout = "full"
	LayoutCompact Layout = "compact"
)

// PingAccess probes connectivity. It is always bounded by the ping timeout;
// any error means the API is unreachable.
func (c *Client) PingAccess(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "ping access", "/api/accessPing", nil, c.pingTimeout)
}

// GetGamesList fetches the catalog. An empty layout means LayoutFull. The
// body is returned as-is; see package catalog for decoding.
func (c *Client) GetGamesList(ctx context.Context, layout Layout) (json.RawMessage, error) {
	if layout == "" {
		layout = LayoutFull
	}
	if layout != LayoutFull && layout != LayoutCompact {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLayout, layout)
	}
	return c.get(ctx, "fetch games list", "/api/gameslist/"+string(layout), nil, c.requestTimeout)
}

// CreateSession opens a play session.
func (c *Client) CreateSession(ctx context.Context, params Params) (*SessionResponse, error) {
	body, err := c.get(ctx, "create session", "/api/createSession", params, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{Raw: body}, nil
}

// CreateSessionIframed opens a play session whose URL can be embedded in a web view.
func (c *Client) CreateSessionIframed(ctx context.Context, params Params) (*SessionResponse, error) {
	body, err := c.get(ctx, "create iframed session", "/api/createSessionIframed", params, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{Raw: body}, nil
}

// AddFreeSpins grants free spins to a session.
func (c *Client) AddFreeSpins(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.get(ctx, "add free spins", "/api/control/add_freespins", params, c.requestTimeout)
}

// ToggleRespin flips the respin feature of a session.
func (c *Client) ToggleRespin(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.get(ctx, "toggle respin", "/api/control/toggle_respin", params, c.requestTimeout)
}

// GetVersion returns the server version information.
func (c *Client) GetVersion(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "get version", "/api/version", nil, c.requestTimeout)
}
