// Package client talks to a running dashboard over its JSON API and
// notification stream.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sandboxdash/internal/api"
	"sandboxdash/internal/notify"
	"sandboxdash/internal/server"

	"github.com/gorilla/websocket"
)

// ServiceName identifies the dashboard in logs and errors
const ServiceName = "sandboxdash"

// Client represents the HTTP/WebSocket client for a dashboard
type Client struct {
	*api.Client
}

// New creates a client for the dashboard at serverURL. A missing scheme
// means http.
func New(serverURL string) (*Client, error) {
	if !strings.Contains(serverURL, "://") {
		serverURL = "http://" + serverURL
	}

	base, err := api.NewClient(ServiceName, api.Options{BaseURL: serverURL, Timeout: 30 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	return &Client{Client: base}, nil
}

// Health checks the health of the server
func (c *Client) Health(ctx context.Context) (*server.HealthResponse, error) {
	var health server.HealthResponse
	if err := c.GetJSON(ctx, "/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Status returns the dashboard's view of its backends
func (c *Client) Status(ctx context.Context) (*server.SystemStatusResponse, error) {
	var status server.SystemStatusResponse
	if err := c.GetJSON(ctx, "/api/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Clones lists the most recent clone requests recorded by the dashboard
func (c *Client) Clones(ctx context.Context, limit int) (*server.ClonesResponse, error) {
	path := "/api/clones"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var clones server.ClonesResponse
	if err := c.GetJSON(ctx, path, &clones); err != nil {
		return nil, err
	}
	return &clones, nil
}

// WebSocketConnect establishes a WebSocket connection to path
func (c *Client) WebSocketConnect(ctx context.Context, path string) (*websocket.Conn, error) {
	u, err := url.Parse(c.BaseURL())
	if err != nil {
		return nil, err
	}

	wsScheme := "ws"
	if u.Scheme == "https" {
		wsScheme = "wss"
	}
	wsURL := fmt.Sprintf("%s://%s%s%s", wsScheme, u.Host, u.Path, path)

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL, http.Header{})
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (%s): %w", resp.Status, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %w", err)
	}

	return conn, nil
}

// Watch streams notifications to fn until ctx is done, the server closes
// the stream or fn returns an error
func (c *Client) Watch(ctx context.Context, fn func(notify.Notification) error) error {
	conn, err := c.WebSocketConnect(ctx, "/ws/notifications")
	if err != nil {
		return err
	}
	defer conn.Close()

	// unblock ReadJSON when ctx ends
	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	})
	defer stop()

	for {
		var n notify.Notification
		if err := conn.ReadJSON(&n); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("notification stream: %w", err)
		}
		if err := fn(n); err != nil {
			return err
		}
	}
}
