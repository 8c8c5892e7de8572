// Package tmux is the typed client for the tmux client API.
package tmux

import (
	"context"
	"net/url"

	"sandboxdash/internal/api"
	"sandboxdash/internal/types"
)

// ServiceName identifies this backend in logs and errors
const ServiceName = "tmux-client"

const pathSessions = "/api/v1/tmux/sessions"

// Client talks to the tmux client API
type Client struct {
	*api.Client
}

// New creates a tmux client API client
func New(opts api.Options) (*Client, error) {
	base, err := api.NewClient(ServiceName, opts)
	if err != nil {
		return nil, err
	}
	return &Client{Client: base}, nil
}

// ListSessions returns every tmux session known to the backend
func (c *Client) ListSessions(ctx context.Context) ([]types.TmuxSession, error) {
	var sessions []types.TmuxSession
	if err := c.GetJSON(ctx, pathSessions, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []types.TmuxSession{}
	}
	return sessions, nil
}

// GetSession returns one session with its transcript. The id is passed
// through as-is; an unknown id fails at the backend.
func (c *Client) GetSession(ctx context.Context, id string) (*types.TmuxSessionDetail, error) {
	var session types.TmuxSessionDetail
	if err := c.GetJSON(ctx, pathSessions+"/"+url.PathEscape(id), &session); err != nil {
		return nil, err
	}
	if session.Commands == nil {
		session.Commands = []types.CommandOutput{}
	}
	return &session, nil
}
