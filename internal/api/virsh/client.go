// Package virsh is the typed client for the virsh sandbox API.
package virsh

import (
	"context"
	"strings"

	"sandboxdash/internal/api"
	"sandboxdash/internal/errors"
	"sandboxdash/internal/types"
)

// ServiceName identifies this backend in logs and errors
const ServiceName = "virsh-sandbox"

const (
	pathVMs           = "/api/v1/vms"
	pathSandboxCreate = "/api/v1/sandbox/create"
)

// Client talks to the virsh sandbox API
type Client struct {
	*api.Client
}

// New creates a virsh sandbox client
func New(opts api.Options) (*Client, error) {
	base, err := api.NewClient(ServiceName, opts)
	if err != nil {
		return nil, err
	}
	return &Client{Client: base}, nil
}

// ListVMs returns every VM known to the backend, in backend order
func (c *Client) ListVMs(ctx context.Context) ([]types.VM, error) {
	var vms []types.VM
	if err := c.GetJSON(ctx, pathVMs, &vms); err != nil {
		return nil, err
	}
	if vms == nil {
		vms = []types.VM{}
	}
	return vms, nil
}

// CreateSandbox asks the backend to clone the VM identified by uuid
func (c *Client) CreateSandbox(ctx context.Context, uuid string) (*types.SandboxCloneResponse, error) {
	if strings.TrimSpace(uuid) == "" {
		return nil, errors.InvalidInput("uuid", "must not be empty")
	}

	var resp types.SandboxCloneResponse
	if err := c.PostJSON(ctx, pathSandboxCreate, types.SandboxCloneRequest{UUID: uuid}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
