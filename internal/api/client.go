// Package api holds the HTTP plumbing shared by the typed backend clients.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sandboxdash/internal/constants"
	"sandboxdash/internal/errors"
	"sandboxdash/internal/logger"
)

// maxErrorBody bounds how much of a failed response body is kept for the error
const maxErrorBody = 4096

// Options configures a backend client
type Options struct {
	// BaseURL is the scheme://host[:port][/prefix] of the backend
	BaseURL string
	// Token is sent as a bearer token when set
	Token string
	// Timeout bounds each request; zero means the package default
	Timeout time.Duration
	// HTTPClient overrides the underlying client (tests)
	HTTPClient *http.Client
}

// Client represents the HTTP client for one backend service
type Client struct {
	service    string
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new backend client instance
func NewClient(service string, opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.InvalidInput("base_url", fmt.Sprintf("%q is not an absolute URL", opts.BaseURL))
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = constants.DefaultHTTPClientTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		service:    service,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		httpClient: httpClient,
	}, nil
}

// Service returns the backend name used in logs and errors
func (c *Client) Service() string {
	return c.service
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON issues a GET and decodes the JSON body into out
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.BackendDecode(c.service, err)
	}
	return nil
}

// PostJSON issues a POST with a JSON body. The response body is decoded into
// out when out is non-nil and the body is not empty.
func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.BackendUnreachable(c.service, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.BackendDecode(c.service, err)
	}
	return nil
}

// Ping checks that the backend answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "failed to build request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.BackendUnreachable(c.service, err)
	}
	resp.Body.Close()
	return nil
}

// Internal HTTP methods

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	start := time.Now()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrJSONMarshal, "failed to marshal body", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "failed to build request", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok && reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	resp, err := c.httpClient.Do(req)
	entry := logger.WithContext(ctx).WithFields(logger.Fields{
		"service":  c.service,
		"method":   method,
		"path":     path,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Debug("Backend request failed")
		if isTimeout(ctx, err) {
			return nil, errors.Wrap(errors.ErrTimeout, "backend request timed out", err)
		}
		return nil, errors.BackendUnreachable(c.service, err)
	}

	entry.WithField("status", resp.StatusCode).Debug("Backend request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, errors.BackendStatus(c.service, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return resp, nil
}

// isTimeout covers both the caller's deadline and the client's own
// per-request timeout
func isTimeout(ctx context.Context, err error) bool {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
