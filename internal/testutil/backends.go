package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"sandboxdash/internal/types"

	"github.com/labstack/echo/v4"
)

// FakeVirsh serves the virsh sandbox API from memory
type FakeVirsh struct {
	*httptest.Server

	mu        sync.Mutex
	vms       []types.VM
	status    int
	clones    []string
	cloneGate chan struct{}
	lastAuth  string
}

// NewFakeVirsh starts a fake virsh sandbox API that lists vms
func NewFakeVirsh(t *testing.T, vms []types.VM) *FakeVirsh {
	t.Helper()

	f := &FakeVirsh{vms: vms}

	e := echo.New()
	e.HideBanner = true
	e.GET("/api/v1/vms", f.handleListVMs)
	e.POST("/api/v1/sandbox/create", f.handleCreate)

	f.Server = httptest.NewServer(e)
	t.Cleanup(f.Close)
	return f
}

// FailWith makes every endpoint answer with status; zero restores normal behaviour
func (f *FakeVirsh) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// HoldClones blocks clone requests until the returned func is called
func (f *FakeVirsh) HoldClones() (release func()) {
	gate := make(chan struct{})
	f.mu.Lock()
	f.cloneGate = gate
	f.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// CloneRequests returns the uuids clone requests were made for
func (f *FakeVirsh) CloneRequests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.clones...)
}

// LastAuthorization returns the Authorization header of the latest request
func (f *FakeVirsh) LastAuthorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *FakeVirsh) handleListVMs(c echo.Context) error {
	f.mu.Lock()
	f.lastAuth = c.Request().Header.Get(echo.HeaderAuthorization)
	status, vms := f.status, f.vms
	f.mu.Unlock()

	if status != 0 {
		return c.String(status, http.StatusText(status))
	}
	if vms == nil {
		vms = []types.VM{}
	}
	return c.JSON(http.StatusOK, vms)
}

func (f *FakeVirsh) handleCreate(c echo.Context) error {
	var req types.SandboxCloneRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	f.mu.Lock()
	f.lastAuth = c.Request().Header.Get(echo.HeaderAuthorization)
	f.clones = append(f.clones, req.UUID)
	status, gate := f.status, f.cloneGate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-c.Request().Context().Done():
			return nil
		}
	}

	if status != 0 {
		return c.String(status, http.StatusText(status))
	}
	return c.JSON(http.StatusOK, types.SandboxCloneResponse{
		Name: "sandbox-" + req.UUID,
		UUID: req.UUID + "-clone",
	})
}

// FakeTmux serves the tmux client API from memory
type FakeTmux struct {
	*httptest.Server

	mu        sync.Mutex
	sessions  []types.TmuxSession
	details   map[string]*types.TmuxSessionDetail
	status    int
	requested []string
}

// NewFakeTmux starts a fake tmux client API. GetSession answers 404 for ids
// missing from details.
func NewFakeTmux(t *testing.T, sessions []types.TmuxSession, details map[string]*types.TmuxSessionDetail) *FakeTmux {
	t.Helper()

	f := &FakeTmux{sessions: sessions, details: details}

	e := echo.New()
	e.HideBanner = true
	e.GET("/api/v1/tmux/sessions", f.handleList)
	e.GET("/api/v1/tmux/sessions/:id", f.handleGet)

	f.Server = httptest.NewServer(e)
	t.Cleanup(f.Close)
	return f
}

// FailWith makes every endpoint answer with status; zero restores normal behaviour
func (f *FakeTmux) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// RequestedIDs returns the session ids GetSession was called with, in order
func (f *FakeTmux) RequestedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requested...)
}

func (f *FakeTmux) handleList(c echo.Context) error {
	f.mu.Lock()
	status, sessions := f.status, f.sessions
	f.mu.Unlock()

	if status != 0 {
		return c.String(status, http.StatusText(status))
	}
	if sessions == nil {
		sessions = []types.TmuxSession{}
	}
	return c.JSON(http.StatusOK, sessions)
}

func (f *FakeTmux) handleGet(c echo.Context) error {
	id := c.Param("id")
	if c.Request().URL.RawPath != "" {
		if decoded, err := url.PathUnescape(id); err == nil {
			id = decoded
		}
	}

	f.mu.Lock()
	f.requested = append(f.requested, id)
	status := f.status
	detail, ok := f.details[id]
	f.mu.Unlock()

	if status != 0 {
		return c.String(status, http.StatusText(status))
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}
	return c.JSON(http.StatusOK, detail)
}
