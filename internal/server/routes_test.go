package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sandboxdash/internal/errors"
	"sandboxdash/internal/testutil"
	"sandboxdash/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAPI_ListVMs(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(m *testutil.MockVMService)
		wantStatus int
		wantTotal  int
		wantCode   string
	}{
		{
			name: "success",
			setup: func(m *testutil.MockVMService) {
				m.On("ListVMs", mock.Anything).Return(testVMs, nil)
			},
			wantStatus: http.StatusOK,
			wantTotal:  len(testVMs),
		},
		{
			name: "backend error status",
			setup: func(m *testutil.MockVMService) {
				m.On("ListVMs", mock.Anything).
					Return(nil, errors.BackendStatus("virsh-sandbox", http.StatusInternalServerError, "boom"))
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   string(errors.ErrAPICall),
		},
		{
			name: "backend unreachable",
			setup: func(m *testutil.MockVMService) {
				m.On("ListVMs", mock.Anything).
					Return(nil, errors.BackendUnreachable("virsh-sandbox", fmt.Errorf("dial tcp: connection refused")))
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   string(errors.ErrNetworkConnection),
		},
		{
			name: "timeout",
			setup: func(m *testutil.MockVMService) {
				m.On("ListVMs", mock.Anything).
					Return(nil, errors.Wrap(errors.ErrTimeout, "backend request timed out", fmt.Errorf("deadline")))
			},
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   string(errors.ErrTimeout),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, Dependencies{})
			tt.setup(ts.vms)

			rec := ts.get(t, "/api/vms")

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				errResp, err := testutil.ParseErrorResponse(rec.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.wantCode, errResp.Error.Code)
				return
			}

			var resp VMsResponse
			require.NoError(t, testutil.DecodeJSON(rec.Body, &resp))
			assert.Equal(t, tt.wantTotal, resp.Total)
			assert.Equal(t, testVMs, resp.VMs)
		})
	}
}

func TestAPI_CloneVM(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		ts := newTestServer(t, Dependencies{})
		ts.vms.On("CreateSandbox", mock.Anything, "vm-1").Return(&types.SandboxCloneResponse{}, nil)

		req, err := testutil.NewJSONRequest(http.MethodPost, "/api/vms/vm-1/clone", CloneVMRequest{Name: "ubuntu-base"})
		require.NoError(t, err)
		rec := ts.do(t, req)

		require.Equal(t, http.StatusAccepted, rec.Code)
		var resp CloneAcceptedResponse
		require.NoError(t, testutil.DecodeJSON(rec.Body, &resp))
		assert.Equal(t, "vm-1", resp.UUID)
		assert.Equal(t, "cloning", resp.Status)

		ts.Tracker().Wait()
		ts.vms.AssertExpectations(t)
	})

	t.Run("without body", func(t *testing.T) {
		ts := newTestServer(t, Dependencies{})
		ts.vms.On("CreateSandbox", mock.Anything, "vm-3").Return(&types.SandboxCloneResponse{}, nil)

		rec := ts.do(t, httptest.NewRequest(http.MethodPost, "/api/vms/vm-3/clone", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		ts.Tracker().Wait()
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := newTestServer(t, Dependencies{})

		req := httptest.NewRequest(http.MethodPost, "/api/vms/vm-1/clone", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := ts.do(t, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		errResp, err := testutil.ParseErrorResponse(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, string(errors.ErrInvalidInput), errResp.Error.Code)
		ts.vms.AssertNotCalled(t, "CreateSandbox", mock.Anything, mock.Anything)
	})
}

func TestAPI_Sessions(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		ts := newTestServer(t, Dependencies{})
		ts.sessions.On("ListSessions", mock.Anything).Return(testSessions, nil)

		rec := ts.get(t, "/api/tmux/sessions")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SessionsResponse
		require.NoError(t, testutil.DecodeJSON(rec.Body, &resp))
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, testSessions, resp.Sessions)
	})

	t.Run("get", func(t *testing.T) {
		ts := newTestServer(t, Dependencies{})
		detail := &types.TmuxSessionDetail{ID: "abc-123", Status: "live", NumberOfPanes: 1, Commands: []types.CommandOutput{}}
		ts.sessions.On("GetSession", mock.Anything, "abc-123").Return(detail, nil)

		rec := ts.get(t, "/api/tmux/sessions/abc-123")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp types.TmuxSessionDetail
		require.NoError(t, testutil.DecodeJSON(rec.Body, &resp))
		assert.Equal(t, *detail, resp)
	})

	t.Run("get id with escaped slash", func(t *testing.T) {
		ts := newTestServer(t, Dependencies{})
		ts.sessions.On("GetSession", mock.Anything, "team/abc").
			Return(&types.TmuxSessionDetail{ID: "team/abc", Status: "live"}, nil)

		rec := ts.get(t, "/api/tmux/sessions/team%2Fabc")

		require.Equal(t, http.StatusOK, rec.Code)
		ts.sessions.AssertExpectations(t)
	})

	t.Run("get unknown", func(t *testing.T) {
		ts := newTestServer(t, Dependencies{})
		ts.sessions.On("GetSession", mock.Anything, "nope").
			Return(nil, errors.BackendStatus("tmux-client", http.StatusNotFound, "not found"))

		rec := ts.get(t, "/api/tmux/sessions/nope")

		require.Equal(t, http.StatusNotFound, rec.Code)
		errResp, err := testutil.ParseErrorResponse(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, string(errors.ErrNotFound), errResp.Error.Code)
	})
}

func TestAPI_SystemStatus(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		virsh := &testutil.MockPinger{}
		virsh.On("Ping", mock.Anything).Return(nil)
		tmux := &testutil.MockPinger{}
		tmux.On("Ping", mock.Anything).Return(nil)

		ts := newTestServer(t, Dependencies{Probes: []Probe{
			{Name: "virsh-sandbox", Target: virsh},
			{Name: "tmux-client", Target: tmux},
		}})

		rec := ts.get(t, "/api/status")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SystemStatusResponse
		require.NoError(t, testutil.DecodeJSON(rec.Body, &resp))
		assert.Equal(t, "healthy", resp.Status)
		require.Len(t, resp.Backends, 2)
		assert.Equal(t, "virsh-sandbox", resp.Backends[0].Name)
		assert.Equal(t, "tmux-client", resp.Backends[1].Name)
		virsh.AssertExpectations(t)
		tmux.AssertExpectations(t)
	})

	t.Run("one unreachable", func(t *testing.T) {
		virsh := &testutil.MockPinger{}
		virsh.On("Ping", mock.Anything).Return(fmt.Errorf("connection refused"))
		tmux := &testutil.MockPinger{}
		tmux.On("Ping", mock.Anything).Return(nil)

		ts := newTestServer(t, Dependencies{Probes: []Probe{
			{Name: "virsh-sandbox", Target: virsh},
			{Name: "tmux-client", Target: tmux},
		}})

		rec := ts.get(t, "/api/status")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SystemStatusResponse
		require.NoError(t, testutil.DecodeJSON(rec.Body, &resp))
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "unreachable", resp.Backends[0].Status)
		assert.Equal(t, "connection refused", resp.Backends[0].Error)
		assert.Equal(t, "healthy", resp.Backends[1].Status)
	})
}
