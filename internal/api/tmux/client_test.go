package tmux

import (
	"context"
	"net/http"
	"testing"

	"sandboxdash/internal/api"
	"sandboxdash/internal/errors"
	"sandboxdash/internal/testutil"
	"sandboxdash/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessions = []types.TmuxSession{
	{ID: "abc-123", Status: "live", VMCloneID: "sbx-1"},
	{ID: "def-456", Status: "stopped", VMCloneID: "sbx-2"},
}

func newClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(api.Options{BaseURL: url})
	require.NoError(t, err)
	return c
}

func TestListSessions(t *testing.T) {
	backend := testutil.NewFakeTmux(t, sessions, nil)
	c := newClient(t, backend.URL)

	got, err := c.ListSessions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sessions, got)
}

func TestListSessions_BackendError(t *testing.T) {
	backend := testutil.NewFakeTmux(t, nil, nil)
	backend.FailWith(http.StatusBadGateway)
	c := newClient(t, backend.URL)

	_, err := c.ListSessions(context.Background())

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAPICall))
}

func TestGetSession(t *testing.T) {
	detail := &types.TmuxSessionDetail{
		ID:            "abc-123",
		Status:        "live",
		NumberOfPanes: 2,
		Commands:      []types.CommandOutput{{Command: "ls", Output: "bin etc"}},
	}
	backend := testutil.NewFakeTmux(t, sessions, map[string]*types.TmuxSessionDetail{"abc-123": detail})
	c := newClient(t, backend.URL)

	got, err := c.GetSession(context.Background(), "abc-123")

	require.NoError(t, err)
	assert.Equal(t, detail, got)
	assert.Equal(t, []string{"abc-123"}, backend.RequestedIDs())
}

func TestGetSession_NilCommands(t *testing.T) {
	backend := testutil.NewFakeTmux(t, nil, map[string]*types.TmuxSessionDetail{
		"abc-123": {ID: "abc-123", Status: "live"},
	})
	c := newClient(t, backend.URL)

	got, err := c.GetSession(context.Background(), "abc-123")

	require.NoError(t, err)
	assert.NotNil(t, got.Commands)
	assert.Empty(t, got.Commands)
}

func TestGetSession_Unknown(t *testing.T) {
	backend := testutil.NewFakeTmux(t, nil, nil)
	c := newClient(t, backend.URL)

	_, err := c.GetSession(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrNotFound))
	assert.Equal(t, []string{"missing"}, backend.RequestedIDs())
}

func TestGetSession_IDIsPathEscaped(t *testing.T) {
	backend := testutil.NewFakeTmux(t, nil, map[string]*types.TmuxSessionDetail{
		"a b": {ID: "a b", Status: "live"},
	})
	c := newClient(t, backend.URL)

	got, err := c.GetSession(context.Background(), "a b")

	require.NoError(t, err)
	assert.Equal(t, "a b", got.ID)
	assert.Equal(t, []string{"a b"}, backend.RequestedIDs())
}

func TestGetSession_IDWithSlashIsEscapedOnce(t *testing.T) {
	backend := testutil.NewFakeTmux(t, nil, map[string]*types.TmuxSessionDetail{
		"team/abc": {ID: "team/abc", Status: "live"},
	})
	c := newClient(t, backend.URL)

	got, err := c.GetSession(context.Background(), "team/abc")

	require.NoError(t, err)
	assert.Equal(t, "team/abc", got.ID)
	assert.Equal(t, []string{"team/abc"}, backend.RequestedIDs())
}
