package commands

import (
	"strings"
	"testing"

	"sandboxdash/internal/errors"
	"sandboxdash/internal/testutil"
	"sandboxdash/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTmuxList(t *testing.T) {
	virsh := testutil.NewFakeVirsh(t, nil)
	tmux := testutil.NewFakeTmux(t, []types.TmuxSession{
		{ID: "abc-123", Status: "live", VMCloneID: "sbx-1"},
		{ID: "def-456", Status: "stopped", VMCloneID: "sbx-2"},
	}, nil)
	path := writeConfig(t, virsh.URL, tmux.URL, nil)

	out, err := execute(t, "--config", path, "tmux", "list", "--sort", "id", "--desc")

	require.NoError(t, err)
	assert.Contains(t, out, "VM Clone ID")
	assert.Contains(t, out, "sbx-1")
	assert.Contains(t, out, "stopped")
	assert.Less(t, strings.Index(out, "def-456"), strings.Index(out, "abc-123"))
}

func TestTmuxList_Empty(t *testing.T) {
	virsh := testutil.NewFakeVirsh(t, nil)
	tmux := testutil.NewFakeTmux(t, nil, nil)
	path := writeConfig(t, virsh.URL, tmux.URL, nil)

	out, err := execute(t, "--config", path, "tmux", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No Tmux sessions found.")
}

func TestTmuxShow(t *testing.T) {
	virsh := testutil.NewFakeVirsh(t, nil)
	tmux := testutil.NewFakeTmux(t, nil, map[string]*types.TmuxSessionDetail{
		"abc-123": {
			ID:            "abc-123",
			Status:        "live",
			NumberOfPanes: 3,
			Commands: []types.CommandOutput{
				{Command: "ls -la", Output: "total 0\n  drwxr-xr-x  ."},
				{Command: "whoami", Output: "root"},
			},
		},
	})
	path := writeConfig(t, virsh.URL, tmux.URL, nil)

	out, err := execute(t, "--config", path, "tmux", "show", "abc-123")

	require.NoError(t, err)
	assert.Contains(t, out, "Tmux Session Details")
	assert.Contains(t, out, "Number of Panes:  3")
	assert.Contains(t, out, "Command 1")
	assert.Contains(t, out, "Command 2")
	assert.Contains(t, out, "total 0\n  drwxr-xr-x  .")
	assert.Less(t, strings.Index(out, "ls -la"), strings.Index(out, "whoami"))
	assert.Equal(t, []string{"abc-123"}, tmux.RequestedIDs())
}

func TestTmuxShow_Unknown(t *testing.T) {
	virsh := testutil.NewFakeVirsh(t, nil)
	tmux := testutil.NewFakeTmux(t, nil, nil)
	path := writeConfig(t, virsh.URL, tmux.URL, nil)

	_, err := execute(t, "--config", path, "tmux", "show", "nope")

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrNotFound))
	assert.Equal(t, []string{"nope"}, tmux.RequestedIDs())
}
