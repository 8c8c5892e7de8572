package commands

import (
	"net/http"
	"strings"
	"testing"

	"sandboxdash/internal/config"
	"sandboxdash/internal/errors"
	"sandboxdash/internal/testutil"
	"sandboxdash/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cliVMs = []types.VM{
	{Name: "debian-base", IPAddress: "192.168.122.11", UUID: "vm-2"},
	{Name: "ubuntu-base", IPAddress: "192.168.122.10", UUID: "vm-1"},
	{Name: "arch-base", IPAddress: "192.168.122.12", UUID: "vm-3"},
}

func TestVMsList(t *testing.T) {
	virsh := testutil.NewFakeVirsh(t, cliVMs)
	tmux := testutil.NewFakeTmux(t, nil, nil)
	path := writeConfig(t, virsh.URL, tmux.URL, nil)

	out, err := execute(t, "--config", path, "vms", "list")

	require.NoError(t, err)
	for _, vm := range cliVMs {
		assert.Contains(t, out, vm.Name)
		assert.Contains(t, out, vm.IPAddress)
		assert.Contains(t, out, vm.UUID)
	}
	assert.Contains(t, out, "IP Address")
	// backend order
	assert.Less(t, strings.Index(out, "debian-base"), strings.Index(out, "ubuntu-base"))
}

func TestVMsList_Sorted(t *testing.T) {
	virsh := testutil.NewFakeVirsh(t, cliVMs)
	tmux := testutil.NewFakeTmux(t, nil, nil)
	path := writeConfig(t, virsh.URL, tmux.URL, nil)

	out, err := execute(t, "--config", path, "vms", "list", "--sort", "name", "--desc")

	require.NoError(t, err)
	ubuntu := strings.Index(out, "ubuntu-base")
	debian := strings.Index(out, "debian-base")
	arch := strings.Index(out, "arch-base")
	assert.True(t, ubuntu < debian && debian < arch, out)
}

func TestVMsList_Empty(t *testing.T) {
	virsh := testutil.NewFakeVirsh(t, nil)
	tmux := testutil.NewFakeTmux(t, nil, nil)
	path := writeConfig(t, virsh.URL, tmux.URL, nil)

	out, err := execute(t, "--config", path, "vms", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No VMs found.")
}

func TestVMsList_BackendError(t *testing.T) {
	virsh := testutil.NewFakeVirsh(t, nil)
	virsh.FailWith(http.StatusInternalServerError)
	tmux := testutil.NewFakeTmux(t, nil, nil)
	path := writeConfig(t, virsh.URL, tmux.URL, nil)

	_, err := execute(t, "--config", path, "vms", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load VMs")
	assert.True(t, errors.HasCode(err, errors.ErrAPICall))
	assert.Equal(t, 69, ExitCode(err))
}

func TestVMsClone(t *testing.T) {
	virsh := testutil.NewFakeVirsh(t, cliVMs)
	tmux := testutil.NewFakeTmux(t, nil, nil)
	path := writeConfig(t, virsh.URL, tmux.URL, nil)

	out, err := execute(t, "--config", path, "vms", "clone", "vm-1", "--name", "ubuntu-base")

	require.NoError(t, err)
	assert.Contains(t, out, "Clone of ubuntu-base requested")
	assert.Contains(t, out, "sandbox-vm-1")
	assert.Equal(t, []string{"vm-1"}, virsh.CloneRequests())

	// recorded in the activity log
	out, err = execute(t, "--config", path, "activity")
	require.NoError(t, err)
	assert.Contains(t, out, "ubuntu-base")
	assert.Contains(t, out, "succeeded")
}

func TestVMsClone_Failure(t *testing.T) {
	virsh := testutil.NewFakeVirsh(t, nil)
	virsh.FailWith(http.StatusConflict)
	tmux := testutil.NewFakeTmux(t, nil, nil)
	path := writeConfig(t, virsh.URL, tmux.URL, func(c *config.Config) {
		c.Storage.Enabled = false
	})

	_, err := execute(t, "--config", path, "vms", "clone", "vm-9")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clone vm-9")
	assert.Equal(t, []string{"vm-9"}, virsh.CloneRequests())
}

func TestVMsClone_RequiresUUID(t *testing.T) {
	_, err := execute(t, "vms", "clone")
	assert.Error(t, err)
}
