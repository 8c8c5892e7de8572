package commands

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"sandboxdash/internal/errors"
	"sandboxdash/internal/server"
	"sandboxdash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestServerCommands(t *testing.T) {
	commands := ServerCommands(nil)

	require.Len(t, commands, 3)
	names := map[string]bool{}
	for _, cmd := range commands {
		names[cmd.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["status"])
	assert.True(t, names["watch"])

	serve := commands[0]
	assert.NotNil(t, serve.Flags().Lookup("host"))
	assert.NotNil(t, serve.Flags().Lookup("port"))
}

func TestAcquireLock_SingleInstance(t *testing.T) {
	isolate(t)

	first, err := acquireLock()
	require.NoError(t, err)
	defer first.Unlock()

	_, err = acquireLock()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAlreadyInUse))

	require.NoError(t, first.Unlock())
	again, err := acquireLock()
	require.NoError(t, err)
	again.Unlock()
}

func TestServe_RefusesSecondInstance(t *testing.T) {
	isolate(t)

	lock, err := acquireLock()
	require.NoError(t, err)
	defer lock.Unlock()

	_, err = execute(t, "serve")
	require.Error(t, err)
	assert.Equal(t, 75, ExitCode(err))
}

func TestServe_RejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, "http://virsh.local", "http://tmux.local", nil)

	_, err := execute(t, "--config", path, "serve", "--port", "70000")

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConfigValidation))
}

func TestStatus(t *testing.T) {
	isolate(t)

	pinger := &testutil.MockPinger{}
	pinger.On("Ping", mock.Anything).Return(fmt.Errorf("connection refused"))

	s, err := server.New(server.DefaultConfig(), server.Dependencies{
		VMs:      &testutil.MockVMService{},
		Sessions: &testutil.MockSessionService{},
		Probes:   []server.Probe{{Name: "virsh-sandbox", Target: pinger}},
	})
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	out, err := execute(t, "status", "--url", srv.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "degraded")
	assert.Contains(t, out, "virsh-sandbox")
	assert.Contains(t, out, "unreachable")
	assert.Contains(t, out, "connection refused")
}

func TestStatus_Unreachable(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := execute(t, "status", "--url", url)

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrNetworkConnection))
}

func TestHandleError(t *testing.T) {
	assert.Nil(t, HandleError(nil))

	plain := fmt.Errorf("plain")
	assert.Equal(t, plain, HandleError(plain))

	err := HandleError(errors.BackendUnreachable("virsh-sandbox", fmt.Errorf("refused")))
	assert.Contains(t, err.Error(), "Tip:")

	err = HandleError(errors.ConfigNotFound("/tmp/x.toml"))
	assert.Contains(t, err.Error(), "config init")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(fmt.Errorf("plain")))
	assert.Equal(t, 2, ExitCode(errors.ConfigNotFound("x")))
	assert.Equal(t, 69, ExitCode(fmt.Errorf("wrapped: %w", errors.BackendUnreachable("tmux-client", context.DeadlineExceeded))))
	assert.Equal(t, 1, ExitCode(errors.New(errors.ErrInternal, "x")))
}
