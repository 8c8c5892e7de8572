package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"sandboxdash/internal/app"
	"sandboxdash/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG directory and SANDBOXDASH_* variable at a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, k := range []string{
		config.EnvVirshURL, config.EnvTmuxURL,
		config.EnvVirshToken, config.EnvTmuxToken,
		config.EnvPort, config.EnvLogLevel,
	} {
		t.Setenv(k, "")
	}
	return dir
}

// writeConfig saves a config pointing at the given backends and returns its path
func writeConfig(t *testing.T, virshURL, tmuxURL string, mutate func(*config.Config)) string {
	t.Helper()
	dir := isolate(t)

	cfg := config.Default()
	cfg.Backends.Virsh.URL = virshURL
	cfg.Backends.Tmux.URL = tmuxURL
	cfg.Backends.HTTPTimeout = config.Duration(2 * time.Second)
	cfg.Storage.Path = filepath.Join(dir, "activity.db")
	if mutate != nil {
		mutate(cfg)
	}

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, cfg.Save(path))
	return path
}

// execute runs args against a fresh command tree and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	a := app.New()
	root := &cobra.Command{Use: "sandboxdash", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().StringP("config", "c", "", "")

	for _, cmd := range ServerCommands(a) {
		root.AddCommand(cmd)
	}
	vms := &cobra.Command{Use: "vms"}
	vms.AddCommand(VMCommands(a)...)
	root.AddCommand(vms)
	tmux := &cobra.Command{Use: "tmux"}
	tmux.AddCommand(TmuxCommands(a)...)
	root.AddCommand(tmux)
	cfg := &cobra.Command{Use: "config"}
	cfg.AddCommand(ConfigCommands(a)...)
	root.AddCommand(cfg)
	root.AddCommand(ActivityCommand(a))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := root.ExecuteContext(ctx)
	return out.String(), err
}
