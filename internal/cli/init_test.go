package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxloc/internal/cli"
	"github.com/yaklabco/aspxloc/pkg/config"
)

func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"init"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestInitCommand_Minimal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".aspxloc.yml")

	out, err := runInit(t, "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "created configuration file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# aspxloc configuration")

	_, err = config.FromYAML(data)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".aspxloc.yml")
	require.NoError(t, os.WriteFile(path, []byte("keep: me\n"), 0o644))

	_, err := runInit(t, "--output", path)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "keep: me\n", string(data))

	_, err = runInit(t, "--output", path, "--force")
	require.NoError(t, err)

	data, readErr = os.ReadFile(path)
	require.NoError(t, readErr)
	assert.NotEqual(t, "keep: me\n", string(data))
}

func TestInitCommand_JSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "aspxloc.json")

	_, err := runInit(t, "--format", "json", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
}

func TestInitCommand_Pack(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".aspxloc.yml")

	_, err := runInit(t, "--pack", "core", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Rule pack: core")

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 5)

	text := cfg.Rules["LOC001"]
	require.NotNil(t, text.Enabled)
	assert.True(t, *text.Enabled)

	code := cfg.Rules["LOC003"]
	require.NotNil(t, code.Enabled)
	assert.False(t, *code.Enabled)
}

func TestInitCommand_InvalidInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"--format", "toml"}},
		{"unknown pack", []string{"--pack", "lenient"}},
		{"pack as json", []string{"--pack", "core", "--format", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, tt.name+".out")
			_, err := runInit(t, append(tt.args, "--output", path)...)
			require.ErrorIs(t, err, cli.ErrInvalidUsage)

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}
