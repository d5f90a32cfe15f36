package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymtool/pym/internal/errors"
)

func writeGlobal(t *testing.T, home, content string) string {
	t.Helper()
	path := GlobalPath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGlobalDefaults(t *testing.T) {
	cfg, err := LoadGlobal(t.TempDir())

	require.NoError(t, err)
	assert.False(t, cfg.Quiet)
	assert.Empty(t, cfg.Python)
	assert.Empty(t, cfg.PublishRepository)
}

func TestLoadGlobalEmptyHome(t *testing.T) {
	cfg, err := LoadGlobal("")
	require.NoError(t, err)
	assert.False(t, cfg.Quiet)
}

func TestLoadGlobal(t *testing.T) {
	home := t.TempDir()
	writeGlobal(t, home, `
quiet: true
python: "3.11"
publish_repository: https://test.pypi.org/legacy/
`)

	cfg, err := LoadGlobal(home)
	require.NoError(t, err)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "3.11", cfg.Python)
	assert.Equal(t, "https://test.pypi.org/legacy/", cfg.PublishRepository)
}

func TestLoadGlobalInvalidYaml(t *testing.T) {
	home := t.TempDir()
	writeGlobal(t, home, "quiet: [unterminated")

	_, err := LoadGlobal(home)
	require.Error(t, err)
}

func TestSetPythonPinCreatesFile(t *testing.T) {
	home := t.TempDir()

	require.NoError(t, SetPythonPin(home, "3.12"))

	cfg, err := LoadGlobal(home)
	require.NoError(t, err)
	assert.Equal(t, "3.12", cfg.Python)
}

func TestSetPythonPinUpdatesExistingPin(t *testing.T) {
	home := t.TempDir()
	writeGlobal(t, home, "python: \"3.10\"\nquiet: true\n")

	require.NoError(t, SetPythonPin(home, "3.12"))

	cfg, err := LoadGlobal(home)
	require.NoError(t, err)
	assert.Equal(t, "3.12", cfg.Python)
	// Unrelated settings survive the rewrite.
	assert.True(t, cfg.Quiet)
}

func TestSetPythonPinPreservesComments(t *testing.T) {
	home := t.TempDir()
	path := writeGlobal(t, home, "# my settings\nquiet: true\n")

	require.NoError(t, SetPythonPin(home, "3.11"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my settings")
	assert.Contains(t, string(data), "python: \"3.11\"")
}

func TestSetPythonPinRequiresHome(t *testing.T) {
	err := SetPythonPin("", "3.11")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrIO))
}

func TestSetPythonPinRejectsInvalidYaml(t *testing.T) {
	home := t.TempDir()
	writeGlobal(t, home, "quiet: [unclosed")

	err := SetPythonPin(home, "3.11")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
