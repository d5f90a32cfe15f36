package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/operation"
	"github.com/pymtool/pym/internal/workspace"
)

func TestInitProjectAppLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "my-tool")
	require.NoError(t, os.MkdirAll(root, 0o755))

	o, _, _ := newTestOps()
	cfg := operation.NewConfig(root, false).WithWorkspace(operation.KindApp, false)

	require.NoError(t, o.InitProject(cfg))

	meta, err := workspace.ReadMetadata(root)
	require.NoError(t, err)
	assert.Equal(t, "my-tool", meta.Name)
	assert.Equal(t, "0.1.0", meta.Version)

	assert.FileExists(t, filepath.Join(root, "src", "my_tool", "__init__.py"))
	assert.FileExists(t, filepath.Join(root, "src", "my_tool", "main.py"))

	manifest, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "[project.scripts]")
	assert.Contains(t, string(manifest), `my-tool = "my_tool.main:main"`)
}

func TestInitProjectLibLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "mylib")
	require.NoError(t, os.MkdirAll(root, 0o755))

	o, _, _ := newTestOps()
	cfg := operation.NewConfig(root, false).WithWorkspace(operation.KindLib, false)

	require.NoError(t, o.InitProject(cfg))

	assert.FileExists(t, filepath.Join(root, "src", "mylib", "__init__.py"))
	assert.NoFileExists(t, filepath.Join(root, "src", "mylib", "main.py"))

	manifest, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	require.NoError(t, err)
	assert.NotContains(t, string(manifest), "[project.scripts]")
}

func TestInitProjectRefusesExistingManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"x\"\n")

	o, _, _ := newTestOps()
	err := o.InitProject(operation.NewConfig(root, false).WithWorkspace(operation.KindApp, false))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestNewProjectCreatesDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "fresh")

	o, _, _ := newTestOps()
	cfg := operation.NewConfig(root, false).WithWorkspace(operation.KindLib, false)

	require.NoError(t, o.NewProject(cfg))

	assert.FileExists(t, filepath.Join(root, "pyproject.toml"))
	assert.FileExists(t, filepath.Join(root, "src", "fresh", "__init__.py"))
}

func TestNewProjectWithGit(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vcsproj")

	o, runner, _ := newTestOps()
	cfg := operation.NewConfig(root, false).WithWorkspace(operation.KindApp, true)

	require.NoError(t, o.NewProject(cfg))

	assert.FileExists(t, filepath.Join(root, ".gitignore"))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "git", runner.calls[0].name)
	assert.Equal(t, []string{"init", root}, runner.calls[0].args)
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"simple", "simple"},
		{"my-tool", "my_tool"},
		{"My Tool", "my_tool"},
		{"a-b-c", "a_b_c"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, packageName(tt.in), tt.in)
	}
}
