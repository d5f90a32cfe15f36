package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/operation"
)

// fakeOperator records which operation a command dispatched and with
// what arguments, instead of running any tool.
type fakeOperator struct {
	variant string
	deps    []string
	group   string
	groups  []string
	cfg     *operation.Config
}

func (f *fakeOperator) record(variant string, deps []string, group string, cfg *operation.Config) error {
	f.variant = variant
	f.deps = deps
	f.group = group
	f.cfg = cfg
	return nil
}

func (f *fakeOperator) AddDependencies(deps []string, cfg *operation.Config) error {
	return f.record("add", deps, "", cfg)
}

func (f *fakeOperator) AddOptionalDependencies(deps []string, group string, cfg *operation.Config) error {
	return f.record("addOptional", deps, group, cfg)
}

func (f *fakeOperator) RemoveDependencies(deps []string, cfg *operation.Config) error {
	return f.record("remove", deps, "", cfg)
}

func (f *fakeOperator) RemoveOptionalDependencies(deps []string, group string, cfg *operation.Config) error {
	return f.record("removeOptional", deps, group, cfg)
}

func (f *fakeOperator) UpdateDependencies(deps []string, cfg *operation.Config) error {
	return f.record("update", deps, "", cfg)
}

func (f *fakeOperator) UpdateOptionalDependencies(deps []string, group string, cfg *operation.Config) error {
	return f.record("updateOptional", deps, group, cfg)
}

func (f *fakeOperator) InstallDependencies(cfg *operation.Config) error {
	return f.record("install", nil, "", cfg)
}

func (f *fakeOperator) InstallOptionalDependencies(groups []string, cfg *operation.Config) error {
	f.groups = groups
	return f.record("installOptional", nil, "", cfg)
}

func (f *fakeOperator) Build(cfg *operation.Config) error   { return f.record("build", nil, "", cfg) }
func (f *fakeOperator) Clean(cfg *operation.Config) error   { return f.record("clean", nil, "", cfg) }
func (f *fakeOperator) Format(cfg *operation.Config) error  { return f.record("format", nil, "", cfg) }
func (f *fakeOperator) Lint(cfg *operation.Config) error    { return f.record("lint", nil, "", cfg) }
func (f *fakeOperator) Test(cfg *operation.Config) error    { return f.record("test", nil, "", cfg) }
func (f *fakeOperator) Version(cfg *operation.Config) error { return f.record("version", nil, "", cfg) }

func (f *fakeOperator) Publish(cfg *operation.Config, repository string) error {
	return f.record("publish", nil, repository, cfg)
}

func (f *fakeOperator) InitProject(cfg *operation.Config) error {
	return f.record("init", nil, "", cfg)
}

func (f *fakeOperator) NewProject(cfg *operation.Config) error {
	return f.record("new", nil, "", cfg)
}

func (f *fakeOperator) ActivateEnv(cfg *operation.Config) error {
	return f.record("activate", nil, "", cfg)
}

func (f *fakeOperator) RunCommand(cmdline string, cfg *operation.Config) error {
	return f.record("run", []string{cmdline}, "", cfg)
}

func (f *fakeOperator) ListInterpreters(cfg *operation.Config) error {
	return f.record("pythonList", nil, "", cfg)
}

func (f *fakeOperator) UseInterpreter(version, home string, cfg *operation.Config) error {
	return f.record("pythonUse", []string{version}, "", cfg)
}

// withFakeOperator swaps the ops factory for a recorder for the duration
// of the test.
func withFakeOperator(t *testing.T) *fakeOperator {
	t.Helper()
	fake := &fakeOperator{}
	orig := newOps
	newOps = func() operator { return fake }
	t.Cleanup(func() { newOps = orig })
	return fake
}

// inWorkspace creates a project directory with the given manifest and
// makes it the working directory.
func inWorkspace(t *testing.T, manifest string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte(manifest), 0o644))
	t.Chdir(root)
}

func resetDepFlags() {
	addGroupFlag = ""
	removeGroupFlag = ""
	updateGroupFlag = ""
	installGroupsFlag = nil
}

const depsManifest = `
[project]
name = "demo"
version = "0.1.0"
dependencies = ["primary-dep"]

[project.optional-dependencies]
dev = ["dev-dep"]
`

func TestNamedDependenciesRewritesVersionShorthand(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil stays nil", nil, nil},
		{"bare name passes through", []string{"requests"}, []string{"requests"}},
		{"at pin becomes double equals", []string{"requests@2.28"}, []string{"requests==2.28"}},
		{"mixed list", []string{"rich", "click@8.1"}, []string{"rich", "click==8.1"}},
		{"existing pin untouched", []string{"requests==2.28"}, []string{"requests==2.28"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, namedDependencies(tt.in))
		})
	}
}

func TestAddRoutesToPrimary(t *testing.T) {
	defer resetDepFlags()
	inWorkspace(t, depsManifest)
	fake := withFakeOperator(t)

	require.NoError(t, executeRoot(t, "add", "requests@2.28"))

	assert.Equal(t, "add", fake.variant)
	assert.Equal(t, []string{"requests==2.28"}, fake.deps)
}

func TestAddWithGroupRoutesToOptional(t *testing.T) {
	defer resetDepFlags()
	inWorkspace(t, depsManifest)
	fake := withFakeOperator(t)

	require.NoError(t, executeRoot(t, "add", "requests@2.28", "--group", "dev"))

	assert.Equal(t, "addOptional", fake.variant)
	assert.Equal(t, "dev", fake.group)
	assert.Equal(t, []string{"requests==2.28"}, fake.deps)
}

func TestAddTrailingArgsReachInstallerOptions(t *testing.T) {
	defer resetDepFlags()
	inWorkspace(t, depsManifest)
	fake := withFakeOperator(t)

	require.NoError(t, executeRoot(t, "add", "requests", "--", "--no-cache"))

	require.NotNil(t, fake.cfg)
	require.NotNil(t, fake.cfg.Installer)
	assert.Equal(t, []string{"--no-cache"}, fake.cfg.Installer.Args)
}

func TestRemoveWithGroupRoutesToOptional(t *testing.T) {
	defer resetDepFlags()
	inWorkspace(t, depsManifest)
	fake := withFakeOperator(t)

	require.NoError(t, executeRoot(t, "remove", "pytest", "--group", "dev"))

	assert.Equal(t, "removeOptional", fake.variant)
	assert.Equal(t, "dev", fake.group)
	assert.Equal(t, []string{"pytest"}, fake.deps)
}

func TestUpdateWithGroupRoutesToOptional(t *testing.T) {
	defer resetDepFlags()
	inWorkspace(t, depsManifest)
	fake := withFakeOperator(t)

	require.NoError(t, executeRoot(t, "update", "pytest", "--group", "dev"))

	assert.Equal(t, "updateOptional", fake.variant)
	assert.Equal(t, "dev", fake.group)
	assert.Equal(t, []string{"pytest"}, fake.deps)
}

func TestUpdateWithoutNamesUpdatesPrimarySet(t *testing.T) {
	defer resetDepFlags()
	inWorkspace(t, depsManifest)
	fake := withFakeOperator(t)

	require.NoError(t, executeRoot(t, "update"))

	assert.Equal(t, "update", fake.variant)
	assert.Equal(t, []string{"primary-dep"}, fake.deps)
}

func TestUpdateGroupWithoutNamesUpdatesThatGroup(t *testing.T) {
	defer resetDepFlags()
	inWorkspace(t, depsManifest)
	fake := withFakeOperator(t)

	require.NoError(t, executeRoot(t, "update", "--group", "dev"))

	assert.Equal(t, "updateOptional", fake.variant)
	assert.Equal(t, "dev", fake.group)
	assert.Equal(t, []string{"dev-dep"}, fake.deps)
}

func TestUpdateUnknownGroupWithoutNamesFails(t *testing.T) {
	defer resetDepFlags()
	inWorkspace(t, depsManifest)
	fake := withFakeOperator(t)

	err := executeRoot(t, "update", "--group", "nope")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "nope")
	assert.Empty(t, fake.variant)
}

func TestInstallRoutesToPrimary(t *testing.T) {
	defer resetDepFlags()
	inWorkspace(t, depsManifest)
	fake := withFakeOperator(t)

	require.NoError(t, executeRoot(t, "install"))

	assert.Equal(t, "install", fake.variant)
}

func TestInstallWithGroupsRoutesToOptional(t *testing.T) {
	defer resetDepFlags()
	inWorkspace(t, depsManifest)
	fake := withFakeOperator(t)

	require.NoError(t, executeRoot(t, "install", "--groups", "dev,docs"))

	assert.Equal(t, "installOptional", fake.variant)
	assert.Equal(t, []string{"dev", "docs"}, fake.groups)
}
