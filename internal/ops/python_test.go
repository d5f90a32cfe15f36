package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymtool/pym/internal/config"
	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/operation"
)

func touchInterpreter(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755))
}

func TestFindInterpretersSortsNewestFirst(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	touchInterpreter(t, a, "python3.9")
	touchInterpreter(t, a, "python3")
	touchInterpreter(t, b, "python3.11")
	touchInterpreter(t, b, "python")  // unversioned, skipped
	touchInterpreter(t, b, "python2") // pattern requires a 3

	found := findInterpreters(a + string(os.PathListSeparator) + b)

	require.Len(t, found, 3)
	assert.Equal(t, "3.11", found[0].Version.String())
	assert.Equal(t, "3.9", found[1].Version.String())
	assert.Equal(t, "3", found[2].Version.String())
	assert.Equal(t, filepath.Join(b, "python3.11"), found[0].Path)
}

func TestFindInterpretersDeduplicates(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	touchInterpreter(t, a, "python3.11")
	touchInterpreter(t, b, "python3.11")

	found := findInterpreters(a + string(os.PathListSeparator) + b)

	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(a, "python3.11"), found[0].Path)
}

func TestListInterpretersEmptyPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	o, _, _ := newTestOps()
	err := o.ListInterpreters(operation.NewConfig("/ws", false))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestListInterpretersPrintsTable(t *testing.T) {
	dir := t.TempDir()
	touchInterpreter(t, dir, "python3.12")
	t.Setenv("PATH", dir)

	o, _, stdout := newTestOps()
	require.NoError(t, o.ListInterpreters(operation.NewConfig("/ws", false)))

	assert.Equal(t, "3.12\t"+filepath.Join(dir, "python3.12")+"\n", stdout.String())
}

func TestUseInterpreterPinsVersion(t *testing.T) {
	dir := t.TempDir()
	touchInterpreter(t, dir, "python3.10")
	t.Setenv("PATH", dir)
	home := t.TempDir()

	o, _, stdout := newTestOps()
	require.NoError(t, o.UseInterpreter("3.10", home, operation.NewConfig("/ws", false)))

	assert.Contains(t, stdout.String(), "Using Python 3.10")

	global, err := config.LoadGlobal(home)
	require.NoError(t, err)
	assert.Equal(t, "3.10", global.Python)
}

func TestUseInterpreterNotOnPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	o, _, _ := newTestOps()
	err := o.UseInterpreter("3.10", t.TempDir(), operation.NewConfig("/ws", false))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "3.10")
}
