// Package pyexec runs Python tooling as local subprocesses. It is the
// thin boundary between composed operation configurations and the actual
// pip/ruff/black/pytest binaries, preferring the project's virtual
// environment over whatever is on PATH.
package pyexec

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pymtool/pym/internal/errors"
)

// VenvDir is the conventional virtual environment directory inside a
// workspace root.
const VenvDir = ".venv"

// Run executes a binary with argv-style arguments, streaming output to
// the provided writers. Returns the exit code; a non-zero exit is not an
// error here — callers decide how to report tool failures.
func Run(name string, args []string, workDir string, stdout, stderr io.Writer) (int, error) {
	command := exec.Command(name, args...)
	if workDir != "" {
		command.Dir = workDir
	}
	command.Stdout = stdout
	command.Stderr = stderr

	runErr := command.Run()
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.WrapWithCode(runErr, errors.ErrExec,
			"Couldn't run "+name,
			"Make sure the tool is installed in the project environment")
	}
	return 0, nil
}

// RunShell executes a command line through the user's shell, for commands
// the user typed themselves (`pym run ...`) where pipes and expansions
// should work.
func RunShell(cmdline, workDir string, stdout, stderr io.Writer) (int, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	command := exec.Command(shell, "-c", cmdline)
	if workDir != "" {
		command.Dir = workDir
	}
	command.Stdin = os.Stdin
	command.Stdout = stdout
	command.Stderr = stderr

	runErr := command.Run()
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.WrapWithCode(runErr, errors.ErrExec,
			"Couldn't run the command",
			"Make sure the command exists and is executable.")
	}
	return 0, nil
}

// ToolPath resolves a tool name against the workspace's virtual
// environment first, falling back to the bare name (PATH lookup at exec
// time) when the venv does not carry it.
func ToolPath(workspaceRoot, name string) string {
	venvBin := filepath.Join(workspaceRoot, VenvDir, "bin", name)
	if info, err := os.Stat(venvBin); err == nil && !info.IsDir() {
		return venvBin
	}
	return name
}
