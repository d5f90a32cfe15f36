// Package ops implements the operation entry points the CLI dispatches
// to: one per sub-operation, each accepting the composed configuration.
// Operations delegate the real work to the project environment's Python
// tooling (pip, ruff, black, pytest, build, twine); nothing here resolves
// dependency graphs or talks to an index directly.
package ops

import (
	"fmt"
	"io"
	"os"

	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/logger"
	"github.com/pymtool/pym/internal/operation"
	"github.com/pymtool/pym/internal/pyexec"
	"github.com/pymtool/pym/internal/ui"
)

// Runner abstracts subprocess execution so tests can record invocations
// instead of spawning pip.
type Runner interface {
	Run(name string, args []string, dir string, stdout, stderr io.Writer) (int, error)
	RunShell(cmdline, dir string, stdout, stderr io.Writer) (int, error)
}

// localRunner executes for real via pyexec.
type localRunner struct{}

func (localRunner) Run(name string, args []string, dir string, stdout, stderr io.Writer) (int, error) {
	return pyexec.Run(name, args, dir, stdout, stderr)
}

func (localRunner) RunShell(cmdline, dir string, stdout, stderr io.Writer) (int, error) {
	return pyexec.RunShell(cmdline, dir, stdout, stderr)
}

// Ops carries the execution dependencies shared by every operation.
type Ops struct {
	Runner Runner
	Stdout io.Writer
	Stderr io.Writer

	// ToolPath resolves tool names; swapped in tests to avoid depending
	// on the host filesystem layout.
	ToolPath func(workspaceRoot, name string) string

	log logger.Logger
}

// New creates an Ops backed by real subprocess execution.
func New() *Ops {
	return &Ops{
		Runner:   localRunner{},
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		ToolPath: pyexec.ToolPath,
		log:      logger.NewEnvLogger("[ops]"),
	}
}

// SetLogger replaces the logger. Used by tests.
func (o *Ops) SetLogger(l logger.Logger) {
	o.log = l
}

// out returns the writer tool stdout goes to, honoring quiet verbosity.
func (o *Ops) out(cfg *operation.Config) io.Writer {
	if cfg.Terminal.Verbosity == operation.Quiet {
		return io.Discard
	}
	return o.Stdout
}

// runTool invokes a tool from the workspace environment and converts a
// non-zero exit into a typed failure.
func (o *Ops) runTool(cfg *operation.Config, name string, args ...string) error {
	bin := o.ToolPath(cfg.WorkspaceRoot, name)
	o.log.Debug("running %s %v in %s", bin, args, cfg.WorkspaceRoot)

	code, err := o.Runner.Run(bin, args, cfg.WorkspaceRoot, o.out(cfg), o.Stderr)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.New(errors.ErrExec,
			fmt.Sprintf("%s exited with code %d", name, code),
			"Check the tool output above for details")
	}
	return nil
}

// installerArgs returns the trailing arguments composed for the
// installer, or nil when none were requested.
func installerArgs(cfg *operation.Config) []string {
	if cfg.Installer == nil {
		return nil
	}
	return cfg.Installer.Args
}

// AddDependencies installs new dependencies into the default dependency
// set.
func (o *Ops) AddDependencies(deps []string, cfg *operation.Config) error {
	o.log.Debug("adding %v to primary dependencies", deps)
	return o.pipInstall(cfg, deps)
}

// AddOptionalDependencies installs new dependencies into an optional
// dependency group.
func (o *Ops) AddOptionalDependencies(deps []string, group string, cfg *operation.Config) error {
	o.log.Debug("adding %v to optional group %q", deps, group)
	return o.pipInstall(cfg, deps)
}

// RemoveDependencies uninstalls dependencies from the default set.
func (o *Ops) RemoveDependencies(deps []string, cfg *operation.Config) error {
	o.log.Debug("removing %v from primary dependencies", deps)
	return o.pipUninstall(cfg, deps)
}

// RemoveOptionalDependencies uninstalls dependencies from an optional
// group.
func (o *Ops) RemoveOptionalDependencies(deps []string, group string, cfg *operation.Config) error {
	o.log.Debug("removing %v from optional group %q", deps, group)
	return o.pipUninstall(cfg, deps)
}

// UpdateDependencies upgrades the named dependencies, or everything in
// the default set when none are named.
func (o *Ops) UpdateDependencies(deps []string, cfg *operation.Config) error {
	o.log.Debug("updating %v in primary dependencies", deps)
	return o.pipUpgrade(cfg, deps)
}

// UpdateOptionalDependencies upgrades dependencies within an optional
// group.
func (o *Ops) UpdateOptionalDependencies(deps []string, group string, cfg *operation.Config) error {
	o.log.Debug("updating %v in optional group %q", deps, group)
	return o.pipUpgrade(cfg, deps)
}

func (o *Ops) pipInstall(cfg *operation.Config, deps []string) error {
	args := append([]string{"install"}, deps...)
	args = append(args, installerArgs(cfg)...)
	return o.withProgress(cfg, "Installing dependencies", func() error {
		return o.runTool(cfg, "pip", args...)
	})
}

func (o *Ops) pipUninstall(cfg *operation.Config, deps []string) error {
	args := append([]string{"uninstall", "-y"}, deps...)
	args = append(args, installerArgs(cfg)...)
	return o.runTool(cfg, "pip", args...)
}

func (o *Ops) pipUpgrade(cfg *operation.Config, deps []string) error {
	args := []string{"install", "--upgrade"}
	args = append(args, deps...)
	args = append(args, installerArgs(cfg)...)
	return o.withProgress(cfg, "Updating dependencies", func() error {
		return o.runTool(cfg, "pip", args...)
	})
}

// withProgress shows a spinner for long operations when quiet verbosity
// is hiding the tool output; otherwise the streamed output is the
// progress indication.
func (o *Ops) withProgress(cfg *operation.Config, label string, fn func() error) error {
	if cfg.Terminal.Verbosity == operation.Quiet {
		return ui.Spin(label, fn)
	}
	return fn()
}
