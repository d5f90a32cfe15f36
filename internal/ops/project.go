package ops

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/operation"
	"github.com/pymtool/pym/internal/workspace"
)

// InstallDependencies installs the project's default dependency set from
// pyproject.toml.
func (o *Ops) InstallDependencies(cfg *operation.Config) error {
	meta, err := workspace.ReadMetadata(cfg.WorkspaceRoot)
	if err != nil {
		return err
	}
	if len(meta.Dependencies) == 0 {
		o.log.Info("no dependencies declared")
		return nil
	}
	return o.pipInstall(cfg, meta.Dependencies)
}

// InstallOptionalDependencies installs the named optional dependency
// groups from pyproject.toml.
func (o *Ops) InstallOptionalDependencies(groups []string, cfg *operation.Config) error {
	meta, err := workspace.ReadMetadata(cfg.WorkspaceRoot)
	if err != nil {
		return err
	}

	var deps []string
	for _, group := range groups {
		groupDeps, ok := meta.OptionalDependencies[group]
		if !ok {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("No optional dependency group '%s' in pyproject.toml", group),
				"Check [project.optional-dependencies] for the available groups")
		}
		deps = append(deps, groupDeps...)
	}
	if len(deps) == 0 {
		o.log.Info("optional groups %v declare no dependencies", groups)
		return nil
	}
	return o.pipInstall(cfg, deps)
}

// Build produces the sdist and wheel via the standard build frontend.
func (o *Ops) Build(cfg *operation.Config) error {
	args := []string{"-m", "build"}
	if cfg.Build != nil {
		args = append(args, cfg.Build.Args...)
	}
	return o.withProgress(cfg, "Building distribution", func() error {
		return o.runTool(cfg, "python", args...)
	})
}

// Clean removes build artifacts: always dist/, plus compiled bytecode and
// __pycache__ directories when requested.
func (o *Ops) Clean(cfg *operation.Config) error {
	root := cfg.WorkspaceRoot

	if err := os.RemoveAll(filepath.Join(root, "dist")); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot remove dist directory", "")
	}

	includePyc := cfg.Clean != nil && cfg.Clean.IncludeCompiledBytecode
	includePycache := cfg.Clean != nil && cfg.Clean.IncludePycache
	if !includePyc && !includePycache {
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if includePycache && d.IsDir() && d.Name() == "__pycache__" {
			if err := os.RemoveAll(path); err != nil {
				return err
			}
			return filepath.SkipDir
		}
		if includePyc && !d.IsDir() && strings.HasSuffix(d.Name(), ".pyc") {
			return os.Remove(path)
		}
		return nil
	})
}

// Format runs the formatter over the project.
func (o *Ops) Format(cfg *operation.Config) error {
	args := []string{"."}
	if cfg.Format != nil {
		args = append(args, cfg.Format.Args...)
	}
	return o.runTool(cfg, "black", args...)
}

// Lint runs the linter, plus the type checker when the composed options
// ask for it.
func (o *Ops) Lint(cfg *operation.Config) error {
	args := []string{"check", "."}
	includeTypes := false
	if cfg.Lint != nil {
		args = append(args, cfg.Lint.Args...)
		includeTypes = cfg.Lint.IncludeTypes
	}

	if err := o.runTool(cfg, "ruff", args...); err != nil {
		return err
	}
	if includeTypes {
		return o.runTool(cfg, "mypy", ".")
	}
	return nil
}

// Test runs the test suite.
func (o *Ops) Test(cfg *operation.Config) error {
	var args []string
	if cfg.Test != nil {
		args = append(args, cfg.Test.Args...)
	}
	return o.runTool(cfg, "pytest", args...)
}

// Publish builds nothing itself; it uploads whatever is in dist/ to the
// configured repository.
func (o *Ops) Publish(cfg *operation.Config, repository string) error {
	args := []string{"upload"}
	if repository != "" {
		args = append(args, "--repository-url", repository)
	}
	if cfg.Publish != nil {
		args = append(args, cfg.Publish.Args...)
	}
	args = append(args, filepath.Join("dist", "*"))
	return o.withProgress(cfg, "Publishing distribution", func() error {
		return o.runTool(cfg, "twine", args...)
	})
}

// ActivateEnv prints how to activate the workspace's virtual environment.
// A child process cannot mutate the parent shell, so activation is the
// one operation that stays advisory.
func (o *Ops) ActivateEnv(cfg *operation.Config) error {
	venv := filepath.Join(cfg.WorkspaceRoot, ".venv")
	if _, err := os.Stat(venv); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"No virtual environment at "+venv,
			"Create one with 'python -m venv .venv'")
	}
	fmt.Fprintf(o.Stdout, "source %s\n", filepath.Join(venv, "bin", "activate"))
	return nil
}

// RunCommand executes an arbitrary command line in the workspace root
// through the user's shell.
func (o *Ops) RunCommand(cmdline string, cfg *operation.Config) error {
	code, err := o.Runner.RunShell(cmdline, cfg.WorkspaceRoot, o.out(cfg), o.Stderr)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.New(errors.ErrExec,
			fmt.Sprintf("command exited with code %d", code), "")
	}
	return nil
}

// Version prints the project's version from pyproject.toml.
func (o *Ops) Version(cfg *operation.Config) error {
	meta, err := workspace.ReadMetadata(cfg.WorkspaceRoot)
	if err != nil {
		return err
	}
	if meta.Version == "" {
		return errors.New(errors.ErrConfig,
			"No version declared in pyproject.toml",
			"Add a version to the [project] table")
	}
	fmt.Fprintf(o.Stdout, "%s %s\n", meta.Name, meta.Version)
	return nil
}
