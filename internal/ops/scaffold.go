package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/operation"
)

const gitignore = `dist/
__pycache__/
*.pyc
.venv/
`

// InitProject scaffolds a project in an existing directory (always the
// current working directory by the composition rules).
func (o *Ops) InitProject(cfg *operation.Config) error {
	return o.scaffold(cfg, false)
}

// NewProject creates the target directory and scaffolds a project in it.
func (o *Ops) NewProject(cfg *operation.Config) error {
	if err := os.MkdirAll(cfg.WorkspaceRoot, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot create "+cfg.WorkspaceRoot, "")
	}
	return o.scaffold(cfg, true)
}

// scaffold writes the manifest and source layout for an app or lib
// project.
func (o *Ops) scaffold(cfg *operation.Config, created bool) error {
	root := cfg.WorkspaceRoot
	manifest := filepath.Join(root, "pyproject.toml")

	if _, err := os.Stat(manifest); err == nil {
		return errors.New(errors.ErrConfig,
			"A pyproject.toml already exists in "+root,
			"Remove it first, or work in the existing project")
	}

	name := filepath.Base(root)
	pkg := packageName(name)
	kind := operation.KindApp
	usesGit := false
	if cfg.Workspace != nil {
		kind = cfg.Workspace.Kind
		usesGit = cfg.Workspace.UsesGit
	}

	if err := os.WriteFile(manifest, []byte(manifestContent(name, pkg, kind)), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO, "Cannot write "+manifest, "")
	}

	pkgDir := filepath.Join(root, "src", pkg)
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO, "Cannot create "+pkgDir, "")
	}

	initPy := "__version__ = \"0.1.0\"\n"
	if err := os.WriteFile(filepath.Join(pkgDir, "__init__.py"), []byte(initPy), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO, "Cannot write __init__.py", "")
	}

	if kind == operation.KindApp {
		mainPy := "def main():\n    print(\"Hello, World!\")\n\n\nif __name__ == \"__main__\":\n    main()\n"
		if err := os.WriteFile(filepath.Join(pkgDir, "main.py"), []byte(mainPy), 0o644); err != nil {
			return errors.WrapWithCode(err, errors.ErrIO, "Cannot write main.py", "")
		}
	}

	if usesGit {
		if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignore), 0o644); err != nil {
			return errors.WrapWithCode(err, errors.ErrIO, "Cannot write .gitignore", "")
		}
		// A missing git binary shouldn't fail scaffolding; the project
		// files are already in place.
		if code, err := o.Runner.Run("git", []string{"init", root}, "", o.out(cfg), o.Stderr); err != nil || code != 0 {
			o.log.Warn("git init failed; continuing without version control")
		}
	}

	o.log.Debug("scaffolded %s project %q in %s (created=%v)", kind, name, root, created)
	return nil
}

func manifestContent(name, pkg string, kind operation.ProjectKind) string {
	var b strings.Builder
	b.WriteString("[project]\n")
	fmt.Fprintf(&b, "name = %q\n", name)
	b.WriteString("version = \"0.1.0\"\n")
	b.WriteString("description = \"\"\n")
	b.WriteString("dependencies = []\n")

	if kind == operation.KindApp {
		b.WriteString("\n[project.scripts]\n")
		fmt.Fprintf(&b, "%s = \"%s.main:main\"\n", name, pkg)
	}

	b.WriteString("\n[build-system]\n")
	b.WriteString("requires = [\"hatchling\"]\n")
	b.WriteString("build-backend = \"hatchling.build\"\n")
	return b.String()
}

// packageName converts a project name to an importable package name.
func packageName(name string) string {
	return strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(name))
}
