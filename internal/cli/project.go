package cli

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/operation"
	"github.com/pymtool/pym/internal/util"
)

// Project command flags
var (
	cleanIncludePycFlag     bool
	cleanIncludePycacheFlag bool
	publishRepositoryFlag   string
	initAppFlag             bool
	initLibFlag             bool
	initNoVCSFlag           bool
	newAppFlag              bool
	newLibFlag              bool
	newNoVCSFlag            bool
)

// buildCmd builds the project's distribution artifacts
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the project's distribution",
	Long: `Build the project's sdist and wheel into dist/.

Arguments after "--" pass through to the build frontend verbatim.

Examples:
  pym build
  pym build -- --sdist`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, trailing := splitDash(cmd, args)
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithBuild(trailing)
		return newOps().Build(cfg)
	},
}

// cleanCmd removes build artifacts
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build artifacts",
	Long: `Remove the dist/ directory.

With --include-pyc, compiled bytecode files are removed too. With
--include-pycache, __pycache__ directories are removed.

Examples:
  pym clean
  pym clean --include-pyc --include-pycache`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithClean(cleanIncludePycFlag, cleanIncludePycacheFlag)
		return newOps().Clean(cfg)
	},
}

// publishCmd uploads the built distribution to a package index
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the project's distribution",
	Long: `Upload the contents of dist/ to a package index.

The repository defaults to the one pinned in the per-user config.
Arguments after "--" pass through to the uploader verbatim.

Examples:
  pym publish
  pym publish --repository https://test.pypi.org/legacy/
  pym publish -- --skip-existing`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, trailing := splitDash(cmd, args)
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithPublish(trailing)

		repo := publishRepositoryFlag
		if repo == "" {
			repo = global.PublishRepository
		}
		return newOps().Publish(cfg, repo)
	},
}

// initCmd scaffolds a project in the current directory
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a project in the current directory",
	Long: `Scaffold a Python project in the current directory.

Uses a library template unless --app is given. Version control files
are created unless --no-vcs is given.

Examples:
  pym init
  pym init --app
  pym init --lib --no-vcs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cwdConfig()
		if err != nil {
			return err
		}
		cfg.WithWorkspace(projectKind(initAppFlag), !initNoVCSFlag)

		if err := confirmOverwrite(cfg.WorkspaceRoot); err != nil {
			return err
		}
		return newOps().InitProject(cfg)
	},
}

// newCmd scaffolds a project in a new directory
var newCmd = &cobra.Command{
	Use:   "new <path>",
	Short: "Create a project in a new directory",
	Long: `Create the given directory and scaffold a Python project in it.

Uses a library template unless --app is given. Version control files
are created unless --no-vcs is given.

Examples:
  pym new myproject
  pym new --app tools/mycli`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		cfg := operation.NewConfig(root, quiet())
		cfg.WithWorkspace(projectKind(newAppFlag), !newNoVCSFlag)
		return newOps().NewProject(cfg)
	},
}

// activateCmd prints how to activate the project's virtual environment
var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Print the virtual environment activation command",
	Long: `Print the command that activates the project's virtual environment.

A child process cannot change its parent shell, so run the printed
line yourself, or wrap it:

  eval "$(pym activate)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		return newOps().ActivateEnv(cfg)
	},
}

// runCmd runs an arbitrary command in the workspace root
var runCmd = &cobra.Command{
	Use:   "run <command>...",
	Short: "Run a command in the workspace root",
	Long: `Run an arbitrary command with the workspace root as the working
directory, preferring tools from the project's virtual environment.

Examples:
  pym run pytest -x
  pym run python -m http.server`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		return newOps().RunCommand(util.JoinCommand(args), cfg)
	},
}

// projectVersionCmd prints the project's version from its manifest
var projectVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the project's version",
	Long:  `Print the project's name and version from pyproject.toml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		return newOps().Version(cfg)
	},
}

// projectKind maps the template flags onto a project kind. The library
// template is the default.
func projectKind(app bool) operation.ProjectKind {
	if app {
		return operation.KindApp
	}
	return operation.KindLib
}

// confirmOverwrite prompts before scaffolding over an existing manifest.
// Without a terminal the existing manifest stands and scaffolding fails
// downstream.
func confirmOverwrite(root string) error {
	manifest := filepath.Join(root, "pyproject.toml")
	if _, err := os.Stat(manifest); err != nil {
		return nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}

	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("A pyproject.toml already exists here. Overwrite it?").
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input", "")
	}
	if !overwrite {
		return errors.New(errors.ErrConfig,
			"Keeping the existing pyproject.toml",
			"Run pym init somewhere else, or remove the manifest first")
	}
	return os.Remove(manifest)
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanIncludePycFlag, "include-pyc", false, "also remove compiled bytecode files")
	cleanCmd.Flags().BoolVar(&cleanIncludePycacheFlag, "include-pycache", false, "also remove __pycache__ directories")

	publishCmd.Flags().StringVar(&publishRepositoryFlag, "repository", "", "package index upload URL")

	initCmd.Flags().BoolVar(&initAppFlag, "app", false, "use the application template")
	initCmd.Flags().BoolVar(&initLibFlag, "lib", false, "use the library template [default]")
	initCmd.Flags().BoolVar(&initNoVCSFlag, "no-vcs", false, "skip version control files")
	initCmd.MarkFlagsMutuallyExclusive("app", "lib")

	newCmd.Flags().BoolVar(&newAppFlag, "app", false, "use the application template")
	newCmd.Flags().BoolVar(&newLibFlag, "lib", false, "use the library template [default]")
	newCmd.Flags().BoolVar(&newNoVCSFlag, "no-vcs", false, "skip version control files")
	newCmd.MarkFlagsMutuallyExclusive("app", "lib")

	// Everything after the first positional belongs to the command
	// being run, including its flags.
	runCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(projectVersionCmd)
}
