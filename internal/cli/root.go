package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pymtool/pym/internal/config"
	"github.com/pymtool/pym/internal/logger"
	"github.com/pymtool/pym/internal/operation"
	"github.com/pymtool/pym/internal/ops"
	"github.com/pymtool/pym/internal/workspace"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// quietFlag suppresses tool output for every subcommand
var quietFlag bool

// global holds the per-user configuration, loaded once before dispatch.
// Missing or unreadable files fall back to defaults.
var global = &config.Global{}

var rootCmd = &cobra.Command{
	Use:   "pym",
	Short: "A Python project management tool",
	Long: `pym manages Python projects: dependencies, environments, builds,
checks, and publishing, all through the standard tools you already have.

Run pym from anywhere inside a project; the workspace root is discovered
by walking up to the nearest pyproject.toml or setup.py.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetDefault(logger.NewEnvLogger("pym"))
		if loaded, err := config.LoadGlobal(os.Getenv("HOME")); err == nil {
			global = loaded
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress tool output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// quiet resolves verbosity: the flag wins, otherwise the per-user config
// decides.
func quiet() bool {
	return quietFlag || global.Quiet
}

// operator is the ops surface commands dispatch to. Narrowing it to an
// interface lets tests observe which operation a command routes to.
type operator interface {
	AddDependencies(deps []string, cfg *operation.Config) error
	AddOptionalDependencies(deps []string, group string, cfg *operation.Config) error
	RemoveDependencies(deps []string, cfg *operation.Config) error
	RemoveOptionalDependencies(deps []string, group string, cfg *operation.Config) error
	UpdateDependencies(deps []string, cfg *operation.Config) error
	UpdateOptionalDependencies(deps []string, group string, cfg *operation.Config) error
	InstallDependencies(cfg *operation.Config) error
	InstallOptionalDependencies(groups []string, cfg *operation.Config) error
	Build(cfg *operation.Config) error
	Clean(cfg *operation.Config) error
	Format(cfg *operation.Config) error
	Lint(cfg *operation.Config) error
	Test(cfg *operation.Config) error
	Publish(cfg *operation.Config, repository string) error
	InitProject(cfg *operation.Config) error
	NewProject(cfg *operation.Config) error
	ActivateEnv(cfg *operation.Config) error
	RunCommand(cmdline string, cfg *operation.Config) error
	Version(cfg *operation.Config) error
	ListInterpreters(cfg *operation.Config) error
	UseInterpreter(version, home string, cfg *operation.Config) error
}

// newOps builds the operation executor with the default logger wired in.
// A variable so tests can substitute a recording implementation.
var newOps = func() operator {
	o := ops.New()
	o.SetLogger(logger.Default())
	return o
}

// discoveredConfig anchors the workspace at the nearest project root
// above the working directory, falling back to the working directory.
func discoveredConfig() (*operation.Config, error) {
	root, err := workspace.Resolve()
	if err != nil {
		return nil, err
	}
	return operation.NewConfig(root, quiet()), nil
}

// cwdConfig anchors the workspace at the working directory itself, with
// no upward discovery.
func cwdConfig() (*operation.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return operation.NewConfig(cwd, quiet()), nil
}

// splitDash separates positional arguments from everything after the
// "--" separator. Trailing stays nil when no separator was given, which
// downstream composition treats differently from an empty list.
func splitDash(cmd *cobra.Command, args []string) (named, trailing []string) {
	if i := cmd.ArgsLenAtDash(); i >= 0 {
		return args[:i], args[i:]
	}
	return args, nil
}
