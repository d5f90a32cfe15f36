package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/specifier"
	"github.com/pymtool/pym/internal/workspace"
)

// Dependency command flags
var (
	addGroupFlag      string
	removeGroupFlag   string
	updateGroupFlag   string
	installGroupsFlag []string
)

// addCmd adds dependencies to the project
var addCmd = &cobra.Command{
	Use:   "add <dependency>...",
	Short: "Add dependencies to the project",
	Long: `Add one or more dependencies to the project.

Dependencies accept an '@' version shorthand that is rewritten to the
standard '==' pin before anything touches the installer.

Arguments after "--" pass through to the installer verbatim.

Examples:
  pym add requests
  pym add requests@2.28
  pym add pytest --group dev
  pym add requests -- --no-cache-dir`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		named, trailing := splitDash(cmd, args)
		deps := namedDependencies(named)

		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithInstaller(trailing)

		if addGroupFlag != "" {
			return newOps().AddOptionalDependencies(deps, addGroupFlag, cfg)
		}
		return newOps().AddDependencies(deps, cfg)
	},
}

// removeCmd removes dependencies from the project
var removeCmd = &cobra.Command{
	Use:   "remove <dependency>...",
	Short: "Remove dependencies from the project",
	Long: `Remove one or more dependencies from the project.

Examples:
  pym remove requests
  pym remove pytest --group dev`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		named, trailing := splitDash(cmd, args)
		deps := namedDependencies(named)

		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithInstaller(trailing)

		if removeGroupFlag != "" {
			return newOps().RemoveOptionalDependencies(deps, removeGroupFlag, cfg)
		}
		return newOps().RemoveDependencies(deps, cfg)
	},
}

// updateCmd updates dependencies to their latest allowed versions
var updateCmd = &cobra.Command{
	Use:   "update [dependency]...",
	Short: "Update dependencies",
	Long: `Update the given dependencies, or every project dependency when
none are named.

Examples:
  pym update
  pym update requests
  pym update pytest --group dev`,
	RunE: func(cmd *cobra.Command, args []string) error {
		named, trailing := splitDash(cmd, args)
		deps := namedDependencies(named)

		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithInstaller(trailing)

		// No names: update everything the manifest declares, from the
		// named group when one was given, otherwise the primary set.
		if len(deps) == 0 {
			meta, err := workspace.ReadMetadata(cfg.WorkspaceRoot)
			if err != nil {
				return err
			}
			if updateGroupFlag != "" {
				groupDeps, ok := meta.OptionalDependencies[updateGroupFlag]
				if !ok {
					return errors.New(errors.ErrConfig,
						fmt.Sprintf("No optional dependency group '%s' in pyproject.toml", updateGroupFlag),
						"Check [project.optional-dependencies] for the available groups")
				}
				deps = groupDeps
			} else {
				deps = meta.Dependencies
			}
			if len(deps) == 0 {
				return nil
			}
		}

		if updateGroupFlag != "" {
			return newOps().UpdateOptionalDependencies(deps, updateGroupFlag, cfg)
		}
		return newOps().UpdateDependencies(deps, cfg)
	},
}

// installCmd installs the project's declared dependencies
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the project's dependencies",
	Long: `Install the dependencies declared in pyproject.toml.

With --groups, installs the named optional dependency groups instead of
the default set.

Examples:
  pym install
  pym install --groups dev,docs
  pym install -- --no-cache-dir`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		named, trailing := splitDash(cmd, args)
		if len(named) > 0 {
			return errors.New(errors.ErrConfig,
				"install takes no positional arguments",
				"Pass installer arguments after \"--\", or use 'pym add' for new dependencies")
		}

		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithInstaller(trailing)

		if len(installGroupsFlag) > 0 {
			return newOps().InstallOptionalDependencies(installGroupsFlag, cfg)
		}
		return newOps().InstallDependencies(cfg)
	},
}

// namedDependencies normalizes the '@' shorthand on every named
// dependency before it reaches the installer.
func namedDependencies(named []string) []string {
	if len(named) == 0 {
		return nil
	}
	deps := make([]string, len(named))
	for i, raw := range named {
		deps[i] = specifier.NormalizeDependency(raw)
	}
	return deps
}

func init() {
	addCmd.Flags().StringVar(&addGroupFlag, "group", "", "optional dependency group")
	removeCmd.Flags().StringVar(&removeGroupFlag, "group", "", "optional dependency group")
	updateCmd.Flags().StringVar(&updateGroupFlag, "group", "", "optional dependency group")
	installCmd.Flags().StringSliceVar(&installGroupsFlag, "groups", nil, "optional dependency groups to install")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(installCmd)
}
