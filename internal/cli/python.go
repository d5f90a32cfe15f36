package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pymtool/pym/internal/specifier"
)

// pythonCmd groups interpreter management subcommands
var pythonCmd = &cobra.Command{
	Use:   "python",
	Short: "Manage Python interpreters",
	Long:  `List the Python interpreters on PATH and pin the one pym should use.`,
}

// pythonListCmd lists interpreters found on PATH
var pythonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List Python interpreters on PATH",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		return newOps().ListInterpreters(cfg)
	},
}

// pythonUseCmd pins an interpreter version in the per-user config
var pythonUseCmd = &cobra.Command{
	Use:   "use <version>",
	Short: "Pin the Python version to use",
	Long: `Pin the Python version pym uses for this user.

Versions are major.minor, like 3.11. Finer-grained versions are
rejected.

Examples:
  pym python use 3.11`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := specifier.NormalizeVersion(args[0])
		if err != nil {
			return err
		}

		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		return newOps().UseInterpreter(version, os.Getenv("HOME"), cfg)
	},
}

func init() {
	pythonCmd.AddCommand(pythonListCmd)
	pythonCmd.AddCommand(pythonUseCmd)
	rootCmd.AddCommand(pythonCmd)
}
