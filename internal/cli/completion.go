package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/logger"
	"github.com/pymtool/pym/internal/shell"
)

// Completion command flags
var (
	completionShellFlag     string
	completionInstallFlag   bool
	completionUninstallFlag bool
)

// completionCmd prints or installs shell completion
var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate or install shell completion",
	Long: `Generate a shell completion script, or install it into the shell's
startup configuration.

Without flags, prints the bash completion script to stdout.

Examples:
  pym completion
  pym completion --shell fish
  pym completion --shell bash --install
  pym completion --shell bash --uninstall`,
	RunE: func(cmd *cobra.Command, args []string) error {
		intent := shell.ResolveIntent(completionInstallFlag, completionUninstallFlag)

		if completionShellFlag == "" {
			if intent != shell.IntentPrint {
				return errors.New(errors.ErrConfig,
					"No shell provided",
					"Pass --shell with one of: bash, zsh, fish")
			}
			return rootCmd.GenBashCompletion(os.Stdout)
		}

		sh, err := shell.Parse(completionShellFlag)
		if err != nil {
			return err
		}

		if intent == shell.IntentPrint {
			return generateScript(os.Stdout, sh)
		}

		mgr := shell.NewManager(os.Getenv("HOME"), generateScript)
		mgr.SetLogger(logger.Default())

		if intent == shell.IntentInstall {
			return mgr.Install(sh)
		}
		return mgr.Uninstall(sh)
	},
}

// generateScript writes the completion script for the given shell.
func generateScript(w io.Writer, sh shell.Shell) error {
	switch sh {
	case shell.Bash:
		return rootCmd.GenBashCompletion(w)
	case shell.Zsh:
		return rootCmd.GenZshCompletion(w)
	case shell.Fish:
		return rootCmd.GenFishCompletion(w, true)
	default:
		return errors.NewUnsupportedShell(sh.String())
	}
}

func init() {
	completionCmd.Flags().StringVar(&completionShellFlag, "shell", "", "target shell (bash, zsh, fish)")
	completionCmd.Flags().BoolVar(&completionInstallFlag, "install", false, "install completion into the shell config")
	completionCmd.Flags().BoolVar(&completionUninstallFlag, "uninstall", false, "remove installed completion")
	completionCmd.MarkFlagsMutuallyExclusive("install", "uninstall")

	rootCmd.AddCommand(completionCmd)
}
