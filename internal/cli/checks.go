package cli

import (
	"github.com/spf13/cobra"
)

// Check command flags
var (
	fmtCheckFlag    bool
	lintFixFlag     bool
	lintNoTypesFlag bool
)

// fmtCmd formats the project's source
var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Format the project's source files",
	Long: `Format the project's Python source files.

With --check, reports files that would change without rewriting them.
Arguments after "--" pass through to the formatter verbatim.

Examples:
  pym fmt
  pym fmt --check
  pym fmt -- --line-length 100`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, trailing := splitDash(cmd, args)
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithFormat(trailing, fmtCheckFlag)
		return newOps().Format(cfg)
	},
}

// lintCmd checks the project's source for problems
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint the project's source files",
	Long: `Lint the project's Python source files, then type-check them.

With --fix, auto-fixable findings are corrected in place. With
--no-types, the type checker is skipped. Arguments after "--" pass
through to the linter verbatim.

Examples:
  pym lint
  pym lint --fix
  pym lint --no-types -- --select E501`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, trailing := splitDash(cmd, args)
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithLint(trailing, lintFixFlag, !lintNoTypesFlag)
		return newOps().Lint(cfg)
	},
}

// fixCmd applies auto-fixes for lint findings
var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Auto-fix lint findings",
	Long: `Correct auto-fixable lint findings in place.

Arguments after "--" pass through to the linter, with the fix request
appended after them.

Examples:
  pym fix
  pym fix -- --select E501`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, trailing := splitDash(cmd, args)
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithFix(trailing)
		return newOps().Lint(cfg)
	},
}

// testCmd runs the project's test suite
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the project's tests",
	Long: `Run the project's test suite.

Arguments after "--" pass through to the test runner verbatim.

Examples:
  pym test
  pym test -- -x tests/test_api.py`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, trailing := splitDash(cmd, args)
		cfg, err := discoveredConfig()
		if err != nil {
			return err
		}
		cfg.WithTest(trailing)
		return newOps().Test(cfg)
	},
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtCheckFlag, "check", false, "report changes without rewriting files")
	lintCmd.Flags().BoolVar(&lintFixFlag, "fix", false, "correct auto-fixable findings")
	lintCmd.Flags().BoolVar(&lintNoTypesFlag, "no-types", false, "skip the type checker")

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(testCmd)
}
