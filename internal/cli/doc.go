// Package cli implements the pym command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to the ops package for the actual work. The general
// structure follows a clean separation between:
//
//   - Command definitions (cobra.Command instances)
//   - Option composition (operation.Config and its With* helpers)
//   - Implementation details (in other internal packages)
//
// # Command Structure
//
// The root command is "pym" with subcommands for different operations:
//
//	pym add <dep>...     - Add dependencies
//	pym remove <dep>...  - Remove dependencies
//	pym update [dep]...  - Update dependencies
//	pym install          - Install declared dependencies
//	pym fmt / lint / fix - Format and check source
//	pym test             - Run the test suite
//	pym build / publish  - Build and upload distributions
//	pym init / new       - Scaffold projects
//	pym python           - Manage interpreters
//	pym completion       - Shell completion
//
// # Option Composition
//
// Every command resolves a workspace root, builds an operation.Config
// with exactly one option record populated, and hands it to ops. Most
// commands discover the root by walking up from the working directory;
// init anchors at the working directory itself and new at its path
// argument.
//
// # Flag Handling
//
// The global --quiet flag is defined on the root command and merged
// with the per-user config before dispatch. Command-specific flags like
// --group and --check are defined on individual commands. Arguments
// after "--" pass through verbatim to the underlying Python tool.
package cli
