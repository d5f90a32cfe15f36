// Package shell manages persistent shell-completion integration. Three
// shell families are supported, each with a different configuration
// model: bash appends a snippet to one startup file, fish drops a
// generated file into a per-user directory, zsh drops one into a system
// directory. Elvish and powershell are recognized but not implemented.
package shell

import (
	"fmt"
	"io"

	"github.com/pymtool/pym/internal/errors"
)

// Shell identifies a shell family, resolved once from the --shell flag.
type Shell int

const (
	Bash Shell = iota
	Zsh
	Fish
	Elvish
	PowerShell
)

// shellNames maps flag spellings to shell families.
var shellNames = map[string]Shell{
	"bash":       Bash,
	"zsh":        Zsh,
	"fish":       Fish,
	"elvish":     Elvish,
	"powershell": PowerShell,
}

// String returns the flag spelling for the shell.
func (s Shell) String() string {
	switch s {
	case Bash:
		return "bash"
	case Zsh:
		return "zsh"
	case Fish:
		return "fish"
	case Elvish:
		return "elvish"
	case PowerShell:
		return "powershell"
	default:
		return fmt.Sprintf("shell(%d)", int(s))
	}
}

// Parse resolves a --shell flag value to a shell family. Unknown names
// are a configuration error.
func Parse(name string) (Shell, error) {
	if sh, ok := shellNames[name]; ok {
		return sh, nil
	}
	return 0, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown shell '%s'", name),
		"Supported shells: bash, zsh, fish, elvish, powershell")
}

// Intent is what the completion command was asked to do, decided once at
// the flag boundary and never re-derived from booleans downstream.
type Intent int

const (
	// IntentPrint writes a completion script to stdout, touching nothing.
	IntentPrint Intent = iota
	IntentInstall
	IntentUninstall
)

// ResolveIntent folds the competing --install/--uninstall booleans into a
// single tagged value. Install wins when both are set; flag-level mutual
// exclusion is enforced by the command definition.
func ResolveIntent(install, uninstall bool) Intent {
	switch {
	case install:
		return IntentInstall
	case uninstall:
		return IntentUninstall
	default:
		return IntentPrint
	}
}

// ScriptFunc generates the full completion script for a shell. Injected
// by the CLI layer so this package never depends on command definitions.
type ScriptFunc func(w io.Writer, sh Shell) error
