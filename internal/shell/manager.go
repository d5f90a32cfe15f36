package shell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/logger"
)

// bashBlock is the exact snippet appended to .bashrc: a leading blank
// line, the eval of the completion generator, a trailing blank line.
// Install and uninstall both operate on this byte-exact block; changing
// it strands blocks installed by older builds.
const bashBlock = "\neval \"$(pym completion)\"\n"

const (
	fishCompletionFile = ".config/fish/completions/pym.fish"
	zshCompletionDir   = "/usr/local/share/zsh/site-functions"
	zshCompletionFile  = "_pym"
)

// Manager installs and uninstalls completion integration. Home is the
// user's home directory, read from the environment once at the CLI
// boundary and injected here so tests can supply a synthetic one. ZshDir
// is the system-wide completions directory; it is a field for the same
// reason.
type Manager struct {
	Home     string
	ZshDir   string
	Generate ScriptFunc

	log logger.Logger
}

// NewManager creates a manager targeting the real system paths.
func NewManager(home string, generate ScriptFunc) *Manager {
	return &Manager{
		Home:     home,
		ZshDir:   zshCompletionDir,
		Generate: generate,
		log:      logger.NewEnvLogger("[shell]"),
	}
}

// SetLogger replaces the manager's logger. Used by tests.
func (m *Manager) SetLogger(l logger.Logger) {
	m.log = l
}

// Install enables completion for the shell. Exactly one persistent
// artifact is touched per call.
func (m *Manager) Install(sh Shell) error {
	switch sh {
	case Bash:
		return m.installBash()
	case Fish:
		return m.writeScript(sh, m.fishPath())
	case Zsh:
		return m.writeScript(sh, filepath.Join(m.ZshDir, zshCompletionFile))
	default:
		return errors.NewUnsupportedShell(sh.String())
	}
}

// Uninstall reverses Install exactly: the bash block is stripped from the
// startup file, drop-style files are removed.
func (m *Manager) Uninstall(sh Shell) error {
	switch sh {
	case Bash:
		return m.uninstallBash()
	case Fish:
		return m.removeScript(sh, m.fishPath())
	case Zsh:
		return m.removeScript(sh, filepath.Join(m.ZshDir, zshCompletionFile))
	default:
		return errors.NewUnsupportedShell(sh.String())
	}
}

// installBash appends the eval block to .bashrc. The file must already
// exist: a user without a .bashrc has no bash startup to hook, and
// creating one behind their back is worse than failing. Repeated installs
// append the block again; uninstall removes every copy.
func (m *Manager) installBash() error {
	path, err := m.bashrcPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot open "+path,
			"The file must already exist; create it first if needed")
	}
	defer f.Close()

	if _, err := f.WriteString(bashBlock); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot write to "+path, "")
	}

	m.log.Debug("appended completion block to %s", path)
	return nil
}

// uninstallBash removes every exact occurrence of the eval block,
// restoring the pre-install bytes. A file without the block is rewritten
// unchanged rather than treated as an error.
func (m *Manager) uninstallBash() error {
	path, err := m.bashrcPath()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot read "+path, "")
	}

	cleaned := strings.ReplaceAll(string(content), bashBlock, "")
	if err := os.WriteFile(path, []byte(cleaned), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot rewrite "+path, "")
	}

	m.log.Debug("removed completion block from %s", path)
	return nil
}

// writeScript generates the shell's completion script into the target
// file, creating or truncating it.
func (m *Manager) writeScript(sh Shell, path string) error {
	if path == "" {
		return m.missingHome()
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot create "+path,
			"Check the directory exists and you have permission to write to it")
	}
	defer f.Close()

	if err := m.Generate(f, sh); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot generate "+sh.String()+" completion script", "")
	}

	m.log.Debug("wrote %s completion script to %s", sh, path)
	return nil
}

// removeScript deletes the generated completion file. A missing file is a
// hard failure: uninstalling something that was never installed deserves
// a report, not silence.
func (m *Manager) removeScript(sh Shell, path string) error {
	if path == "" {
		return m.missingHome()
	}

	if err := os.Remove(path); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot remove "+path,
			"Was "+sh.String()+" completion ever installed?")
	}

	m.log.Debug("removed %s completion script %s", sh, path)
	return nil
}

func (m *Manager) bashrcPath() (string, error) {
	if m.Home == "" {
		return "", m.missingHome()
	}
	return filepath.Join(m.Home, ".bashrc"), nil
}

// fishPath returns "" when the home directory is unknown; callers turn
// that into the missing-home error.
func (m *Manager) fishPath() string {
	if m.Home == "" {
		return ""
	}
	return filepath.Join(m.Home, fishCompletionFile)
}

func (m *Manager) missingHome() error {
	return errors.New(errors.ErrIO,
		"HOME is not set",
		"Per-user completion paths need the HOME environment variable")
}
