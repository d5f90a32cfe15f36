package operation

// Synthetic flags appended to user-supplied trailing arguments. They go
// last so that "last occurrence wins" resolves conflicts in the tool's
// favor.
const (
	FixFlag   = "--fix"
	CheckFlag = "--check"
)

// NewConfig creates a configuration with the resolved workspace root and
// the verbosity derived from the global quiet flag. Option records start
// nil: populated only by the command being dispatched.
func NewConfig(workspaceRoot string, quiet bool) *Config {
	verbosity := Normal
	if quiet {
		verbosity = Quiet
	}
	return &Config{
		WorkspaceRoot: workspaceRoot,
		Terminal:      TerminalOptions{Verbosity: verbosity},
	}
}

// WithInstaller populates installer options with trailing arguments
// passed through verbatim. Used by add, remove, update, and install.
func (c *Config) WithInstaller(trailing []string) *Config {
	c.Installer = &InstallerOptions{Args: trailing}
	return c
}

// WithBuild populates build options.
func (c *Config) WithBuild(trailing []string) *Config {
	c.Build = &BuildOptions{Args: trailing}
	return c
}

// WithClean populates clean options.
func (c *Config) WithClean(includePyc, includePycache bool) *Config {
	c.Clean = &CleanOptions{
		IncludePycache:          includePycache,
		IncludeCompiledBytecode: includePyc,
	}
	return c
}

// WithLint populates lint options. Trailing arguments pass through in
// order; a fix request appends the fix flag after them. The type-checking
// toggle travels as a structured field, never as a synthetic argument.
func (c *Config) WithLint(trailing []string, fix, includeTypes bool) *Config {
	args := trailing
	if fix {
		args = AppendArgs(trailing, FixFlag)
	}
	c.Lint = &LintOptions{Args: args, IncludeTypes: includeTypes}
	return c
}

// WithFix populates lint options for the fix command: the fix flag is
// always appended after the trailing arguments, and type-checking is off
// since fixing only addresses lint findings.
func (c *Config) WithFix(trailing []string) *Config {
	c.Lint = &LintOptions{
		Args:         AppendArgs(trailing, FixFlag),
		IncludeTypes: false,
	}
	return c
}

// WithFormat populates format options. When check is requested the check
// flag is appended after any trailing arguments, becoming the sole entry
// when none were given.
func (c *Config) WithFormat(trailing []string, check bool) *Config {
	args := trailing
	if check {
		args = AppendArgs(trailing, CheckFlag)
	}
	c.Format = &FormatOptions{Args: args}
	return c
}

// WithTest populates test options.
func (c *Config) WithTest(trailing []string) *Config {
	c.Test = &TestOptions{Args: trailing}
	return c
}

// WithPublish populates publish options.
func (c *Config) WithPublish(trailing []string) *Config {
	c.Publish = &PublishOptions{Args: trailing}
	return c
}

// WithWorkspace populates scaffolding options for init and new.
func (c *Config) WithWorkspace(kind ProjectKind, usesGit bool) *Config {
	c.Workspace = &WorkspaceOptions{Kind: kind, UsesGit: usesGit}
	return c
}
