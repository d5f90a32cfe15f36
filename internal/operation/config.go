// Package operation defines the per-invocation configuration aggregate
// handed to exactly one operation, plus the argument-list composition
// rules shared by the commands that build it.
package operation

// Verbosity controls how much of the underlying tool output reaches the
// user. Only two levels exist at this layer.
type Verbosity int

const (
	Normal Verbosity = iota
	Quiet
)

// TerminalOptions carries output settings shared by every operation.
type TerminalOptions struct {
	Verbosity Verbosity
}

// InstallerOptions are trailing arguments forwarded to the dependency
// installer.
type InstallerOptions struct {
	Args []string
}

// BuildOptions are trailing arguments forwarded to the build backend.
type BuildOptions struct {
	Args []string
}

// CleanOptions selects which build byproducts to remove.
type CleanOptions struct {
	IncludePycache          bool
	IncludeCompiledBytecode bool
}

// FormatOptions are trailing arguments forwarded to the formatter.
type FormatOptions struct {
	Args []string
}

// LintOptions carries the linter argument list plus the structured
// type-checking toggle, which is never embedded as a synthetic argument.
type LintOptions struct {
	Args         []string
	IncludeTypes bool
}

// TestOptions are trailing arguments forwarded to the test runner.
type TestOptions struct {
	Args []string
}

// PublishOptions are trailing arguments forwarded to the publisher.
type PublishOptions struct {
	Args []string
}

// ProjectKind is the app-vs-lib template choice, resolved once at the
// flag boundary.
type ProjectKind int

const (
	KindApp ProjectKind = iota
	KindLib
)

func (k ProjectKind) String() string {
	if k == KindApp {
		return "application"
	}
	return "library"
}

// WorkspaceOptions configures project scaffolding.
type WorkspaceOptions struct {
	Kind    ProjectKind
	UsesGit bool
}

// Config aggregates everything one invocation needs. Option records are
// pointers so operations can tell "not requested" (nil) apart from
// "requested with empty settings". At most one record relevant to the
// active command is ever populated; the rest stay nil.
type Config struct {
	WorkspaceRoot string
	Terminal      TerminalOptions

	Installer *InstallerOptions
	Build     *BuildOptions
	Clean     *CleanOptions
	Format    *FormatOptions
	Lint      *LintOptions
	Test      *TestOptions
	Publish   *PublishOptions
	Workspace *WorkspaceOptions
}

// AppendArgs copies existing trailing arguments and appends extras after
// them, so a synthetic tool-requested flag is always the last occurrence
// the downstream consumer sees. A nil existing list yields exactly the
// extras; the result never aliases the input.
func AppendArgs(existing []string, extra ...string) []string {
	out := make([]string, 0, len(existing)+len(extra))
	out = append(out, existing...)
	out = append(out, extra...)
	return out
}
