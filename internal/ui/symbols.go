package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Operation completed successfully
	SymbolFail     = "✗" // Operation failed
	SymbolPending  = "○" // Operation not yet started
	SymbolProgress = "◐" // Operation in progress
	SymbolSkipped  = "⊘" // Operation skipped
)
