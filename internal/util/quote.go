// Package util provides common utility functions used across the codebase.
package util

import "strings"

// ShellQuote wraps a string in single quotes, escaping any existing single quotes.
// This is safe for use in shell commands where the string should be treated literally.
func ShellQuote(s string) string {
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// JoinCommand joins argv-style tokens into a single shell command line.
// Tokens that are already safe (no whitespace or shell metacharacters)
// pass through bare so the common `pym run pytest -x` case reads naturally;
// everything else is single-quoted.
func JoinCommand(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if needsQuoting(a) {
			quoted[i] = ShellQuote(a)
		} else {
			quoted[i] = a
		}
	}
	return strings.Join(quoted, " ")
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, " \t\n'\"\\$`&|;<>()*?[]#~")
}
