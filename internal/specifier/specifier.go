// Package specifier normalizes free-form dependency and Python version
// tokens into canonical, comparable strings. Both normalizers are pure:
// no I/O, no shared state.
package specifier

import (
	"fmt"
	"strings"

	"github.com/pymtool/pym/internal/errors"
)

// maxReleaseSegments is the granularity accepted for interpreter
// selection: major.minor, never a patch level.
const maxReleaseSegments = 2

// NormalizeDependency rewrites a raw dependency token into requirement
// form: every '@' between name and version becomes the exact-version
// comparator '=='. No other transformation happens — no trimming, no name
// validation — so any input yields a valid (if possibly meaningless)
// requirement string. Installers downstream reject bogus package names.
func NormalizeDependency(raw string) string {
	return strings.ReplaceAll(raw, "@", "==")
}

// NormalizeVersion parses a raw interpreter version token and returns its
// canonical serialization. It fails with a VERSION-coded error when the
// token does not parse under the Python version scheme, and with a
// GRANULARITY-coded error naming the token when the release encodes more
// than major.minor.
func NormalizeVersion(raw string) (string, error) {
	v, err := ParseVersion(raw)
	if err != nil {
		return "", err
	}
	if len(v.Release) > maxReleaseSegments {
		return "", errors.New(errors.ErrGranularity,
			fmt.Sprintf("%s is invalid, use major.minor", raw),
			"Interpreter selection ignores the patch level; pass something like 3.11")
	}
	return v.String(), nil
}
