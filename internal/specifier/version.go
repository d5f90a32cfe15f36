package specifier

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pymtool/pym/internal/errors"
)

// versionPattern matches the Python version scheme: an optional epoch,
// dotted release segments, and optional pre/post/dev/local segments with
// the full set of accepted spellings (case-insensitive, loose separators).
var versionPattern = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?P<pre>[-_.]?(?P<preL>a|b|c|rc|alpha|beta|pre|preview)[-_.]?(?P<preN>[0-9]+)?)?` +
	`(?P<post>(?:-(?P<postN1>[0-9]+))|(?:[-_.]?(?P<postL>post|rev|r)[-_.]?(?P<postN2>[0-9]+)?))?` +
	`(?P<dev>[-_.]?dev[-_.]?(?P<devN>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?` +
	`\s*$`)

// preSegment is a pre-release marker: a normalized letter (a, b, or rc)
// and its number.
type preSegment struct {
	Letter string
	Number int
}

// Version is a parsed Python version in canonical form. Release holds the
// dotted numeric segments; Pre, Post, and Dev are nil when the segment is
// absent, which is distinct from present-with-zero (e.g. "1.0.post0").
type Version struct {
	Epoch   int
	Release []int
	Pre     *preSegment
	Post    *int
	Dev     *int
	Local   string
}

// ParseVersion parses a raw token under the Python version scheme.
// Returns a VERSION-coded error when the token does not conform at all.
func ParseVersion(raw string) (*Version, error) {
	m := versionPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, errors.New(errors.ErrVersion,
			fmt.Sprintf("Failed to parse version '%s'", raw),
			"Use a version like 3.11 or 3.12")
	}
	group := func(name string) string {
		return m[versionPattern.SubexpIndex(name)]
	}

	v := &Version{}

	if e := group("epoch"); e != "" {
		v.Epoch, _ = strconv.Atoi(e)
	}

	for _, seg := range strings.Split(group("release"), ".") {
		n, err := strconv.Atoi(seg)
		if err != nil {
			// Unreachable given the pattern, but keep the failure typed.
			return nil, errors.New(errors.ErrVersion,
				fmt.Sprintf("Failed to parse version '%s'", raw), "")
		}
		v.Release = append(v.Release, n)
	}

	if group("pre") != "" {
		v.Pre = &preSegment{
			Letter: normalizePreLetter(group("preL")),
			Number: atoiDefault(group("preN"), 0),
		}
	}

	if group("post") != "" {
		var n int
		if g := group("postN1"); g != "" {
			n = atoiDefault(g, 0)
		} else {
			n = atoiDefault(group("postN2"), 0)
		}
		v.Post = &n
	}

	if group("dev") != "" {
		n := atoiDefault(group("devN"), 0)
		v.Dev = &n
	}

	if l := group("local"); l != "" {
		v.Local = normalizeLocal(l)
	}

	return v, nil
}

// String renders the canonical form: leading zeros dropped, pre-release
// letters collapsed to a/b/rc, post and dev spelled ".postN"/".devN",
// local separators folded to dots.
func (v *Version) String() string {
	var b strings.Builder

	if v.Epoch > 0 {
		fmt.Fprintf(&b, "%d!", v.Epoch)
	}

	parts := make([]string, len(v.Release))
	for i, n := range v.Release {
		parts[i] = strconv.Itoa(n)
	}
	b.WriteString(strings.Join(parts, "."))

	if v.Pre != nil {
		fmt.Fprintf(&b, "%s%d", v.Pre.Letter, v.Pre.Number)
	}
	if v.Post != nil {
		fmt.Fprintf(&b, ".post%d", *v.Post)
	}
	if v.Dev != nil {
		fmt.Fprintf(&b, ".dev%d", *v.Dev)
	}
	if v.Local != "" {
		fmt.Fprintf(&b, "+%s", v.Local)
	}

	return b.String()
}

// Compare orders versions per the Python scheme: epoch, then release
// segments (shorter releases padded with zeros), then the pre/post/dev
// markers where X.devN < X.aN < X < X.postN. Local segments break ties
// by presence only. Returns -1, 0, or 1.
func (v *Version) Compare(o *Version) int {
	if v.Epoch != o.Epoch {
		return cmpInt(v.Epoch, o.Epoch)
	}

	for i := 0; i < max(len(v.Release), len(o.Release)); i++ {
		if c := cmpInt(releaseAt(v.Release, i), releaseAt(o.Release, i)); c != 0 {
			return c
		}
	}

	if c := cmpInt(v.preRank(), o.preRank()); c != 0 {
		return c
	}
	if v.Pre != nil && o.Pre != nil {
		if c := strings.Compare(v.Pre.Letter, o.Pre.Letter); c != 0 {
			return c
		}
		if c := cmpInt(v.Pre.Number, o.Pre.Number); c != 0 {
			return c
		}
	}

	if c := cmpInt(segRank(v.Post), segRank(o.Post)); c != 0 {
		return c
	}
	if v.Post != nil && o.Post != nil {
		if c := cmpInt(*v.Post, *o.Post); c != 0 {
			return c
		}
	}

	// Dev releases sort before the release they precede.
	if c := cmpInt(devRank(v.Dev), devRank(o.Dev)); c != 0 {
		return c
	}
	if v.Dev != nil && o.Dev != nil {
		if c := cmpInt(*v.Dev, *o.Dev); c != 0 {
			return c
		}
	}

	if v.Local != o.Local {
		if v.Local == "" {
			return -1
		}
		if o.Local == "" {
			return 1
		}
		return strings.Compare(v.Local, o.Local)
	}
	return 0
}

// preRank places dev-only versions below pre-releases and pre-releases
// below final releases.
func (v *Version) preRank() int {
	switch {
	case v.Pre != nil:
		return 0
	case v.Post == nil && v.Dev != nil:
		return -1
	default:
		return 1
	}
}

func segRank(n *int) int {
	if n == nil {
		return 0
	}
	return 1
}

func devRank(n *int) int {
	if n == nil {
		return 1
	}
	return 0
}

func releaseAt(release []int, i int) int {
	if i < len(release) {
		return release[i]
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func normalizePreLetter(letter string) string {
	switch strings.ToLower(letter) {
	case "alpha", "a":
		return "a"
	case "beta", "b":
		return "b"
	default: // c, rc, pre, preview
		return "rc"
	}
}

// normalizeLocal lowercases the local segment, folds -_ separators to dots,
// and strips leading zeros from purely numeric parts.
func normalizeLocal(local string) string {
	folded := strings.NewReplacer("-", ".", "_", ".").Replace(strings.ToLower(local))
	parts := strings.Split(folded, ".")
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			parts[i] = strconv.Itoa(n)
		}
	}
	return strings.Join(parts, ".")
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
