package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/pymtool/pym/internal/config"
	"github.com/pymtool/pym/internal/errors"
	"github.com/pymtool/pym/internal/operation"
	"github.com/pymtool/pym/internal/specifier"
)

// Interpreter is a Python binary discovered on PATH.
type Interpreter struct {
	Version *specifier.Version
	Path    string
}

var interpreterName = regexp.MustCompile(`^python(3(?:\.\d+)?)$`)

// ListInterpreters prints every versioned Python interpreter found on
// PATH, newest first.
func (o *Ops) ListInterpreters(cfg *operation.Config) error {
	found := findInterpreters(os.Getenv("PATH"))
	if len(found) == 0 {
		return errors.New(errors.ErrConfig,
			"No Python interpreters found on PATH",
			"Install Python 3 and make sure it is on your PATH")
	}
	w := o.out(cfg)
	for _, it := range found {
		fmt.Fprintf(w, "%s\t%s\n", it.Version, it.Path)
	}
	return nil
}

// UseInterpreter pins the given version in the per-user config. The
// version has already been normalized to major.minor form.
func (o *Ops) UseInterpreter(version, home string, cfg *operation.Config) error {
	want, err := specifier.ParseVersion(version)
	if err != nil {
		return err
	}

	var match *Interpreter
	for _, it := range findInterpreters(os.Getenv("PATH")) {
		if sameMinor(it.Version, want) {
			match = &it
			break
		}
	}
	if match == nil {
		return errors.New(errors.ErrConfig,
			"No Python "+version+" interpreter found on PATH",
			"Run 'pym python list' to see the available interpreters")
	}

	if err := config.SetPythonPin(home, version); err != nil {
		return err
	}
	fmt.Fprintf(o.out(cfg), "Using Python %s (%s)\n", version, match.Path)
	return nil
}

// findInterpreters scans the PATH entries for pythonX and pythonX.Y
// binaries, deduplicated by canonical version and sorted newest first.
func findInterpreters(pathEnv string) []Interpreter {
	seen := map[string]bool{}
	var out []Interpreter

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			m := interpreterName.FindStringSubmatch(e.Name())
			if m == nil {
				continue
			}
			v, err := specifier.ParseVersion(m[1])
			if err != nil {
				continue
			}
			key := v.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Interpreter{Version: v, Path: filepath.Join(dir, e.Name())})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Version.Compare(out[j].Version) > 0
	})
	return out
}

// sameMinor reports whether two versions agree on their release
// segments up to the shorter of the two.
func sameMinor(a, b *specifier.Version) bool {
	n := len(a.Release)
	if len(b.Release) < n {
		n = len(b.Release)
	}
	for i := 0; i < n; i++ {
		if a.Release[i] != b.Release[i] {
			return false
		}
	}
	return true
}
