package workspace

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pymtool/pym/internal/errors"
)

// Metadata is the subset of the pyproject [project] table this tool reads.
// Dependency contents are opaque strings here; interpreting them is the
// installer's job.
type Metadata struct {
	Name                 string
	Version              string
	Dependencies         []string
	OptionalDependencies map[string][]string
}

// pyproject mirrors the on-disk TOML layout.
type pyproject struct {
	Project struct {
		Name                 string              `toml:"name"`
		Version              string              `toml:"version"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// ReadMetadata decodes the [project] table from root/pyproject.toml.
func ReadMetadata(root string) (*Metadata, error) {
	path := filepath.Join(root, "pyproject.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrIO,
			"Cannot read "+path,
			"Run 'pym init' to create a project manifest")
	}

	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrIO,
			"Cannot parse "+path,
			"Check the file is valid TOML")
	}

	return &Metadata{
		Name:                 doc.Project.Name,
		Version:              doc.Project.Version,
		Dependencies:         doc.Project.Dependencies,
		OptionalDependencies: doc.Project.OptionalDependencies,
	}, nil
}
