package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pymtool/pym/internal/errors"
)

// SetPythonPin records the interpreter version in the global config file,
// creating the file (and its directory) when absent. The existing YAML
// structure and comments are preserved by editing the node tree instead
// of re-marshaling the whole struct.
func SetPythonPin(home, version string) error {
	if home == "" {
		return errors.New(errors.ErrIO,
			"HOME is not set",
			"The pin lives under $HOME/"+GlobalConfigDir)
	}

	path := GlobalPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot create "+filepath.Dir(path), "")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		data = []byte{}
	} else if err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot read "+path, "")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid YAML in "+path,
			"Fix or remove the file and pin again")
	}

	docNode := ensureDocument(&root)
	setMapValue(docNode, "python", version)

	out, err := yaml.Marshal(docNode)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot serialize "+path, "")
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot write "+path, "")
	}
	return nil
}

// ensureDocument returns the document's root mapping, creating one for
// empty files.
func ensureDocument(root *yaml.Node) *yaml.Node {
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 &&
		root.Content[0].Kind == yaml.MappingNode {
		return root.Content[0]
	}
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// setMapValue sets key to a scalar value in a mapping node, updating the
// existing entry in place when present.
func setMapValue(mapping *yaml.Node, key, value string) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Kind == yaml.ScalarNode && mapping.Content[i].Value == key {
			mapping.Content[i+1] = &yaml.Node{
				Kind:  yaml.ScalarNode,
				Tag:   "!!str",
				Value: value,
			}
			return
		}
	}

	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}
