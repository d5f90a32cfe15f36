// Package config loads the per-user tool configuration from
// ~/.config/pym/config.yaml. Project configuration lives in
// pyproject.toml and is handled by the workspace package; this file only
// holds cross-project defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/pymtool/pym/internal/errors"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory for global config, under $HOME.
	GlobalConfigDir = ".config/pym"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Global is the per-user configuration.
type Global struct {
	// Quiet makes quiet verbosity the default for every command.
	Quiet bool `yaml:"quiet" mapstructure:"quiet"`

	// Python is the pinned interpreter version (major.minor), set by
	// `pym python use`. Empty means no pin.
	Python string `yaml:"python" mapstructure:"python"`

	// PublishRepository is the package index passed to the publisher.
	// Empty means the tool's default index.
	PublishRepository string `yaml:"publish_repository" mapstructure:"publish_repository"`
}

// GlobalPath returns the config file location under the given home
// directory.
func GlobalPath(home string) string {
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobal reads the global config. A missing file yields defaults
// rather than an error: the tool works out of the box.
func LoadGlobal(home string) (*Global, error) {
	cfg := &Global{}
	if home == "" {
		return cfg, nil
	}

	path := GlobalPath(home)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrIO,
			"Failed to read "+path,
			"Check the file is valid YAML")
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrIO,
			"Invalid configuration in "+path,
			"Check the field types match the documented schema")
	}

	return cfg, nil
}
