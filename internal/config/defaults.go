package config

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/modman/internal/manifest"
)

// Default values
const (
	// Merge defaults
	DefaultTag              = manifest.DefaultTag
	DefaultMatchAttribute   = manifest.DefaultMatchAttr
	DefaultReplaceAttribute = manifest.DefaultReplaceAttr
	DefaultKeepTags         = false

	// Output defaults
	DefaultOutputFile     = "output.xml"
	DefaultBranchListFile = "branchlist.xml"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".modman"
	}
	return filepath.Join(home, ".modman")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Merge: MergeConfig{
			Tag:              DefaultTag,
			MatchAttribute:   DefaultMatchAttribute,
			ReplaceAttribute: DefaultReplaceAttribute,
			KeepTags:         DefaultKeepTags,
		},
		Output: OutputConfig{
			File:       DefaultOutputFile,
			BranchList: DefaultBranchListFile,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
