package config

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/modman/internal/domain"
	"github.com/quantmind-br/modman/internal/manifest"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Merge   MergeConfig   `mapstructure:"merge" yaml:"merge"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// MergeConfig selects the elements and attributes the merge works on
type MergeConfig struct {
	Tag              string `mapstructure:"tag" yaml:"tag"`
	MatchAttribute   string `mapstructure:"match_attribute" yaml:"match_attribute"`
	ReplaceAttribute string `mapstructure:"replace_attribute" yaml:"replace_attribute"`
	KeepTags         bool   `mapstructure:"keep_tags" yaml:"keep_tags"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	File       string `mapstructure:"file" yaml:"file"`
	BranchList string `mapstructure:"branchlist" yaml:"branchlist"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate fills empty values with defaults and rejects names that cannot
// select XML elements or attributes
func (c *Config) Validate() error {
	if c.Merge.Tag == "" {
		c.Merge.Tag = DefaultTag
	}
	if c.Merge.MatchAttribute == "" {
		c.Merge.MatchAttribute = DefaultMatchAttribute
	}
	if c.Merge.ReplaceAttribute == "" {
		c.Merge.ReplaceAttribute = DefaultReplaceAttribute
	}
	if c.Output.File == "" {
		c.Output.File = DefaultOutputFile
	}
	if c.Output.BranchList == "" {
		c.Output.BranchList = DefaultBranchListFile
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	names := map[string]string{
		"merge.tag":               c.Merge.Tag,
		"merge.match_attribute":   c.Merge.MatchAttribute,
		"merge.replace_attribute": c.Merge.ReplaceAttribute,
	}
	for key, name := range names {
		if !manifest.ValidName(name) {
			return domain.NewValidationError(key, fmt.Sprintf("%q is not an XML name", name))
		}
	}

	switch strings.ToLower(c.Logging.Format) {
	case "pretty", "json":
	default:
		return domain.NewValidationError("logging.format", fmt.Sprintf("%q (use pretty or json)", c.Logging.Format))
	}
	return nil
}

// MergeOptions converts the merge section into manifest.Options
func (c *Config) MergeOptions() manifest.Options {
	return manifest.Options{
		Tag:         c.Merge.Tag,
		MatchAttr:   c.Merge.MatchAttribute,
		ReplaceAttr: c.Merge.ReplaceAttribute,
		KeepTags:    c.Merge.KeepTags,
	}
}

// YAML renders the configuration as a config file would hold it
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
