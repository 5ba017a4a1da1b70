package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults
// Uses the global viper instance to access CLI flag bindings
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration through the given viper instance. A config
// file set with SetConfigFile must exist; the default locations are optional.
func LoadFrom(v *viper.Viper) (*Config, error) {
	// Set defaults
	setDefaults(v)

	// Config file settings (SetConfigName would drop an explicit file)
	v.SetConfigType("yaml")
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (MODMAN_*)
	v.SetEnvPrefix("MODMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate and apply defaults for empty values
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Merge defaults
	v.SetDefault("merge.tag", DefaultTag)
	v.SetDefault("merge.match_attribute", DefaultMatchAttribute)
	v.SetDefault("merge.replace_attribute", DefaultReplaceAttribute)
	v.SetDefault("merge.keep_tags", DefaultKeepTags)

	// Output defaults
	v.SetDefault("output.file", DefaultOutputFile)
	v.SetDefault("output.branchlist", DefaultBranchListFile)

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
