// Package config loads go-cfb settings from a config file, the environment and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-cfb/internal/types"
)

// Output formats accepted by the CLI.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config holds the settings used to build and encode a directory hierarchy
type Config struct {
	MajorVersion uint16   `mapstructure:"major_version" yaml:"major_version"`
	RootName     string   `mapstructure:"root_name" yaml:"root_name"`
	ManifestName string   `mapstructure:"manifest_name" yaml:"manifest_name"`
	Ignore       []string `mapstructure:"ignore" yaml:"ignore"`
	StorageTimes bool     `mapstructure:"storage_times" yaml:"storage_times"`
	LogLevel     string   `mapstructure:"log_level" yaml:"log_level"`
	OutputFormat string   `mapstructure:"output_format" yaml:"output_format"`
}

// Load reads configuration using Viper. An explicit configFile must exist;
// otherwise cfb-config.yaml is looked up in the usual places and may be absent.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("cfb-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.cfb")
		v.AddConfigPath("/etc/cfb")
	}

	// Set defaults
	v.SetDefault("major_version", int(types.Version3))
	v.SetDefault("root_name", types.RootEntryName)
	v.SetDefault("manifest_name", ".cfbmeta.yaml")
	v.SetDefault("ignore", []string{".git", ".DS_Store"})
	v.SetDefault("storage_times", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", OutputTable)

	// Allow environment variables
	v.SetEnvPrefix("CFB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting has a usable value and normalizes the output format
func (c *Config) Validate() error {
	if !c.Version().Valid() {
		return fmt.Errorf("invalid major_version %d: must be 3 or 4", c.MajorVersion)
	}
	c.OutputFormat = strings.ToLower(c.OutputFormat)
	switch c.OutputFormat {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output_format %q: must be table, json or yaml", c.OutputFormat)
	}
	if c.ManifestName == "" {
		return errors.New("manifest_name must not be empty")
	}
	return nil
}

// Version returns the configured major version
func (c *Config) Version() types.MajorVersion {
	return types.MajorVersion(c.MajorVersion)
}
