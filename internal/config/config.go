// Package config provides configuration management for rangetrace using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Output formats of a replay report.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Config holds all configuration for the application.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Replay  ReplayConfig  `mapstructure:"replay" yaml:"replay"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format"` // json, text
	AddSource  bool   `mapstructure:"add_source" yaml:"add_source"`
	TimeFormat string `mapstructure:"time_format" yaml:"time_format"`
}

// Normalize lowercases the level and format and maps "warning" to "warn".
func (c *LoggingConfig) Normalize() {
	c.Level = strings.ToLower(c.Level)
	c.Format = strings.ToLower(c.Format)
	if c.Level == "warning" {
		c.Level = "warn"
	}
}

// ReplayConfig holds trace replay configuration.
type ReplayConfig struct {
	// Strict rejects negative starts and empty ranges on insertion.
	Strict bool   `mapstructure:"strict" yaml:"strict"`
	Output string `mapstructure:"output" yaml:"output"` // text, yaml
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
// Environment variables are prefixed with RANGETRACE_ and use underscores for nesting.
// Example: RANGETRACE_REPLAY_STRICT=true.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if err := ReadInto(v, configPath); err != nil {
		return nil, err
	}
	return Unmarshal(v)
}

// ReadInto sets defaults, environment bindings and the config file on v.
// A missing config file is not an error.
func ReadInto(v *viper.Viper, configPath string) error {
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("rangetrace")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/rangetrace")
	}

	v.SetEnvPrefix("RANGETRACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

// Unmarshal decodes and validates the configuration held by v.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Logging.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", "")

	v.SetDefault("replay.strict", false)
	v.SetDefault("replay.output", OutputText)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	validOutputs := map[string]bool{OutputText: true, OutputYAML: true}
	if !validOutputs[c.Replay.Output] {
		return fmt.Errorf("replay.output must be one of: text, yaml")
	}

	return nil
}
