// Package config loads ovbind settings from a file and the environment and applies them to a
// warning registry.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/spf13/viper"

	"github.com/ovbind/ovbind/pkg/logger"
	"github.com/ovbind/ovbind/warnings"
)

// Output destinations for shown warnings.
const (
	OutputStderr = "stderr"
	OutputLog    = "log"
	OutputBoth   = "both"
)

// Color modes for the stderr category label.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// WarningsConfig configures the warning registry.
type WarningsConfig struct {
	DefaultAction string   `mapstructure:"default_action" yaml:"default_action"` // Action for warnings no filter matches
	Filters       []string `mapstructure:"filters" yaml:"filters"`               // "action:message:category:module" filter strings, first match wins
	Output        string   `mapstructure:"output" yaml:"output"`                 // stderr, log or both
	Color         string   `mapstructure:"color" yaml:"color"`                   // auto, always or never
}

// LogConfig configures the logger used for the "log" warning output and by the CLI.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // zap level name, e.g. "debug"
}

// Config wraps the entire ovbind configuration.
type Config struct {
	Warnings WarningsConfig `mapstructure:"warnings" yaml:"warnings"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// Load loads the config from the file path, falling back to env vars if the file does not exist.
// If the file exists, any env vars that are set will override the values loaded from the file.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadEnv loads the config from the environment variables.
func LoadEnv() (*Config, error) {
	v := viper.New()

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

// LoadFile loads the config from a file. YAML and TOML files are supported.
func LoadFile(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks every value without touching a registry.
func (c *Config) Validate() error {
	var errs []error
	if c.Warnings.DefaultAction != "" {
		if _, err := warnings.ParseAction(c.Warnings.DefaultAction); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := c.FilterSpecs(); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains([]string{"", OutputStderr, OutputLog, OutputBoth}, c.Warnings.Output) {
		errs = append(errs, fmt.Errorf("unknown warnings output %q", c.Warnings.Output))
	}
	if !slices.Contains([]string{"", ColorAuto, ColorAlways, ColorNever}, c.Warnings.Color) {
		errs = append(errs, fmt.Errorf("unknown warnings color mode %q", c.Warnings.Color))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level: %w", err))
	}

	return errors.Join(errs...)
}

// FilterSpecs parses the configured filters. Each entry may itself hold a comma separated list,
// which is how a list arrives from an environment variable.
func (c *Config) FilterSpecs() ([]warnings.FilterSpec, error) {
	var specs []warnings.FilterSpec
	for _, entry := range c.Warnings.Filters {
		parsed, err := warnings.ParseFilterSpecs(entry)
		if err != nil {
			return nil, err
		}
		specs = append(specs, parsed...)
	}

	return specs, nil
}

// Logger builds a production logger at the configured level.
func (c *Config) Logger() (logger.Logger, error) {
	lvl, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	lcfg := logger.Config{Level: lvl}

	return lcfg.New()
}

var (
	// envBindings defines how environment variables map to configuration keys used by Viper.
	//
	// The first element in the list is the preferred environment variable name, and the second
	// (if present) is a legacy name kept for compatibility with existing deployments. Viper
	// uses the first one that is set.
	envBindings = map[string][]string{
		"warnings.default_action": {"OVBIND_WARNINGS_DEFAULT_ACTION"},
		"warnings.filters":        {"OVBIND_WARNINGS", "OV_WARNINGS"},
		"warnings.output":         {"OVBIND_WARNINGS_OUTPUT"},
		"warnings.color":          {"OVBIND_WARNINGS_COLOR"},
		"log.level":               {"OVBIND_LOG_LEVEL", "LOG_LEVEL"},
	}
)

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		// Prepend the config key to the start of the arguments
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}
