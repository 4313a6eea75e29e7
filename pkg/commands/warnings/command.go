// Package warnings provides the "warnings" commands for inspecting the warning filter chain
// that a configuration produces.
package warnings

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ovbind/ovbind/config"
	"github.com/ovbind/ovbind/facade"
	"github.com/ovbind/ovbind/legacy/manifest"
	"github.com/ovbind/ovbind/pkg/commands/text"
	"github.com/ovbind/ovbind/pkg/logger"
)

var (
	warningsShort = "Inspect warning filters"

	warningsLong = text.LongDesc(`
		Commands for inspecting the warning filter chain built from the ovbind configuration
		(the --config file, then OVBIND_* and OV_WARNINGS environment variables) and the
		filters legacy namespaces install when they load.
	`)
)

// ConfigLoaderFunc loads the ovbind configuration from an optional file path.
type ConfigLoaderFunc func(path string) (*config.Config, error)

// ManifestFunc returns the manifests whose default filters are installed after the
// configuration.
type ManifestFunc func() ([]*facade.Spec, error)

func defaultManifests() ([]*facade.Spec, error) {
	spec, err := manifest.Spec()
	if err != nil {
		return nil, err
	}

	return []*facade.Spec{spec}, nil
}

// Deps holds the injectable dependencies for warnings commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// ConfigLoader loads the configuration.
	// Default: config.Load
	ConfigLoader ConfigLoaderFunc

	// Manifests returns the legacy manifests to account for.
	// Default: the embedded ovruntime manifest
	Manifests ManifestFunc
}

func (d *Deps) applyDefaults() {
	if d.ConfigLoader == nil {
		d.ConfigLoader = config.Load
	}
	if d.Manifests == nil {
		d.Manifests = defaultManifests
	}
}

// Config holds the configuration for warnings commands.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Deps holds optional dependencies that can be overridden.
	Deps Deps
}

// Validate checks that all required configuration fields are set.
func (c Config) Validate() error {
	if c.Logger == nil {
		return errors.New("warnings.Config: missing required fields: Logger")
	}

	return nil
}

func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

// NewCommand creates a new warnings command with all subcommands.
func NewCommand(cfg Config) (*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.deps()

	cmd := &cobra.Command{
		Use:   "warnings",
		Short: warningsShort,
		Long:  warningsLong,
	}

	cmd.AddCommand(newFiltersCmd(cfg))
	cmd.AddCommand(newCheckCmd(cfg))

	return cmd, nil
}
