// Package symbols provides the "symbols" commands for inspecting and verifying the canonical
// and legacy namespaces.
package symbols

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ovbind/ovbind/pkg/commands/text"
	"github.com/ovbind/ovbind/pkg/logger"
)

var (
	symbolsShort = "Inspect and verify namespaces"

	symbolsLong = text.LongDesc(`
		Commands for inspecting the canonical runtime namespace and the deprecated namespaces
		re-exported from it.

		None of these commands loads a legacy namespace, so no deprecation notice is shown.
	`)
)

// Config holds the configuration for symbols commands.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Deps holds optional dependencies that can be overridden.
	// If fields are nil, production defaults are used.
	Deps Deps
}

// Validate checks that all required configuration fields are set.
func (c Config) Validate() error {
	if c.Logger == nil {
		return errors.New("symbols.Config: missing required fields: Logger")
	}

	return nil
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

// NewCommand creates a new symbols command with all subcommands.
func NewCommand(cfg Config) (*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.deps()

	cmd := &cobra.Command{
		Use:   "symbols",
		Short: symbolsShort,
		Long:  symbolsLong,
	}

	cmd.AddCommand(newListCmd(cfg))
	cmd.AddCommand(newVerifyCmd(cfg))

	return cmd, nil
}
