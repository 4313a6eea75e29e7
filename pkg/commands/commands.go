// Package commands provides the ovbind CLI command packages.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory (recommended for most use cases):
//
//	cmds := commands.New(lggr)
//	symbolsCmd, err := cmds.Symbols()
//	if err != nil {
//	    return err
//	}
//	app.AddCommand(symbolsCmd)
//
// 2. Via direct package imports (for advanced DI/testing):
//
//	import "github.com/ovbind/ovbind/pkg/commands/symbols"
//
//	cmd, err := symbols.NewCommand(symbols.Config{
//	    Logger: lggr,
//	    Deps:   symbols.Deps{...}, // inject fakes for testing
//	})
package commands

import (
	"github.com/spf13/cobra"

	"github.com/ovbind/ovbind/pkg/commands/symbols"
	"github.com/ovbind/ovbind/pkg/commands/warnings"
	"github.com/ovbind/ovbind/pkg/logger"
)

// Commands provides a factory for creating CLI commands with shared configuration.
type Commands struct {
	lggr logger.Logger
}

// New creates a new Commands factory with the given logger.
// The logger will be shared across all commands created by this factory.
func New(lggr logger.Logger) *Commands {
	return &Commands{lggr: lggr}
}

// Symbols creates the symbols command group.
func (c *Commands) Symbols() (*cobra.Command, error) {
	return symbols.NewCommand(symbols.Config{
		Logger: c.lggr.Named("symbols"),
	})
}

// Warnings creates the warnings command group.
func (c *Commands) Warnings() (*cobra.Command, error) {
	return warnings.NewCommand(warnings.Config{
		Logger: c.lggr.Named("warnings"),
	})
}

// All creates every command group, in the order they should appear.
func (c *Commands) All() ([]*cobra.Command, error) {
	builders := []func() (*cobra.Command, error){c.Symbols, c.Warnings}

	cmds := make([]*cobra.Command, 0, len(builders))
	for _, build := range builders {
		cmd, err := build()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}

	return cmds, nil
}
