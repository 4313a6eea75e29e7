package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ovbind/ovbind/config"
	"github.com/ovbind/ovbind/ov"
	"github.com/ovbind/ovbind/pkg/commands"
	"github.com/ovbind/ovbind/pkg/commands/flags"
	"github.com/ovbind/ovbind/pkg/commands/text"
	"github.com/ovbind/ovbind/pkg/logger"
)

var rootLong = text.LongDesc(`
	ovbind inspects the runtime binding surface.

	The "symbols" commands list the canonical namespace and verify that legacy manifests can be
	served from it. The "warnings" commands show how deprecation notices will be filtered for a
	given configuration.
`)

// globalFlags are the persistent root flags needed before the command tree exists.
type globalFlags struct {
	config   string
	logLevel string
}

// parseGlobalFlags picks --config and --log-level out of args, ignoring everything else.
// Cobra parses the same flags again when the command runs.
func parseGlobalFlags(args []string) globalFlags {
	var g globalFlags

	fs := pflag.NewFlagSet("ovbind", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.StringVarP(&g.config, "config", "c", "", "")
	fs.StringVar(&g.logLevel, "log-level", "", "")
	_ = fs.Parse(args)

	return g
}

// newLogger builds the CLI logger. --log-level wins over the configured level.
func newLogger(g globalFlags) (logger.Logger, error) {
	cfg, err := config.Load(g.config)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}

	return cfg.Logger()
}

func newRootCmd(lggr logger.Logger) (*cobra.Command, error) {
	root := &cobra.Command{
		Use:           "ovbind",
		Short:         "Inspect the ovbind runtime binding",
		Long:          rootLong,
		Version:       ov.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.Config(root)
	flags.LogLevel(root)

	cmds, err := commands.New(lggr).All()
	if err != nil {
		return nil, err
	}
	root.AddCommand(cmds...)

	return root, nil
}
