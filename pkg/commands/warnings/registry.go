package warnings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ovbind/ovbind/config"
	"github.com/ovbind/ovbind/pkg/commands/flags"
	fwarnings "github.com/ovbind/ovbind/warnings"
)

// buildRegistry reproduces the filter chain a process would end up with: the configuration
// first, then the default filter of every legacy manifest. Nothing is emitted.
func buildRegistry(cmd *cobra.Command, cfg Config) (*fwarnings.Registry, error) {
	path := flags.MustString(cmd.Flags().GetString("config"))

	c, err := cfg.Deps.ConfigLoader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	r := fwarnings.NewRegistry(fwarnings.WithEmitter(fwarnings.NewRecordingEmitter()))
	if err = config.Apply(c, r, cfg.Logger); err != nil {
		return nil, err
	}

	specs, err := cfg.Deps.Manifests()
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if err := spec.EnsureFilter(r); err != nil {
			return nil, fmt.Errorf("failed to install filter for %s: %w", spec.Name, err)
		}
	}
	cfg.Logger.Debugw("Built warning registry", "config", path, "filters", len(r.Filters()))

	return r, nil
}
