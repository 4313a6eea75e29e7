package warnings

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ovbind/ovbind/pkg/commands/flags"
	"github.com/ovbind/ovbind/pkg/commands/text"
	fwarnings "github.com/ovbind/ovbind/warnings"
)

var (
	filtersShort = "Show the effective warning filter chain"

	filtersLong = text.LongDesc(`
		Prints the default action and the warning filters in match order, as they would be
		installed in a process using the given configuration. The first matching filter decides
		what happens to a warning.
	`)

	filtersExample = text.Examples(`
		# Show the filters from the environment
		ovbind warnings filters

		# Show the filters from a config file as YAML
		ovbind warnings filters --config ./ovbind.yml --format yaml
	`)
)

// Chain is the structured output of the filters command.
type Chain struct {
	DefaultAction string        `yaml:"default_action" toml:"default_action"`
	Filters       []FilterEntry `yaml:"filters" toml:"filters"`
}

// FilterEntry is one filter of a Chain.
type FilterEntry struct {
	Action   string `yaml:"action" toml:"action"`
	Category string `yaml:"category" toml:"category"`
	Module   string `yaml:"module,omitempty" toml:"module,omitempty"`
	Message  string `yaml:"message,omitempty" toml:"message,omitempty"`
}

func newFilterEntry(f fwarnings.Filter) FilterEntry {
	return FilterEntry{
		Action:   f.Action.String(),
		Category: f.Category.Name(),
		Module:   f.Module,
		Message:  f.Message,
	}
}

func newFiltersCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "filters",
		Short:   filtersShort,
		Long:    filtersLong,
		Example: filtersExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := flags.GetFormat(cmd)
			if err != nil {
				return err
			}

			r, err := buildRegistry(cmd, cfg)
			if err != nil {
				return err
			}

			chain := Chain{DefaultAction: r.DefaultAction().String()}
			for _, f := range r.Filters() {
				chain.Filters = append(chain.Filters, newFilterEntry(f))
			}

			return writeChain(cmd.OutOrStdout(), chain, format)
		},
	}

	flags.Format(cmd)

	return cmd
}

func writeChain(w io.Writer, chain Chain, format string) error {
	switch format {
	case flags.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(chain); err != nil {
			return fmt.Errorf("failed to encode filters as YAML: %w", err)
		}

		return enc.Close()
	case flags.FormatTOML:
		if err := toml.NewEncoder(w).Encode(chain); err != nil {
			return fmt.Errorf("failed to encode filters as TOML: %w", err)
		}

		return nil
	}

	fmt.Fprintf(w, "default action: %s\n", chain.DefaultAction)
	for i, f := range chain.Filters {
		fmt.Fprintf(w, "%2d. %-7s %-20s module=%q message=%q\n", i+1, f.Action, f.Category, f.Module, f.Message)
	}

	return nil
}
