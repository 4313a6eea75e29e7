package symbols

import (
	"fmt"
	"io"
	"reflect"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ovbind/ovbind/facade"
	"github.com/ovbind/ovbind/namespace"
	"github.com/ovbind/ovbind/pkg/commands/flags"
	"github.com/ovbind/ovbind/pkg/commands/text"
)

var (
	listShort = "List the symbols of a namespace"

	listLong = text.LongDesc(`
		Lists every symbol of the canonical namespace or of a legacy namespace, depth first,
		with its dotted path and kind (type, func, error or value).

		The legacy namespace is built from its manifest without issuing the deprecation notice.
	`)

	listExample = text.Examples(`
		# List the canonical namespace
		ovbind symbols list

		# List the legacy namespace as YAML
		ovbind symbols list --namespace legacy --format yaml

		# List a legacy namespace described by a custom manifest as TOML
		ovbind symbols list --namespace legacy --manifest ./exports.yaml --format toml
	`)
)

// Namespaces accepted by --namespace.
const (
	namespaceCanonical = "canonical"
	namespaceLegacy    = "legacy"
)

type listFlags struct {
	namespace string
	manifest  string
	format    string
}

// Listing is the structured output of the list command.
type Listing struct {
	Namespace string  `yaml:"namespace" toml:"namespace"`
	Symbols   []Entry `yaml:"symbols" toml:"symbols"`
}

// Entry is one listed symbol.
type Entry struct {
	Path string `yaml:"path" toml:"path"`
	Kind string `yaml:"kind" toml:"kind"`
}

// newListCmd creates the "list" subcommand.
func newListCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   listShort,
		Long:    listLong,
		Example: listExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := flags.GetFormat(cmd)
			if err != nil {
				return err
			}
			f := listFlags{
				namespace: flags.MustString(cmd.Flags().GetString("namespace")),
				manifest:  flags.MustString(cmd.Flags().GetString("manifest")),
				format:    format,
			}

			return runList(cmd, cfg, f)
		},
	}

	cmd.Flags().StringP("namespace", "n", namespaceCanonical, "Namespace to list: canonical or legacy")
	cmd.Flags().StringP("manifest", "m", "", "Legacy manifest path (default: built-in ovruntime manifest)")
	flags.Format(cmd)

	return cmd
}

// runList executes the list command logic.
func runList(cmd *cobra.Command, cfg Config, f listFlags) error {
	ns, err := resolveNamespace(cfg, f)
	if err != nil {
		return err
	}

	listing := Listing{Namespace: ns.Name()}
	err = ns.Walk(func(path string, value any) error {
		listing.Symbols = append(listing.Symbols, Entry{Path: path, Kind: kindOf(value)})
		return nil
	})
	if err != nil {
		return err
	}
	cfg.Logger.Debugw("Listed namespace", "namespace", ns.Path(), "symbols", len(listing.Symbols))

	return writeListing(cmd.OutOrStdout(), listing, f.format)
}

func resolveNamespace(cfg Config, f listFlags) (*namespace.Namespace, error) {
	canonical := cfg.Deps.Canonical()

	switch f.namespace {
	case namespaceCanonical:
		return canonical, nil
	case namespaceLegacy:
		spec, err := cfg.Deps.ManifestLoader(f.manifest)
		if err != nil {
			return nil, err
		}

		return facade.Build(canonical, spec)
	default:
		return nil, fmt.Errorf("unknown namespace %q: use %s or %s", f.namespace, namespaceCanonical, namespaceLegacy)
	}
}

func writeListing(w io.Writer, listing Listing, format string) error {
	switch format {
	case flags.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(listing); err != nil {
			return fmt.Errorf("failed to encode listing as YAML: %w", err)
		}

		return enc.Close()
	case flags.FormatTOML:
		if err := toml.NewEncoder(w).Encode(listing); err != nil {
			return fmt.Errorf("failed to encode listing as TOML: %w", err)
		}

		return nil
	default:
		for _, e := range listing.Symbols {
			if _, err := fmt.Fprintf(w, "%-6s %s.%s\n", e.Kind, listing.Namespace, e.Path); err != nil {
				return err
			}
		}

		return nil
	}
}

var errorType = reflect.TypeFor[error]()

func kindOf(v any) string {
	if _, ok := v.(reflect.Type); ok {
		return "type"
	}
	t := reflect.TypeOf(v)
	switch {
	case t == nil:
		return "value"
	case t.Kind() == reflect.Func:
		return "func"
	case t.Implements(errorType):
		return "error"
	default:
		return "value"
	}
}
