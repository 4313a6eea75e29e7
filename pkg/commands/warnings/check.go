package warnings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ovbind/ovbind/pkg/commands/flags"
	"github.com/ovbind/ovbind/pkg/commands/text"
	fwarnings "github.com/ovbind/ovbind/warnings"
)

var (
	checkShort = "Show which action handles a warning"

	checkLong = text.LongDesc(`
		Resolves a warning raised from the given module against the effective filter chain and
		prints the action that would handle it, with the filter that decided it.
	`)

	checkExample = text.Examples(`
		# What happens when the legacy runtime namespace is loaded
		ovbind warnings check github.com/ovbind/ovbind/legacy/ovruntime

		# Check a specific category and message
		ovbind warnings check example.com/app --category UserWarning --message "slow path"
	`)
)

type checkFlags struct {
	module   string
	category string
	message  string
}

func newCheckCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check <module>",
		Short:   checkShort,
		Long:    checkLong,
		Example: checkExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := checkFlags{
				module:   args[0],
				category: flags.MustString(cmd.Flags().GetString("category")),
				message:  flags.MustString(cmd.Flags().GetString("message")),
			}

			return runCheck(cmd, cfg, f)
		},
	}

	cmd.Flags().String("category", fwarnings.DeprecationWarning.Name(), "Warning category")
	cmd.Flags().String("message", "", "Warning message")

	return cmd
}

func runCheck(cmd *cobra.Command, cfg Config, f checkFlags) error {
	category, ok := fwarnings.LookupCategory(f.category)
	if !ok {
		return fmt.Errorf("unknown warning category %q", f.category)
	}

	r, err := buildRegistry(cmd, cfg)
	if err != nil {
		return err
	}

	action, filter := r.Resolve(fwarnings.Event{
		Message:      f.message,
		Category:     category,
		SourceModule: f.module,
	})

	out := cmd.OutOrStdout()
	if filter == nil {
		fmt.Fprintf(out, "%s (default action)\n", action)
		return nil
	}
	fmt.Fprintf(out, "%s (filter %s module=%q message=%q)\n", action, filter.Category.Name(), filter.Module, filter.Message)

	return nil
}
