package symbols

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ovbind/ovbind/facade"
	"github.com/ovbind/ovbind/pkg/commands/flags"
	"github.com/ovbind/ovbind/pkg/commands/text"
)

var (
	verifyShort = "Verify legacy manifests against the canonical namespace"

	verifyLong = text.LongDesc(`
		Checks that every symbol, child namespace and op-set listed by one or more legacy
		manifests exists in the canonical namespace. A legacy namespace only loads when all of
		them are present.

		Without --manifest the built-in ovruntime manifest is verified.
	`)

	verifyExample = text.Examples(`
		# Verify the built-in manifest
		ovbind symbols verify

		# Verify several manifests
		ovbind symbols verify --manifest ./exports.yaml --manifest ./other.yaml
	`)
)

// ErrVerifyFailed is returned when at least one manifest names a missing canonical symbol.
var ErrVerifyFailed = errors.New("manifest verification failed")

// verifyResult is the outcome for one manifest.
type verifyResult struct {
	source  string
	name    string
	exports int
	missing []string
}

// newVerifyCmd creates the "verify" subcommand.
func newVerifyCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "verify",
		Short:   verifyShort,
		Long:    verifyLong,
		Example: verifyExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths := flags.MustStringSlice(cmd.Flags().GetStringSlice("manifest"))

			return runVerify(cmd, cfg, paths)
		},
	}

	cmd.Flags().StringSliceP("manifest", "m", nil, "Manifest paths to verify (repeatable)")

	return cmd
}

// runVerify loads and verifies each manifest concurrently, then reports in argument order.
func runVerify(cmd *cobra.Command, cfg Config, paths []string) error {
	if len(paths) == 0 {
		paths = []string{""}
	}

	canonical := cfg.Deps.Canonical()
	results := make([]verifyResult, len(paths))

	g, _ := errgroup.WithContext(cmd.Context())
	for i, path := range paths {
		g.Go(func() error {
			spec, err := cfg.Deps.ManifestLoader(path)
			if err != nil {
				return err
			}
			results[i] = verifyResult{
				source:  sourceLabel(path),
				name:    spec.Name,
				exports: len(spec.Exports) + len(spec.Children),
				missing: facade.Verify(canonical, spec),
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if len(r.missing) == 0 {
			fmt.Fprintf(out, "ok    %s (%s): %d exports bound from %s\n", r.name, r.source, r.exports, canonical.Name())
			continue
		}
		failed++
		cfg.Logger.Errorw("Manifest references missing symbols", "manifest", r.source, "missing", r.missing)
		fmt.Fprintf(out, "FAIL  %s (%s): missing %s\n", r.name, r.source, strings.Join(r.missing, ", "))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d manifests", ErrVerifyFailed, failed, len(results))
	}

	return nil
}

func sourceLabel(path string) string {
	if path == "" {
		return "built-in"
	}

	return path
}
