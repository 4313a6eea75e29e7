// Package flags holds flags shared by several ovbind commands. Flags used by a single command
// are declared next to it.
package flags

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// MustString returns the string value, ignoring the error.
// Safe to use with registered flags where GetString cannot fail.
func MustString(s string, _ error) string { return s }

// MustStringSlice returns the slice value, ignoring the error.
func MustStringSlice(s []string, _ error) []string { return s }

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists the accepted --format values.
var Formats = []string{FormatText, FormatYAML, FormatTOML}

// Format adds the --format/-f flag. Retrieve the value with GetFormat.
func Format(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", FormatText, "Output format: "+strings.Join(Formats, ", "))
}

// GetFormat returns the validated --format value.
func GetFormat(cmd *cobra.Command) (string, error) {
	f := strings.ToLower(MustString(cmd.Flags().GetString("format")))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unknown format %q: use one of %s", f, strings.Join(Formats, ", "))
	}

	return f, nil
}

// Config adds the persistent --config/-c flag for the ovbind config file.
func Config(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "Path to an ovbind config file (YAML or TOML)")
}

// LogLevel adds the persistent --log-level flag.
func LogLevel(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}
