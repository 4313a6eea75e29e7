package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovbind/ovbind/pkg/logger"
)

func TestParseGlobalFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want globalFlags
	}{
		{
			name: "none",
			args: []string{"symbols", "list"},
		},
		{
			name: "before the command",
			args: []string{"--config", "ovbind.yml", "--log-level=debug", "symbols", "list"},
			want: globalFlags{config: "ovbind.yml", logLevel: "debug"},
		},
		{
			name: "mixed with command flags",
			args: []string{"symbols", "list", "-n", "legacy", "-c", "ovbind.toml", "--format", "yaml"},
			want: globalFlags{config: "ovbind.toml"},
		},
		{
			name: "help",
			args: []string{"--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, parseGlobalFlags(tt.args))
		})
	}
}

func TestNewLogger(t *testing.T) { //nolint:paralleltest // config.Load reads OVBIND_* variables
	t.Setenv("OVBIND_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "")

	lggr, err := newLogger(globalFlags{config: "../../config/testdata/config.yml", logLevel: "warn"})
	require.NoError(t, err)
	require.NotNil(t, lggr)

	_, err = newLogger(globalFlags{logLevel: "loud"})
	require.ErrorContains(t, err, "invalid log level")
}

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	root, err := newRootCmd(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "ovbind", root.Use)
	require.NotNil(t, root.PersistentFlags().Lookup("config"))
	require.NotNil(t, root.PersistentFlags().Lookup("log-level"))

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"symbols", "warnings"})
}

func TestRootCmd_VerifyBuiltInManifest(t *testing.T) {
	t.Parallel()

	root, err := newRootCmd(logger.Nop())
	require.NoError(t, err)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"symbols", "verify"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "ok    ovruntime (built-in)")
}

func TestRootCmd_Version(t *testing.T) {
	t.Parallel()

	root, err := newRootCmd(logger.Nop())
	require.NoError(t, err)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "2025.2.0")
}
