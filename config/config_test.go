package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var (
	// fileCfg is the config that is loaded from the testdata/config.yml file.
	fileCfg = &Config{
		Warnings: WarningsConfig{
			DefaultAction: "module",
			Filters: []string{
				"always::DeprecationWarning:github.com/ovbind/ovbind/legacy/ovruntime",
				"ignore::ResourceWarning",
			},
			Output: OutputLog,
			Color:  ColorNever,
		},
		Log: LogConfig{Level: "debug"},
	}

	// envVars is the environment variables that used to set the config.
	envVars = map[string]string{
		"OVBIND_WARNINGS_DEFAULT_ACTION": "ignore",
		"OVBIND_WARNINGS":                "error::DeprecationWarning,default::UserWarning",
		"OVBIND_WARNINGS_OUTPUT":         "both",
		"OVBIND_WARNINGS_COLOR":          "always",
		"OVBIND_LOG_LEVEL":               "warn",
	}

	// legacyEnvVars is the environment variables that used to set the config with legacy keys.
	legacyEnvVars = map[string]string{
		"OVBIND_WARNINGS_DEFAULT_ACTION": "ignore",
		"OV_WARNINGS":                    "error::DeprecationWarning,default::UserWarning",
		"OVBIND_WARNINGS_OUTPUT":         "both",
		"OVBIND_WARNINGS_COLOR":          "always",
		"LOG_LEVEL":                      "warn",
	}

	// envCfg is the config that is loaded from the environment variables.
	envCfg = &Config{
		Warnings: WarningsConfig{
			DefaultAction: "ignore",
			Filters:       []string{"error::DeprecationWarning", "default::UserWarning"},
			Output:        OutputBoth,
			Color:         ColorAlways,
		},
		Log: LogConfig{Level: "warn"},
	}
)

func Test_Load(t *testing.T) { //nolint:paralleltest // see comment in setupEnvVars
	tests := []struct {
		name       string
		beforeFunc func(t *testing.T)
		givePath   string
		want       *Config
		wantErr    string
	}{
		{
			name:     "load from file",
			givePath: "./testdata/config.yml",
			want:     fileCfg,
		},
		{
			name:     "load from toml file",
			givePath: "./testdata/config.toml",
			want:     fileCfg,
		},
		{
			name:     "load from empty file",
			givePath: "./testdata/empty.yml",
			want:     &Config{},
		},
		{
			name: "override with env",
			beforeFunc: func(t *testing.T) {
				t.Helper()

				setupEnvVars(t, envVars)
			},
			givePath: "./testdata/config.yml",
			want:     envCfg,
		},
		{
			name: "fallback to env when file not found",
			beforeFunc: func(t *testing.T) {
				t.Helper()

				setupEnvVars(t, envVars)
			},
			givePath: "./testdata/missing.yml",
			want:     envCfg,
		},
	}

	for _, tt := range tests { //nolint:paralleltest // see comment in setupEnvVars
		t.Run(tt.name, func(t *testing.T) {
			if tt.beforeFunc != nil {
				tt.beforeFunc(t)
			}

			got, err := Load(tt.givePath)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_LoadFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		givePath string
		want     *Config
		wantErr  string
	}{
		{
			name:     "load from file",
			givePath: "./testdata/config.yml",
			want:     fileCfg,
		},
		{
			name:     "load from file with invalid path",
			givePath: "./testdata/missing.yml",
			wantErr:  "failed to read config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadFile(tt.givePath)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_LoadEnv(t *testing.T) { //nolint:paralleltest // see comment in setupEnvVars
	setupEnvVars(t, envVars)

	got, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, envCfg, got)
}

func Test_LoadEnv_Legacy(t *testing.T) { //nolint:paralleltest // see comment in setupEnvVars
	setupEnvVars(t, legacyEnvVars)

	got, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, envCfg, got)
}

func Test_YAML_Unmarshal(t *testing.T) {
	t.Parallel()

	yamlCfg, err := os.ReadFile("./testdata/config.yml")
	require.NoError(t, err)

	var cfg Config
	require.NoError(t, yaml.Unmarshal(yamlCfg, &cfg))
	assert.Equal(t, *fileCfg, cfg)

	b, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.YAMLEq(t, string(yamlCfg), string(b))
}

func Test_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, fileCfg.Validate())
	require.NoError(t, (&Config{}).Validate())

	cfg, err := LoadFile("./testdata/invalid_values.yml")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		`invalid warning filter action "shout"`,
		`invalid warning filter category "NoSuchWarning"`,
		`unknown warnings output "syslog"`,
		`unknown warnings color mode "sometimes"`,
		"invalid log level",
	} {
		assert.ErrorContains(t, err, want)
	}
}

func Test_FilterSpecs(t *testing.T) {
	t.Parallel()

	specs, err := envCfg.FilterSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "error::DeprecationWarning:", specs[0].String())
	assert.Equal(t, "default::UserWarning:", specs[1].String())
}

// setupEnvVars sets up the environment variables for the test.
//
// CAUTION: Because this function uses t.Setenv which affects the entire process, tests which call
// this function cannot be run in parallel.
func setupEnvVars(t *testing.T, envVars map[string]string) {
	t.Helper()

	for key, value := range envVars {
		t.Setenv(key, value)
	}
}
