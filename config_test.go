package matrix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/dora-dhcp/compat-matrix/flags"
)

func parseConfig(t *testing.T, args ...string) *Config {
	t.Helper()
	var cfg *Config
	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Action = func(ctx *cli.Context) error {
		var err error
		cfg, err = NewConfig(ctx, testLogger())
		return err
	}
	require.NoError(t, app.Run(append([]string{"matrix-report"}, args...)))
	require.NotNil(t, cfg)
	return cfg
}

func TestNewConfigFromFlags(t *testing.T) {
	cfg := parseConfig(t,
		"--standalone", "a.json",
		"--nats", "b.json",
		"--output-json", "out/combined.json",
		"--baseline", "prev.json",
		"--no-color",
	)

	assert.Equal(t, "a.json", cfg.StandalonePath)
	assert.Equal(t, "b.json", cfg.NatsPath)
	assert.Equal(t, "out/combined.json", cfg.OutputJSON)
	assert.Equal(t, "prev.json", cfg.BaselinePath)
	assert.True(t, cfg.NoColor)
	assert.Empty(t, cfg.OutputMD)
}

func TestNewConfigFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"standalone: file-standalone.json\n"+
			"output_md: file-matrix.md\n"+
			"no_color: true\n"), 0644))

	// Flags win over file values; file fills the gaps.
	cfg := parseConfig(t, "--config", path, "--standalone", "cli-standalone.json")

	assert.Equal(t, "cli-standalone.json", cfg.StandalonePath)
	assert.Equal(t, "file-matrix.md", cfg.OutputMD)
	assert.True(t, cfg.NoColor)
}

func TestNewConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[unclosed"), 0644))

	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Action = func(ctx *cli.Context) error {
		_, err := NewConfig(ctx, testLogger())
		return err
	}
	err := app.Run([]string{"matrix-report", "--config", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
