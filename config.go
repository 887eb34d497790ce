package matrix

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dora-dhcp/compat-matrix/flags"
)

// Config holds the formatter configuration
type Config struct {
	StandalonePath string // Standalone backend results.json
	NatsPath       string // NATS backend results.json
	OutputJSON     string // Combined JSON destination, empty to skip
	OutputMD       string // Markdown destination, empty to skip
	OutputTerm     string // De-colorized terminal rendering destination, empty to skip
	BaselinePath   string // Prior combined.json for regression comparison
	NoColor        bool   // Disable ANSI styling everywhere

	Log *logrus.Entry
}

// fileConfig mirrors the flag surface for the optional YAML config file.
// Flags set on the command line take precedence over file values.
type fileConfig struct {
	Standalone string `yaml:"standalone"`
	Nats       string `yaml:"nats"`
	OutputJSON string `yaml:"output_json"`
	OutputMD   string `yaml:"output_md"`
	OutputTerm string `yaml:"output_term"`
	Baseline   string `yaml:"baseline"`
	NoColor    bool   `yaml:"no_color"`
}

// NewConfig creates a Config from the cli context, layering an optional YAML
// config file underneath the flags.
func NewConfig(ctx *cli.Context, log *logrus.Entry) (*Config, error) {
	cfg := &Config{
		StandalonePath: ctx.String(flags.Standalone.Name),
		NatsPath:       ctx.String(flags.Nats.Name),
		OutputJSON:     ctx.String(flags.OutputJSON.Name),
		OutputMD:       ctx.String(flags.OutputMD.Name),
		OutputTerm:     ctx.String(flags.OutputTerm.Name),
		BaselinePath:   ctx.String(flags.Baseline.Name),
		NoColor:        ctx.Bool(flags.NoColor.Name),
		Log:            log,
	}

	if path := ctx.String(flags.ConfigFile.Name); path != "" {
		fc, err := loadFileConfig(path)
		if err != nil {
			return nil, err
		}
		applyDefault := func(flagName string, dst *string, fileValue string) {
			if !ctx.IsSet(flagName) && fileValue != "" {
				*dst = fileValue
			}
		}
		applyDefault(flags.Standalone.Name, &cfg.StandalonePath, fc.Standalone)
		applyDefault(flags.Nats.Name, &cfg.NatsPath, fc.Nats)
		applyDefault(flags.OutputJSON.Name, &cfg.OutputJSON, fc.OutputJSON)
		applyDefault(flags.OutputMD.Name, &cfg.OutputMD, fc.OutputMD)
		applyDefault(flags.OutputTerm.Name, &cfg.OutputTerm, fc.OutputTerm)
		applyDefault(flags.Baseline.Name, &cfg.BaselinePath, fc.Baseline)
		if !ctx.IsSet(flags.NoColor.Name) && fc.NoColor {
			cfg.NoColor = true
		}
	}

	return cfg, nil
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fc, nil
}
