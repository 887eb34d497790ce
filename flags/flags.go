package flags

import (
	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "DORA_MATRIX"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	Standalone = &cli.StringFlag{
		Name:    "standalone",
		Value:   "",
		EnvVars: prefixEnvVars("STANDALONE"),
		Usage:   "Path to the standalone backend results.json",
	}
	Nats = &cli.StringFlag{
		Name:    "nats",
		Value:   "",
		EnvVars: prefixEnvVars("NATS"),
		Usage:   "Path to the NATS backend results.json",
	}
	OutputJSON = &cli.StringFlag{
		Name:    "output-json",
		Value:   "",
		EnvVars: prefixEnvVars("OUTPUT_JSON"),
		Usage:   "Write the combined JSON matrix to this path",
	}
	OutputMD = &cli.StringFlag{
		Name:    "output-md",
		Value:   "",
		EnvVars: prefixEnvVars("OUTPUT_MD"),
		Usage:   "Write the Markdown table to this path",
	}
	OutputTerm = &cli.StringFlag{
		Name:    "output-term",
		Value:   "",
		EnvVars: prefixEnvVars("OUTPUT_TERM"),
		Usage:   "Write the de-colorized terminal rendering to this path",
	}
	Baseline = &cli.StringFlag{
		Name:    "baseline",
		Value:   "",
		EnvVars: prefixEnvVars("BASELINE"),
		Usage:   "Path to a previous combined.json for regression comparison",
	}
	NoColor = &cli.BoolFlag{
		Name:    "no-color",
		Value:   false,
		EnvVars: prefixEnvVars("NO_COLOR"),
		Usage:   "Disable ANSI styling everywhere",
	}
	ConfigFile = &cli.StringFlag{
		Name:    "config",
		Value:   "",
		EnvVars: prefixEnvVars("CONFIG"),
		Usage:   "Optional YAML config file supplying defaults for the flags above",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level (trace, debug, info, warn, error)",
	}
)

var Flags = []cli.Flag{
	Standalone,
	Nats,
	OutputJSON,
	OutputMD,
	OutputTerm,
	Baseline,
	NoColor,
	ConfigFile,
	LogLevel,
}
