// Package matrix is the top-level driver of the DHCP client compatibility
// matrix formatter: it loads one or two collector result files, merges them
// into a combined matrix, renders terminal / Markdown / JSON outputs and
// diffs the result against an optional baseline.
package matrix

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/acarl005/stripansi"

	"github.com/dora-dhcp/compat-matrix/reporting"
	"github.com/dora-dhcp/compat-matrix/types"
)

// Run executes one formatter invocation. The terminal rendering is always
// printed; file outputs are written only when their destination was
// requested. It returns a TestFailureError when any backend summary shows
// failures, after all requested outputs have been produced.
func Run(cfg *Config) error {
	return run(cfg, os.Stdout)
}

func run(cfg *Config, stdout io.Writer) error {
	standalone, err := LoadResultSet(cfg.StandalonePath)
	if err != nil {
		return NewRuntimeError(err)
	}
	nats, err := LoadResultSet(cfg.NatsPath)
	if err != nil {
		return NewRuntimeError(err)
	}
	if standalone == nil && nats == nil {
		return NewRuntimeError(errors.New("at least one of --standalone or --nats must resolve to an existing results file"))
	}

	baseline, err := LoadCombined(cfg.BaselinePath)
	if err != nil {
		return NewRuntimeError(err)
	}

	combined := reporting.BuildCombined(standalone, nats)

	palette := reporting.NewPalette(!cfg.NoColor)
	formatter := reporting.NewMatrixFormatter(palette)

	terminal := formatter.FormatCombined(combined, baseline)
	fmt.Fprintln(stdout, terminal)

	if baseline != nil {
		fmt.Fprintln(stdout, formatter.FormatDiff(combined, baseline))
	}

	if cfg.OutputJSON != "" {
		data, err := json.MarshalIndent(combined, "", "  ")
		if err != nil {
			return NewRuntimeError(fmt.Errorf("failed to marshal combined matrix: %w", err))
		}
		if err := writeOutput(cfg.OutputJSON, string(data)+"\n"); err != nil {
			return NewRuntimeError(err)
		}
		cfg.Log.Infof("combined JSON written to %s", cfg.OutputJSON)
	}

	if cfg.OutputMD != "" {
		if err := writeOutput(cfg.OutputMD, reporting.MarkdownCombined(combined, baseline)); err != nil {
			return NewRuntimeError(err)
		}
		cfg.Log.Infof("markdown written to %s", cfg.OutputMD)
	}

	if cfg.OutputTerm != "" {
		plain := stripansi.Strip(terminal)
		if baseline != nil {
			plain += "\n" + stripansi.Strip(formatter.FormatDiff(combined, baseline))
		}
		if err := writeOutput(cfg.OutputTerm, plain); err != nil {
			return NewRuntimeError(err)
		}
		cfg.Log.Infof("terminal output written to %s", cfg.OutputTerm)
	}

	if combined.HasFailures() {
		return NewTestFailureError(failureMessage(combined))
	}
	return nil
}

func failureMessage(combined *types.CombinedMatrix) string {
	failed := 0
	for _, backend := range combined.Meta.Backends {
		failed += combined.Summary[backend].Failed
	}
	return fmt.Sprintf("%d test(s) failed across %d backend(s)", failed, len(combined.Meta.Backends))
}
