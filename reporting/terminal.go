package reporting

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dora-dhcp/compat-matrix/types"
)

// MatrixFormatter renders result sets and combined matrices for the
// terminal. It is stateless apart from the palette it styles output with.
type MatrixFormatter struct {
	palette *Palette
}

// NewMatrixFormatter creates a formatter using the given palette.
func NewMatrixFormatter(palette *Palette) *MatrixFormatter {
	return &MatrixFormatter{palette: palette}
}

// FormatResultSet renders a single backend's matrix: one column per test
// category, rows sorted by client then protocol, and a trailing summary line
// with counts and elapsed seconds.
func (f *MatrixFormatter) FormatResultSet(rs *types.ResultSet) string {
	p := f.palette

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("DHCP Client Compatibility Matrix [%s]", rs.Meta.Backend)

	header := table.Row{"Client", "Proto"}
	for _, col := range types.TestColumns {
		header = append(header, col)
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(statusColumnConfigs(2, len(types.TestColumns)))

	for _, client := range rs.SortedClients() {
		for _, proto := range rs.SortedProtocols(client) {
			row := table.Row{client, proto}
			cells := columnStatuses(rs.Clients[client][proto])
			for _, col := range types.TestColumns {
				status, ok := cells[col]
				row = append(row, p.StatusCell(status, ok))
			}
			t.AppendRow(row)
		}
	}

	s := rs.Summary
	summary := fmt.Sprintf("  Total: %d  %s  %s  %s  Duration: %.1fs",
		s.Total,
		p.Green.Sprintf("Passed: %d", s.Passed),
		p.Red.Sprintf("Failed: %d", s.Failed),
		p.Yellow.Sprintf("Skipped: %d", s.Skipped),
		float64(rs.Meta.TestDurationMS)/1000.0,
	)

	return t.Render() + "\n" + summary + "\n"
}

// FormatCombined renders the merged matrix with one column group per backend.
// With a baseline, cells that regressed render the regression glyph and cells
// that newly pass render the new-pass glyph.
func (f *MatrixFormatter) FormatCombined(combined, baseline *types.CombinedMatrix) string {
	p := f.palette
	backends := combined.Meta.Backends

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Dora DHCP Client Compatibility Matrix")
	t.SetCaption("Generated: %s", combined.Meta.Generated)

	// Two backends get a merged group-label header row above the column
	// names; a single backend keeps the narrower one-row header.
	if len(backends) > 1 {
		group := table.Row{"", ""}
		for _, backend := range backends {
			for range types.TestColumns {
				group = append(group, backend)
			}
		}
		t.AppendHeader(group, table.RowConfig{AutoMerge: true})
	}
	header := table.Row{"Client", "Proto"}
	for range backends {
		for _, col := range types.TestColumns {
			header = append(header, col)
		}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(statusColumnConfigs(2, len(backends)*len(types.TestColumns)))

	for _, row := range combined.Rows {
		line := table.Row{row.Client, row.Proto}
		for _, backend := range backends {
			cells := row.Cells(backend)
			for _, col := range types.TestColumns {
				line = append(line, f.cell(&row, backend, col, cells, baseline))
			}
		}
		t.AppendRow(line)
	}

	var out strings.Builder
	out.WriteString(t.Render())
	out.WriteString("\n")

	for _, backend := range backends {
		s := combined.Summary[backend]
		fmt.Fprintf(&out, "  %s  Total: %d  %s  %s  %s\n",
			p.Bold.Sprintf("[%s]", backend),
			s.Total,
			p.Green.Sprintf("Passed: %d", s.Passed),
			p.Red.Sprintf("Failed: %d", s.Failed),
			p.Yellow.Sprintf("Skipped: %d", s.Skipped),
		)
	}

	fmt.Fprintf(&out, "  %s = pass  %s = FAIL  %s = skip  %s = N/A",
		p.StatusCell(types.StatusPass, true),
		p.StatusCell(types.StatusFail, true),
		p.StatusCell(types.StatusSkip, true),
		p.StatusCell("", false),
	)
	if baseline != nil {
		fmt.Fprintf(&out, "  %s = new pass  %s = regression",
			p.NewPassCell(), p.RegressionCell())
	}
	out.WriteString("\n")

	return out.String()
}

// cell picks the glyph for one matrix cell, applying the baseline overrides.
func (f *MatrixFormatter) cell(row *types.CombinedRow, backend, col string, cells map[string]types.Status, baseline *types.CombinedMatrix) string {
	status, ok := cells[col]
	if baseline != nil && ok {
		old, oldOK := BaselineStatus(baseline, row.Client, row.Proto, backend, col)
		wasPass := oldOK && old == types.StatusPass
		if wasPass && status == types.StatusFail {
			return f.palette.RegressionCell()
		}
		if !wasPass && status == types.StatusPass {
			return f.palette.NewPassCell()
		}
	}
	return f.palette.StatusCell(status, ok)
}

// columnStatuses groups a protocol's recorded tests by matrix column.
func columnStatuses(tests map[string]types.TestOutcome) map[string]types.Status {
	cells := make(map[string]types.Status, len(tests))
	for testName, outcome := range tests {
		cells[types.ColumnName(testName)] = outcome.Status
	}
	return cells
}

// statusColumnConfigs centers the n status columns following the leading
// identity columns.
func statusColumnConfigs(leading, n int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, 0, n)
	for i := 0; i < n; i++ {
		configs = append(configs, table.ColumnConfig{
			Number:      leading + i + 1,
			Align:       text.AlignCenter,
			AlignHeader: text.AlignCenter,
		})
	}
	return configs
}
