package reporting

import (
	"fmt"
	"strings"

	"github.com/dora-dhcp/compat-matrix/types"
)

// Markdown cell markers. FAIL and regressions are bolded since Markdown has
// no color.
const (
	mdPass    = "pass"
	mdFail    = "**FAIL**"
	mdSkip    = "skip"
	mdNA      = "--"
	mdNewPass = "+pass"
	mdRegr    = "**REGR**"
)

func markdownCell(status types.Status, ok bool) string {
	if !ok {
		return mdNA
	}
	switch status {
	case types.StatusPass:
		return mdPass
	case types.StatusFail:
		return mdFail
	case types.StatusSkip:
		return mdSkip
	}
	return string(status)
}

// MarkdownResultSet renders one backend's matrix as a GitHub-flavoured
// Markdown table with a trailing summary line.
func MarkdownResultSet(rs *types.ResultSet) string {
	var out strings.Builder
	fmt.Fprintf(&out, "## DHCP Client Compatibility Matrix [%s]\n\n", rs.Meta.Backend)

	hdr := "| Client | Proto |"
	sep := "|--------|-------|"
	for _, col := range types.TestColumns {
		hdr += fmt.Sprintf(" %s |", col)
		sep += "------|"
	}
	out.WriteString(hdr + "\n")
	out.WriteString(sep + "\n")

	for _, client := range rs.SortedClients() {
		for _, proto := range rs.SortedProtocols(client) {
			cells := columnStatuses(rs.Clients[client][proto])
			line := fmt.Sprintf("| %s | %s |", client, proto)
			for _, col := range types.TestColumns {
				status, ok := cells[col]
				line += fmt.Sprintf(" %s |", markdownCell(status, ok))
			}
			out.WriteString(line + "\n")
		}
	}

	s := rs.Summary
	fmt.Fprintf(&out, "\n**Total: %d** | Passed: %d | Failed: %d | Skipped: %d\n",
		s.Total, s.Passed, s.Failed, s.Skipped)
	return out.String()
}

// MarkdownCombined renders the merged matrix as Markdown, with the same
// column structure and baseline override logic as the terminal rendering.
func MarkdownCombined(combined, baseline *types.CombinedMatrix) string {
	backends := combined.Meta.Backends

	var out strings.Builder
	out.WriteString("## Dora DHCP Client Compatibility Matrix\n")
	fmt.Fprintf(&out, "_Generated: %s_\n\n", combined.Meta.Generated)

	if len(backends) > 1 {
		fmt.Fprintf(&out, "Backends tested: %s\n\n", strings.Join(backends, ", "))
	}

	hdr := "| Client | Proto |"
	sep := "|--------|-------|"
	for range backends {
		for _, col := range types.TestColumns {
			hdr += fmt.Sprintf(" %s |", col)
			sep += "------|"
		}
	}
	out.WriteString(hdr + "\n")
	out.WriteString(sep + "\n")

	for _, row := range combined.Rows {
		line := fmt.Sprintf("| %s | %s |", row.Client, row.Proto)
		for _, backend := range backends {
			cells := row.Cells(backend)
			for _, col := range types.TestColumns {
				status, ok := cells[col]
				cell := markdownCell(status, ok)
				if baseline != nil && ok {
					old, oldOK := BaselineStatus(baseline, row.Client, row.Proto, backend, col)
					wasPass := oldOK && old == types.StatusPass
					if wasPass && status == types.StatusFail {
						cell = mdRegr
					} else if !wasPass && status == types.StatusPass {
						cell = mdNewPass
					}
				}
				line += fmt.Sprintf(" %s |", cell)
			}
		}
		out.WriteString(line + "\n")
	}

	out.WriteString("\n")
	for _, backend := range backends {
		s := combined.Summary[backend]
		fmt.Fprintf(&out, "**[%s]** Total: %d | Passed: %d | Failed: %d | Skipped: %d\n",
			backend, s.Total, s.Passed, s.Failed, s.Skipped)
	}
	return out.String()
}
