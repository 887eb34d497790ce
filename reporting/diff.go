package reporting

import (
	"fmt"
	"strings"

	"github.com/dora-dhcp/compat-matrix/types"
)

// FormatDiff compares every cell of the combined matrix against the baseline
// and emits one classified line per change. Classification order matters:
// REGRESSION and NEW PASS take priority over FIXED and CHANGED, and each
// transition is assigned to exactly one category.
func (f *MatrixFormatter) FormatDiff(combined, baseline *types.CombinedMatrix) string {
	p := f.palette
	lines := []string{p.Bold.Sprint("Changes from baseline:")}
	changes := 0

	for _, row := range combined.Rows {
		for _, backend := range combined.Meta.Backends {
			for _, col := range types.TestColumns {
				newStatus, newOK := row.Cells(backend)[col]
				oldStatus, oldOK := BaselineStatus(baseline, row.Client, row.Proto, backend, col)
				if newOK == oldOK && newStatus == oldStatus {
					continue
				}

				changes++
				path := fmt.Sprintf("%s/%s/%s [%s]", row.Client, row.Proto, col, backend)
				transition := fmt.Sprintf("was %s, now %s",
					statusWord(oldStatus, oldOK), statusWord(newStatus, newOK))

				switch {
				case oldOK && oldStatus == types.StatusPass && newOK && newStatus == types.StatusFail:
					lines = append(lines, fmt.Sprintf("  %s %s: %s",
						p.Red.Sprint("[REGRESSION]"), path, transition))
				case newOK && newStatus == types.StatusPass:
					lines = append(lines, fmt.Sprintf("  %s   %s: %s",
						p.Green.Sprint("[NEW PASS]"), path, transition))
				case oldOK && oldStatus == types.StatusFail:
					lines = append(lines, fmt.Sprintf("  %s      %s: %s",
						p.Green.Sprint("[FIXED]"), path, transition))
				default:
					lines = append(lines, fmt.Sprintf("  %s    %s: %s",
						p.Yellow.Sprint("[CHANGED]"), path, transition))
				}
			}
		}
	}

	if changes == 0 {
		lines = append(lines, "  "+p.Dim.Sprint("No changes."))
	}

	return strings.Join(lines, "\n")
}

func statusWord(status types.Status, ok bool) string {
	if !ok {
		return "n/a"
	}
	return string(status)
}
