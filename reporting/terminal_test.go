package reporting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dora-dhcp/compat-matrix/types"
)

func TestFormatResultSet(t *testing.T) {
	rs := standaloneFixture()
	rs.Meta.TestDurationMS = 12500

	out := NewMatrixFormatter(NewPalette(false)).FormatResultSet(rs)

	assert.Contains(t, out, "DHCP Client Compatibility Matrix [standalone]")
	assert.Contains(t, out, "busybox")
	assert.Contains(t, out, "dhcpcd")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "skip")
	assert.Contains(t, out, "Total: 5")
	assert.Contains(t, out, "Passed: 3")
	assert.Contains(t, out, "Duration: 12.5s")

	// busybox sorts before dhcpcd.
	assert.Less(t, strings.Index(out, "busybox"), strings.Index(out, "dhcpcd"))
}

func TestFormatCombinedTwoBackends(t *testing.T) {
	combined := BuildCombined(standaloneFixture(), natsFixture())

	out := NewMatrixFormatter(NewPalette(false)).FormatCombined(combined, nil)

	assert.Contains(t, out, "Dora DHCP Client Compatibility Matrix")
	assert.Contains(t, out, "Generated: "+combined.Meta.Generated)
	assert.Contains(t, out, "standalone")
	assert.Contains(t, out, "nats")
	assert.Contains(t, out, "lease")
	assert.Contains(t, out, "[standalone]  Total: 5")
	assert.Contains(t, out, "[nats]  Total: 2")
	// Legend without baseline has no regression entries.
	assert.Contains(t, out, "= N/A")
	assert.NotContains(t, out, "regression")
}

func TestFormatCombinedBaselineOverrides(t *testing.T) {
	// Baseline: dhcpcd/v4 lease passed, options skipped under standalone.
	baselineInput := types.NewResultSet(types.BackendStandalone, "dev")
	baselineInput.SetOutcome("dhcpcd", "v4", "v4_lease", types.TestOutcome{Status: types.StatusPass})
	baselineInput.SetOutcome("dhcpcd", "v4", "v4_options", types.TestOutcome{Status: types.StatusSkip})
	baseline := BuildCombined(baselineInput, nil)

	// Current: lease now fails (regression), options now passes (new pass).
	current := types.NewResultSet(types.BackendStandalone, "dev")
	current.SetOutcome("dhcpcd", "v4", "v4_lease", types.TestOutcome{Status: types.StatusFail})
	current.SetOutcome("dhcpcd", "v4", "v4_options", types.TestOutcome{Status: types.StatusPass})
	combined := BuildCombined(current, nil)

	out := NewMatrixFormatter(NewPalette(false)).FormatCombined(combined, baseline)

	assert.Contains(t, out, "!REGR")
	assert.Contains(t, out, "+pass")
	assert.Contains(t, out, "= regression")
	assert.Contains(t, out, "= new pass")
}

func TestNoColorOutputHasNoEscapes(t *testing.T) {
	formatter := NewMatrixFormatter(NewPalette(false))

	combined := BuildCombined(standaloneFixture(), natsFixture())
	baseline := BuildCombined(standaloneFixture(), nil)

	for name, out := range map[string]string{
		"combined":      formatter.FormatCombined(combined, nil),
		"with baseline": formatter.FormatCombined(combined, baseline),
		"result set":    formatter.FormatResultSet(standaloneFixture()),
		"diff":          formatter.FormatDiff(combined, baseline),
		"empty matrix":  formatter.FormatCombined(BuildCombined(types.NewResultSet(types.BackendStandalone, "dev"), nil), nil),
	} {
		assert.NotContains(t, out, "\x1b[", "%s rendering must be free of ANSI escapes", name)
	}
}

func TestColoredOutputHasEscapes(t *testing.T) {
	out := NewMatrixFormatter(NewPalette(true)).FormatResultSet(standaloneFixture())
	require.Contains(t, out, "\x1b[")
}
