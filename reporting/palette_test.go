package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dora-dhcp/compat-matrix/types"
)

func TestPlainPaletteGlyphs(t *testing.T) {
	p := NewPalette(false)

	assert.Equal(t, "pass", p.StatusCell(types.StatusPass, true))
	assert.Equal(t, "FAIL", p.StatusCell(types.StatusFail, true))
	assert.Equal(t, "skip", p.StatusCell(types.StatusSkip, true))
	assert.Equal(t, "--", p.StatusCell("", false))
	assert.Equal(t, "+pass", p.NewPassCell())
	assert.Equal(t, "!REGR", p.RegressionCell())
	assert.False(t, p.Colored())
}

func TestColoredPaletteGlyphs(t *testing.T) {
	p := NewPalette(true)

	assert.Contains(t, p.StatusCell(types.StatusPass, true), "\x1b[")
	assert.Contains(t, p.StatusCell(types.StatusFail, true), "\x1b[")
	assert.Contains(t, p.RegressionCell(), "\x1b[")
	assert.True(t, p.Colored())
}
