package reporting

import (
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dora-dhcp/compat-matrix/types"
)

// Palette carries the styling used by every renderer. One value is built per
// invocation and passed to each render call; no-color mode is a property of
// the palette rather than a process-wide variable threaded through renders.
type Palette struct {
	colored bool

	Bold   text.Colors
	Green  text.Colors
	Red    text.Colors
	Yellow text.Colors
	Cyan   text.Colors
	Dim    text.Colors
}

// NewPalette builds a palette. Construction pins go-pretty's ANSI support
// gate so rendering does not depend on whether stdout is a terminal.
func NewPalette(colored bool) *Palette {
	if colored {
		text.EnableColors()
	} else {
		text.DisableColors()
	}

	p := &Palette{colored: colored}
	if colored {
		p.Bold = text.Colors{text.Bold}
		p.Green = text.Colors{text.FgGreen}
		p.Red = text.Colors{text.Bold, text.FgRed}
		p.Yellow = text.Colors{text.FgYellow}
		p.Cyan = text.Colors{text.FgCyan}
		p.Dim = text.Colors{text.Faint}
	}
	return p
}

// Colored reports whether ANSI styling is active.
func (p *Palette) Colored() bool { return p.colored }

// StatusCell returns the terminal glyph for a matrix cell. A cell that was
// never recorded (ok == false) renders as a dimmed N/A marker.
func (p *Palette) StatusCell(status types.Status, ok bool) string {
	if !ok {
		return p.Dim.Sprint("--")
	}
	switch status {
	case types.StatusPass:
		return p.Green.Sprint("pass")
	case types.StatusFail:
		return p.Red.Sprint("FAIL")
	case types.StatusSkip:
		return p.Yellow.Sprint("skip")
	}
	return string(status)
}

// RegressionCell is the glyph for a cell that passed in the baseline but
// fails now.
func (p *Palette) RegressionCell() string {
	return p.Red.Sprint("!REGR")
}

// NewPassCell is the glyph for a cell that passes now but did not pass in the
// baseline.
func (p *Palette) NewPassCell() string {
	return p.Green.Sprint("+pass")
}
