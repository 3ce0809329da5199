package render

import (
	"math"

	"github.com/lixenwraith/vi-invaders/constants"
)

// Projection maps field pixels onto the terminal cells between the HUD and status rows
type Projection struct {
	Cols, Rows     int
	OriginY        int
	fieldW, fieldH float64
}

// NewProjection fits a fieldW x fieldH field into a width x height screen
func NewProjection(width, height int, fieldW, fieldH float64) Projection {
	rows := height - constants.HUDRows - constants.StatusRows
	if rows < 1 {
		rows = 1
	}
	if width < 1 {
		width = 1
	}
	return Projection{Cols: width, Rows: rows, OriginY: constants.HUDRows, fieldW: fieldW, fieldH: fieldH}
}

// Cell returns the screen cell containing field point (x, y), clamped to the field area
func (p Projection) Cell(x, y float64) (col, row int) {
	col = clampInt(int(math.Floor(x/p.fieldW*float64(p.Cols))), 0, p.Cols-1)
	row = clampInt(int(math.Floor(y/p.fieldH*float64(p.Rows))), 0, p.Rows-1)
	return col, row + p.OriginY
}

// Span returns how many columns a width of w pixels covers, at least one
func (p Projection) Span(w float64) int {
	n := int(math.Round(w / p.fieldW * float64(p.Cols)))
	if n < 1 {
		return 1
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
