package core

import "math"

// CellAspect is the height of a terminal cell relative to its width.
const CellAspect = 2.0

// Viewport projects world coordinates onto a cell grid. The world is scaled
// uniformly, accounting for CellAspect, and centered in the grid.
type Viewport struct {
	// Scale is world units per cell column.
	Scale   float64
	OffsetX int
	OffsetY int
	Cols    int
	Rows    int
}

// NewViewport fits a worldW x worldH world into cols x rows cells.
func NewViewport(worldW, worldH float64, cols, rows int) Viewport {
	cols = max(cols, 1)
	rows = max(rows, 1)

	scale := math.Max(worldW/float64(cols), worldH/(float64(rows)*CellAspect))
	if !(scale > 0) {
		scale = 1
	}

	usedCols := int(math.Ceil(worldW / scale))
	usedRows := int(math.Ceil(worldH / (scale * CellAspect)))
	return Viewport{
		Scale:   scale,
		OffsetX: max((cols-usedCols)/2, 0),
		OffsetY: max((rows-usedRows)/2, 0),
		Cols:    cols,
		Rows:    rows,
	}
}

// ToCell converts a world point to a cell position.
func (v Viewport) ToCell(x, y float64) (int, int) {
	cx := int(math.Floor(x/v.Scale)) + v.OffsetX
	cy := int(math.Floor(y/(v.Scale*CellAspect))) + v.OffsetY
	return cx, cy
}

// ToWorld returns the world point at the center of a cell.
func (v Viewport) ToWorld(cx, cy int) (float64, float64) {
	x := (float64(cx-v.OffsetX) + 0.5) * v.Scale
	y := (float64(cy-v.OffsetY) + 0.5) * v.Scale * CellAspect
	return x, y
}

// Bounds returns the cell rectangle covering a world rectangle given by its
// top-left corner and size.
func (v Viewport) Bounds(x, y, w, h float64) Rect {
	x0, y0 := v.ToCell(x, y)
	x1, y1 := v.ToCell(x+w, y+h)
	return NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}
