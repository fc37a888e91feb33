package session

// Field identifies one input slot of the settings screen.
type Field int

// Settings fields in layout order.
const (
	FieldFunction Field = iota
	FieldLowerBound
	FieldUpperBound
	FieldRecalculateArea
	FieldMinX
	FieldMaxX
	FieldMinY
	FieldMaxY
	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldFunction:        "Function",
	FieldLowerBound:      "Lower Limit of Integration",
	FieldUpperBound:      "Upper Limit of Integration",
	FieldRecalculateArea: "Recalculate Area",
	FieldMinX:            "Minimum X",
	FieldMaxX:            "Maximum X",
	FieldMinY:            "Minimum Y",
	FieldMaxY:            "Maximum Y",
}

// String returns the label shown for the field.
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "Unknown"
	}
	return fieldNames[f]
}

// HasBuffer reports whether the field accepts typed text.
func (f Field) HasBuffer() bool {
	return f >= 0 && f < fieldCount && f != FieldRecalculateArea
}

// Grid dimensions.
const (
	GridRows = 2
	GridCols = 4
)

// Layout is the fixed arrangement of fields on the settings screen.
var Layout = [GridRows][GridCols]Field{
	{FieldFunction, FieldLowerBound, FieldUpperBound, FieldRecalculateArea},
	{FieldMinX, FieldMaxX, FieldMinY, FieldMaxY},
}

// Direction is an arrow key direction.
type Direction int

// Arrow directions.
const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Grid tracks the focused cell. The zero value focuses FieldFunction.
type Grid struct {
	row int
	col int
}

// Position returns the focused row and column.
func (g Grid) Position() (row, col int) {
	return g.row, g.col
}

// Focus returns the focused field.
func (g Grid) Focus() Field {
	return Layout[g.row][g.col]
}

// Move shifts the focus one cell, clamped at the edges. It reports whether
// the focus changed.
func (g *Grid) Move(d Direction) bool {
	row, col := g.row, g.col
	switch d {
	case DirLeft:
		if col > 0 {
			col--
		}
	case DirRight:
		if col < GridCols-1 {
			col++
		}
	case DirUp:
		if row > 0 {
			row--
		}
	case DirDown:
		if row < GridRows-1 {
			row++
		}
	}
	if row == g.row && col == g.col {
		return false
	}
	g.row, g.col = row, col
	return true
}
