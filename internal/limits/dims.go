// Package limits clamps terminal dimensions shared by the PTY layer
// and the screen model.
package limits

import "fmt"

const (
	MaxCols = 500
	MaxRows = 200
)

type DimensionError struct {
	Cols, Rows       int
	MaxCols, MaxRows int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimensions %dx%d exceed max %dx%d", e.Cols, e.Rows, e.MaxCols, e.MaxRows)
}

// Normalize raises cols and rows to at least 1.
func Normalize(cols, rows int) (int, int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// Clamp normalizes and caps dimensions to the supported maxima.
func Clamp(cols, rows int) (int, int) {
	cols, rows = Normalize(cols, rows)
	if cols > MaxCols {
		cols = MaxCols
	}
	if rows > MaxRows {
		rows = MaxRows
	}
	return cols, rows
}

// ValidateMax reports an error when normalized dimensions exceed the
// maxima instead of silently clamping.
func ValidateMax(cols, rows int) error {
	cols, rows = Normalize(cols, rows)
	if cols > MaxCols || rows > MaxRows {
		return &DimensionError{Cols: cols, Rows: rows, MaxCols: MaxCols, MaxRows: MaxRows}
	}
	return nil
}
