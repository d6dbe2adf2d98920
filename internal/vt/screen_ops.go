package vt

import "github.com/deep60/VoidCLI/internal/limits"

func (s *Screen) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		s.eraseRegion(s.cursorRow, s.cursorCol, s.rows-1, s.cols-1)
	case 1:
		s.eraseRegion(0, 0, s.cursorRow, s.cursorCol)
	case 2, 3:
		s.eraseRegion(0, 0, s.rows-1, s.cols-1)
	}
}

func (s *Screen) eraseInLine(mode int) {
	switch mode {
	case 0:
		s.eraseRegion(s.cursorRow, s.cursorCol, s.cursorRow, s.cols-1)
	case 1:
		s.eraseRegion(s.cursorRow, 0, s.cursorRow, s.cursorCol)
	case 2:
		s.eraseRegion(s.cursorRow, 0, s.cursorRow, s.cols-1)
	}
}

// eraseRegion blanks the inclusive span from (startRow, startCol) to
// (endRow, endCol), reading left-to-right top-to-bottom. Cells become
// spaces carrying the current attributes.
func (s *Screen) eraseRegion(startRow, startCol, endRow, endCol int) {
	startRow = min(max(startRow, 0), s.rows-1)
	startCol = min(max(startCol, 0), s.cols-1)
	endRow = min(max(endRow, 0), s.rows-1)
	endCol = min(max(endCol, 0), s.cols-1)

	blank := Cell{Char: ' ', Attrs: s.attrs}
	for row := startRow; row <= endRow; row++ {
		colStart := 0
		if row == startRow {
			colStart = startCol
		}
		colEnd := s.cols - 1
		if row == endRow {
			colEnd = endCol
		}
		line := s.Row(row)
		for col := colStart; col <= colEnd; col++ {
			line[col] = blank
		}
	}
}

func (s *Screen) reset() {
	s.attrs = CellAttributes{}
	s.cursorRow, s.cursorCol = 0, 0
	s.scrollTop, s.scrollBottom = 0, s.rows-1
	s.savedSet = false
	s.eraseRegion(0, 0, s.rows-1, s.cols-1)
	s.scrollback.clear()
}

// scrollUp shifts the scroll region up n rows and blanks the exposed
// bottom rows. Rows scrolled off the top of a region that starts at
// the first screen row feed the scrollback on the main screen.
func (s *Screen) scrollUp(n int) {
	top, bottom := s.scrollTop, s.scrollBottom
	span := bottom - top + 1
	if n > span {
		n = span
	}
	if n <= 0 {
		return
	}

	if !s.altActive && top == 0 {
		for row := top; row < top+n; row++ {
			s.scrollback.push(s.Row(row))
		}
	}

	for row := top; row <= bottom-n; row++ {
		copy(s.Row(row), s.Row(row+n))
	}

	blank := Cell{Char: ' ', Attrs: s.attrs}
	for row := bottom - n + 1; row <= bottom; row++ {
		line := s.Row(row)
		for col := range line {
			line[col] = blank
		}
	}
}

// Resize reallocates the grid at the new dimensions, preserving the
// overlapping top-left region. The cursor is clamped into the new
// bounds and the scroll region resets to the full height. Scrollback
// is not preserved across a resize.
func (s *Screen) Resize(cols, rows int) {
	cols, rows = limits.Clamp(cols, rows)
	if cols == s.cols && rows == s.rows {
		return
	}

	s.grid = resizeGrid(s.grid, s.cols, s.rows, cols, rows)
	if s.mainGrid != nil {
		s.mainGrid = resizeGrid(s.mainGrid, s.cols, s.rows, cols, rows)
	}
	s.cols, s.rows = cols, rows

	s.cursorRow = min(s.cursorRow, rows-1)
	s.cursorCol = min(s.cursorCol, cols-1)
	s.scrollTop, s.scrollBottom = 0, rows-1
	s.scrollback.clear()
}

func resizeGrid(old []Cell, oldCols, oldRows, cols, rows int) []Cell {
	grid := newGrid(cols, rows)
	minRows := min(oldRows, rows)
	minCols := min(oldCols, cols)
	for y := 0; y < minRows; y++ {
		copy(grid[y*cols:y*cols+minCols], old[y*oldCols:y*oldCols+minCols])
	}
	return grid
}

// SetScrollRegion sets the inclusive scroll row range. Out-of-order or
// out-of-range values reset to the full screen.
func (s *Screen) SetScrollRegion(top, bottom int) {
	if top < 0 || bottom >= s.rows || top > bottom {
		s.scrollTop, s.scrollBottom = 0, s.rows-1
		return
	}
	s.scrollTop, s.scrollBottom = top, bottom
}

// ScrollRegion returns the inclusive scroll row range.
func (s *Screen) ScrollRegion() (top, bottom int) {
	return s.scrollTop, s.scrollBottom
}

// enterAltScreen stashes the main grid and starts on a blank one. Only
// one level of nesting is supported; entering twice is a no-op.
func (s *Screen) enterAltScreen() {
	if s.altActive {
		return
	}
	s.mainGrid = s.grid
	s.grid = newGrid(s.cols, s.rows)
	s.altActive = true
}

// exitAltScreen restores the stashed main grid verbatim.
func (s *Screen) exitAltScreen() {
	if !s.altActive {
		return
	}
	s.grid = s.mainGrid
	s.mainGrid = nil
	s.altActive = false
}
