package vt

import (
	"strings"

	"github.com/deep60/VoidCLI/internal/limits"
)

// Color encodes a cell color as either a palette index (0..255) or,
// when the RGB flag bit is set, a packed 24-bit RGB value.
type Color uint32

// colorRGBFlag marks a Color as a packed RGB value rather than a
// palette index.
const colorRGBFlag Color = 1 << 24

// RGBColor packs r, g, b into a tagged Color.
func RGBColor(r, g, b uint8) Color {
	return colorRGBFlag | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// CellAttributes is the style applied to a cell. The zero value is the
// default rendition: no colors, no flags.
type CellAttributes struct {
	FG    Color
	BG    Color
	HasFG bool
	HasBG bool

	Bold          bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reverse       bool
	Hidden        bool
	Strikethrough bool
}

// Cell is one grid position: a display character and its attributes.
type Cell struct {
	Char  byte
	Attrs CellAttributes
}

// DefaultCell is a blank cell with default attributes.
var DefaultCell = Cell{Char: ' '}

type savedCursor struct {
	row   int
	col   int
	attrs CellAttributes
}

// Screen is the mutable screen model: a rows x cols grid of cells, a
// cursor, the current write attributes, a scroll region and an
// optional alternate buffer. It has no internal locking; the owner
// serializes access.
type Screen struct {
	cols int
	rows int
	grid []Cell // row-major, len rows*cols

	cursorRow int
	cursorCol int
	attrs     CellAttributes

	scrollTop    int
	scrollBottom int

	saved    savedCursor
	savedSet bool

	altActive bool
	mainGrid  []Cell // stashed main grid while the alternate screen is active

	palette [paletteSize]string
	title   string

	scrollback *scrollback
}

// NewScreen allocates a blank screen. Dimensions are clamped to at
// least 1x1 and at most limits.MaxCols x limits.MaxRows.
func NewScreen(cols, rows int) *Screen {
	cols, rows = limits.Clamp(cols, rows)
	s := &Screen{
		cols:         cols,
		rows:         rows,
		grid:         newGrid(cols, rows),
		scrollBottom: rows - 1,
		title:        "Terminal",
		scrollback:   newScrollback(defaultMaxScrollback),
	}
	seedPalette(&s.palette)
	return s
}

func newGrid(cols, rows int) []Cell {
	g := make([]Cell, cols*rows)
	for i := range g {
		g[i] = DefaultCell
	}
	return g
}

// Width returns the number of columns.
func (s *Screen) Width() int { return s.cols }

// Height returns the number of rows.
func (s *Screen) Height() int { return s.rows }

// CursorPosition returns the 0-based cursor row and column.
func (s *Screen) CursorPosition() (row, col int) {
	return s.cursorRow, s.cursorCol
}

// Title returns the window title.
func (s *Screen) Title() string { return s.title }

// AltScreenActive reports whether the alternate buffer is in use.
func (s *Screen) AltScreenActive() bool { return s.altActive }

// Attributes returns the attributes applied to newly written cells.
func (s *Screen) Attributes() CellAttributes { return s.attrs }

// Row returns the cells of row y, or nil when y is out of range. The
// returned slice aliases the grid.
func (s *Screen) Row(y int) []Cell {
	if y < 0 || y >= s.rows {
		return nil
	}
	start := y * s.cols
	return s.grid[start : start+s.cols]
}

// CellAt returns the cell at (row, col), or nil when out of range. The
// returned pointer aliases the grid.
func (s *Screen) CellAt(row, col int) *Cell {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return nil
	}
	return &s.grid[row*s.cols+col]
}

// String renders the grid as plain text, one line per row.
func (s *Screen) String() string {
	var b strings.Builder
	b.Grow(s.rows * (s.cols + 1))
	for y := 0; y < s.rows; y++ {
		row := s.Row(y)
		for x := range row {
			b.WriteByte(row[x].Char)
		}
		if y < s.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Apply mutates the screen according to a. It never fails: illegal
// parameters are clamped or ignored.
func (s *Screen) Apply(a Action) {
	switch v := a.(type) {
	case Print:
		s.printByte(v.Byte)
	case Bell:
		// No screen effect.
	case Backspace:
		if s.cursorCol > 0 {
			s.cursorCol--
		}
	case Tab:
		s.cursorCol = (s.cursorCol + 8) / 8 * 8
		if s.cursorCol >= s.cols {
			s.cursorCol = s.cols - 1
		}
	case LineFeed:
		s.lineFeed()
	case CarriageReturn:
		s.cursorCol = 0
	case CursorUp:
		s.cursorRow = max(s.cursorRow-max(v.N, 0), 0)
	case CursorDown:
		s.cursorRow = min(s.cursorRow+max(v.N, 0), s.rows-1)
	case CursorForward:
		s.cursorCol = min(s.cursorCol+max(v.N, 0), s.cols-1)
	case CursorBackward:
		s.cursorCol = max(s.cursorCol-max(v.N, 0), 0)
	case CursorNextLine:
		s.cursorRow = min(s.cursorRow+max(v.N, 0), s.rows-1)
		s.cursorCol = 0
	case CursorPreviousLine:
		s.cursorRow = max(s.cursorRow-max(v.N, 0), 0)
		s.cursorCol = 0
	case CursorPosition:
		// 1-based on the wire, clamped into bounds.
		s.cursorRow = min(max(v.Row-1, 0), s.rows-1)
		s.cursorCol = min(max(v.Col-1, 0), s.cols-1)
	case EraseInDisplay:
		s.eraseInDisplay(v.Mode)
	case EraseInLine:
		s.eraseInLine(v.Mode)
	case SetGraphicsRendition:
		s.applySGR(v.Params)
	case Reset:
		s.reset()
	case ScrollUp:
		s.scrollUp(v.N)
	case SetWindowTitle:
		s.title = v.Title
	case SetColorPalette:
		s.SetPaletteColor(v.Index, v.Color)
	case CursorSave:
		s.saved = savedCursor{row: s.cursorRow, col: s.cursorCol, attrs: s.attrs}
		s.savedSet = true
	case CursorRestore:
		if !s.savedSet {
			s.cursorRow, s.cursorCol, s.attrs = 0, 0, CellAttributes{}
			return
		}
		s.cursorRow = min(s.saved.row, s.rows-1)
		s.cursorCol = min(s.saved.col, s.cols-1)
		s.attrs = s.saved.attrs
	case AltScreenOn:
		s.enterAltScreen()
	case AltScreenOff:
		s.exitAltScreen()
	}
}

// printByte writes a printable byte at the cursor. Control bytes are
// routed through their dedicated actions so a Print never bypasses
// scroll or tab handling.
func (s *Screen) printByte(b byte) {
	switch b {
	case '\n':
		s.lineFeed()
		return
	case '\r':
		s.cursorCol = 0
		return
	case '\t':
		s.Apply(Tab{})
		return
	case 0x08:
		s.Apply(Backspace{})
		return
	case 0x07:
		return
	}
	if b < 0x20 || b == 0x7f {
		return
	}

	s.grid[s.cursorRow*s.cols+s.cursorCol] = Cell{Char: b, Attrs: s.attrs}
	s.cursorCol++
	if s.cursorCol >= s.cols {
		s.cursorCol = 0
		s.lineFeed()
	}
}

func (s *Screen) lineFeed() {
	s.cursorRow++
	if s.cursorRow > s.scrollBottom {
		s.scrollUp(1)
		s.cursorRow = s.scrollBottom
	}
	if s.cursorRow >= s.rows {
		s.cursorRow = s.rows - 1
	}
}
