// Package vt implements the terminal emulator core: a resumable
// byte-stream parser that decodes ANSI/VT escape sequences into a
// closed action vocabulary, and a screen buffer that applies those
// actions to a grid of styled cells.
package vt

// Action is a single decoded terminal instruction. The vocabulary is
// closed: the parser emits only the types below, and Screen.Apply
// switches over all of them in one dispatch point.
type Action interface {
	isAction()
}

// Print writes one byte at the cursor with the current attributes.
type Print struct {
	Byte byte
}

// Bell is the BEL control character. The screen model ignores it; the
// owner may surface it however it likes.
type Bell struct{}

// Backspace moves the cursor one column left.
type Backspace struct{}

// Tab advances the cursor to the next tab stop.
type Tab struct{}

// LineFeed moves the cursor down one row, scrolling at the bottom of
// the scroll region.
type LineFeed struct{}

// CarriageReturn moves the cursor to column zero.
type CarriageReturn struct{}

// CursorUp moves the cursor up N rows.
type CursorUp struct {
	N int
}

// CursorDown moves the cursor down N rows.
type CursorDown struct {
	N int
}

// CursorForward moves the cursor right N columns.
type CursorForward struct {
	N int
}

// CursorBackward moves the cursor left N columns.
type CursorBackward struct {
	N int
}

// CursorNextLine moves the cursor down N rows and to column zero.
type CursorNextLine struct {
	N int
}

// CursorPreviousLine moves the cursor up N rows and to column zero.
type CursorPreviousLine struct {
	N int
}

// CursorPosition moves the cursor to an absolute position. Row and Col
// are 1-based as received on the wire.
type CursorPosition struct {
	Row int
	Col int
}

// EraseInDisplay clears part of the screen: 0 cursor to end, 1 start
// to cursor, 2 or 3 the whole screen.
type EraseInDisplay struct {
	Mode int
}

// EraseInLine clears part of the cursor row: 0 cursor to end, 1 start
// to cursor, 2 the whole row.
type EraseInLine struct {
	Mode int
}

// SetGraphicsRendition carries the numeric SGR parameter list. An
// empty list means reset.
type SetGraphicsRendition struct {
	Params []int
}

// Reset restores default attributes, homes the cursor, resets the
// scroll region and clears the screen.
type Reset struct{}

// ScrollUp scrolls the scroll region up N lines.
type ScrollUp struct {
	N int
}

// SetWindowTitle sets the terminal title (OSC 0/2).
type SetWindowTitle struct {
	Title string
}

// SetColorPalette overwrites one palette entry (OSC 4).
type SetColorPalette struct {
	Index int
	Color string
}

// CursorSave stores the cursor position and current attributes
// (DECSC, also CSI s).
type CursorSave struct{}

// CursorRestore restores the last saved cursor position and
// attributes (DECRC, also CSI u).
type CursorRestore struct{}

// AltScreenOn switches to a fresh alternate screen buffer, stashing
// the main grid.
type AltScreenOn struct{}

// AltScreenOff restores the stashed main grid.
type AltScreenOff struct{}

func (Print) isAction()                {}
func (Bell) isAction()                 {}
func (Backspace) isAction()            {}
func (Tab) isAction()                  {}
func (LineFeed) isAction()             {}
func (CarriageReturn) isAction()       {}
func (CursorUp) isAction()             {}
func (CursorDown) isAction()           {}
func (CursorForward) isAction()        {}
func (CursorBackward) isAction()       {}
func (CursorNextLine) isAction()       {}
func (CursorPreviousLine) isAction()   {}
func (CursorPosition) isAction()       {}
func (EraseInDisplay) isAction()       {}
func (EraseInLine) isAction()          {}
func (SetGraphicsRendition) isAction() {}
func (Reset) isAction()                {}
func (ScrollUp) isAction()             {}
func (SetWindowTitle) isAction()       {}
func (SetColorPalette) isAction()      {}
func (CursorSave) isAction()           {}
func (CursorRestore) isAction()        {}
func (AltScreenOn) isAction()          {}
func (AltScreenOff) isAction()         {}
