package vt

import (
	"bytes"
	"strconv"

	"github.com/charmbracelet/x/ansi"
)

// maxEscapeLen bounds the escape accumulator. A sequence that grows
// past it is dropped and the parser recovers to the normal state.
const maxEscapeLen = 1024

type parserState int

const (
	stateNormal parserState = iota
	stateEscape
	stateCsi
	stateOsc
)

// Parser decodes a terminal byte stream into Actions. State persists
// across Parse calls, so a sequence split between two reads decodes
// exactly as it would in a single contiguous read.
type Parser struct {
	state parserState
	buf   []byte
}

// NewParser returns a parser in the normal state.
func NewParser() *Parser {
	return &Parser{buf: make([]byte, 0, 128)}
}

// Parse consumes data and returns the decoded actions in order. It
// never fails: malformed or oversized sequences are dropped and
// parsing resumes in the normal state.
func (p *Parser) Parse(data []byte) []Action {
	var actions []Action
	for _, b := range data {
		switch p.state {
		case stateNormal:
			switch b {
			case ansi.ESC:
				p.buf = p.buf[:0]
				p.buf = append(p.buf, b)
				p.state = stateEscape
			case ansi.BEL:
				actions = append(actions, Bell{})
			case ansi.BS:
				actions = append(actions, Backspace{})
			case ansi.HT:
				actions = append(actions, Tab{})
			case ansi.LF:
				actions = append(actions, LineFeed{})
			case ansi.CR:
				actions = append(actions, CarriageReturn{})
			default:
				actions = append(actions, Print{Byte: b})
			}

		case stateEscape:
			p.buf = append(p.buf, b)
			switch b {
			case ']':
				p.state = stateOsc
			case '[':
				p.state = stateCsi
			default:
				if a, ok := twoByteEscape(b); ok {
					actions = append(actions, a)
				}
				p.state = stateNormal
			}

		case stateCsi:
			p.buf = append(p.buf, b)
			if b >= 0x40 && b <= 0x7e {
				if a, ok := p.csiAction(); ok {
					actions = append(actions, a)
				}
				p.state = stateNormal
			} else if len(p.buf) > maxEscapeLen {
				p.state = stateNormal
			}

		case stateOsc:
			p.buf = append(p.buf, b)
			if oscTerminated(p.buf) {
				if a, ok := p.oscAction(); ok {
					actions = append(actions, a)
				}
				p.state = stateNormal
			} else if len(p.buf) > maxEscapeLen {
				p.state = stateNormal
			}
		}
	}
	return actions
}

// twoByteEscape resolves ESC followed by a single byte. Unmapped bytes
// are consumed without an action.
func twoByteEscape(b byte) (Action, bool) {
	switch b {
	case 'A':
		return CursorUp{N: 1}, true
	case 'B':
		return CursorDown{N: 1}, true
	case 'C':
		return CursorForward{N: 1}, true
	case 'D':
		return CursorBackward{N: 1}, true
	case 'E':
		return CursorNextLine{N: 1}, true
	case 'F':
		return CursorPreviousLine{N: 1}, true
	case 'H':
		return CursorPosition{Row: 1, Col: 1}, true
	case 'J':
		return EraseInDisplay{Mode: 0}, true
	case 'K':
		return EraseInLine{Mode: 0}, true
	case 'M':
		return ScrollUp{N: 1}, true
	case 'c':
		return Reset{}, true
	case '7':
		return CursorSave{}, true
	case '8':
		return CursorRestore{}, true
	}
	return nil, false
}

// csiAction resolves the accumulated CSI sequence. The buffer holds
// ESC '[' <params> <final>.
func (p *Parser) csiAction() (Action, bool) {
	if len(p.buf) < 3 {
		return nil, false
	}
	final := p.buf[len(p.buf)-1]
	body := p.buf[2 : len(p.buf)-1]

	if len(body) > 0 && body[0] == '?' {
		return privateModeAction(body[1:], final)
	}

	params := splitParams(body)
	get := func(i, def int) int {
		if i >= len(params) || params[i] < 0 {
			return def
		}
		return params[i]
	}

	switch final {
	case 'm':
		sgr := make([]int, 0, len(params))
		for i := range params {
			sgr = append(sgr, get(i, 0))
		}
		return SetGraphicsRendition{Params: sgr}, true
	case 'H', 'f':
		return CursorPosition{Row: get(0, 1), Col: get(1, 1)}, true
	case 'J':
		return EraseInDisplay{Mode: get(0, 0)}, true
	case 'K':
		return EraseInLine{Mode: get(0, 0)}, true
	case 'A':
		return CursorUp{N: get(0, 1)}, true
	case 'B':
		return CursorDown{N: get(0, 1)}, true
	case 'C':
		return CursorForward{N: get(0, 1)}, true
	case 'D':
		return CursorBackward{N: get(0, 1)}, true
	case 'E':
		return CursorNextLine{N: get(0, 1)}, true
	case 'F':
		return CursorPreviousLine{N: get(0, 1)}, true
	case 'S':
		return ScrollUp{N: get(0, 1)}, true
	case 's':
		return CursorSave{}, true
	case 'u':
		return CursorRestore{}, true
	}
	// Recognized-but-unhandled finals are consumed with no action.
	return nil, false
}

// privateModeAction handles CSI ? <modes> h/l. Only the alternate
// screen modes produce actions; everything else is consumed silently.
func privateModeAction(body []byte, final byte) (Action, bool) {
	if final != 'h' && final != 'l' {
		return nil, false
	}
	for _, mode := range splitParams(body) {
		switch mode {
		case 47, 1047, 1049:
			if final == 'h' {
				return AltScreenOn{}, true
			}
			return AltScreenOff{}, true
		}
	}
	return nil, false
}

// oscAction resolves the accumulated OSC sequence. The buffer holds
// ESC ']' <code> ';' <arg> followed by BEL or ESC '\'.
func (p *Parser) oscAction() (Action, bool) {
	content := p.buf[2:]
	if n := len(content); n > 0 && content[n-1] == ansi.BEL {
		content = content[:n-1]
	} else if n >= 2 && content[n-1] == '\\' && content[n-2] == ansi.ESC {
		content = content[:n-2]
	}

	sep := bytes.IndexByte(content, ';')
	if sep < 0 {
		return nil, false
	}
	code := string(content[:sep])
	arg := content[sep+1:]

	switch code {
	case "0", "2":
		return SetWindowTitle{Title: string(arg)}, true
	case "4":
		idx := bytes.IndexByte(arg, ';')
		if idx <= 0 {
			return nil, false
		}
		index, err := strconv.Atoi(string(arg[:idx]))
		if err != nil || index < 0 || index > 255 {
			return nil, false
		}
		color := string(arg[idx+1:])
		if color == "" {
			return nil, false
		}
		return SetColorPalette{Index: index, Color: color}, true
	}
	return nil, false
}

func oscTerminated(buf []byte) bool {
	n := len(buf)
	if n == 0 {
		return false
	}
	if buf[n-1] == ansi.BEL {
		return true
	}
	return n >= 2 && buf[n-1] == '\\' && buf[n-2] == ansi.ESC
}

// splitParams parses the ;-separated numeric fields of a CSI body.
// Empty or non-numeric fields become -1 so callers can substitute the
// operation's default.
func splitParams(body []byte) []int {
	if len(body) == 0 {
		return nil
	}
	fields := bytes.Split(body, []byte{';'})
	params := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(string(f))
		if err != nil || n < 0 {
			params[i] = -1
			continue
		}
		params[i] = n
	}
	return params
}
