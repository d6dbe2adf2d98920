package vt

// defaultMaxScrollback caps the line store unless the owner overrides
// it via SetMaxScrollback.
const defaultMaxScrollback = 1000

// scrollback holds rows that scrolled off the top of the main screen,
// oldest first. Capped; pushing past the cap evicts the oldest lines.
type scrollback struct {
	lines [][]Cell
	max   int
}

func newScrollback(max int) *scrollback {
	if max < 0 {
		max = 0
	}
	return &scrollback{max: max}
}

func (sb *scrollback) push(row []Cell) {
	if sb.max == 0 {
		return
	}
	line := make([]Cell, len(row))
	copy(line, row)
	sb.lines = append(sb.lines, line)
	if over := len(sb.lines) - sb.max; over > 0 {
		sb.lines = sb.lines[over:]
	}
}

func (sb *scrollback) clear() {
	sb.lines = nil
}

// SetMaxScrollback changes the scrollback cap, trimming the oldest
// lines if the store already exceeds it. Zero disables scrollback.
func (s *Screen) SetMaxScrollback(max int) {
	if max < 0 {
		max = 0
	}
	s.scrollback.max = max
	if over := len(s.scrollback.lines) - max; over > 0 {
		s.scrollback.lines = s.scrollback.lines[over:]
	}
}

// ScrollbackLen returns the number of stored scrollback lines.
func (s *Screen) ScrollbackLen() int {
	return len(s.scrollback.lines)
}

// ScrollbackLine returns stored line index (0 is the oldest), or nil
// when out of range.
func (s *Screen) ScrollbackLine(index int) []Cell {
	if index < 0 || index >= len(s.scrollback.lines) {
		return nil
	}
	return s.scrollback.lines[index]
}
