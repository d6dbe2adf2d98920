package vt

import "testing"

// feed runs data through a fresh parser into s.
func feed(s *Screen, data string) {
	p := NewParser()
	for _, a := range p.Parse([]byte(data)) {
		s.Apply(a)
	}
}

// lineText renders row y as a string.
func lineText(t *testing.T, s *Screen, y int) string {
	t.Helper()
	row := s.Row(y)
	if row == nil {
		t.Fatalf("row %d out of range", y)
	}
	out := make([]byte, len(row))
	for i := range row {
		out[i] = row[i].Char
	}
	return string(out)
}

func assertCursor(t *testing.T, s *Screen, row, col int) {
	t.Helper()
	r, c := s.CursorPosition()
	if r != row || c != col {
		t.Fatalf("cursor = (%d,%d), want (%d,%d)", r, c, row, col)
	}
}
