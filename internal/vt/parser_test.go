package vt

import (
	"reflect"
	"testing"
)

func TestParsePlainText(t *testing.T) {
	p := NewParser()
	got := p.Parse([]byte("Hi\n"))
	want := []Action{Print{'H'}, Print{'i'}, LineFeed{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}
}

func TestParseControlBytes(t *testing.T) {
	p := NewParser()
	got := p.Parse([]byte("\x07\x08\t\r"))
	want := []Action{Bell{}, Backspace{}, Tab{}, CarriageReturn{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}
}

func TestParseSGR(t *testing.T) {
	p := NewParser()
	got := p.Parse([]byte("\x1b[1;31m"))
	want := []Action{SetGraphicsRendition{Params: []int{1, 31}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}
}

func TestParseSGREmptyParams(t *testing.T) {
	p := NewParser()
	// Empty fields default to 0 for SGR.
	got := p.Parse([]byte("\x1b[;1m"))
	want := []Action{SetGraphicsRendition{Params: []int{0, 1}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}
}

func TestParseCursorDefaults(t *testing.T) {
	cases := []struct {
		in   string
		want Action
	}{
		{"\x1b[H", CursorPosition{Row: 1, Col: 1}},
		{"\x1b[5;10H", CursorPosition{Row: 5, Col: 10}},
		{"\x1b[5;10f", CursorPosition{Row: 5, Col: 10}},
		{"\x1b[A", CursorUp{N: 1}},
		{"\x1b[3A", CursorUp{N: 3}},
		{"\x1b[B", CursorDown{N: 1}},
		{"\x1b[2C", CursorForward{N: 2}},
		{"\x1b[2D", CursorBackward{N: 2}},
		{"\x1b[2E", CursorNextLine{N: 2}},
		{"\x1b[2F", CursorPreviousLine{N: 2}},
		{"\x1b[J", EraseInDisplay{Mode: 0}},
		{"\x1b[2J", EraseInDisplay{Mode: 2}},
		{"\x1b[1K", EraseInLine{Mode: 1}},
		{"\x1b[3S", ScrollUp{N: 3}},
		{"\x1b[s", CursorSave{}},
		{"\x1b[u", CursorRestore{}},
	}
	for _, tc := range cases {
		p := NewParser()
		got := p.Parse([]byte(tc.in))
		if len(got) != 1 || !reflect.DeepEqual(got[0], tc.want) {
			t.Errorf("%q = %#v, want [%#v]", tc.in, got, tc.want)
		}
	}
}

func TestParseTwoByteEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want Action
	}{
		{"\x1bA", CursorUp{N: 1}},
		{"\x1bM", ScrollUp{N: 1}},
		{"\x1bc", Reset{}},
		{"\x1b7", CursorSave{}},
		{"\x1b8", CursorRestore{}},
	}
	for _, tc := range cases {
		p := NewParser()
		got := p.Parse([]byte(tc.in))
		if len(got) != 1 || !reflect.DeepEqual(got[0], tc.want) {
			t.Errorf("%q = %#v, want [%#v]", tc.in, got, tc.want)
		}
	}
}

func TestParseUnknownEscapeConsumed(t *testing.T) {
	p := NewParser()
	got := p.Parse([]byte("\x1bQa"))
	want := []Action{Print{'a'}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}
}

func TestParseUnknownCSIFinalConsumed(t *testing.T) {
	p := NewParser()
	// DSR is recognized as a CSI sequence but produces no action.
	got := p.Parse([]byte("\x1b[6nx"))
	want := []Action{Print{'x'}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}
}

func TestParseOSCTitle(t *testing.T) {
	for _, in := range []string{
		"\x1b]0;my title\x07",
		"\x1b]2;my title\x1b\\",
	} {
		p := NewParser()
		got := p.Parse([]byte(in))
		want := []Action{SetWindowTitle{Title: "my title"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%q = %#v, want %#v", in, got, want)
		}
	}
}

func TestParseOSCPalette(t *testing.T) {
	p := NewParser()
	got := p.Parse([]byte("\x1b]4;17;#112233\x07"))
	want := []Action{SetColorPalette{Index: 17, Color: "#112233"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %#v, want %#v", got, want)
	}

	// Out-of-range index and malformed args are dropped.
	for _, in := range []string{
		"\x1b]4;300;#112233\x07",
		"\x1b]4;17\x07",
		"\x1b]4;17;\x07",
	} {
		p := NewParser()
		if got := p.Parse([]byte(in)); len(got) != 0 {
			t.Errorf("%q = %#v, want none", in, got)
		}
	}
}

func TestParsePrivateModes(t *testing.T) {
	cases := []struct {
		in   string
		want Action
	}{
		{"\x1b[?1049h", AltScreenOn{}},
		{"\x1b[?1049l", AltScreenOff{}},
		{"\x1b[?1047h", AltScreenOn{}},
		{"\x1b[?47l", AltScreenOff{}},
	}
	for _, tc := range cases {
		p := NewParser()
		got := p.Parse([]byte(tc.in))
		if len(got) != 1 || !reflect.DeepEqual(got[0], tc.want) {
			t.Errorf("%q = %#v, want [%#v]", tc.in, got, tc.want)
		}
	}

	// Unrelated private modes are consumed silently.
	p := NewParser()
	if got := p.Parse([]byte("\x1b[?25lx")); !reflect.DeepEqual(got, []Action{Print{'x'}}) {
		t.Fatalf("actions = %#v", got)
	}
}

// Chunk boundaries must never change the decoded action stream.
func TestParseChunkInvariance(t *testing.T) {
	input := []byte("pre\x1b[1;31mred\x1b[0m\x1b]0;title\x07\x1b[2J\x1b[10;20Hx\x1b[?1049htail")

	whole := NewParser().Parse(input)
	for split := 0; split <= len(input); split++ {
		p := NewParser()
		var got []Action
		got = append(got, p.Parse(input[:split])...)
		got = append(got, p.Parse(input[split:])...)
		if !reflect.DeepEqual(got, whole) {
			t.Fatalf("split at %d: %#v != %#v", split, got, whole)
		}
	}
}

func TestParseOverflowRecovery(t *testing.T) {
	p := NewParser()

	// An OSC that never terminates within the cap is dropped; once the
	// accumulator overflows the remaining bytes decode as plain text.
	huge := make([]byte, 2*maxEscapeLen)
	for i := range huge {
		huge[i] = 'x'
	}
	got := p.Parse(append([]byte("\x1b]0;"), huge...))
	if len(got) == 0 {
		t.Fatal("expected the overflow tail to decode as prints")
	}
	for _, a := range got {
		if a != (Print{'x'}) {
			t.Fatalf("unexpected action %#v in overflow tail", a)
		}
	}

	// The parser is back in the normal state afterwards.
	got = p.Parse([]byte("ok"))
	want := []Action{Print{'o'}, Print{'k'}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("post-overflow actions = %#v, want %#v", got, want)
	}
}

func TestParseEmptyInput(t *testing.T) {
	p := NewParser()
	if got := p.Parse(nil); len(got) != 0 {
		t.Fatalf("nil input produced %#v", got)
	}
	if got := p.Parse([]byte{}); len(got) != 0 {
		t.Fatalf("empty input produced %#v", got)
	}
}
