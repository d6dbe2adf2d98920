package vt

// applySGR walks an SGR parameter list and updates the current
// attributes. An empty list is SGR 0. Unrecognized codes are ignored;
// the extended-color forms 38/48 consume their sub-parameters.
func (s *Screen) applySGR(params []int) {
	if len(params) == 0 {
		s.attrs = CellAttributes{}
		return
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			s.attrs = CellAttributes{}
		case p == 1:
			s.attrs.Bold = true
		case p == 3:
			s.attrs.Italic = true
		case p == 4:
			s.attrs.Underline = true
		case p == 5:
			s.attrs.Blink = true
		case p == 7:
			s.attrs.Reverse = true
		case p == 8:
			s.attrs.Hidden = true
		case p == 9:
			s.attrs.Strikethrough = true
		case p == 21, p == 22:
			s.attrs.Bold = false
		case p == 23:
			s.attrs.Italic = false
		case p == 24:
			s.attrs.Underline = false
		case p == 25:
			s.attrs.Blink = false
		case p == 27:
			s.attrs.Reverse = false
		case p == 28:
			s.attrs.Hidden = false
		case p == 29:
			s.attrs.Strikethrough = false
		case p >= 30 && p <= 37:
			s.attrs.FG = Color(p - 30)
			s.attrs.HasFG = true
		case p == 38:
			if c, consumed, ok := extendedColor(params[i+1:]); ok {
				s.attrs.FG = c
				s.attrs.HasFG = true
				i += consumed
			}
		case p == 39:
			s.attrs.HasFG = false
			s.attrs.FG = 0
		case p >= 40 && p <= 47:
			s.attrs.BG = Color(p - 40)
			s.attrs.HasBG = true
		case p == 48:
			if c, consumed, ok := extendedColor(params[i+1:]); ok {
				s.attrs.BG = c
				s.attrs.HasBG = true
				i += consumed
			}
		case p == 49:
			s.attrs.HasBG = false
			s.attrs.BG = 0
		case p >= 90 && p <= 97:
			s.attrs.FG = Color(p - 90 + 8)
			s.attrs.HasFG = true
		case p >= 100 && p <= 107:
			s.attrs.BG = Color(p - 100 + 8)
			s.attrs.HasBG = true
		}
	}
}

// extendedColor decodes the tail of an SGR 38/48: either 5;index
// (256-color) or 2;r;g;b (24-bit). It returns the color, how many
// parameters it consumed, and whether the form was valid.
func extendedColor(rest []int) (Color, int, bool) {
	if len(rest) == 0 {
		return 0, 0, false
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return 0, 0, false
		}
		idx := rest[1]
		if idx < 0 || idx > 255 {
			return 0, 0, false
		}
		return Color(idx), 2, true
	case 2:
		if len(rest) < 4 {
			return 0, 0, false
		}
		r, g, b := clampChannel(rest[1]), clampChannel(rest[2]), clampChannel(rest[3])
		return RGBColor(r, g, b), 4, true
	}
	return 0, 0, false
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
