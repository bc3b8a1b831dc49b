package kterm

// applySGR implements CSI m (Select Graphic Rendition) against the flattened
// parameter list produced by paramGroups, including the extended 38/48/58
// color forms in both their indexed (;5;N) and direct-color (;2;R;G;B)
// shapes (spec §4.3 "SGR").
func applySGR(s *Session, params []int) {
	cell := &s.cursor.Template.Cell
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			*cell = NewCell().Copy()
			cell.Fg, cell.Bg, cell.UlColor, cell.StrikeColor = DefaultColor, DefaultColor, DefaultColor, DefaultColor
		case p == 1:
			cell.SetFlag(CellFlagBold)
		case p == 2:
			cell.SetFlag(CellFlagFaint)
		case p == 3:
			cell.SetFlag(CellFlagItalic)
		case p == 4:
			cell.ClearFlag(CellFlagDoubleUnderline | CellFlagCurlyUnderline)
			cell.SetFlag(CellFlagUnderline)
		case p == 5:
			cell.SetFlag(CellFlagBlinkSlow)
		case p == 6:
			cell.SetFlag(CellFlagBlinkFast)
		case p == 7:
			cell.SetFlag(CellFlagReverse)
		case p == 8:
			cell.SetFlag(CellFlagConceal)
		case p == 9:
			cell.SetFlag(CellFlagStrike)
		case p == 21:
			cell.ClearFlag(CellFlagUnderline)
			cell.SetFlag(CellFlagDoubleUnderline)
		case p == 22:
			cell.ClearFlag(CellFlagBold | CellFlagFaint)
		case p == 23:
			cell.ClearFlag(CellFlagItalic)
		case p == 24:
			cell.ClearFlag(CellFlagUnderline | CellFlagDoubleUnderline | CellFlagCurlyUnderline)
		case p == 25:
			cell.ClearFlag(CellFlagBlinkSlow | CellFlagBlinkFast)
		case p == 27:
			cell.ClearFlag(CellFlagReverse)
		case p == 28:
			cell.ClearFlag(CellFlagConceal)
		case p == 29:
			cell.ClearFlag(CellFlagStrike)
		case p == 53:
			cell.SetFlag(CellFlagOverline)
		case p == 55:
			cell.ClearFlag(CellFlagOverline)
		case p >= 30 && p <= 37:
			cell.Fg = Palette(uint8(p - 30))
		case p == 38:
			color, consumed := readExtendedColor(params, i+1)
			cell.Fg = color
			i += consumed
		case p == 39:
			cell.Fg = DefaultColor
		case p >= 40 && p <= 47:
			cell.Bg = Palette(uint8(p - 40))
		case p == 48:
			color, consumed := readExtendedColor(params, i+1)
			cell.Bg = color
			i += consumed
		case p == 49:
			cell.Bg = DefaultColor
		case p == 58:
			color, consumed := readExtendedColor(params, i+1)
			cell.UlColor = color
			i += consumed
		case p == 59:
			cell.UlColor = DefaultColor
		case p >= 90 && p <= 97:
			cell.Fg = Palette(uint8(p-90) + 8)
		case p >= 100 && p <= 107:
			cell.Bg = Palette(uint8(p-100) + 8)
		}
	}
}

// readExtendedColor parses the legacy semicolon form of 38/48/58: either
// "5;N" (palette index) or "2;R;G;B" (direct color), starting at idx. It
// returns the resolved color and how many extra params it consumed.
func readExtendedColor(params []int, idx int) (ColorRef, int) {
	if idx >= len(params) {
		return DefaultColor, 0
	}
	switch params[idx] {
	case 5:
		if idx+1 < len(params) {
			return Palette(uint8(params[idx+1])), 2
		}
		return DefaultColor, 1
	case 2:
		if idx+3 < len(params) {
			return RGB(uint8(params[idx+1]), uint8(params[idx+2]), uint8(params[idx+3])), 4
		}
		return DefaultColor, len(params) - idx
	}
	return DefaultColor, 1
}
