package kterm

// MarginBox is the active scrolling/addressing region: top/bottom are
// always meaningful, left/right only when DECLRMM is enabled (spec §3
// "Margins"). When DECLRMM is off, Left is 0 and Right is cols-1.
type MarginBox struct {
	Top, Bottom int // inclusive row range
	Left, Right int // inclusive column range, only honored when LRMM is set
}

// DefaultMarginBox returns the full-screen margin box for a grid of the
// given size.
func DefaultMarginBox(rows, cols int) MarginBox {
	return MarginBox{Top: 0, Bottom: rows - 1, Left: 0, Right: cols - 1}
}

// Contains reports whether (row, col) in absolute coordinates lies inside the box.
func (m MarginBox) Contains(row, col int) bool {
	return row >= m.Top && row <= m.Bottom && col >= m.Left && col <= m.Right
}

func (m MarginBox) Height() int { return m.Bottom - m.Top + 1 }
func (m MarginBox) Width() int  { return m.Right - m.Left + 1 }

// translate converts a cursor-relative coordinate to absolute grid
// coordinates according to origin mode, per spec §3 "Origin mode". CUP/HVP,
// the DECOM and DECSTBM cursor homing, and the rectangular operations route
// through it; relative moves, CHA/VPA and the DSR cursor report apply the
// margin box themselves.
func translate(box MarginBox, originMode bool, row, col int) (absRow, absCol int) {
	if originMode {
		return box.Top + row, box.Left + col
	}
	return row, col
}

// clampToBox confines (row, col) to the margin box, used after relative
// motion when origin mode restricts the cursor from leaving its box.
func clampToBox(box MarginBox, row, col int) (int, int) {
	return clamp(row, box.Top, box.Bottom), clamp(col, box.Left, box.Right)
}

// clampToGrid confines (row, col) to the full grid, used when origin mode
// is off and motion may range over the entire screen.
func clampToGrid(rows, cols, row, col int) (int, int) {
	return clamp(row, 0, rows-1), clamp(col, 0, cols-1)
}
