package kterm

// OpKind tags an Operation variant (spec §3 "Operation").
type OpKind int

const (
	OpWrite OpKind = iota
	OpWriteWide
	OpAttachCombining
	OpFillRect
	OpCopyRect
	OpSetAttrRect
	OpEraseRect
	OpScrollUp
	OpScrollDown
	OpInsertLines
	OpDeleteLines
	OpInsertChars
	OpDeleteChars
	OpEraseChars
	OpResize
	OpResetLineAttr
	OpSetLineAttr
)

// Operation is a tagged record produced by the dispatcher and consumed by
// the flusher; every field needed to apply it deterministically later is
// frozen in at enqueue time (spec §3 "Operation", §4.4).
type Operation struct {
	Kind OpKind

	X, Y       int
	Cell       Cell
	Rect       Rect
	DstX, DstY int
	AttrMask   CellFlags
	AttrOn     bool
	N          int
	AtX, AtY   int
	Cols, Rows int
	LineAttr   RowAttr
	RespectProtected bool
	Combining  rune
}

// OpQueue is the FIFO the dispatcher enqueues into and the flusher drains
// in order (spec §4.4). Every operation, including each single-cell write,
// is queued as its own entry; writes on the same row are not merged into
// row-runs.
type OpQueue struct {
	ops []Operation
}

func NewOpQueue() *OpQueue { return &OpQueue{} }

func (q *OpQueue) Enqueue(op Operation) { q.ops = append(q.ops, op) }

func (q *OpQueue) Len() int { return len(q.ops) }

// Drain returns and clears all queued operations in FIFO order.
func (q *OpQueue) Drain() []Operation {
	if len(q.ops) == 0 {
		return nil
	}
	out := q.ops
	q.ops = nil
	return out
}

// Flush applies every queued operation to buf in order, running the
// protected-cell check at apply time (not enqueue time) as required by
// spec §4.4: "using the flag state at flush time ... If a destructive op
// would touch any protected cell in the affected range, the entire op is
// discarded; no partial effect is observable." It returns the union of all
// touched regions for the dirty-rect tracker.
func (q *OpQueue) Flush(buf *Buffer) Rect {
	var dirty Rect
	for _, op := range q.Drain() {
		if r, ok := applyOperation(buf, op); ok {
			dirty = dirty.Union(r)
		}
	}
	return dirty
}

func applyOperation(buf *Buffer, op Operation) (Rect, bool) {
	switch op.Kind {
	case OpWrite:
		buf.SetCell(op.Y, op.X, op.Cell)
		return Rect{op.Y, op.X, op.Y, op.X}, true

	case OpWriteWide:
		lead := op.Cell
		lead.Flags |= CellFlagWide
		buf.SetCell(op.Y, op.X, lead)
		cont := Cell{Codepoint: op.Cell.Codepoint, Flags: CellFlagWideCont}
		buf.SetCell(op.Y, op.X+1, cont)
		return Rect{op.Y, op.X, op.Y, op.X + 1}, true

	case OpAttachCombining:
		if c := buf.Cell(op.Y, op.X); c != nil {
			// The mark attaches to the base cell in place rather than
			// occupying a column of its own (spec §3 Cell invariants).
			c.Combining = append(c.Combining, op.Combining)
			c.Flags |= CellFlagCombining
		}
		return Rect{op.Y, op.X, op.Y, op.X}, true

	case OpFillRect:
		r := op.Rect.Clamp(buf.Rows(), buf.Cols())
		if rectHasProtected(buf, r) {
			return Rect{}, false
		}
		for row := r.Top; row <= r.Bottom; row++ {
			for col := r.Left; col <= r.Right; col++ {
				buf.SetCell(row, col, op.Cell)
			}
		}
		return r, true

	case OpCopyRect:
		r := op.Rect.Clamp(buf.Rows(), buf.Cols())
		return copyRect(buf, r, op.DstX, op.DstY)

	case OpSetAttrRect:
		r := op.Rect.Clamp(buf.Rows(), buf.Cols())
		for row := r.Top; row <= r.Bottom; row++ {
			for col := r.Left; col <= r.Right; col++ {
				c := buf.Cell(row, col)
				if c == nil || c.IsProtected() {
					continue
				}
				if op.AttrOn {
					c.SetFlag(op.AttrMask)
				} else {
					c.ClearFlag(op.AttrMask)
				}
				c.MarkDirty()
			}
		}
		return r, true

	case OpEraseRect:
		r := op.Rect.Clamp(buf.Rows(), buf.Cols())
		if !op.RespectProtected && rectHasProtected(buf, r) {
			return Rect{}, false
		}
		for row := r.Top; row <= r.Bottom; row++ {
			buf.ClearRowRangeProtected(row, r.Left, r.Right+1)
		}
		return r, true

	case OpScrollUp:
		r := Rect{op.AtY, op.Rect.Left, op.Rect.Bottom, op.Rect.Right}
		if rectHasProtected(buf, r) {
			return Rect{}, false
		}
		buf.ScrollUp(op.Rect.Top, op.Rect.Bottom+1, op.N)
		return Rect{op.Rect.Top, op.Rect.Left, op.Rect.Bottom, op.Rect.Right}, true

	case OpScrollDown:
		r := Rect{op.Rect.Top, op.Rect.Left, op.Rect.Bottom, op.Rect.Right}
		if rectHasProtected(buf, r) {
			return Rect{}, false
		}
		buf.ScrollDown(op.Rect.Top, op.Rect.Bottom+1, op.N)
		return r, true

	case OpInsertLines:
		r := Rect{op.AtY, op.Rect.Left, op.Rect.Bottom, op.Rect.Right}
		if rectHasProtected(buf, r) {
			return Rect{}, false
		}
		buf.InsertLines(op.AtY, op.N, op.Rect.Bottom+1)
		return r, true

	case OpDeleteLines:
		r := Rect{op.AtY, op.Rect.Left, op.Rect.Bottom, op.Rect.Right}
		if rectHasProtected(buf, r) {
			return Rect{}, false
		}
		buf.DeleteLines(op.AtY, op.N, op.Rect.Bottom+1)
		return r, true

	case OpInsertChars:
		r := Rect{op.AtY, op.AtX, op.AtY, op.Rect.Right}
		if rectHasProtected(buf, r) {
			return Rect{}, false
		}
		buf.InsertBlanks(op.AtY, op.AtX, op.N, op.Rect.Right)
		return r, true

	case OpDeleteChars:
		r := Rect{op.AtY, op.AtX, op.AtY, op.Rect.Right}
		if rectHasProtected(buf, r) {
			return Rect{}, false
		}
		buf.DeleteChars(op.AtY, op.AtX, op.N, op.Rect.Right)
		return r, true

	case OpEraseChars:
		r := Rect{op.AtY, op.AtX, op.AtY, min(op.AtX+op.N-1, buf.Cols()-1)}
		if rectHasProtected(buf, r) {
			return Rect{}, false
		}
		buf.ClearRowRange(op.AtY, op.AtX, op.AtX+op.N)
		return r, true

	case OpResize:
		buf.Resize(op.Rows, op.Cols)
		return Rect{0, 0, op.Rows - 1, op.Cols - 1}, true

	case OpResetLineAttr:
		buf.SetLineAttr(op.AtY, 0)
		return Rect{op.AtY, 0, op.AtY, buf.Cols() - 1}, true

	case OpSetLineAttr:
		buf.SetLineAttr(op.AtY, op.LineAttr)
		return Rect{op.AtY, 0, op.AtY, buf.Cols() - 1}, true
	}
	return Rect{}, false
}

func rectHasProtected(buf *Buffer, r Rect) bool {
	for row := r.Top; row <= r.Bottom; row++ {
		for col := r.Left; col <= r.Right; col++ {
			if c := buf.Cell(row, col); c != nil && c.IsProtected() {
				return true
			}
		}
	}
	return false
}

// copyRect implements DECCRA: copy src (already clamped) to a destination
// whose top-left is (dstY, dstX), skipping protected destination cells.
func copyRect(buf *Buffer, src Rect, dstX, dstY int) (Rect, bool) {
	h, w := src.Height(), src.Width()
	// Snapshot source first in case src and dst overlap.
	snap := make([][]Cell, h)
	for i := 0; i < h; i++ {
		snap[i] = make([]Cell, w)
		for j := 0; j < w; j++ {
			if c := buf.Cell(src.Top+i, src.Left+j); c != nil {
				snap[i][j] = *c
			}
		}
	}
	maxRow := buf.Rows() - 1
	maxCol := buf.Cols() - 1
	touched := Rect{Top: dstY, Left: dstX, Bottom: dstY, Right: dstX}
	for i := 0; i < h; i++ {
		row := dstY + i
		if row > maxRow {
			break
		}
		for j := 0; j < w; j++ {
			col := dstX + j
			if col > maxCol {
				break
			}
			if c := buf.Cell(row, col); c == nil || c.IsProtected() {
				continue
			}
			buf.SetCell(row, col, snap[i][j])
			touched = touched.Union(Rect{row, col, row, col})
		}
	}
	return touched, true
}

func (r Rect) Height() int { return r.Bottom - r.Top + 1 }
func (r Rect) Width() int  { return r.Right - r.Left + 1 }
