package kterm

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Charset selects a character-set designation slot's active mapping.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetDECSpecialGraphics
	CharsetUK
	CharsetLatin1
	CharsetUTF8
)

// CharsetIndex selects one of the four character-set slots (G0-G3).
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// CellTemplate holds the graphic-rendition attributes applied to newly
// written characters (the SGR-selected "pen"); mirrors the teacher's
// CellTemplate (cursor.go) one-for-one.
type CellTemplate struct {
	Cell
}

// NewCellTemplate returns a template with no colors or attributes set.
func NewCellTemplate() CellTemplate {
	return CellTemplate{Cell: NewCell()}
}

// Cursor tracks position, pen, charset state, and the deferred-wrap flag
// described in spec §3 "Cursor & saved cursor".
type Cursor struct {
	Row, Col    int
	Style       CursorStyle
	Visible     bool
	PendingWrap bool // a printable at the next write should wrap first
	OriginMode  bool // DECOM: Row/Col are relative to the active margin box

	// Charset state: G0-G3 designations and which of them GL/GR currently reads from.
	Charsets          [4]Charset
	GL                CharsetIndex // locked-shift target (SI/SO toggle between G0/G1)
	GR                CharsetIndex
	SingleShift       CharsetIndex // SS2/SS3 pending single-shift target
	SingleShiftActive bool

	Template CellTemplate // current graphic rendition "pen"
}

// NewCursor returns a cursor at (0,0), visible, blinking block, ASCII charsets.
func NewCursor() *Cursor {
	return &Cursor{
		Visible:  true,
		Style:    CursorStyleBlinkingBlock,
		Template: NewCellTemplate(),
	}
}

// SavedCursor is a full snapshot of cursor state, used by DECSC/DECRC and by
// the alternate-screen save/restore mode transitions (§3).
type SavedCursor struct {
	Row, Col   int
	Template   CellTemplate
	OriginMode bool
	Charsets   [4]Charset
	GL, GR     CharsetIndex
}

// Snapshot captures the cursor's restorable state (DECSC semantics).
func (c *Cursor) Snapshot() SavedCursor {
	return SavedCursor{
		Row: c.Row, Col: c.Col,
		Template:   c.Template,
		OriginMode: c.OriginMode,
		Charsets:   c.Charsets,
		GL:         c.GL,
		GR:         c.GR,
	}
}

// Restore applies a previously captured snapshot (DECRC semantics).
func (c *Cursor) Restore(s SavedCursor) {
	c.Row, c.Col = s.Row, s.Col
	c.Template = s.Template
	c.OriginMode = s.OriginMode
	c.Charsets = s.Charsets
	c.GL, c.GR = s.GL, s.GR
	c.PendingWrap = false
}

// sgrStack is the bounded LIFO used by XTPUSHSGR/XTPOPSGR (§3 "alternate
// stack"), distinct from the single-slot DECSC/DECRC save.
type sgrStack struct {
	items []CellTemplate
}

const maxSGRStackDepth = 10

func (s *sgrStack) push(t CellTemplate) {
	if len(s.items) >= maxSGRStackDepth {
		s.items = s.items[1:] // drop oldest, matches xterm's bounded-stack behavior
	}
	s.items = append(s.items, t)
}

func (s *sgrStack) pop() (CellTemplate, bool) {
	if len(s.items) == 0 {
		return CellTemplate{}, false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}
