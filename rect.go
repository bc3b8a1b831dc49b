package kterm

// rectFromParams builds an absolute Rect from 1-based display coordinates
// for the rectangular CSI family (DECFRA/DECCRA/DECCARA/DECRARA/DECSERA),
// translating through DECOM/DECLRMM at enqueue time and applying each
// operation's documented default of "rest of margin box" when a coordinate
// is omitted (spec §4.3 "coordinates are translated through DECOM and
// DECLRMM at enqueue time and stored as absolute indices in the op").
func rectFromParams(box MarginBox, originMode bool, top, left, bottom, right int) Rect {
	if bottom <= 0 {
		bottom = box.Height()
	}
	if right <= 0 {
		right = box.Width()
	}
	absTop, absLeft := translate(box, originMode, top-1, left-1)
	absBottom, absRight := translate(box, originMode, bottom-1, right-1)
	return Rect{Top: absTop, Left: absLeft, Bottom: absBottom, Right: absRight}
}

// enqueueFillRect implements DECFRA: fill a rectangle with one character
// and the cursor's current rendition.
func enqueueFillRect(q *OpQueue, box MarginBox, originMode bool, ch rune, attrs CellTemplate, top, left, bottom, right int) {
	r := rectFromParams(box, originMode, top, left, bottom, right)
	cell := attrs.Cell
	cell.Codepoint = ch
	q.Enqueue(Operation{Kind: OpFillRect, Rect: r, Cell: cell})
}

// enqueueCopyRect implements DECCRA: 8-parameter form with trailing
// defaults (pages are accepted but treated identically, per spec §4.3).
func enqueueCopyRect(q *OpQueue, box MarginBox, originMode bool, srcTop, srcLeft, srcBottom, srcRight, dstTop, dstLeft int) {
	r := rectFromParams(box, originMode, srcTop, srcLeft, srcBottom, srcRight)
	dstRow, dstCol := translate(box, originMode, dstTop-1, dstLeft-1)
	q.Enqueue(Operation{Kind: OpCopyRect, Rect: r, DstX: dstCol, DstY: dstRow})
}

// enqueueSetAttrRect implements DECCARA (on) / DECRARA (off): toggle a set
// of SGR-equivalent attribute bits across a rectangle, skipping protected
// cells at flush time.
func enqueueSetAttrRect(q *OpQueue, box MarginBox, originMode bool, mask CellFlags, on bool, top, left, bottom, right int) {
	r := rectFromParams(box, originMode, top, left, bottom, right)
	q.Enqueue(Operation{Kind: OpSetAttrRect, Rect: r, AttrMask: mask, AttrOn: on})
}

// enqueueEraseRect implements DECSERA (respectProtected=true) and the
// DECSEL/DECSED selective variants; the plain ED/EL path uses
// respectProtected=false and ignores rather than silently succeeds per §4.3
// when protected cells intersect (the flusher discards the whole op).
func enqueueEraseRect(q *OpQueue, box MarginBox, originMode bool, respectProtected bool, top, left, bottom, right int) {
	r := rectFromParams(box, originMode, top, left, bottom, right)
	q.Enqueue(Operation{Kind: OpEraseRect, Rect: r, RespectProtected: respectProtected})
}

// sgrAttrMask maps the DECCARA/DECRARA parameter numbers (1=bold, 4=underline,
// 5=blink, 7=reverse, 8=conceal per ECMA-48 §8.3.117/118) to CellFlags.
func sgrAttrMask(param int) (CellFlags, bool) {
	switch param {
	case 1:
		return CellFlagBold, true
	case 4:
		return CellFlagUnderline, true
	case 5:
		return CellFlagBlinkSlow, true
	case 7:
		return CellFlagReverse, true
	case 8:
		return CellFlagConceal, true
	}
	return 0, false
}
