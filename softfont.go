package kterm

import "golang.org/x/image/math/fixed"

// SoftFontGlyph is one downloaded character cell: cellHeight rows of a
// 6-bit-wide sixel-encoded column pattern packed into bytes (spec §3
// "Soft font": "per-session 256xcell_height bitmap atlas").
type SoftFontGlyph struct {
	Rows []uint8 // one byte per row, low 6 bits are the sixel column pattern
}

// GlyphMetrics caches the advance width the render adapter needs per glyph,
// expressed in 26.6 fixed point to match the out-of-scope rasterizer's unit
// (spec DESIGN NOTES: avoid pointer-identity aliasing between font sources;
// here the cache is keyed by glyph index, not by pointer).
type GlyphMetrics struct {
	Advance fixed.Int26_6
	Valid   bool
}

// SoftFontState is the per-session DECDLD atlas (spec §3 "Soft font").
type SoftFontState struct {
	Dscs       string // charset name: "DRCS" plus Pfn after DECDLD, or the SetFont name
	CellHeight int
	Atlas      [256]SoftFontGlyph
	Dirty      bool
	metrics    [256]GlyphMetrics

	// Parser scratchpad for an in-progress DECDLD payload (spec §4.3 DCS `{`).
	loading    bool
	curGlyph   int
	curRow     int
	cellWidth  int
}

func newSoftFontState(rows int) SoftFontState {
	return SoftFontState{CellHeight: 10, cellWidth: 10}
}

// BeginLoad starts a DECDLD payload: Pcn picks the first glyph slot,
// Pcmw/Pcmh the cell geometry, and dscs is the name to record (spec §4.3).
// The payload is not searched for a Dscs designator.
func (s *SoftFontState) BeginLoad(startGlyph, cellWidth, cellHeight int, dscs string) {
	s.loading = true
	s.curGlyph = startGlyph
	s.curRow = 0
	s.cellWidth = cellWidth
	if cellHeight > 0 {
		s.CellHeight = cellHeight
	}
	s.Dscs = dscs
	if s.curGlyph >= 0 && s.curGlyph < 256 {
		s.Atlas[s.curGlyph] = SoftFontGlyph{Rows: make([]uint8, 0, s.CellHeight)}
	}
}

// FeedByte processes one payload byte of a DECDLD body: `ch - '?'` yields a
// 6-row column for the current glyph; `/` advances to the next row-group;
// `;` advances to the next glyph (Pcn++); whitespace is ignored (§4.6).
func (s *SoftFontState) FeedByte(b byte) {
	if !s.loading {
		return
	}
	switch {
	case b == '/':
		s.curRow++
	case b == ';':
		s.curGlyph++
		s.curRow = 0
		if s.curGlyph >= 0 && s.curGlyph < 256 {
			s.Atlas[s.curGlyph] = SoftFontGlyph{Rows: make([]uint8, 0, s.CellHeight)}
		}
	case b == ' ' || b == '\t':
		// ignored
	case b >= '?' && b <= '~':
		if s.curGlyph >= 0 && s.curGlyph < 256 {
			g := &s.Atlas[s.curGlyph]
			g.Rows = append(g.Rows, b-'?')
		}
	}
}

// EndLoad finishes the DECDLD payload on ST: marks the atlas dirty and
// invalidates the glyph-metric cache (spec §4.3 "On ST, the atlas is marked
// dirty and the glyph-metric cache invalidated").
func (s *SoftFontState) EndLoad() {
	s.loading = false
	s.Dirty = true
	for i := range s.metrics {
		s.metrics[i] = GlyphMetrics{}
	}
}

// Glyph returns the atlas bitmap for codepoint index idx (0-255).
func (s *SoftFontState) Glyph(idx int) (SoftFontGlyph, bool) {
	if idx < 0 || idx >= 256 {
		return SoftFontGlyph{}, false
	}
	g := s.Atlas[idx]
	return g, len(g.Rows) > 0
}

// MetricsFor lazily computes and caches the advance width for a glyph,
// derived from the session's reported cell size in pixels.
func (s *SoftFontState) MetricsFor(idx int, sizes SizeProvider) GlyphMetrics {
	if idx < 0 || idx >= 256 {
		return GlyphMetrics{}
	}
	if s.metrics[idx].Valid {
		return s.metrics[idx]
	}
	w, _ := sizes.CellSizePixels()
	if w <= 0 {
		w = s.cellWidth
	}
	m := GlyphMetrics{Advance: fixed.I(w), Valid: true}
	s.metrics[idx] = m
	return m
}
