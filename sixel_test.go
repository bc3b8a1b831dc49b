package kterm

import "testing"

func TestSixelDefineAndSelectColor(t *testing.T) {
	var s SixelState
	s = newSixelState()
	s.Feed('#')
	for _, b := range []byte("1;2;100;0;0") {
		s.Feed(b)
	}
	s.Feed('~') // flush the color group, emit one pattern byte (all bits set)

	if s.Palette[1] != (RGBColor{R: 255, G: 0, B: 0}) {
		t.Errorf("palette[1] = %+v, want {255 0 0}", s.Palette[1])
	}
	if s.curColor != 1 {
		t.Errorf("curColor = %d, want 1", s.curColor)
	}
	if len(s.Strips) != 1 || s.Strips[0].Pattern != 0x3F || s.Strips[0].ColorIndex != 1 {
		t.Errorf("strips = %+v, want one strip {0x3F 1}", s.Strips)
	}
}

func TestSixelRepeatCount(t *testing.T) {
	s := newSixelState()
	s.Feed('!')
	for _, b := range []byte("3") {
		s.Feed(b)
	}
	s.Feed('~')

	if len(s.Strips) != 3 {
		t.Fatalf("strip count = %d, want 3", len(s.Strips))
	}
	for _, strip := range s.Strips {
		if strip.Pattern != 0x3F {
			t.Errorf("pattern = %x, want 0x3F", strip.Pattern)
		}
	}
}

func TestSixelColorParamsBeyondFiveIgnored(t *testing.T) {
	// spec §9 open question: extras beyond Ps;Px;Py;Pz are ignored.
	s := newSixelState()
	s.Feed('#')
	for _, b := range []byte("2;2;0;100;0;77;88") {
		s.Feed(b)
	}
	s.Feed('~')

	if s.Palette[2] != (RGBColor{R: 0, G: 255, B: 0}) {
		t.Errorf("palette[2] = %+v, want {0 255 0} (extras ignored)", s.Palette[2])
	}
}

func TestSixelMalformedDefineFallsBackToSelect(t *testing.T) {
	s := newSixelState()
	before := s.Palette[3]
	s.Feed('#')
	for _, b := range []byte("3;2;50") {
		s.Feed(b)
	}
	s.Feed('~')

	if s.Palette[3] != before {
		t.Errorf("palette[3] changed on a malformed 3-param group, want untouched")
	}
	if s.curColor != 3 {
		t.Errorf("curColor = %d, want 3 (select-only fallback)", s.curColor)
	}
}

func TestSixelRasterAttrs(t *testing.T) {
	s := newSixelState()
	s.BeginRasterAttrs(0, 0)
	s.Feed('"')
	for _, b := range []byte("1;1;100;50") {
		s.Feed(b)
	}
	s.Feed('~')

	if s.Raster.Width != 100 || s.Raster.Height != 50 {
		t.Errorf("raster = %+v, want Width=100 Height=50", s.Raster)
	}
}

func TestSixelThroughDCSPipeline(t *testing.T) {
	// Scenario 6 (spec §8): a Sixel DCS body routed through the parser and
	// command dispatcher end to end, not just SixelState in isolation.
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "\x1BP0;0;0q#1;2;100;0;0#1~~\x1B\\")

	s := term.ActiveSession()
	if !s.sixel.Dirty {
		t.Error("sixel.Dirty = false after a completed DCS q body, want true")
	}
	if len(s.sixel.Strips) != 2 {
		t.Errorf("strip count = %d, want 2", len(s.sixel.Strips))
	}
}

func TestSixelResetClearsState(t *testing.T) {
	s := newSixelState()
	s.Feed('~')
	if len(s.Strips) == 0 {
		t.Fatal("setup: expected at least one strip before Reset")
	}
	s.Reset()
	if len(s.Strips) != 0 || s.Dirty {
		t.Errorf("after Reset: strips=%v dirty=%v, want empty/false", s.Strips, s.Dirty)
	}
}
