package kterm

import (
	"encoding/base64"
	"testing"
)

func TestParseKittyAPC(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("pixels!"))
	cmd := parseKittyAPC([]byte("a=t,i=7,f=24,s=10,v=20,m=1;" + payload))

	if cmd.Action != KittyActionTransmit {
		t.Errorf("action = %q, want %q", cmd.Action, KittyActionTransmit)
	}
	if cmd.ID != 7 {
		t.Errorf("id = %d, want 7", cmd.ID)
	}
	if cmd.Format != KittyFormatRGB {
		t.Errorf("format = %d, want %d", cmd.Format, KittyFormatRGB)
	}
	if cmd.Width != 10 || cmd.Height != 20 {
		t.Errorf("dims = %dx%d, want 10x20", cmd.Width, cmd.Height)
	}
	if !cmd.More {
		t.Error("More = false, want true")
	}
	if string(cmd.Payload) != "pixels!" {
		t.Errorf("payload = %q, want %q", cmd.Payload, "pixels!")
	}
}

func TestParseKittyAPCDefaultsToRGBATransmit(t *testing.T) {
	cmd := parseKittyAPC([]byte("i=1"))
	if cmd.Action != KittyActionTransmit {
		t.Errorf("default action = %q, want %q", cmd.Action, KittyActionTransmit)
	}
	if cmd.Format != KittyFormatRGBA {
		t.Errorf("default format = %d, want %d", cmd.Format, KittyFormatRGBA)
	}
}

func TestKittyStateApplyAssemblesChunks(t *testing.T) {
	s := newKittyState()
	diag := NoopDiagnostics{}

	s.Apply(KittyCommand{Action: KittyActionTransmit, ID: 1, More: true, Payload: []byte("AB")}, diag, 0)
	s.Apply(KittyCommand{Action: KittyActionTransmit, ID: 1, More: false, Payload: []byte("CD")}, diag, 0)

	f, ok := s.Frames[1]
	if !ok {
		t.Fatal("frame 1 missing after two chunks")
	}
	if string(f.Data) != "ABCD" {
		t.Errorf("frame data = %q, want %q", f.Data, "ABCD")
	}
	if f.More {
		t.Error("frame.More = true after the terminating chunk, want false")
	}
}

func TestKittyStateCrossIDChunkStartsFreshFrame(t *testing.T) {
	// spec §9 open question decision: an unrelated i= after a finished
	// transmission starts a new frame rather than erroring.
	s := newKittyState()
	diag := NoopDiagnostics{}

	s.Apply(KittyCommand{Action: KittyActionTransmit, ID: 1, More: false, Payload: []byte("X")}, diag, 0)
	s.Apply(KittyCommand{Action: KittyActionTransmit, ID: 2, More: false, Payload: []byte("Y")}, diag, 0)

	if string(s.Frames[1].Data) != "X" {
		t.Errorf("frame 1 data = %q, want %q (must be untouched)", s.Frames[1].Data, "X")
	}
	if string(s.Frames[2].Data) != "Y" {
		t.Errorf("frame 2 data = %q, want %q", s.Frames[2].Data, "Y")
	}
}

func TestKittyStateDelete(t *testing.T) {
	s := newKittyState()
	diag := NoopDiagnostics{}
	s.Apply(KittyCommand{Action: KittyActionTransmit, ID: 5, Payload: []byte("z")}, diag, 0)
	s.Apply(KittyCommand{Action: KittyActionDelete, ID: 5}, diag, 0)

	if _, ok := s.Frames[5]; ok {
		t.Error("frame 5 still present after delete")
	}
	if s.MemoryUsed != 0 {
		t.Errorf("MemoryUsed = %d, want 0 after deleting the only frame", s.MemoryUsed)
	}
}

func TestKittyStateOverBudgetDenied(t *testing.T) {
	s := newKittyState()
	s.MemoryLimit = 4
	var warned bool
	diag := recordingDiagnostics{fn: func(session int, code, detail string) { warned = true }}

	s.Apply(KittyCommand{Action: KittyActionTransmit, ID: 1, Payload: []byte("toolong")}, diag, 0)

	if _, ok := s.Frames[1]; ok {
		t.Error("frame 1 should not have been created over budget")
	}
	if !warned {
		t.Error("expected a diagnostics warning for an over-budget transmission")
	}
}

func TestKittyPlaceUpdatesPlacement(t *testing.T) {
	s := newKittyState()
	diag := NoopDiagnostics{}
	s.Apply(KittyCommand{Action: KittyActionTransmit, ID: 9, Payload: []byte("a")}, diag, 0)
	s.Apply(KittyCommand{Action: KittyActionPlace, ID: 9, Col: 3, Row: 4, Placement: 2}, diag, 0)

	f := s.Frames[9]
	if !f.Placement.Set || f.Placement.Col != 3 || f.Placement.Row != 4 || f.Placement.PlacementID != 2 {
		t.Errorf("placement = %+v, want {Set:true Col:3 Row:4 PlacementID:2}", f.Placement)
	}
}

// recordingDiagnostics is a test-only DiagnosticsProvider that records
// whether Warn was called, since NoopDiagnostics discards everything.
type recordingDiagnostics struct {
	fn func(session int, code, detail string)
}

func (r recordingDiagnostics) Warn(session int, code, detail string) { r.fn(session, code, detail) }

func TestKittyThroughAPCDispatch(t *testing.T) {
	// End-to-end: an APC G sequence routed through the Parser reaches
	// KittyState via dispatchAPC, not just parseKittyAPC in isolation.
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "\x1B_Ga=t,i=3,f=24,s=1,v=1\x1B\\")

	s := term.ActiveSession()
	f, ok := s.kitty.Frames[3]
	if !ok {
		t.Fatal("expected frame 3 to exist after an APC G transmission")
	}
	if f.Format != KittyFormatRGB {
		t.Errorf("format = %d, want %d", f.Format, KittyFormatRGB)
	}
}
