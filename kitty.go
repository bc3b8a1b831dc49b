package kterm

import (
	"bytes"
	"encoding/base64"
	"strconv"
)

// KittyAction is the Kitty graphics protocol `a=` action key.
type KittyAction byte

const (
	KittyActionTransmit KittyAction = 't'
	KittyActionPlace    KittyAction = 'p'
	KittyActionDelete   KittyAction = 'd'
	KittyActionQuery    KittyAction = 'q'
)

// KittyFormat is the `f=` pixel format key (24=RGB, 32=RGBA, 100=PNG).
type KittyFormat int

const (
	KittyFormatRGB  KittyFormat = 24
	KittyFormatRGBA KittyFormat = 32
	KittyFormatPNG  KittyFormat = 100
)

// KittyFrame accumulates one image transmission keyed by its ID (spec §3
// "Kitty": "a set of pending image frames keyed by ID; each frame has
// capacity, byte-count, dimensions, placement, and a chunking state").
type KittyFrame struct {
	ID        uint32
	Format    KittyFormat
	Width     int
	Height    int
	Data      []byte
	Capacity  int
	More      bool
	Placement KittyPlacement
}

// KittyPlacement records where a transmitted image should be anchored
// (spec §4.7 "a=p"); actual pixel compositing is the render adapter's job.
type KittyPlacement struct {
	Set         bool
	Col, Row    int
	PlacementID uint32
}

// KittyState holds every pending frame for one session plus the shared
// memory budget all frames draw from.
type KittyState struct {
	Frames      map[uint32]*KittyFrame
	MemoryUsed  int
	MemoryLimit int
}

const defaultKittyMemoryLimit = 64 * 1024 * 1024

func newKittyState() KittyState {
	return KittyState{
		Frames:      make(map[uint32]*KittyFrame),
		MemoryLimit: defaultKittyMemoryLimit,
	}
}

func (s *KittyState) Reset() {
	s.Frames = make(map[uint32]*KittyFrame)
	s.MemoryUsed = 0
}

// KittyCommand is one parsed `APC G ... ST` payload: key=value pairs plus
// the trailing (possibly base64-encoded) data (spec §4.6).
type KittyCommand struct {
	Action    KittyAction
	ID        uint32
	Format    KittyFormat
	Width     int
	Height    int
	More      bool
	Col, Row  int
	Placement uint32
	Payload   []byte
}

// Apply integrates one parsed command into the frame table. Chunked
// transmissions append to whichever buffer the ID currently identifies; a
// chunk for an unrelated ID that arrives after a terminating (more=0) chunk
// starts a fresh frame rather than silently reusing a finished one (spec §9
// Open Question: "define an explicit per-ID association and log a warning
// otherwise" — warning delivery is the caller's DiagnosticsProvider).
func (s *KittyState) Apply(cmd KittyCommand, diag DiagnosticsProvider, session int) {
	switch cmd.Action {
	case KittyActionDelete:
		if f, ok := s.Frames[cmd.ID]; ok {
			s.MemoryUsed -= len(f.Data)
			delete(s.Frames, cmd.ID)
		}
		return
	case KittyActionPlace:
		if f, ok := s.Frames[cmd.ID]; ok {
			f.Placement = KittyPlacement{Set: true, Col: cmd.Col, Row: cmd.Row, PlacementID: cmd.Placement}
		}
		return
	}

	f, ok := s.Frames[cmd.ID]
	if !ok || !f.More {
		if s.MemoryUsed+len(cmd.Payload) > s.MemoryLimit {
			diag.Warn(session, "kitty-memory-cap", "transmission denied: over budget")
			return
		}
		f = &KittyFrame{ID: cmd.ID, Format: cmd.Format, Width: cmd.Width, Height: cmd.Height}
		s.Frames[cmd.ID] = f
	}
	if s.MemoryUsed+len(cmd.Payload) > s.MemoryLimit {
		diag.Warn(session, "kitty-memory-cap", "chunk denied: over budget")
		return
	}
	f.Data = append(f.Data, cmd.Payload...)
	f.More = cmd.More
	s.MemoryUsed += len(cmd.Payload)
}

// parseKittyAPC parses the body of an `APC G ... ST` sequence (the 'G' has
// already been consumed by the caller). Control data is a comma-separated
// list of key=value pairs; an optional `;` introduces the trailing payload,
// base64-encoded (spec §4.6 "Kitty"), grounded on the teacher's
// ParseKittyGraphics (kitty.go).
func parseKittyAPC(data []byte) KittyCommand {
	cmd := KittyCommand{Action: KittyActionTransmit, Format: KittyFormatRGBA}

	control := data
	var payload []byte
	if i := bytes.IndexByte(data, ';'); i >= 0 {
		control = data[:i]
		payload = data[i+1:]
	}

	for _, pair := range bytes.Split(control, []byte(",")) {
		eq := bytes.IndexByte(pair, '=')
		if eq <= 0 {
			continue
		}
		key := string(pair[:eq])
		val := string(pair[eq+1:])
		switch key {
		case "a":
			if len(val) > 0 {
				cmd.Action = KittyAction(val[0])
			}
		case "i":
			if n, err := strconv.Atoi(val); err == nil {
				cmd.ID = uint32(n)
			}
		case "f":
			if n, err := strconv.Atoi(val); err == nil {
				cmd.Format = KittyFormat(n)
			}
		case "s":
			if n, err := strconv.Atoi(val); err == nil {
				cmd.Width = n
			}
		case "v":
			if n, err := strconv.Atoi(val); err == nil {
				cmd.Height = n
			}
		case "m":
			cmd.More = val == "1"
		case "c":
			if n, err := strconv.Atoi(val); err == nil {
				cmd.Col = n
			}
		case "r":
			if n, err := strconv.Atoi(val); err == nil {
				cmd.Row = n
			}
		case "p":
			if n, err := strconv.Atoi(val); err == nil {
				cmd.Placement = uint32(n)
			}
		}
	}

	if len(payload) > 0 {
		if decoded, err := base64.StdEncoding.DecodeString(string(payload)); err == nil {
			cmd.Payload = decoded
		}
	}
	return cmd
}
