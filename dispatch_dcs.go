package kterm

import vte "github.com/danielgatis/go-vte"

// dcsHook begins collection of one DCS sequence, recorded by its final byte
// and collected intermediates/private marker (spec §4.3 "DCS" table):
// `q` Sixel, `{` DECDLD soft font, `|` DECUDK, `$q` DECRQSS, and the
// Gateway protocol payload (which always starts with the literal "GATE").
// The in-progress kind and raw accumulator live on the Session itself since
// a DCS body can span many Put calls, possibly across several Advance
// invocations if the pipeline delivers it in more than one chunk.
func dcsHook(t *Terminal, s *Session, params *vte.Params, intermediates []byte, ignore bool, action rune) {
	p := paramGroups(params)
	s.dcsRawBuf = s.dcsRawBuf[:0]

	switch {
	case action == 'q' && len(intermediates) == 0:
		s.activeDCSKind = 'q'
		s.sixel.Reset()
		s.sixel.BeginRasterAttrs(paramOr(p, 0, 0), paramOr(p, 1, 0))
	case action == '{':
		s.activeDCSKind = '{'
		pfn := paramOr(p, 0, 0)
		pcn := paramOr(p, 1, 0)
		pcmw := paramOr(p, 3, 0)
		pcmh := paramOr(p, 6, 0)
		s.softFont.BeginLoad(pcn, pcmw, pcmh, "DRCS"+itoa(pfn))
	case action == '|':
		s.activeDCSKind = '|'
	case action == 'q' && len(intermediates) > 0 && intermediates[0] == '$':
		s.activeDCSKind = '$'
	case action == 'G' && len(intermediates) == 0:
		// go-vte takes the 'G' of "GATE" as the DCS final byte, so it is put
		// back in front of the payload for the Gateway check at Unhook.
		s.activeDCSKind = 0
		s.dcsRawBuf = append(s.dcsRawBuf, 'G')
	default:
		s.activeDCSKind = 0 // accumulate as a generic string; at Unhook only a Gateway payload is acted on, anything else is discarded
	}
}

func dcsPut(s *Session, b byte) {
	switch s.activeDCSKind {
	case 'q':
		s.sixel.Feed(b)
	case '{':
		s.softFont.FeedByte(b)
	default:
		s.dcsRawBuf = append(s.dcsRawBuf, b)
	}
}

func dcsUnhook(t *Terminal, s *Session) {
	switch s.activeDCSKind {
	case 'q':
		s.sixel.Dirty = true
	case '{':
		s.softFont.EndLoad()
	case '|':
		s.programmableKeys = parseDECUDK(s.dcsRawBuf)
	case '$':
		handleDECRQSS(s, s.dcsRawBuf)
	default:
		payload := string(s.dcsRawBuf)
		if len(payload) >= 4 && payload[:4] == "GATE" {
			result := t.HandleGateway(s.index, payload)
			if !result.Handled && t.gatewayFn != nil {
				t.gatewayFn(result.Delegated)
			}
		}
	}
	s.dcsRawBuf = nil
	s.activeDCSKind = 0
}

// parseDECUDK parses a DECUDK (programmable function key) payload:
// `Key;Locked;body[/Key;Locked;body...]` pairs separated by `/` (spec §4.3 "|").
func parseDECUDK(body []byte) map[int]udkEntry {
	out := make(map[int]udkEntry)
	for _, entry := range splitBytes(body, '/') {
		fields := splitBytes(entry, ';')
		if len(fields) < 3 {
			continue
		}
		key := atoiSafe(string(fields[0]))
		out[key] = udkEntry{Locked: atoiSafe(string(fields[1])) == 1, Body: string(fields[2])}
	}
	return out
}

// csiDECRQPKU answers DECRQPKU (CSI ? Pf $ w): report the one programmed
// key named by Pf, or every programmed key when Pf is omitted/0, each as
// its own `DCS Key;Locked;body ST` reply (spec §4.3 "Reports").
func csiDECRQPKU(s *Session, params []int) {
	pf := paramOr(params, 0, 0)
	if pf != 0 {
		if e, ok := s.programmableKeys[pf]; ok {
			queueReply(s, pkuReply(pf, e))
		}
		return
	}
	for key, e := range s.programmableKeys {
		queueReply(s, pkuReply(key, e))
	}
}

func pkuReply(key int, e udkEntry) string {
	locked := "0"
	if e.Locked {
		locked = "1"
	}
	return "\x1bP" + itoa(key) + ";" + locked + ";" + e.Body + "\x1b\\"
}

func splitBytes(b []byte, sep byte) [][]byte {
	var out [][]byte
	start := 0
	for i, c := range b {
		if c == sep {
			out = append(out, b[start:i])
			start = i + 1
		}
	}
	out = append(out, b[start:])
	return out
}

// handleDECRQSS answers a DECRQSS status-string request (spec §4.3 "$q")
// with `DCS 1 $ r <reply> ST` for the handful of settings this core tracks.
func handleDECRQSS(s *Session, body []byte) {
	req := string(body)
	var reply string
	switch req {
	case "m":
		reply = "0m" // current SGR state; full reconstruction is a rendering concern
	case "r":
		reply = itoa(s.margins.Top+1) + ";" + itoa(s.margins.Bottom+1) + "r"
	default:
		queueReply(s, "\x1bP0$r" + req + "\x1b\\")
		return
	}
	queueReply(s, "\x1bP1$r" + reply + "\x1b\\")
}
