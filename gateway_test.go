package kterm

import "testing"

func TestGatewaySetLevel(t *testing.T) {
	// Scenario 5 (spec §8): DCS-wrapped GATE;KTERM;id;SET;LEVEL;n changes
	// conformance at runtime.
	term := NewTerminal(WithSize(24, 80), WithLevel(ConformanceVT220))
	run(term, 0, "\x1BPGATE;KTERM;1;SET;LEVEL;"+itoa(int(ConformanceVT420))+"\x1B\\")

	s := term.ActiveSession()
	if s.Level() != ConformanceVT420 {
		t.Errorf("level = %v, want %v", s.Level(), ConformanceVT420)
	}
}

func TestGatewayGetReportsOverDCS(t *testing.T) {
	term := NewTerminal(WithSize(24, 80), WithLevel(ConformanceVT220))
	run(term, 0, "\x1BPGATE;KTERM;7;GET;LEVEL\x1B\\")

	resp := term.DrainResponse(0)
	want := "\x1bPGATE;KTERM;7;REPORT;LEVEL=" + itoa(int(ConformanceVT220)) + "\x1b\\"
	if string(resp) != want {
		t.Errorf("response = %q, want %q", resp, want)
	}
}

func TestGatewayDelegatesNonKTERMClass(t *testing.T) {
	term := NewTerminal(WithSize(24, 80))
	var got string
	term.SetGatewayCallback(func(payload string) { got = payload })

	run(term, 0, "\x1BPGATE;APP;5;PING;hello\x1B\\")

	want := "GATE;APP;5;PING;hello"
	if got != want {
		t.Errorf("delegated payload = %q, want %q", got, want)
	}
}

func TestGatewayPipeInjectsBytes(t *testing.T) {
	term := NewTerminal(WithSize(24, 80))
	run(term, 0, "\x1BPGATE;KTERM;2;PIPE;VT;HEX;41\x1B\\")
	term.Update()
	term.FlushOps(0)

	c := mustCell(t, term, 0, 0, 0)
	if c.Codepoint != 'A' {
		t.Errorf("piped byte did not reach the parser: (0,0) = %q, want 'A'", c.Codepoint)
	}
}

func TestLexGateway(t *testing.T) {
	toks := lexGateway("SET;LEVEL;62")
	kinds := make([]GatewayTokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	want := []GatewayTokenKind{
		GatewayIdent, GatewaySemicolon, GatewayIdent, GatewaySemicolon, GatewayNumber, GatewayEOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
	if toks[4].Num != 62 {
		t.Errorf("number token = %d, want 62", toks[4].Num)
	}
}

func TestParseGatewayRejectsMalformed(t *testing.T) {
	if _, ok := ParseGateway("NOTGATE;KTERM;1;SET"); ok {
		t.Error("expected ParseGateway to reject a payload not starting with GATE")
	}
	if _, ok := ParseGateway("GATE;KTERM;1"); ok {
		t.Error("expected ParseGateway to reject a payload with too few fields")
	}
	msg, ok := ParseGateway("GATE;KTERM;1;SET;LEVEL;62")
	if !ok {
		t.Fatal("expected ParseGateway to accept a well-formed payload")
	}
	if msg.Class != "KTERM" || msg.ID != "1" || msg.Command != "SET" {
		t.Errorf("parsed = %+v, want Class=KTERM ID=1 Command=SET", msg)
	}
	if len(msg.Params) != 2 || msg.Params[0] != "LEVEL" || msg.Params[1] != "62" {
		t.Errorf("params = %v, want [LEVEL 62]", msg.Params)
	}
}
