package gcode

import "testing"

func TestParseLineLinearMove(t *testing.T) {
	cmd, err := ParseLine("G1 X94.838 Y81.705 E0.5")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	lm, ok := cmd.(LinearMove)
	if !ok {
		t.Fatalf("expected LinearMove, got %T", cmd)
	}
	if !lm.Printing {
		t.Errorf("G1 should be a printing move")
	}
	if x, _ := lm.Params.Get('X'); x != 94.838 {
		t.Errorf("X = %v, want 94.838", x)
	}
}

func TestParseLineNoSeparators(t *testing.T) {
	cmd, err := ParseLine("G1X94.838Y81.705F9000")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	lm, ok := cmd.(LinearMove)
	if !ok {
		t.Fatalf("expected LinearMove, got %T", cmd)
	}
	if f, ok := lm.Params.Get('F'); !ok || f != 9000 {
		t.Errorf("F = %v, %v, want 9000, true", f, ok)
	}
}

func TestParseLineDuplicateLetterCollapses(t *testing.T) {
	cmd, err := ParseLine("G1 X95 X96")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	lm := cmd.(LinearMove)
	if lm.Params.Len() != 1 {
		t.Fatalf("expected 1 param, got %d", lm.Params.Len())
	}
	if x, _ := lm.Params.Get('X'); x != 95 {
		t.Errorf("X = %v, want first occurrence 95", x)
	}
}

func TestParseLineArcRequiresExactlyOneForm(t *testing.T) {
	if _, err := ParseLine("G2 X1 Y1 I1 J1"); err != nil {
		t.Errorf("center-offset arc should parse: %v", err)
	}
	if _, err := ParseLine("G2 X1 Y1 R5"); err != nil {
		t.Errorf("radius arc should parse: %v", err)
	}
	if _, err := ParseLine("G2 X1 Y1 I1 R5"); err == nil {
		t.Errorf("both I and R should be an error")
	}
	if _, err := ParseLine("G2 X1 Y1"); err == nil {
		t.Errorf("neither I/J nor R should be an error")
	}
}

func TestParseLineComment(t *testing.T) {
	cmd, err := ParseLine("; layer 1")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	c, ok := cmd.(Comment)
	if !ok {
		t.Fatalf("expected Comment, got %T", cmd)
	}
	if c.Text != " layer 1" {
		t.Errorf("Text = %q, want %q", c.Text, " layer 1")
	}
}

func TestParseLineEmpty(t *testing.T) {
	cmd, err := ParseLine("   ")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if _, ok := cmd.(Empty); !ok {
		t.Fatalf("expected Empty, got %T", cmd)
	}
}

func TestParseLineUnhandledCatchAll(t *testing.T) {
	cmd, err := ParseLine("G28")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	g, ok := cmd.(UnhandledG)
	if !ok {
		t.Fatalf("expected UnhandledG, got %T", cmd)
	}
	if g.Code != 28 {
		t.Errorf("Code = %d, want 28", g.Code)
	}
}

func TestParseLineMultiObjectStart(t *testing.T) {
	cmd, err := ParseLine(`M486 S0 A"bracket"`)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	mo, ok := cmd.(MultiObject)
	if !ok {
		t.Fatalf("expected MultiObject, got %T", cmd)
	}
	start, ok := mo.Variant.(MOStart)
	if !ok {
		t.Fatalf("expected MOStart, got %T", mo.Variant)
	}
	if start.ID != 0 || !start.HasName || start.Name != "bracket" {
		t.Errorf("got %+v", start)
	}
}

func TestParseLineUnparsableGarbage(t *testing.T) {
	if _, err := ParseLine("G1 X5 garbage"); err == nil {
		t.Errorf("expected UnparsableCommand error")
	}
}
