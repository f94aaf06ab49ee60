package motion

import (
	"testing"

	"github.com/printforge/toolpath/internal/gcode"
)

func parseAll(t *testing.T, lines ...string) []gcode.Command {
	t.Helper()
	var out []gcode.Command
	for _, line := range lines {
		cmd, err := gcode.ParseLine(line)
		if err != nil {
			t.Fatalf("parsing %q: %v", line, err)
		}
		out = append(out, cmd)
	}
	return out
}

func TestBuildMinimalPrintPath(t *testing.T) {
	cmds := parseAll(t, "G21", "G90", "G1 X0 Y0 Z0 E0", "G1 X10 Y0 E1", "G1 X10 Y10 E2")
	m, err := Build(cmds)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.Vertices) != 3 {
		t.Fatalf("len(Vertices) = %d, want 3", len(m.Vertices))
	}
	want := []Vertex{{0, 0, 0}, {10, 0, 0}, {10, 10, 0}}
	for i, v := range want {
		if m.Vertices[i] != v {
			t.Errorf("Vertices[%d] = %v, want %v", i, m.Vertices[i], v)
		}
	}
	lines := m.Objects[0]
	if len(lines) != 1 || len(lines[0]) != 3 {
		t.Fatalf("object 0 polylines = %+v, want one polyline of length 3", lines)
	}
}

func TestBuildRetractionSplitsPolyline(t *testing.T) {
	cmds := parseAll(t, "G90", "G1 X0 Y0 Z0 E0", "G1 X5 Y0 E1", "G1 X5 Y0 E-1", "G1 X10 Y0 E1")
	m, err := Build(cmds)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.Vertices) != 3 {
		t.Fatalf("len(Vertices) = %d, want 3 (v1 deduplicated)", len(m.Vertices))
	}
	lines := m.Objects[0]
	if len(lines) != 2 {
		t.Fatalf("object 0 polylines = %+v, want 2", lines)
	}
	if lines[0][len(lines[0])-1] != lines[1][0] {
		t.Errorf("expected the retraction vertex to be shared between both polylines")
	}
}

func TestBuildMultiObjectNaming(t *testing.T) {
	cmds := parseAll(t, "G90",
		`M486 S0 A"a"`, "G1 X0 Y0 Z0 E0", "G1 X1 Y0 E1",
		`M486 S1 A"b"`, "G1 X0 Y1 E0", "G1 X1 Y1 E1")
	m, err := Build(cmds)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Names[0] != "a" || m.Names[1] != "b" {
		t.Fatalf("Names = %+v", m.Names)
	}
	if len(m.Objects[0]) != 1 || len(m.Objects[0][0]) != 2 {
		t.Errorf("object 0 polylines = %+v", m.Objects[0])
	}
	if len(m.Objects[1]) != 1 || len(m.Objects[1][0]) != 2 {
		t.Errorf("object 1 polylines = %+v", m.Objects[1])
	}
}

func TestBuildCancelDropsMotion(t *testing.T) {
	cmds := parseAll(t, "G90", "G1 X0 Y0 Z0 E0", "M486 C", "G1 X5 Y0 E1")
	m, err := Build(cmds)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.Vertices) != 1 {
		t.Fatalf("len(Vertices) = %d, want 1 (motion after cancel is dropped)", len(m.Vertices))
	}
}

func TestBuildSetPositionPreservesEmittedCoordinate(t *testing.T) {
	cmds := parseAll(t, "G90", "G1 X5 Y0 Z0 E0", "G92 X0")
	b := NewBuilder()
	for _, c := range cmds {
		if err := b.Feed(c); err != nil {
			t.Fatalf("Feed: %v", err)
		}
	}
	if b.cur.X != 0 {
		t.Errorf("cur.X = %v, want 0", b.cur.X)
	}
	if b.origin.X+b.cur.X != 5 {
		t.Errorf("origin.X+cur.X = %v, want 5 (emitted coordinate preserved)", b.origin.X+b.cur.X)
	}
}

func TestBuildNaNCoordinateIsRejected(t *testing.T) {
	cmds := parseAll(t, "G90", "G1 Xnan Y0 Z0 E1")
	if _, err := Build(cmds); err == nil {
		t.Errorf("expected an error for a NaN coordinate")
	}
}
