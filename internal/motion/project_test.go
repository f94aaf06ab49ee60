package motion

import "testing"

func TestProjectEmptyInputYieldsEmptyPath(t *testing.T) {
	cmds := parseAll(t)
	ops, bbox, err := Project(cmds)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if ops != nil {
		t.Errorf("ops = %+v, want nil", ops)
	}
	if bbox != (BoundingBox{Empty: true}) {
		t.Errorf("bbox = %+v, want an empty bounding box", bbox)
	}
}

func TestProjectFileWithNoLinearMoves(t *testing.T) {
	cmds := parseAll(t, "G21", "G90", "; just a comment", "G28")
	ops, bbox, err := Project(cmds)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(ops) != 0 {
		t.Errorf("ops = %+v, want empty", ops)
	}
	if !bbox.Empty {
		t.Errorf("bbox.Empty = false, want true")
	}
}

func TestProjectExtrudingMoveDrawsLine(t *testing.T) {
	cmds := parseAll(t, "G90", "G1 X0 Y0 Z0 E0", "G1 X10 Y0 E1")
	ops, bbox, err := Project(cmds)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if bbox.Empty {
		t.Fatalf("expected a non-empty bounding box")
	}
	var sawLineTo bool
	for _, op := range ops {
		if !op.MoveTo {
			sawLineTo = true
		}
	}
	if !sawLineTo {
		t.Errorf("expected at least one line-to op, got %+v", ops)
	}
	// The very first op must be the synthetic move to the projected origin.
	if !ops[0].MoveTo || ops[0].X != 0 || ops[0].Y != 0 {
		t.Errorf("ops[0] = %+v, want a move-to at (0,0)", ops[0])
	}
}

func TestProjectCancelSuppressesDrawing(t *testing.T) {
	cmds := parseAll(t, "G90", "G1 X0 Y0 Z0 E0", "G1 X10 Y0 E1", "M486 C", "G1 X20 Y0 E1")
	ops, _, err := Project(cmds)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	last := ops[len(ops)-1]
	if !last.MoveTo {
		t.Errorf("expected the post-cancellation move to be forced to a move-to, got %+v", last)
	}
}
