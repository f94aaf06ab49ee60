package motion

import (
	"math"

	"github.com/printforge/toolpath/internal/gcode"
)

// PathOp is one operation of a projected 2D path: either the pen lifting
// to a new start point or drawing a line to the given point.
type PathOp struct {
	MoveTo bool
	X, Y   float64
}

// BoundingBox tracks the extent of a projected path. Empty is true until
// the first point is projected.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
	Empty                  bool
}

func newBoundingBox() BoundingBox {
	return BoundingBox{Empty: true}
}

func (bb *BoundingBox) extend(x, y float64) {
	if bb.Empty {
		bb.MinX, bb.MaxX = x, x
		bb.MinY, bb.MaxY = y, y
		bb.Empty = false
		return
	}
	bb.MinX = math.Min(bb.MinX, x)
	bb.MaxX = math.Max(bb.MaxX, x)
	bb.MinY = math.Min(bb.MinY, y)
	bb.MaxY = math.Max(bb.MaxY, y)
}

// Projector folds a Command stream into a flattened 2D path, using the
// isometric-style projection of spec.md §4.6: proj_x=(x+y)/2,
// proj_y=(x-y)/2-z. It mirrors Builder's extrude/retract bookkeeping but
// drops all multi-object accounting, since the projection is a single
// continuous path over the whole job.
type Projector struct {
	absolute  bool
	cur       Vertex
	origin    Vertex
	extruding bool
	active    bool // false once the job is cancelled; suppresses draw, not tracking

	ops     []PathOp
	pending bool // true once a move-to has been emitted and not yet followed by any line-to
	bbox    BoundingBox
}

// NewProjector returns a Projector in its initial state (absolute
// positioning, origin and position at zero, not extruding, job active).
func NewProjector() *Projector {
	p := &Projector{absolute: true, active: true, bbox: newBoundingBox()}
	// spec.md §4.6: a non-empty output opens with a synthetic move to the
	// projected origin; Path drops it when nothing was ever projected.
	p.ops = append(p.ops, PathOp{MoveTo: true, X: 0, Y: 0})
	return p
}

func (p *Projector) project() (float64, float64) {
	x := p.origin.X + p.cur.X
	y := p.origin.Y + p.cur.Y
	z := p.origin.Z + p.cur.Z
	return (x + y) / 2, (x-y)/2 - z
}

// Feed applies one command to the projector's state.
func (p *Projector) Feed(cmd gcode.Command) error {
	switch c := cmd.(type) {
	case gcode.LinearMove:
		applyAxesTo(&p.cur, p.absolute, c.Params)
		if e, ok := c.Params.Get('E'); ok {
			p.extruding = e > 0
		}
		p.emit()
	case gcode.ArcMove:
		points, err := interpolateArc(p.cur.X, p.cur.Y, c.Direction, c.Form)
		if err != nil {
			return err
		}
		p.extruding = true
		for _, pt := range points {
			p.cur.X, p.cur.Y = pt.X, pt.Y
			p.emit()
		}
	case gcode.SetAbsolute:
		p.absolute = true
	case gcode.SetRelative:
		p.absolute = false
	case gcode.SetPosition:
		origin := map[byte]*float64{'X': &p.origin.X, 'Y': &p.origin.Y, 'Z': &p.origin.Z}
		cur := map[byte]*float64{'X': &p.cur.X, 'Y': &p.cur.Y, 'Z': &p.cur.Z}
		for _, axis := range []byte{'X', 'Y', 'Z'} {
			commanded, ok := c.Params.Get(axis)
			if !ok {
				continue
			}
			if p.absolute {
				*origin[axis] = *origin[axis] + *cur[axis] - commanded
				*cur[axis] = commanded
			} else {
				*origin[axis] += commanded
			}
		}
		if e, ok := c.Params.Get('E'); ok {
			p.extruding = e > 0
			p.emit()
		}
	case gcode.MultiObject:
		switch c.Variant.(type) {
		case gcode.MOStart, gcode.MOUncancel:
			p.active = true
		case gcode.MOCancel, gcode.MOCancelCurrent:
			p.active = false
		}
	}
	return nil
}

func applyAxesTo(v *Vertex, absolute bool, params gcode.ParamSet) {
	if x, ok := params.Get('X'); ok {
		if absolute {
			v.X = x
		} else {
			v.X += x
		}
	}
	if y, ok := params.Get('Y'); ok {
		if absolute {
			v.Y = y
		} else {
			v.Y += y
		}
	}
	if z, ok := params.Get('Z'); ok {
		if absolute {
			v.Z = z
		} else {
			v.Z += z
		}
	}
}

// emit records a move-to or line-to for the current position, depending
// on extruding state, and extends the bounding box.
func (p *Projector) emit() {
	x, y := p.project()
	p.bbox.extend(x, y)
	if p.extruding && p.active {
		p.ops = append(p.ops, PathOp{X: x, Y: y})
		p.pending = false
		return
	}
	p.ops = append(p.ops, PathOp{MoveTo: true, X: x, Y: y})
	p.pending = true
}

// Path returns the accumulated path operations and bounding box. A
// trailing pending move-to with nothing drawn after it carries no visible
// geometry but is left in place: it reflects a genuine travel move.
func (p *Projector) Path() ([]PathOp, BoundingBox) {
	if p.bbox.Empty {
		// Nothing was ever projected: report a wholly empty path rather
		// than the leading synthetic move-to alone (spec.md §4.6).
		return nil, newBoundingBox()
	}
	return p.ops, p.bbox
}

// Project is a convenience wrapper that feeds a full command stream and
// returns the resulting path and bounding box.
func Project(commands []gcode.Command) ([]PathOp, BoundingBox, error) {
	p := NewProjector()
	for _, cmd := range commands {
		if err := p.Feed(cmd); err != nil {
			return nil, BoundingBox{}, err
		}
	}
	ops, bbox := p.Path()
	return ops, bbox, nil
}
