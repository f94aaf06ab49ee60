package motion

import (
	"fmt"

	"github.com/printforge/toolpath/internal/gcode"
)

// defaultObjectID is the object pre-registered before any M486 Start is
// seen (spec.md §4.5).
const defaultObjectID = 0

// Builder folds a Command stream into a deduplicated vertex store plus,
// per object, a collection of completed polylines. It is a pure
// incremental fold: Feed never blocks and never allocates beyond what the
// new command requires, so a caller can report progress between calls
// (see cmd/toolpathd).
type Builder struct {
	store *vertexStore

	absolute  bool
	cur       Vertex // current head position, pre-origin-offset
	origin    Vertex
	extruding bool

	activeObject *int
	open         map[int][]int
	completed    map[int][]Polyline
	names        map[int]string
	objectOrder  []int
	seen         map[int]bool

	commandIndex int
}

// NewBuilder returns a Builder in its initial state: absolute positioning,
// origin at (0,0,0), current position at (0,0,0), not extruding (spec.md
// §9 adopts false uniformly), and object 0 active.
func NewBuilder() *Builder {
	b := &Builder{
		store:       newVertexStore(),
		absolute:    true,
		open:        make(map[int][]int),
		completed:   make(map[int][]Polyline),
		names:       make(map[int]string),
		seen:        make(map[int]bool),
	}
	zero := defaultObjectID
	b.activeObject = &zero
	b.registerObject(defaultObjectID)
	return b
}

func (b *Builder) registerObject(id int) {
	if b.seen[id] {
		return
	}
	b.seen[id] = true
	b.objectOrder = append(b.objectOrder, id)
	b.open[id] = nil
	b.completed[id] = nil
}

// Feed applies one command to the motion state, following spec.md §4.5.
func (b *Builder) Feed(cmd gcode.Command) error {
	b.commandIndex++
	switch c := cmd.(type) {
	case gcode.LinearMove:
		return b.feedLinear(c.Params)
	case gcode.ArcMove:
		return b.feedArc(c)
	case gcode.SetAbsolute:
		b.absolute = true
	case gcode.SetRelative:
		b.absolute = false
	case gcode.SetPosition:
		return b.feedSetPosition(c.Params)
	case gcode.MultiObject:
		b.feedMultiObject(c.Variant)
	case gcode.SetUnitsInch, gcode.SetUnitsMillimetre,
		gcode.Comment, gcode.UnhandledG, gcode.UnhandledM, gcode.Empty:
		// ignored
	default:
		return fmt.Errorf("motion: unrecognised command %T", cmd)
	}
	return nil
}

func (b *Builder) feedLinear(params gcode.ParamSet) error {
	b.applyAxes(params)
	b.updateExtruding(params)

	if b.activeObject == nil {
		return nil
	}
	return b.appendOrClose()
}

func (b *Builder) feedArc(c gcode.ArcMove) error {
	points, err := interpolateArc(b.cur.X, b.cur.Y, c.Direction, c.Form)
	if err != nil {
		return err
	}
	for _, p := range points {
		b.cur.X, b.cur.Y = p.X, p.Y
		if b.activeObject == nil {
			continue
		}
		idx, err := b.store.indexOf(Vertex{
			X: b.origin.X + b.cur.X,
			Y: b.origin.Y + b.cur.Y,
			Z: b.origin.Z + b.cur.Z,
		})
		if err != nil {
			return err
		}
		id := *b.activeObject
		b.open[id] = append(b.open[id], idx)
	}
	return nil
}

// applyAxes updates cur.X/Y/Z from the command's params under the current
// position mode: absolute replaces, relative adds.
func (b *Builder) applyAxes(params gcode.ParamSet) {
	if v, ok := params.Get('X'); ok {
		if b.absolute {
			b.cur.X = v
		} else {
			b.cur.X += v
		}
	}
	if v, ok := params.Get('Y'); ok {
		if b.absolute {
			b.cur.Y = v
		} else {
			b.cur.Y += v
		}
	}
	if v, ok := params.Get('Z'); ok {
		if b.absolute {
			b.cur.Z = v
		} else {
			b.cur.Z += v
		}
	}
}

func (b *Builder) updateExtruding(params gcode.ParamSet) {
	if e, ok := params.Get('E'); ok {
		b.extruding = e > 0
	}
}

// appendOrClose is the shared tail of LinearMove and SetPosition handling:
// extruding appends the current emitted vertex to the open polyline;
// non-extruding finalises the open polyline (keeping it only if it has
// more than one point) and starts a new one anchored at the current
// position.
func (b *Builder) appendOrClose() error {
	id := *b.activeObject
	idx, err := b.store.indexOf(Vertex{
		X: b.origin.X + b.cur.X,
		Y: b.origin.Y + b.cur.Y,
		Z: b.origin.Z + b.cur.Z,
	})
	if err != nil {
		return err
	}
	if b.extruding {
		b.open[id] = append(b.open[id], idx)
		return nil
	}
	if len(b.open[id]) > 1 {
		b.completed[id] = append(b.completed[id], Polyline(append([]int(nil), b.open[id]...)))
	}
	b.open[id] = []int{idx}
	return nil
}

// feedSetPosition implements G92 (spec.md §4.5, with the Y-axis bug from
// §9 corrected: every axis uses its own current value, not X's).
func (b *Builder) feedSetPosition(params gcode.ParamSet) error {
	axes := []byte{'X', 'Y', 'Z'}
	cur := map[byte]*float64{'X': &b.cur.X, 'Y': &b.cur.Y, 'Z': &b.cur.Z}
	origin := map[byte]*float64{'X': &b.origin.X, 'Y': &b.origin.Y, 'Z': &b.origin.Z}

	for _, axis := range axes {
		commanded, ok := params.Get(axis)
		if !ok {
			continue
		}
		if b.absolute {
			oldOrigin := *origin[axis]
			oldCur := *cur[axis]
			*origin[axis] = oldOrigin + oldCur - commanded
			*cur[axis] = commanded
		} else {
			// Open Question resolved (spec.md §9): relative-mode G92
			// treats the commanded value as a delta applied to the
			// origin, leaving the current position unchanged.
			*origin[axis] += commanded
		}
	}

	if e, ok := params.Get('E'); ok {
		b.extruding = e > 0
		if !b.extruding && b.activeObject != nil {
			return b.appendOrClose()
		}
	}
	return nil
}

func (b *Builder) feedMultiObject(variant gcode.MultiObjectVariant) {
	switch v := variant.(type) {
	case gcode.MOStart:
		b.registerObject(v.ID)
		id := v.ID
		b.activeObject = &id
		if v.HasName {
			b.names[v.ID] = v.Name
		} else if _, named := b.names[v.ID]; !named {
			b.names[v.ID] = defaultObjectName(v.ID)
		}
	case gcode.MOUncancel:
		b.registerObject(v.ID)
		id := v.ID
		b.activeObject = &id
	case gcode.MOCancel:
		b.activeObject = nil
	case gcode.MOCancelCurrent:
		b.activeObject = nil
	case gcode.MOSetTotal:
		// informational only, ignored at this layer
	case gcode.MOAssignName:
		if b.activeObject != nil {
			b.names[*b.activeObject] = v.Name
		}
	}
}

func defaultObjectName(id int) string {
	if id < 0 {
		return fmt.Sprintf("purge_tower_%d", id)
	}
	return fmt.Sprintf("object_%d", id)
}

// Finish flushes every object's still-open polyline (not only the active
// object's — spec.md §9's scenario S5 requires a previously-active object
// left mid-polyline by a later MultiObject switch to still surface in the
// completed set) and returns the accumulated Model.
func (b *Builder) Finish() (*Model, error) {
	for _, id := range b.objectOrder {
		if len(b.open[id]) > 1 {
			b.completed[id] = append(b.completed[id], Polyline(append([]int(nil), b.open[id]...)))
		}
		b.open[id] = nil
	}

	m := &Model{
		Vertices:    append([]Vertex(nil), b.store.vertices...),
		ObjectOrder: append([]int(nil), b.objectOrder...),
		Objects:     make(map[int][]Polyline, len(b.completed)),
		Names:       make(map[int]string, len(b.names)),
	}
	for id, lines := range b.completed {
		m.Objects[id] = lines
	}
	for id, name := range b.names {
		m.Names[id] = name
	}
	return m, nil
}

// Build is a convenience wrapper that feeds a full command stream and
// returns the finished Model.
func Build(commands []gcode.Command) (*Model, error) {
	b := NewBuilder()
	for _, cmd := range commands {
		if err := b.Feed(cmd); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}
