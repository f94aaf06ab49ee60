// Package objwriter serialises a motion.Model into the Wavefront OBJ
// subset the core's geometry builder feeds (spec.md §6): `v` lines for
// every deduplicated vertex, followed by one `o`/`l` section per object.
package objwriter

import (
	"fmt"
	"io"

	"github.com/printforge/toolpath/internal/motion"
)

// Write emits m as an OBJ document to w. When blenderAxisSwap is set,
// each vertex is written as `v x z y` instead of `v x y z`, matching
// Blender's Y-up convention.
func Write(w io.Writer, m *motion.Model, blenderAxisSwap bool) error {
	for _, v := range m.Vertices {
		var err error
		if blenderAxisSwap {
			_, err = fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Z, v.Y)
		} else {
			_, err = fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		if err != nil {
			return err
		}
	}

	for _, id := range m.ObjectOrder {
		name := objectHeaderName(id, m.Names[id])
		if _, err := fmt.Fprintf(w, "o %s\n", name); err != nil {
			return err
		}
		for _, line := range m.Objects[id] {
			if len(line) < 2 {
				continue
			}
			if err := writePolyline(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func objectHeaderName(id int, name string) string {
	if name != "" {
		return name
	}
	if id < 0 {
		return fmt.Sprintf("purge_tower_%d", id)
	}
	return fmt.Sprintf("object_%d", id)
}

func writePolyline(w io.Writer, line motion.Polyline) error {
	if _, err := fmt.Fprint(w, "l"); err != nil {
		return err
	}
	for _, idx := range line {
		// OBJ indices are 1-based.
		if _, err := fmt.Fprintf(w, " %d", idx+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}
