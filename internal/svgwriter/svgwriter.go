// Package svgwriter serialises a projected 2D path (internal/motion's
// Projector output) into the single-<path> SVG document spec.md §6
// describes for the CLI's 2D preview.
package svgwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/printforge/toolpath/internal/motion"
)

// Write emits ops/bbox as an SVG document to w. When ops is empty, the
// document omits viewBox entirely (spec.md §4.6 and §8's boundary case).
func Write(w io.Writer, ops []motion.PathOp, bbox motion.BoundingBox) error {
	d := buildPathData(ops)

	if bbox.Empty || len(ops) == 0 {
		_, err := fmt.Fprintf(w, "<svg xmlns=\"http://www.w3.org/2000/svg\"><path d=\"%s\" fill=\"none\" stroke=\"black\"/></svg>\n", d)
		return err
	}

	width := bbox.MaxX - bbox.MinX
	height := bbox.MaxY - bbox.MinY
	_, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%g %g %g %g\"><path d=\"%s\" fill=\"none\" stroke=\"black\"/></svg>\n",
		bbox.MinX, bbox.MinY, width, height, d)
	return err
}

func buildPathData(ops []motion.PathOp) string {
	var b strings.Builder
	for _, op := range ops {
		if op.MoveTo {
			fmt.Fprintf(&b, "M%g,%g ", op.X, op.Y)
		} else {
			fmt.Fprintf(&b, "L%g,%g ", op.X, op.Y)
		}
	}
	return strings.TrimSpace(b.String())
}
