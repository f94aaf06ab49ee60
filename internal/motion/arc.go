package motion

import (
	"math"

	"github.com/printforge/toolpath/internal/gcode"
)

// mmPerArcSegment bounds the chord length of each interpolated arc step
// (spec.md §4.4).
const mmPerArcSegment = 1.0

const twoPi = 2 * math.Pi

// Point2 is a 2D point produced by arc interpolation.
type Point2 struct{ X, Y float64 }

// interpolateArc computes the intermediate points of a G2/G3 arc given the
// current (x,y) and the command's form, following spec.md §4.4 exactly:
// the center-offset form is fully specified; the radius form is a
// documented gap and always returns a *gcode.Error with Code
// UnimplementedArcRadiusForm.
func interpolateArc(curX, curY float64, dir gcode.ArcDirection, form gcode.ArcForm) ([]Point2, error) {
	switch f := form.(type) {
	case gcode.ArcRadius:
		return nil, &gcode.Error{Code: gcode.UnimplementedArcRadiusForm, Msg: "radius-form arc interpolation is not implemented"}
	case gcode.ArcCenterOffset:
		return interpolateCenterOffsetArc(curX, curY, dir, f.Params)
	default:
		return nil, &gcode.Error{Code: gcode.InvalidArc, Msg: "unknown arc form"}
	}
}

func interpolateCenterOffsetArc(curX, curY float64, dir gcode.ArcDirection, params gcode.ParamSet) ([]Point2, error) {
	i, _ := params.Get('I')
	j, _ := params.Get('J')
	xt, hasX := params.Get('X')
	yt, hasY := params.Get('Y')
	if !hasX || !hasY {
		return nil, &gcode.Error{Code: gcode.InvalidArc, Msg: "center-offset arc requires both X and Y target coordinates"}
	}

	cx := curX + i
	cy := curY + j
	r := math.Hypot(i, j)

	thetaStart := normalizeAngle(math.Atan2(curY-cy, curX-cx))
	thetaEnd := normalizeAngle(math.Atan2(yt-cy, xt-cx))

	var delta float64
	switch dir {
	case gcode.Clockwise:
		if thetaStart == 0 {
			thetaStart = twoPi
		}
		if thetaStart < thetaEnd {
			delta = thetaStart + (twoPi - thetaEnd)
		} else {
			delta = thetaStart - thetaEnd
		}
	case gcode.CounterClockwise:
		if thetaEnd == 0 {
			thetaEnd = twoPi
		}
		if thetaStart > thetaEnd {
			delta = (twoPi - thetaStart) + thetaEnd
		} else {
			delta = thetaEnd - thetaStart
		}
	}

	nSteps := int(math.Ceil(math.Abs(delta) * r / mmPerArcSegment))
	if nSteps < 1 {
		nSteps = 1
	}
	thetaStep := delta / float64(nSteps)

	points := make([]Point2, 0, nSteps+1)
	for step := 0; step <= nSteps; step++ {
		var theta float64
		switch dir {
		case gcode.Clockwise:
			theta = math.Mod(thetaStart-float64(step)*thetaStep, twoPi)
		case gcode.CounterClockwise:
			theta = math.Mod(thetaStart+float64(step)*thetaStep, twoPi)
		}
		if theta < 0 {
			theta += twoPi
		}
		points = append(points, Point2{
			X: cx + r*math.Cos(theta),
			Y: cy + r*math.Sin(theta),
		})
	}
	// Snap the final point to the commanded target: the angular walk is
	// exact up to floating-point rounding, but callers rely on exact
	// continuity with the next command's assumed current position.
	points[len(points)-1] = Point2{X: xt, Y: yt}
	return points, nil
}

func normalizeAngle(theta float64) float64 {
	if theta < 0 {
		return theta + twoPi
	}
	return theta
}
