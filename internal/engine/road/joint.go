package road

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// parallelTolerance is the relative determinant size below which two edges
// count as parallel. It absorbs float32 rounding on collinear segments.
const parallelTolerance = 1e-6

// ParallelFallback selects the joint vertex used when adjoining edges never meet.
type ParallelFallback int

const (
	// FallbackEndpoint keeps the segment's own trailing corner, so a straight
	// continuation stays straight.
	FallbackEndpoint ParallelFallback = iota
	// FallbackOrigin places the joint at the local origin.
	FallbackOrigin
)

// String returns the config name of the fallback.
func (f ParallelFallback) String() string {
	switch f {
	case FallbackEndpoint:
		return "endpoint"
	case FallbackOrigin:
		return "origin"
	default:
		return fmt.Sprintf("ParallelFallback(%d)", int(f))
	}
}

// ParseParallelFallback parses a config name. The empty string selects FallbackEndpoint.
func ParseParallelFallback(s string) (ParallelFallback, error) {
	switch s {
	case "", "endpoint":
		return FallbackEndpoint, nil
	case "origin":
		return FallbackOrigin, nil
	}
	return FallbackEndpoint, fmt.Errorf("unknown parallel fallback %q", s)
}

// Intercept intersects the line through p0,p1 with the line through p2,p3.
// ok is false when the lines are parallel (or either is degenerate).
func Intercept(p0, p1, p2, p3 math.Vec2) (p math.Vec2, ok bool) {
	a1 := float64(p1.Y) - float64(p0.Y)
	b1 := float64(p0.X) - float64(p1.X)
	c1 := a1*float64(p0.X) + b1*float64(p0.Y)

	a2 := float64(p3.Y) - float64(p2.Y)
	b2 := float64(p2.X) - float64(p3.X)
	c2 := a2*float64(p2.X) + b2*float64(p2.Y)

	det := a1*b2 - a2*b1
	if gomath.Abs(det) <= parallelTolerance*(gomath.Abs(a1*b2)+gomath.Abs(a2*b1)) {
		return math.Vec2{}, false
	}

	return math.Vec2{
		X: float32((b2*c1 - b1*c2) / det),
		Y: float32((a1*c2 - a2*c1) / det),
	}, true
}

// ResolveJoints miters every joint of set in place: the trailing edge of
// segment i and the leading edge of its successor collapse onto the
// intersection of their right edges and of their left edges.
//
// Joints are processed in path order and each one reads corners already
// written by the previous joint. Paths of two points or fewer are left alone.
// The returned slice lists the segments whose joint had parallel edges.
func ResolveJoints(set *SegmentSet, pointCount int, fallback ParallelFallback) []int {
	if pointCount <= 2 {
		return nil
	}

	var parallel []int
	for i := range set.Quads {
		n, ok := set.Next(i)
		if !ok {
			break
		}
		cur, next := &set.Quads[i], &set.Quads[n]

		right, okRight := Intercept(
			cur[LeadRight].XZ(), cur[TrailRight].XZ(),
			next[LeadRight].XZ(), next[TrailRight].XZ())
		left, okLeft := Intercept(
			cur[LeadLeft].XZ(), cur[TrailLeft].XZ(),
			next[LeadLeft].XZ(), next[TrailLeft].XZ())

		if !okRight || !okLeft {
			parallel = append(parallel, i)
		}

		r := jointVertex(right, okRight, cur[TrailRight], fallback)
		l := jointVertex(left, okLeft, cur[TrailLeft], fallback)

		cur[TrailRight], next[LeadRight] = r, r
		cur[TrailLeft], next[LeadLeft] = l, l
	}

	return parallel
}

// jointVertex lifts an intersection back to 3D at the height of the corner it replaces.
func jointVertex(p math.Vec2, ok bool, trailing math.Vec3, fallback ParallelFallback) math.Vec3 {
	if ok {
		return p.XZ(trailing.Y)
	}
	if fallback == FallbackOrigin {
		return math.Vec3{}
	}
	return trailing
}
