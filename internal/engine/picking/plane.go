package picking

import (
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Plane is an infinite horizontal ground at Height. Unless TwoSided is set
// it is only hit by rays coming from above.
type Plane struct {
	Height   float32
	TwoSided bool
}

// Raycast implements the road ground query.
func (p Plane) Raycast(origin, direction math.Vec3, maxDistance float32) (math.Vec3, bool) {
	r := Ray{Origin: origin, Direction: direction.Normalize()}
	if !p.TwoSided && r.Direction.Y >= 0 {
		return math.Vec3{}, false
	}
	t, ok := r.IntersectPlaneY(p.Height)
	if !ok || t > maxDistance {
		return math.Vec3{}, false
	}
	hit := r.At(t)
	hit.Y = p.Height
	return hit, true
}
