package road

import (
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// High cast used when a vertex finds no ground straight below or above it.
const (
	HighCastHeight   = 1000
	HighCastDistance = 2 * HighCastHeight
)

// Unbounded is the ray length for the first two ground casts.
var Unbounded = float32(gomath.Inf(1))

// GroundQuery answers ray casts against the ground the road is laid on.
// Implementations must be read-only: a single vertex may issue three casts.
type GroundQuery interface {
	// Raycast returns the first surface point hit by the ray starting at
	// origin travelling along direction, no further than maxDistance.
	Raycast(origin, direction math.Vec3, maxDistance float32) (hit math.Vec3, ok bool)
}

// GroundHeight returns the ground elevation under (or over) v.
//
// Casts are tried in order: straight down, straight up, then down from
// HighCastHeight above v for HighCastDistance. The first hit wins. If all
// three miss, v.Y is returned with ok false. A nil query always misses.
func GroundHeight(q GroundQuery, v math.Vec3) (height float32, ok bool) {
	if q == nil {
		return v.Y, false
	}

	down := math.Up.Neg()
	if hit, ok := q.Raycast(v, down, Unbounded); ok {
		return hit.Y, true
	}
	if hit, ok := q.Raycast(v, math.Up, Unbounded); ok {
		return hit.Y, true
	}
	if hit, ok := q.Raycast(v.Add(math.Up.Scale(HighCastHeight)), down, HighCastDistance); ok {
		return hit.Y, true
	}
	return v.Y, false
}

// ProjectToGround drops every vertex onto the ground, raises it by offset and
// moves the set so its pre-projection centroid becomes the local origin.
// It returns that centroid (the world position of the local origin) and the
// number of vertices that found no ground.
func ProjectToGround(verts []math.Vec3, q GroundQuery, offset float32) (origin math.Vec3, misses int) {
	origin = math.Centroid(verts)

	for i, v := range verts {
		h, ok := GroundHeight(q, v)
		if !ok {
			misses++
		}
		verts[i] = v.WithY(h + offset).Sub(origin)
	}

	return origin, misses
}

// FlatGround is an infinite horizontal plane at Height, hit from both sides.
type FlatGround struct {
	Height float32
}

// Raycast implements GroundQuery.
func (g FlatGround) Raycast(origin, direction math.Vec3, maxDistance float32) (math.Vec3, bool) {
	if direction.Y == 0 {
		return math.Vec3{}, false
	}
	t := (g.Height - origin.Y) / direction.Y
	if t < 0 || t > maxDistance {
		return math.Vec3{}, false
	}
	return origin.Add(direction.Scale(t)), true
}

// NoGround never reports a hit.
type NoGround struct{}

// Raycast implements GroundQuery.
func (NoGround) Raycast(math.Vec3, math.Vec3, float32) (math.Vec3, bool) {
	return math.Vec3{}, false
}
