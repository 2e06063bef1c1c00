// Package picking provides ray casting against ground geometry.
package picking

import (
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := (2.0*screenX/viewportW - 1.0)
	ndcY := (1.0 - 2.0*screenY/viewportH) // Flip Y

	near, _ := invViewProj.Project(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far, _ := invViewProj.Project(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the distance along the ray and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (t float32, ok bool) {
	// Ray: P = Origin + t * Direction
	// Plane: Y = planeY
	// Solve: Origin.Y + t * Direction.Y = planeY
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return 0, false // Ray parallel to plane
	}

	t = (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, false // Intersection behind ray origin
	}
	return t, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := range 3 {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle tests the ray against triangle (a, b, c) and returns
// the hit distance. Front faces wind counter-clockwise seen from the ray
// origin; with cullBack set, back faces never hit.
func (r Ray) IntersectTriangle(a, b, c math.Vec3, cullBack bool) (t float32, hit bool) {
	const epsilon = 1e-7

	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)

	if cullBack {
		if det < epsilon {
			return 0, false
		}
	} else if det > -epsilon && det < epsilon {
		return 0, false
	}

	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = edge2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// NewAABB returns the smallest box containing every point.
func NewAABB(points ...math.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.Extend(p)
	}
	return box
}

// Extend grows the box to contain p.
func (b AABB) Extend(p math.Vec3) AABB {
	b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
	b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	return b
}
