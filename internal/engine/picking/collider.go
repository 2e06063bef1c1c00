package picking

import (
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Collider answers ray casts against a static triangle soup.
//
// Triangles are bucketed on a uniform XZ grid so vertical rays, which is
// what the road projector issues, only test the triangles under them.
// Other rays fall back to the whole-mesh box followed by every triangle.
type Collider struct {
	tris          [][3]math.Vec3
	bounds        AABB
	cullBackFaces bool

	cell    float32
	cols    int
	rows    int
	buckets [][]int32
}

// NewCollider builds a collider over tris. With cullBackFaces set a ray only
// hits triangles whose counter-clockwise side faces it, so a heightfield is
// solid from above only.
func NewCollider(tris [][3]math.Vec3, cullBackFaces bool) *Collider {
	c := &Collider{tris: tris, cullBackFaces: cullBackFaces}
	if len(tris) == 0 {
		return c
	}

	c.bounds = NewAABB(tris[0][:]...)
	for _, tri := range tris[1:] {
		for _, p := range tri {
			c.bounds = c.bounds.Extend(p)
		}
	}

	extentX := c.bounds.Max.X - c.bounds.Min.X
	extentZ := c.bounds.Max.Z - c.bounds.Min.Z
	c.cell = max(extentX, extentZ) / float32(gomath.Sqrt(float64(len(tris))))
	if c.cell <= 0 {
		c.cell = 1
	}
	c.cols = int(extentX/c.cell) + 1
	c.rows = int(extentZ/c.cell) + 1
	c.buckets = make([][]int32, c.cols*c.rows)

	for i, tri := range tris {
		box := NewAABB(tri[:]...)
		x0, z0 := c.cellOf(box.Min.X, box.Min.Z)
		x1, z1 := c.cellOf(box.Max.X, box.Max.Z)
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				c.buckets[z*c.cols+x] = append(c.buckets[z*c.cols+x], int32(i))
			}
		}
	}
	return c
}

// Bounds returns the box around every triangle.
func (c *Collider) Bounds() AABB {
	return c.bounds
}

// Len returns the triangle count.
func (c *Collider) Len() int {
	return len(c.tris)
}

func (c *Collider) cellOf(x, z float32) (int, int) {
	cx := int((x - c.bounds.Min.X) / c.cell)
	cz := int((z - c.bounds.Min.Z) / c.cell)
	return min(max(cx, 0), c.cols-1), min(max(cz, 0), c.rows-1)
}

// Raycast returns the nearest hit within maxDistance.
func (c *Collider) Raycast(origin, direction math.Vec3, maxDistance float32) (math.Vec3, bool) {
	hit, _, ok := c.Intersect(Ray{Origin: origin, Direction: direction.Normalize()}, maxDistance)
	return hit, ok
}

// Intersect returns the nearest hit point, its distance along r and
// whether anything was hit within maxDistance. r.Direction must be normalized.
func (c *Collider) Intersect(r Ray, maxDistance float32) (math.Vec3, float32, bool) {
	if len(c.tris) == 0 || r.Direction == (math.Vec3{}) {
		return math.Vec3{}, 0, false
	}

	best := maxDistance
	found := false
	test := func(i int) {
		tri := c.tris[i]
		if t, ok := r.IntersectTriangle(tri[0], tri[1], tri[2], c.cullBackFaces); ok && t <= best {
			best = t
			found = true
		}
	}

	if r.Direction.X == 0 && r.Direction.Z == 0 {
		if r.Origin.X < c.bounds.Min.X || r.Origin.X > c.bounds.Max.X ||
			r.Origin.Z < c.bounds.Min.Z || r.Origin.Z > c.bounds.Max.Z {
			return math.Vec3{}, 0, false
		}
		x, z := c.cellOf(r.Origin.X, r.Origin.Z)
		for _, i := range c.buckets[z*c.cols+x] {
			test(int(i))
		}
	} else {
		if _, ok := r.IntersectAABB(c.bounds); !ok {
			return math.Vec3{}, 0, false
		}
		for i := range c.tris {
			test(i)
		}
	}

	if !found {
		return math.Vec3{}, 0, false
	}
	return r.At(best), best, true
}
