package terrain

import (
	"github.com/Faultbox/midgard-road/pkg/math"
)

// groundColor is the flat tint used for the preview ground.
var groundColor = [4]float32{0.42, 0.55, 0.33, 1}

// BuildMesh creates a renderable mesh with one shared vertex per corner.
func BuildMesh(h *Heightfield) *Mesh {
	cols := len(h.Heights[0])
	rows := len(h.Heights)

	vertices := make([]Vertex, 0, cols*rows)
	normals := make([]math.Vec3, cols*rows)

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	for z := range rows {
		for x := range cols {
			p := h.Corner(x, z)
			updateBounds(&bounds, p)
			vertices = append(vertices, Vertex{
				Position: [3]float32{p.X, p.Y, p.Z},
				Color:    groundColor,
			})
		}
	}

	index := func(x, z int) uint32 { return uint32(z*cols + x) }

	var indices []uint32
	for z := range rows - 1 {
		for x := range cols - 1 {
			// Same split as Triangles.
			tris := [2][3]uint32{
				{index(x, z), index(x, z+1), index(x+1, z)},
				{index(x+1, z), index(x, z+1), index(x+1, z+1)},
			}
			for _, tri := range tris {
				a, b, c := h.cornerAt(tri[0], cols), h.cornerAt(tri[1], cols), h.cornerAt(tri[2], cols)
				n := b.Sub(a).Cross(c.Sub(a))
				for _, i := range tri {
					normals[i] = normals[i].Add(n)
				}
				indices = append(indices, tri[0], tri[1], tri[2])
			}
		}
	}

	for i := range vertices {
		n := normals[i].Normalize()
		if n == (math.Vec3{}) {
			n = math.Up
		}
		vertices[i].Normal = [3]float32{n.X, n.Y, n.Z}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds,
	}
}

func (h *Heightfield) cornerAt(i uint32, cols int) math.Vec3 {
	return h.Corner(int(i)%cols, int(i)/cols)
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min[0] {
		b.Min[0] = p.X
	}
	if p.Y < b.Min[1] {
		b.Min[1] = p.Y
	}
	if p.Z < b.Min[2] {
		b.Min[2] = p.Z
	}
	if p.X > b.Max[0] {
		b.Max[0] = p.X
	}
	if p.Y > b.Max[1] {
		b.Max[1] = p.Y
	}
	if p.Z > b.Max[2] {
		b.Max[2] = p.Z
	}
}
