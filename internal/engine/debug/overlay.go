package debug

import (
	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// BoxLines returns the 12 edges of an axis-aligned box as 24 line endpoints.
func BoxLines(min, max math.Vec3) []math.Vec3 {
	c := [8]math.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z}, {X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: max.Z}, {X: min.X, Y: min.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: min.Z}, {X: max.X, Y: max.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: max.Z}, {X: min.X, Y: max.Y, Z: max.Z},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // sides
	}
	out := make([]math.Vec3, 0, 24)
	for _, e := range edges {
		out = append(out, c[e[0]], c[e[1]])
	}
	return out
}

// MeshEdges returns every triangle edge of m in world space, two endpoints
// per edge. Shared edges appear once per triangle.
func MeshEdges(m *road.Mesh) []math.Vec3 {
	if m == nil {
		return nil
	}
	out := make([]math.Vec3, 0, len(m.Indices)*2)
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a := m.WorldVertex(int(m.Indices[t]))
		b := m.WorldVertex(int(m.Indices[t+1]))
		c := m.WorldVertex(int(m.Indices[t+2]))
		out = append(out, a, b, b, c, c, a)
	}
	return out
}

// JointMarkers returns a vertical tick at the joint after each listed
// segment, marking where the build fell back on parallel edges.
func JointMarkers(m *road.Mesh, segments []int, height float32) []math.Vec3 {
	if m == nil {
		return nil
	}
	out := make([]math.Vec3, 0, len(segments)*4)
	for _, s := range segments {
		base := s * 4
		if base+3 >= len(m.Vertices) {
			continue
		}
		for _, corner := range []int{road.TrailRight, road.TrailLeft} {
			p := m.WorldVertex(base + corner)
			out = append(out, p, p.Add(math.Vec3{Y: height}))
		}
	}
	return out
}
