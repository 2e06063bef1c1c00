package road

import (
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Mesh is one finished road build.
type Mesh struct {
	// Vertices are local to Origin: world = vertex + Origin.
	Vertices []math.Vec3
	Indices  []uint32
	UVs      []math.Vec2
	// UV2 is left empty by the builder and filled by post-build hooks.
	UV2      []math.Vec2
	Normals  []math.Vec3
	Origin   math.Vec3
	Material string
}

// SegmentCount returns the number of quads in the mesh.
func (m *Mesh) SegmentCount() int {
	return len(m.Vertices) / 4
}

// WorldVertex returns vertex i in world space.
func (m *Mesh) WorldVertex(i int) math.Vec3 {
	return m.Vertices[i].Add(m.Origin)
}

// Bounds returns the local-space axis-aligned bounds of the mesh.
func (m *Mesh) Bounds() (min, max math.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = math.Vec3{X: min32(min.X, v.X), Y: min32(min.Y, v.Y), Z: min32(min.Z, v.Z)}
		max = math.Vec3{X: max32(max.X, v.X), Y: max32(max.Y, v.Y), Z: max32(max.Z, v.Z)}
	}
	return min, max
}

// RecalculateNormals rebuilds per-vertex normals from the triangles, then
// averages normals of vertices that share a position so mitered joints shade
// without a seam.
func (m *Mesh) RecalculateNormals() {
	normals := make([]math.Vec3, len(m.Vertices))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		pa, pb, pc := m.Vertices[a], m.Vertices[b], m.Vertices[c]
		// Unnormalized so larger triangles weigh more.
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}

	smoothNormals(m.Vertices, normals)

	for i, n := range normals {
		n = n.Normalize()
		if n == (math.Vec3{}) {
			n = math.Up
		}
		normals[i] = n
	}
	m.Normals = normals
}

// smoothNormals sums normals of vertices at the same quantized position.
func smoothNormals(verts, normals []math.Vec3) {
	const epsilon float32 = 0.001

	posMap := make(map[[3]int32][]int)
	for i, v := range verts {
		key := [3]int32{
			int32(v.X / epsilon),
			int32(v.Y / epsilon),
			int32(v.Z / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, shared := range posMap {
		if len(shared) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range shared {
			sum = sum.Add(normals[idx])
		}
		for _, idx := range shared {
			normals[idx] = sum
		}
	}
}

// VertexStride is the number of floats per vertex in Interleaved output:
// position (3), normal (3), uv (2), uv2 (2).
const VertexStride = 10

// Interleaved packs the vertex channels for GPU upload. Missing normals
// default to up and missing UV channels to zero.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for i, v := range m.Vertices {
		n := math.Up
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		var uv, uv2 math.Vec2
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		if i < len(m.UV2) {
			uv2 = m.UV2[i]
		}
		out = append(out, v.X, v.Y, v.Z, n.X, n.Y, n.Z, uv.X, uv.Y, uv2.X, uv2.Y)
	}
	return out
}

// MeshSink receives finished meshes. Release is always called on the
// previously installed mesh before Install is called with its replacement.
type MeshSink interface {
	Release(m *Mesh)
	Install(m *Mesh) error
}

// PostBuildHook runs on every finished mesh before it is installed.
// Hooks may fill optional channels such as UV2 but must not reshape the mesh.
type PostBuildHook interface {
	PostBuild(m *Mesh)
}

// PostBuildFunc adapts a function to PostBuildHook.
type PostBuildFunc func(m *Mesh)

// PostBuild calls f(m).
func (f PostBuildFunc) PostBuild(m *Mesh) { f(m) }

// MemorySink keeps the installed mesh in memory.
type MemorySink struct {
	Current  *Mesh
	Installs int
	Releases int
}

// Release drops m if it is the current mesh.
func (s *MemorySink) Release(m *Mesh) {
	s.Releases++
	if s.Current == m {
		s.Current = nil
	}
}

// Install stores m as the current mesh.
func (s *MemorySink) Install(m *Mesh) error {
	s.Installs++
	s.Current = m
	return nil
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
