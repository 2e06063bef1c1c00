// Package terrain provides the heightfield ground that roads are laid on.
package terrain

import (
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Heightfield is a regular grid of corner heights on the XZ plane.
// Heights[z][x] is the height of the corner at Origin + (x*CellSize, 0, z*CellSize);
// Origin.Y is added to every height.
type Heightfield struct {
	Origin   math.Vec3
	CellSize float32
	Heights  [][]float32
}

// Vertex is a ground mesh vertex laid out for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Mesh holds the ground mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the ground.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}
