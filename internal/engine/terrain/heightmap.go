package terrain

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Heightfield validation errors.
var (
	ErrTooFewCorners  = errors.New("heightfield needs at least 2x2 corners")
	ErrRaggedRows     = errors.New("heightfield rows differ in length")
	ErrInvalidCellSize = errors.New("heightfield cell size must be positive")
)

// NewHeightfield validates heights and returns a heightfield.
func NewHeightfield(origin math.Vec3, cellSize float32, heights [][]float32) (*Heightfield, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, cellSize)
	}
	if len(heights) < 2 || len(heights[0]) < 2 {
		return nil, ErrTooFewCorners
	}
	for z, row := range heights {
		if len(row) != len(heights[0]) {
			return nil, fmt.Errorf("%w: row %d has %d corners, want %d", ErrRaggedRows, z, len(row), len(heights[0]))
		}
	}
	return &Heightfield{Origin: origin, CellSize: cellSize, Heights: heights}, nil
}

// CellsX returns the number of cells along X.
func (h *Heightfield) CellsX() int {
	return len(h.Heights[0]) - 1
}

// CellsZ returns the number of cells along Z.
func (h *Heightfield) CellsZ() int {
	return len(h.Heights) - 1
}

// Corner returns the world position of corner (x, z).
func (h *Heightfield) Corner(x, z int) math.Vec3 {
	return math.Vec3{
		X: h.Origin.X + float32(x)*h.CellSize,
		Y: h.Origin.Y + h.Heights[z][x],
		Z: h.Origin.Z + float32(z)*h.CellSize,
	}
}

// Contains reports whether the world position lies over the grid.
func (h *Heightfield) Contains(worldX, worldZ float32) bool {
	fx := (worldX - h.Origin.X) / h.CellSize
	fz := (worldZ - h.Origin.Z) / h.CellSize
	return fx >= 0 && fz >= 0 && fx <= float32(h.CellsX()) && fz <= float32(h.CellsZ())
}

// HeightAt returns the bilinearly interpolated ground height at a world position.
// ok is false outside the grid.
func (h *Heightfield) HeightAt(worldX, worldZ float32) (height float32, ok bool) {
	if !h.Contains(worldX, worldZ) {
		return 0, false
	}

	cellFX := (worldX - h.Origin.X) / h.CellSize
	cellFZ := (worldZ - h.Origin.Z) / h.CellSize

	cellX := int(cellFX)
	cellZ := int(cellFZ)

	// The far edge belongs to the last cell.
	if cellX >= h.CellsX() {
		cellX = h.CellsX() - 1
	}
	if cellZ >= h.CellsZ() {
		cellZ = h.CellsZ() - 1
	}

	fracX := clampf(cellFX-float32(cellX), 0, 1)
	fracZ := clampf(cellFZ-float32(cellZ), 0, 1)

	// Near edge (lower Z) then far edge, then between them.
	near := h.Heights[cellZ][cellX]*(1-fracX) + h.Heights[cellZ][cellX+1]*fracX
	far := h.Heights[cellZ+1][cellX]*(1-fracX) + h.Heights[cellZ+1][cellX+1]*fracX

	return h.Origin.Y + near*(1-fracZ) + far*fracZ, true
}

// Triangles returns two up-facing triangles per cell, split along the
// (x+1,z)-(x,z+1) diagonal.
func (h *Heightfield) Triangles() [][3]math.Vec3 {
	tris := make([][3]math.Vec3, 0, 2*h.CellsX()*h.CellsZ())
	for z := range h.CellsZ() {
		for x := range h.CellsX() {
			p00 := h.Corner(x, z)
			p10 := h.Corner(x+1, z)
			p01 := h.Corner(x, z+1)
			p11 := h.Corner(x+1, z+1)
			tris = append(tris,
				[3]math.Vec3{p00, p01, p10},
				[3]math.Vec3{p10, p01, p11},
			)
		}
	}
	return tris
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Flat returns a square flat heightfield centred on center with the given
// half extent.
func Flat(center math.Vec3, halfExtent, cellSize float32) *Heightfield {
	cells := max(int(2*halfExtent/cellSize), 1)
	heights := make([][]float32, cells+1)
	for z := range heights {
		heights[z] = make([]float32, cells+1)
	}
	return &Heightfield{
		Origin:   math.Vec3{X: center.X - halfExtent, Y: center.Y, Z: center.Z - halfExtent},
		CellSize: cellSize,
		Heights:  heights,
	}
}
