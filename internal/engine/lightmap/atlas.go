// Package lightmap fills the secondary UV channel of road meshes with a
// non-overlapping lightmap atlas layout.
package lightmap

import (
	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Default atlas limits.
const (
	DefaultTileSize = 16
	DefaultMaxSize  = 4096
)

// Atlas describes a square atlas of equally sized square tiles.
type Atlas struct {
	Size        int // Atlas width and height in pixels
	TileSize    int
	TilesPerRow int
}

// NewAtlas sizes an atlas to hold tiles tiles of tileSize pixels.
// The atlas side is a power of two no larger than maxSize; when the tiles do
// not fit, they shrink.
func NewAtlas(tiles, tileSize, maxSize int) Atlas {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	// Square grid of tiles, power of 2 per row
	tilesPerRow := 1
	for tilesPerRow*tilesPerRow < tiles {
		tilesPerRow *= 2
	}

	// Round up to power of 2
	size := tilesPerRow * tileSize
	pow2 := 1
	for pow2 < size {
		pow2 *= 2
	}
	size = pow2

	if size > maxSize {
		size = maxSize
		tileSize = max(size/tilesPerRow, 1)
		tilesPerRow = size / tileSize
	}

	return Atlas{
		Size:        size,
		TileSize:    tileSize,
		TilesPerRow: tilesPerRow,
	}
}

// Capacity returns how many tiles the atlas holds.
func (a Atlas) Capacity() int {
	return a.TilesPerRow * a.TilesPerRow
}

// TileUV returns the UV of one corner of a tile, inset by half a pixel so
// bilinear sampling stays inside the tile. Corners use the road quad order.
// Tiles past Capacity wrap around.
func (a Atlas) TileUV(tile, corner int) math.Vec2 {
	if a.TilesPerRow == 0 || a.Size == 0 {
		return math.Vec2{X: 0.5, Y: 0.5}
	}
	tile %= a.Capacity()

	tileX := tile % a.TilesPerRow
	tileY := tile / a.TilesPerRow

	atlasSize := float32(a.Size)
	tileW := float32(a.TileSize) / atlasSize

	baseU := float32(tileX*a.TileSize) / atlasSize
	baseV := float32(tileY*a.TileSize) / atlasSize

	halfPixel := 0.5 / atlasSize
	innerU1 := baseU + halfPixel
	innerU2 := baseU + tileW - halfPixel
	innerV1 := baseV + halfPixel
	innerV2 := baseV + tileW - halfPixel

	// Left edge on U1, leading edge on V1.
	switch corner {
	case road.LeadRight:
		return math.Vec2{X: innerU2, Y: innerV1}
	case road.LeadLeft:
		return math.Vec2{X: innerU1, Y: innerV1}
	case road.TrailRight:
		return math.Vec2{X: innerU2, Y: innerV2}
	case road.TrailLeft:
		return math.Vec2{X: innerU1, Y: innerV2}
	}
	return math.Vec2{X: 0.5, Y: 0.5}
}
