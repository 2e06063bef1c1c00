package lightmap

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Hook is a road.PostBuildHook that gives every segment its own atlas tile.
type Hook struct {
	TileSize int
	MaxSize  int

	log   *zap.Logger
	atlas Atlas
}

// NewHook creates a hook. Zero sizes use the defaults.
func NewHook(tileSize, maxSize int, log *zap.Logger) *Hook {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hook{TileSize: tileSize, MaxSize: maxSize, log: log}
}

// Atlas returns the layout used by the last build.
func (h *Hook) Atlas() Atlas {
	return h.atlas
}

// PostBuild writes m.UV2.
func (h *Hook) PostBuild(m *road.Mesh) {
	segments := m.SegmentCount()
	h.atlas = NewAtlas(segments, h.TileSize, h.MaxSize)

	if segments > h.atlas.Capacity() {
		h.log.Warn("lightmap atlas full, tiles will overlap",
			zap.Int("segments", segments),
			zap.Int("capacity", h.atlas.Capacity()))
	}

	uv2 := make([]math.Vec2, len(m.Vertices))
	for s := range segments {
		for corner := range 4 {
			uv2[4*s+corner] = h.atlas.TileUV(s, corner)
		}
	}
	m.UV2 = uv2

	h.log.Debug("lightmap uvs assigned",
		zap.Int("segments", segments),
		zap.Int("atlasSize", h.atlas.Size),
		zap.Int("tileSize", h.atlas.TileSize))
}
