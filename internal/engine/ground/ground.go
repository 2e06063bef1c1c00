// Package ground builds the surface roads are projected onto.
package ground

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/engine/picking"
	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/internal/engine/terrain"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// pickDistance limits viewer picking rays.
const pickDistance = 10000

// Ground is a configured surface.
type Ground struct {
	// Heightfield is nil unless the ground is a heightfield.
	Heightfield *terrain.Heightfield

	plane    *picking.Plane
	collider *picking.Collider
}

// FromConfig builds the ground described by cfg.
func FromConfig(cfg config.GroundConfig, log *zap.Logger) (*Ground, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch cfg.Type {
	case config.GroundNone, "":
		log.Info("no ground, vertices keep their heights")
		return &Ground{}, nil

	case config.GroundPlane:
		log.Info("plane ground", zap.Float32("height", cfg.PlaneHeight))
		return &Ground{plane: &picking.Plane{Height: cfg.PlaneHeight, TwoSided: cfg.TwoSided}}, nil

	case config.GroundHeightfield:
		hf := cfg.Heightfield
		h, err := terrain.NewHeightfield(hf.Origin.Vec3(), hf.CellSize, hf.Heights)
		if err != nil {
			return nil, fmt.Errorf("building heightfield: %w", err)
		}
		c := picking.NewCollider(h.Triangles(), !cfg.TwoSided)
		log.Info("heightfield ground",
			zap.Int("cellsX", h.CellsX()),
			zap.Int("cellsZ", h.CellsZ()),
			zap.Int("triangles", c.Len()))
		return &Ground{Heightfield: h, collider: c}, nil
	}

	return nil, fmt.Errorf("unknown ground type %q", cfg.Type)
}

// Query returns the ray cast interface for the road builder.
// It is nil when there is no ground.
func (g *Ground) Query() road.GroundQuery {
	switch {
	case g.collider != nil:
		return g.collider
	case g.plane != nil:
		return *g.plane
	}
	return nil
}

// Pick returns where r first meets the ground. Without a ground it meets
// the y=0 plane.
func (g *Ground) Pick(r picking.Ray) (math.Vec3, bool) {
	if g.collider != nil {
		hit, _, ok := g.collider.Intersect(r, pickDistance)
		return hit, ok
	}

	height := float32(0)
	if g.plane != nil {
		height = g.plane.Height
	}
	t, ok := r.IntersectPlaneY(height)
	if !ok || t > pickDistance {
		return math.Vec3{}, false
	}
	hit := r.At(t)
	hit.Y = height
	return hit, true
}
