// Package editor applies path edits to a road and keeps its config section
// in sync for saving.
package editor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Editor edits one road. Every edit that changes the road rebuilds it when
// AutoRefresh is set.
type Editor struct {
	cfg  *config.Config
	road *road.Road
	log  *zap.Logger

	// AutoRefresh rebuilds the mesh after each edit.
	AutoRefresh bool

	// LastReport is the report of the most recent build.
	LastReport *road.BuildReport
}

// New creates an editor for r. cfg receives the road settings on Save.
func New(cfg *config.Config, r *road.Road, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		cfg:         cfg,
		road:        r,
		log:         log,
		AutoRefresh: true,
	}
}

// Road returns the edited road.
func (e *Editor) Road() *road.Road {
	return e.road
}

// Refresh rebuilds the road mesh.
func (e *Editor) Refresh() error {
	report, err := e.road.Refresh()
	if err != nil {
		if errors.Is(err, road.ErrRefreshInProgress) {
			e.log.Debug("refresh skipped, build in progress")
			return nil
		}
		return fmt.Errorf("refreshing road: %w", err)
	}
	e.LastReport = report
	if report.Skipped {
		e.log.Debug("refresh skipped", zap.Int("points", len(e.road.Points())))
		return nil
	}
	e.log.Info("road rebuilt",
		zap.Int("segments", report.Segments),
		zap.Int("vertices", report.Vertices),
		zap.Int("parallelJoints", len(report.ParallelJoints)),
		zap.Int("groundMisses", report.GroundMisses),
		zap.Duration("elapsed", report.Elapsed),
	)
	return nil
}

func (e *Editor) changed() error {
	if !e.AutoRefresh {
		return nil
	}
	return e.Refresh()
}

// AddPoint appends p to the path.
func (e *Editor) AddPoint(p math.Vec3) error {
	e.road.AddPoint(p)
	e.log.Debug("point added",
		zap.Float32("x", p.X), zap.Float32("y", p.Y), zap.Float32("z", p.Z),
		zap.Int("points", len(e.road.Points())))
	return e.changed()
}

// RemoveLast drops the last path point. It does nothing on an empty path.
func (e *Editor) RemoveLast() error {
	n := len(e.road.Points())
	if n == 0 {
		return nil
	}
	if err := e.road.RemovePoint(n - 1); err != nil {
		return err
	}
	return e.changed()
}

// ToggleLoop switches between an open and a closed path.
func (e *Editor) ToggleLoop() error {
	closed := !e.road.Config().ConnectEnds
	e.road.SetConnectEnds(closed)
	e.log.Info("connect ends", zap.Bool("closed", closed))
	return e.changed()
}

// FlipU toggles the U flip.
func (e *Editor) FlipU() error {
	return e.updateUV(func(c *road.Config) { c.FlipU = !c.FlipU })
}

// FlipV toggles the V flip.
func (e *Editor) FlipV() error {
	return e.updateUV(func(c *road.Config) { c.FlipV = !c.FlipV })
}

// SwapUV toggles the U/V swap.
func (e *Editor) SwapUV() error {
	return e.updateUV(func(c *road.Config) { c.SwapUV = !c.SwapUV })
}

func (e *Editor) updateUV(fn func(c *road.Config)) error {
	c := e.road.Config()
	fn(&c)
	e.road.SetConfig(c)
	e.log.Info("uv options",
		zap.Bool("swap", c.SwapUV), zap.Bool("flipU", c.FlipU), zap.Bool("flipV", c.FlipV))
	return e.changed()
}

// Save stores the road settings in the config and writes it.
func (e *Editor) Save() error {
	e.cfg.SetRoad(e.road.Config())
	if err := e.cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	e.log.Info("config saved", zap.String("path", e.cfg.Path()))
	return nil
}

// Bounds returns the world-space bounds of the installed mesh, or of the
// path points when there is no mesh. ok is false when both are empty.
func (e *Editor) Bounds() (min, max math.Vec3, ok bool) {
	if m := e.road.Mesh(); m != nil && len(m.Vertices) > 0 {
		lo, hi := m.Bounds()
		return lo.Add(m.Origin), hi.Add(m.Origin), true
	}

	points := e.road.Points()
	if len(points) == 0 {
		return math.Vec3{}, math.Vec3{}, false
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		min = math.Vec3{X: minf(min.X, p.X), Y: minf(min.Y, p.Y), Z: minf(min.Z, p.Z)}
		max = math.Vec3{X: maxf(max.X, p.X), Y: maxf(max.Y, p.Y), Z: maxf(max.Z, p.Z)}
	}
	return min, max, true
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
