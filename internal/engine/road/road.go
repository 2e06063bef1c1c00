// Package road builds ribbon road meshes from a polyline of control points.
//
// A build runs four stages over the road's current configuration:
//
//  1. BuildSegments turns each pair of consecutive points into a quad.
//  2. ResolveJoints miters adjoining quads onto shared corners.
//  3. ProjectToGround drops the vertices onto the ground and centres them.
//  4. MapUV lays out texture coordinates as one continuous strip.
//
// Road.Refresh runs them all and hands the result to a MeshSink.
package road

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// ErrRefreshInProgress is returned when Refresh is called while another refresh
// of the same road is still running.
var ErrRefreshInProgress = errors.New("road refresh already in progress")

// Config is everything a build reads.
type Config struct {
	Points       []math.Vec3
	Width        float32 // Half-width: edges sit Width either side of the path
	GroundOffset float32
	ConnectEnds  bool

	SwapUV   bool
	FlipU    bool
	FlipV    bool
	UVScale  math.Vec2
	UVOffset math.Vec2

	// Material is carried onto the mesh untouched.
	Material string

	ParallelFallback ParallelFallback
}

// DefaultConfig returns the settings a freshly placed road starts with.
func DefaultConfig() Config {
	return Config{
		Width:        1,
		GroundOffset: 0.1,
		FlipU:        true,
		FlipV:        true,
		UVScale:      math.Vec2{X: 1, Y: 1},
	}
}

// SegmentCount returns the number of segments the current path builds.
func (c Config) SegmentCount() int {
	return SegmentCount(len(c.Points), c.ConnectEnds)
}

func (c Config) uvOptions() UVOptions {
	return UVOptions{
		Swap:   c.SwapUV,
		FlipU:  c.FlipU,
		FlipV:  c.FlipV,
		Scale:  c.UVScale,
		Offset: c.UVOffset,
	}
}

// BuildReport describes one Refresh.
type BuildReport struct {
	Skipped  bool
	Segments int
	Vertices int
	// ParallelJoints lists segments whose joint with the next segment had
	// parallel edges and fell back to Config.ParallelFallback.
	ParallelJoints []int
	// GroundMisses counts vertices for which every ground cast missed.
	GroundMisses int
	// UVNormalized is false when the UV strip could not be normalized.
	UVNormalized bool
	Elapsed      time.Duration
}

// Option configures a Road.
type Option func(*Road)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(r *Road) {
		if log != nil {
			r.log = log
		}
	}
}

// WithPostBuild appends hooks run on every mesh before it is installed.
func WithPostBuild(hooks ...PostBuildHook) Option {
	return func(r *Road) {
		r.hooks = append(r.hooks, hooks...)
	}
}

// Road owns one path and the mesh built from it.
// A Road is not safe for concurrent use; overlapping Refresh calls are rejected.
type Road struct {
	cfg    Config
	ground GroundQuery
	sink   MeshSink
	hooks  []PostBuildHook
	log    *zap.Logger

	building atomic.Bool
	mesh     *Mesh
}

// New creates a road. ground may be nil (every vertex keeps its height) and
// sink may be nil (meshes are only kept in memory).
func New(cfg Config, ground GroundQuery, sink MeshSink, opts ...Option) *Road {
	r := &Road{
		cfg:    cfg,
		ground: ground,
		sink:   sink,
		log:    zap.NewNop(),
	}
	r.cfg.Points = slices.Clone(cfg.Points)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns a copy of the current configuration.
func (r *Road) Config() Config {
	cfg := r.cfg
	cfg.Points = slices.Clone(r.cfg.Points)
	return cfg
}

// SetConfig replaces the configuration. It takes effect on the next Refresh.
func (r *Road) SetConfig(cfg Config) {
	r.cfg = cfg
	r.cfg.Points = slices.Clone(cfg.Points)
}

// SetGround replaces the ground query used by later refreshes.
func (r *Road) SetGround(q GroundQuery) {
	r.ground = q
}

// Points returns a copy of the path.
func (r *Road) Points() []math.Vec3 {
	return slices.Clone(r.cfg.Points)
}

// SetPoints replaces the path.
func (r *Road) SetPoints(points []math.Vec3) {
	r.cfg.Points = slices.Clone(points)
}

// AddPoint appends p to the path.
func (r *Road) AddPoint(p math.Vec3) {
	r.cfg.Points = append(r.cfg.Points, p)
}

// InsertPoint inserts p before index i. Out of range indices append.
func (r *Road) InsertPoint(i int, p math.Vec3) {
	if i < 0 || i >= len(r.cfg.Points) {
		r.AddPoint(p)
		return
	}
	r.cfg.Points = slices.Insert(r.cfg.Points, i, p)
}

// MovePoint moves point i to p.
func (r *Road) MovePoint(i int, p math.Vec3) error {
	if i < 0 || i >= len(r.cfg.Points) {
		return fmt.Errorf("point %d out of range [0,%d)", i, len(r.cfg.Points))
	}
	r.cfg.Points[i] = p
	return nil
}

// RemovePoint deletes point i.
func (r *Road) RemovePoint(i int) error {
	if i < 0 || i >= len(r.cfg.Points) {
		return fmt.Errorf("point %d out of range [0,%d)", i, len(r.cfg.Points))
	}
	r.cfg.Points = slices.Delete(r.cfg.Points, i, i+1)
	return nil
}

// SetConnectEnds opens or closes the loop.
func (r *Road) SetConnectEnds(closed bool) {
	r.cfg.ConnectEnds = closed
}

// Mesh returns the most recently built mesh, or nil before the first build.
func (r *Road) Mesh() *Mesh {
	return r.mesh
}

// Refresh rebuilds the mesh from the current configuration and installs it.
//
// With fewer than two points nothing is built and the existing mesh stays.
// Geometric trouble (parallel joints, vertices with no ground) is recovered
// locally and reported; the only errors are ErrRefreshInProgress and a sink
// failing to install.
func (r *Road) Refresh() (*BuildReport, error) {
	if !r.building.CompareAndSwap(false, true) {
		return nil, ErrRefreshInProgress
	}
	defer r.building.Store(false)

	start := time.Now()
	cfg := r.cfg
	report := &BuildReport{}

	if len(cfg.Points) < 2 {
		report.Skipped = true
		r.log.Debug("refresh skipped", zap.Int("points", len(cfg.Points)))
		return report, nil
	}
	if cfg.Width <= 0 {
		r.log.Warn("road width is not positive", zap.Float32("width", cfg.Width))
	}

	set := BuildSegments(cfg.Points, cfg.Width, cfg.ConnectEnds)

	report.ParallelJoints = ResolveJoints(set, len(cfg.Points), cfg.ParallelFallback)
	for _, i := range report.ParallelJoints {
		r.log.Warn("parallel edges at joint",
			zap.Int("segment", i),
			zap.Stringer("fallback", cfg.ParallelFallback),
		)
	}

	verts := set.Vertices()
	origin, misses := ProjectToGround(verts, r.ground, cfg.GroundOffset)
	report.GroundMisses = misses
	if misses > 0 {
		r.log.Debug("vertices kept their height, no ground found",
			zap.Int("count", misses),
			zap.Int("vertices", len(verts)),
		)
	}

	uvs, normalized := MapUV(verts, set.Headings, set.Reversed, cfg.uvOptions())
	report.UVNormalized = normalized
	if !normalized {
		r.log.Warn("first segment has no width in UV space, skipped UV normalization")
	}

	mesh := &Mesh{
		Vertices: verts,
		Indices:  set.Indices(),
		UVs:      uvs,
		Origin:   origin,
		Material: cfg.Material,
	}
	mesh.RecalculateNormals()

	for _, h := range r.hooks {
		h.PostBuild(mesh)
	}

	if r.sink != nil {
		if r.mesh != nil {
			r.sink.Release(r.mesh)
			r.mesh = nil
		}
		if err := r.sink.Install(mesh); err != nil {
			return report, fmt.Errorf("installing road mesh: %w", err)
		}
	}
	r.mesh = mesh

	report.Segments = set.Len()
	report.Vertices = len(verts)
	report.Elapsed = time.Since(start)

	r.log.Debug("road rebuilt",
		zap.Int("points", len(cfg.Points)),
		zap.Int("segments", report.Segments),
		zap.Int("vertices", report.Vertices),
		zap.Bool("closed", cfg.ConnectEnds),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}
