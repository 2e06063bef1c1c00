// Package config handles road tool configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Ground types.
const (
	GroundNone        = "none"
	GroundPlane       = "plane"
	GroundHeightfield = "heightfield"
)

// Config holds all road tool settings.
type Config struct {
	Road     RoadConfig     `yaml:"road"`
	Ground   GroundConfig   `yaml:"ground"`
	Output   OutputConfig   `yaml:"output"`
	Lightmap LightmapConfig `yaml:"lightmap"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`

	path string // file the config was loaded from
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Point is a world position.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Vec2 is a pair of scalars.
type Vec2 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// RoadConfig holds the path and build settings of one road.
type RoadConfig struct {
	Points           []Point `yaml:"points"`
	Width            float32 `yaml:"width"`
	GroundOffset     float32 `yaml:"ground_offset"`
	ConnectEnds      bool    `yaml:"connect_ends"`
	SwapUV           bool    `yaml:"swap_uv"`
	FlipU            bool    `yaml:"flip_u"`
	FlipV            bool    `yaml:"flip_v"`
	UVScale          Vec2    `yaml:"uv_scale"`
	UVOffset         Vec2    `yaml:"uv_offset"`
	Material         string  `yaml:"material"`
	ParallelFallback string  `yaml:"parallel_fallback"` // endpoint or origin
}

// GroundConfig selects the ground roads are projected onto.
type GroundConfig struct {
	Type        string            `yaml:"type"` // none, plane or heightfield
	PlaneHeight float32           `yaml:"plane_height"`
	TwoSided    bool              `yaml:"two_sided"`
	Heightfield HeightfieldConfig `yaml:"heightfield"`
}

// HeightfieldConfig holds a grid of corner heights, one row per Z step.
type HeightfieldConfig struct {
	Origin   Point       `yaml:"origin"`
	CellSize float32     `yaml:"cell_size"`
	Heights  [][]float32 `yaml:"heights"`
}

// OutputConfig holds export paths. Empty paths disable the export.
type OutputConfig struct {
	OBJ          string `yaml:"obj"`
	UVLayout     string `yaml:"uv_layout"`
	UVLayoutSize int    `yaml:"uv_layout_size"`
}

// LightmapConfig holds the secondary UV layout settings.
type LightmapConfig struct {
	Enabled  bool `yaml:"enabled"`
	TileSize int  `yaml:"tile_size"`
	MaxSize  int  `yaml:"max_size"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	MSAA       int  `yaml:"msaa"`

	// Sun position in degrees for the preview light.
	SunLongitude float32 `yaml:"sun_longitude"`
	SunLatitude  float32 `yaml:"sun_latitude"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Road: RoadConfig{
			Width:            1,
			GroundOffset:     0.1,
			FlipU:            true,
			FlipV:            true,
			UVScale:          Vec2{X: 1, Y: 1},
			ParallelFallback: road.FallbackEndpoint.String(),
		},
		Ground: GroundConfig{
			Type: GroundPlane,
		},
		Output: OutputConfig{
			OBJ:          "road.obj",
			UVLayoutSize: 512,
		},
		Lightmap: LightmapConfig{
			TileSize: 16,
			MaxSize:  4096,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			MSAA:       4,

			SunLongitude: 45,
			SunLatitude:  50,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	if _, err := road.ParseParallelFallback(c.Road.ParallelFallback); err != nil {
		return err
	}
	switch c.Ground.Type {
	case GroundNone, GroundPlane, "":
	case GroundHeightfield:
		if c.Ground.Heightfield.CellSize <= 0 {
			return fmt.Errorf("heightfield cell_size must be positive, got %v", c.Ground.Heightfield.CellSize)
		}
	default:
		return fmt.Errorf("unknown ground type %q", c.Ground.Type)
	}
	if c.Output.UVLayout != "" && c.Output.UVLayoutSize <= 0 {
		return fmt.Errorf("uv_layout_size must be positive, got %d", c.Output.UVLayoutSize)
	}
	return nil
}

// RoadConfig converts the road section to build settings.
func (c *Config) RoadConfig() (road.Config, error) {
	fallback, err := road.ParseParallelFallback(c.Road.ParallelFallback)
	if err != nil {
		return road.Config{}, err
	}

	var points []math.Vec3
	for _, p := range c.Road.Points {
		points = append(points, p.Vec3())
	}

	return road.Config{
		Points:           points,
		Width:            c.Road.Width,
		GroundOffset:     c.Road.GroundOffset,
		ConnectEnds:      c.Road.ConnectEnds,
		SwapUV:           c.Road.SwapUV,
		FlipU:            c.Road.FlipU,
		FlipV:            c.Road.FlipV,
		UVScale:          c.Road.UVScale.Vec2(),
		UVOffset:         c.Road.UVOffset.Vec2(),
		Material:         c.Road.Material,
		ParallelFallback: fallback,
	}, nil
}

// SetRoad stores build settings back into the road section.
func (c *Config) SetRoad(rc road.Config) {
	var points []Point
	for _, p := range rc.Points {
		points = append(points, Point{X: p.X, Y: p.Y, Z: p.Z})
	}

	c.Road = RoadConfig{
		Points:           points,
		Width:            rc.Width,
		GroundOffset:     rc.GroundOffset,
		ConnectEnds:      rc.ConnectEnds,
		SwapUV:           rc.SwapUV,
		FlipU:            rc.FlipU,
		FlipV:            rc.FlipV,
		UVScale:          Vec2{X: rc.UVScale.X, Y: rc.UVScale.Y},
		UVOffset:         Vec2{X: rc.UVOffset.X, Y: rc.UVOffset.Y},
		Material:         rc.Material,
		ParallelFallback: rc.ParallelFallback.String(),
	}
}

// Vec3 converts p.
func (p Point) Vec3() math.Vec3 {
	return math.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// Vec2 converts v.
func (v Vec2) Vec2() math.Vec2 {
	return math.Vec2{X: v.X, Y: v.Y}
}
