// Package scene renders the road viewer: the ground, the installed road mesh
// and the path control points.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/engine/camera"
	"github.com/Faultbox/midgard-road/internal/engine/lighting"
	"github.com/Faultbox/midgard-road/internal/engine/terrain"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Light is a single directional light with an ambient term.
type Light struct {
	Dir     [3]float32
	Ambient [3]float32
	Diffuse [3]float32
}

// Default sun position in degrees.
const (
	DefaultSunLongitude = 45
	DefaultSunLatitude  = 50
)

// DefaultLight returns a light from the default sun position.
func DefaultLight() Light {
	l := Light{
		Ambient: [3]float32{0.45, 0.45, 0.5},
		Diffuse: [3]float32{0.6, 0.6, 0.55},
	}
	l.SetSun(DefaultSunLongitude, DefaultSunLatitude)
	return l
}

// SetSun points the light from a sun at longitude/latitude degrees.
func (l *Light) SetSun(longitude, latitude float32) {
	d := lighting.LightDirection(longitude, latitude)
	l.Dir = [3]float32{d.X, d.Y, d.Z}
}

func (l Light) apply(locDir, locAmbient, locDiffuse int32) {
	dir := math.Vec3{X: l.Dir[0], Y: l.Dir[1], Z: l.Dir[2]}.Normalize()
	gl.Uniform3f(locDir, dir.X, dir.Y, dir.Z)
	gl.Uniform3f(locAmbient, l.Ambient[0], l.Ambient[1], l.Ambient[2])
	gl.Uniform3f(locDiffuse, l.Diffuse[0], l.Diffuse[1], l.Diffuse[2])
}

// Scene holds every renderer of the viewer.
type Scene struct {
	log *zap.Logger

	Ground *GroundRenderer
	Road   *RoadRenderer
	Points *PointRenderer
	Debug  *LineRenderer

	// ShowDebug draws the Debug lines.
	ShowDebug bool

	Light      Light
	ClearColor [3]float32
}

// New creates the renderers. A GL context must be current.
func New(log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Scene{
		log:        log,
		Light:      DefaultLight(),
		ClearColor: [3]float32{0.55, 0.7, 0.85},
	}

	var err error
	if s.Ground, err = NewGroundRenderer(); err != nil {
		return nil, fmt.Errorf("creating ground renderer: %w", err)
	}
	if s.Road, err = NewRoadRenderer(log.Named("gl")); err != nil {
		s.Ground.Destroy()
		return nil, fmt.Errorf("creating road renderer: %w", err)
	}
	if s.Points, err = NewPointRenderer(); err != nil {
		s.Ground.Destroy()
		s.Road.Destroy()
		return nil, fmt.Errorf("creating point renderer: %w", err)
	}
	if s.Debug, err = NewLineRenderer(); err != nil {
		s.Ground.Destroy()
		s.Road.Destroy()
		s.Points.Destroy()
		return nil, fmt.Errorf("creating debug line renderer: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	log.Info("scene initialized",
		zap.String("glVersion", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("glRenderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	return s, nil
}

// SetGround uploads the ground mesh.
func (s *Scene) SetGround(h *terrain.Heightfield) {
	s.Ground.LoadHeightfield(h)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (s *Scene) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Render draws one frame into the current framebuffer.
func (s *Scene) Render(cam *camera.OrbitCamera, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(s.ClearColor[0], s.ClearColor[1], s.ClearColor[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := cam.ViewProjection(float32(width) / float32(height))

	s.Ground.Render(viewProj, s.Light)
	s.Road.Render(viewProj, s.Light)
	if s.ShowDebug {
		s.Debug.Render(viewProj)
	}
	s.Points.Render(viewProj)
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	s.Debug.Destroy()
	s.Points.Destroy()
	s.Road.Destroy()
	s.Ground.Destroy()
}
