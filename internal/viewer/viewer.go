// Package viewer implements the interactive road preview loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/editor"
	"github.com/Faultbox/midgard-road/internal/engine/camera"
	"github.com/Faultbox/midgard-road/internal/engine/debug"
	"github.com/Faultbox/midgard-road/internal/engine/ground"
	"github.com/Faultbox/midgard-road/internal/engine/input"
	"github.com/Faultbox/midgard-road/internal/engine/lightmap"
	"github.com/Faultbox/midgard-road/internal/engine/picking"
	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/internal/engine/scene"
	"github.com/Faultbox/midgard-road/internal/engine/terrain"
	"github.com/Faultbox/midgard-road/internal/engine/texture"
	"github.com/Faultbox/midgard-road/internal/engine/window"
	"github.com/Faultbox/midgard-road/pkg/math"
)

const (
	title = "Midgard Road"

	// Size of the grid drawn when the ground is a plane.
	planeHalfExtent = 200
	planeCellSize   = 5

	screenshotDir = "screenshots"

	// Height of the ticks marking parallel joints.
	jointMarkerHeight = 2
)

var (
	wireColor  = [3]float32{0.1, 0.9, 0.9}
	boundColor = [3]float32{0.9, 0.9, 0.2}
	jointColor = [3]float32{1, 0.2, 0.2}
)

// Viewer is the preview application.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window *window.Window
	input  *input.Input
	scene  *scene.Scene
	camera *camera.OrbitCamera
	ground *ground.Ground
	editor *editor.Editor

	screenshots    *debug.Screenshots
	wantScreenshot bool
}

// New opens the window, creates the GL resources and builds the configured
// road once.
func New(cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	v := &Viewer{
		cfg:    cfg,
		log:    log,
		input:  input.New(),
		camera: camera.NewOrbitCamera(),

		screenshots: debug.NewScreenshots(screenshotDir, "road"),
	}

	var err error
	v.ground, err = ground.FromConfig(cfg.Ground, log.Named("ground"))
	if err != nil {
		return nil, fmt.Errorf("ground: %w", err)
	}
	rc, err := cfg.RoadConfig()
	if err != nil {
		return nil, err
	}

	// Window first, the GL context must exist before gl.Init.
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	v.scene, err = scene.New(log.Named("scene"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	v.scene.SetGround(v.groundMesh())
	v.scene.Light.SetSun(cfg.Graphics.SunLongitude, cfg.Graphics.SunLatitude)
	v.loadMaterial(rc.Material)

	opts := []road.Option{road.WithLogger(log.Named("road"))}
	if cfg.Lightmap.Enabled {
		opts = append(opts, road.WithPostBuild(
			lightmap.NewHook(cfg.Lightmap.TileSize, cfg.Lightmap.MaxSize, log.Named("lightmap"))))
	}
	r := road.New(rc, v.ground.Query(), v.scene.Road, opts...)
	v.editor = editor.New(cfg, r, log.Named("editor"))

	if err := v.editor.Refresh(); err != nil {
		log.Warn("initial build failed", zap.Error(err))
	}
	v.syncPoints()
	v.frame()

	log.Info("viewer initialized")
	return v, nil
}

// loadMaterial uses the road material as a texture when it names an image
// file. Other materials keep the checker.
func (v *Viewer) loadMaterial(material string) {
	if material == "" || !texture.Supported(material) {
		return
	}
	img, err := texture.Load(material, true)
	if err != nil {
		v.log.Warn("material texture not loaded", zap.String("material", material), zap.Error(err))
		return
	}
	v.scene.Road.SetTexture(img)
	v.log.Info("material texture loaded", zap.String("path", material))
}

// groundMesh returns the heightfield to draw: the configured one, or a grid
// at the plane height.
func (v *Viewer) groundMesh() *terrain.Heightfield {
	if v.ground.Heightfield != nil {
		return v.ground.Heightfield
	}
	center := math.Vec3{Y: v.cfg.Ground.PlaneHeight}
	return terrain.Flat(center, planeHalfExtent, planeCellSize)
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			v.handleEvent(event)
		}
		for _, action := range v.input.Actions() {
			if err := v.handleAction(action); err != nil {
				v.log.Error("action failed", zap.Int("action", int(action)), zap.Error(err))
			}
		}

		// 2. Update camera
		v.update(float32(dt))

		// 3. Render
		w, h := v.window.DrawableSize()
		v.scene.Render(v.camera, w, h)

		if v.wantScreenshot {
			v.wantScreenshot = false
			v.saveScreenshot(w, h)
		}

		// 4. Present
		v.window.SwapBuffers()

		if limit := v.cfg.Graphics.FPSLimit; limit > 0 {
			if rest := time.Second/time.Duration(limit) - time.Since(now); rest > 0 {
				time.Sleep(rest)
			}
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases GL resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.scene != nil {
		v.scene.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		v.log.Debug("window resized", zap.Int("width", event.Width), zap.Int("height", event.Height))
	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			v.placePoint(event.MouseX, event.MouseY)
		}
	case input.EventMouseMove:
		if event.Button == sdl.BUTTON_RIGHT {
			v.camera.HandleDrag(float32(event.RelX), float32(event.RelY))
		}
	case input.EventMouseWheel:
		v.camera.HandleZoom(event.Wheel)
	}
}

func (v *Viewer) handleAction(action input.Action) error {
	var err error
	switch action {
	case input.ActionRefresh:
		err = v.editor.Refresh()
	case input.ActionToggleLoop:
		err = v.editor.ToggleLoop()
	case input.ActionFlipU:
		err = v.editor.FlipU()
	case input.ActionFlipV:
		err = v.editor.FlipV()
	case input.ActionSwapUV:
		err = v.editor.SwapUV()
	case input.ActionRemoveLast:
		err = v.editor.RemoveLast()
	case input.ActionSave:
		err = v.editor.Save()
	case input.ActionFrame:
		v.frame()
	case input.ActionToggleDebug:
		v.scene.ShowDebug = !v.scene.ShowDebug
	case input.ActionToggleLightmapUV:
		v.scene.Road.ShowLightmapUV = !v.scene.Road.ShowLightmapUV
	case input.ActionScreenshot:
		v.wantScreenshot = true
	}
	v.syncPoints()
	return err
}

// placePoint adds a path point where the cursor meets the ground.
func (v *Viewer) placePoint(mouseX, mouseY int) {
	winW, winH := v.window.GetSize()
	drawW, drawH := v.window.DrawableSize()
	if winW <= 0 || winH <= 0 || drawH <= 0 {
		return
	}

	aspect := float32(drawW) / float32(drawH)
	inv, ok := v.camera.ViewProjection(aspect).Inverse()
	if !ok {
		return
	}
	ray := picking.ScreenToRay(float32(mouseX), float32(mouseY), float32(winW), float32(winH), inv)

	hit, ok := v.ground.Pick(ray)
	if !ok {
		v.log.Debug("click missed the ground", zap.Int("x", mouseX), zap.Int("y", mouseY))
		return
	}
	if err := v.editor.AddPoint(hit); err != nil {
		v.log.Error("adding point", zap.Error(err))
	}
	v.syncPoints()
}

// syncPoints uploads the control points, loop state and debug overlay.
func (v *Viewer) syncPoints() {
	v.window.SetTitle(v.status())
	v.scene.Points.SetPoints(v.editor.Road().Points())
	v.scene.Points.ConnectEnds = v.editor.Road().Config().ConnectEnds

	lines := v.scene.Debug
	lines.Clear()
	if m := v.editor.Road().Mesh(); m != nil {
		lines.Add(debug.MeshEdges(m), wireColor)
		if min, max, ok := v.editor.Bounds(); ok {
			lines.Add(debug.BoxLines(min, max), boundColor)
		}
		if report := v.editor.LastReport; report != nil {
			lines.Add(debug.JointMarkers(m, report.ParallelJoints, jointMarkerHeight), jointColor)
		}
	}
	lines.Upload()
}

// status summarizes the road for the window title.
func (v *Viewer) status() string {
	r := v.editor.Road()
	cfg := r.Config()
	s := fmt.Sprintf("%s - %d points", title, len(cfg.Points))
	if m := r.Mesh(); m != nil {
		s += fmt.Sprintf(", %d segments", m.SegmentCount())
	}
	if cfg.ConnectEnds {
		s += ", loop"
	}
	return s
}

func (v *Viewer) saveScreenshot(width, height int) {
	path, err := v.screenshots.Save(v.scene.ReadPixels(width, height), width, height)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// frame points the camera at the road.
func (v *Viewer) frame() {
	min, max, ok := v.editor.Bounds()
	if !ok {
		return
	}
	v.camera.FitToBounds(min, max)
}

// update pans the camera with the arrow keys.
func (v *Viewer) update(dt float32) {
	var forward, right float32
	if input.IsKeyDown(sdl.SCANCODE_UP) {
		forward++
	}
	if input.IsKeyDown(sdl.SCANCODE_DOWN) {
		forward--
	}
	if input.IsKeyDown(sdl.SCANCODE_LEFT) {
		right--
	}
	if input.IsKeyDown(sdl.SCANCODE_RIGHT) {
		right++
	}
	if forward == 0 && right == 0 {
		return
	}
	// HandleMovement is tuned for 60 frames per second.
	scale := dt * 60
	v.camera.HandleMovement(forward*scale, right*scale)
}
