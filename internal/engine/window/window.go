// Package window opens the SDL2 window and OpenGL context of the viewer.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Samples is the MSAA sample count, 0 disables multisampling.
	Samples int
}

// Window wraps the SDL2 window and its OpenGL context.
type Window struct {
	log       *zap.Logger
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

type glAttribute struct {
	attr  sdl.GLattr
	value int
}

// glAttributes lists the context attributes for cfg: OpenGL 4.1 core (the
// newest macOS supports), double buffered, 24 bit depth.
func glAttributes(cfg Config) []glAttribute {
	attrs := []glAttribute{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
	}
	if cfg.Samples > 0 {
		attrs = append(attrs,
			glAttribute{sdl.GL_MULTISAMPLEBUFFERS, 1},
			glAttribute{sdl.GL_MULTISAMPLESAMPLES, cfg.Samples},
		)
	}
	return attrs
}

// New creates the window and makes its OpenGL context current.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Window{log: log}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window exists.
	for _, a := range glAttributes(cfg) {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			log.Warn("GL attribute rejected", zap.Int("attr", int(a.attr)), zap.Int("value", a.value), zap.Error(err))
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("swap interval not applied", zap.Int("interval", interval), zap.Error(err))
	}

	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("samples", cfg.Samples),
	)
	return w, nil
}

// Close destroys the context and the window and shuts SDL down.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the window size in screen coordinates, the space mouse
// events are reported in.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
