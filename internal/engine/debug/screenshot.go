// Package debug provides viewer diagnostics: screenshots and wireframe
// overlays of the road mesh.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes framebuffer captures as timestamped PNG files.
type Screenshots struct {
	Dir    string
	Prefix string

	// Now returns the capture time. Defaults to time.Now.
	Now func() time.Time
}

// NewScreenshots creates a capture writer for dir.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{Dir: dir, Prefix: prefix, Now: time.Now}
}

// Filename returns the path the next capture would be written to.
func (s *Screenshots) Filename() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	name := fmt.Sprintf("%s_%s.png", s.Prefix, now().Format("2006-01-02_15-04-05"))
	if s.Dir != "" {
		name = filepath.Join(s.Dir, name)
	}
	return name
}

// Save writes RGBA pixels read back from OpenGL. Rows are flipped since GL
// stores the bottom row first.
func (s *Screenshots) Save(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := s.Filename()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, FlipRows(pixels, width, height)); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

// FlipRows copies bottom-up RGBA rows into a top-down image.
func FlipRows(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := range height {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img
}
