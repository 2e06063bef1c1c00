// Package texture loads road material images and uploads them to OpenGL.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Supported reports whether path has an image extension Load understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tga":
		return true
	}
	return false
}

// Load reads an image file into RGBA pixels.
// If magentaKey is set, magenta pixels become transparent.
func Load(path string, magentaKey bool) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	rgba := ToRGBA(img)
	if magentaKey {
		ApplyMagentaKey(rgba)
	}
	return rgba, nil
}

// ToRGBA returns img as *image.RGBA, converting when needed. The result
// starts at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// IsMagentaKey reports whether an RGB color is the magenta transparency key.
// The tolerance absorbs BMP decoding variations.
func IsMagentaKey(r, g, b uint8) bool {
	return r >= 250 && g <= 10 && b >= 250
}

// ApplyMagentaKey makes magenta pixels transparent black in place.
func ApplyMagentaKey(img *image.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if IsMagentaKey(img.Pix[i], img.Pix[i+1], img.Pix[i+2]) {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
		}
	}
}
