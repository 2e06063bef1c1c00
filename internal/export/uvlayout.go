package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/vector"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Layout colors.
var (
	layoutBackground = color.RGBA{R: 32, G: 32, B: 32, A: 255}
	layoutFill       = color.RGBA{R: 40, G: 90, B: 140, A: 255}
	layoutEdge       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// layoutMargin is the border in pixels around the layout.
const layoutMargin = 4

// RenderUVLayout draws the triangles of a UV channel, scaled to fit a
// size x size image. Filled triangles are outlined by one pixel wide edges.
func RenderUVLayout(uvs []math.Vec2, indices []uint32, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(layoutBackground), image.Point{}, draw.Src)

	if len(uvs) == 0 || len(indices) < 3 || size <= 2*layoutMargin {
		return img
	}

	lo, hi := uvs[0], uvs[0]
	for _, uv := range uvs[1:] {
		lo = math.Vec2{X: min(lo.X, uv.X), Y: min(lo.Y, uv.Y)}
		hi = math.Vec2{X: max(hi.X, uv.X), Y: max(hi.Y, uv.Y)}
	}
	span := max(hi.X-lo.X, hi.Y-lo.Y)
	if span == 0 {
		span = 1
	}
	scale := float32(size-2*layoutMargin) / span

	// V grows upward in texture space.
	toPixel := func(uv math.Vec2) (float32, float32) {
		return layoutMargin + (uv.X-lo.X)*scale,
			float32(size) - layoutMargin - (uv.Y-lo.Y)*scale
	}

	r := vector.NewRasterizer(size, size)
	for t := 0; t+2 < len(indices); t += 3 {
		x0, y0 := toPixel(uvs[indices[t]])
		x1, y1 := toPixel(uvs[indices[t+1]])
		x2, y2 := toPixel(uvs[indices[t+2]])
		r.MoveTo(x0, y0)
		r.LineTo(x1, y1)
		r.LineTo(x2, y2)
		r.ClosePath()
	}
	r.Draw(img, img.Bounds(), image.NewUniform(layoutFill), image.Point{})

	r.Reset(size, size)
	for t := 0; t+2 < len(indices); t += 3 {
		for e := range 3 {
			ax, ay := toPixel(uvs[indices[t+e]])
			bx, by := toPixel(uvs[indices[t+(e+1)%3]])
			addStroke(r, ax, ay, bx, by, 0.5)
		}
	}
	r.Draw(img, img.Bounds(), image.NewUniform(layoutEdge), image.Point{})

	return img
}

// addStroke adds the line a-b as a closed quad of the given half width.
func addStroke(r *vector.Rasterizer, ax, ay, bx, by, halfWidth float32) {
	d := math.Vec2{X: bx - ax, Y: by - ay}
	l := d.Length()
	if l == 0 {
		return
	}
	nx, ny := -d.Y/l*halfWidth, d.X/l*halfWidth

	r.MoveTo(ax+nx, ay+ny)
	r.LineTo(bx+nx, by+ny)
	r.LineTo(bx-nx, by-ny)
	r.LineTo(ax-nx, ay-ny)
	r.ClosePath()
}

// WriteUVLayout encodes the layout as PNG.
func WriteUVLayout(w io.Writer, uvs []math.Vec2, indices []uint32, size int) error {
	if err := png.Encode(w, RenderUVLayout(uvs, indices, size)); err != nil {
		return fmt.Errorf("encoding uv layout: %w", err)
	}
	return nil
}

// SaveUVLayout writes the layout PNG to path.
func SaveUVLayout(path string, uvs []math.Vec2, indices []uint32, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating uv layout file: %w", err)
	}
	defer f.Close()

	if err := WriteUVLayout(f, uvs, indices, size); err != nil {
		return err
	}
	return f.Close()
}
