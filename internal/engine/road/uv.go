package road

import (
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

const (
	quarterTurn = gomath.Pi / 2
	halfTurn    = gomath.Pi
)

// UVOptions are the user adjustments applied after the strip is laid out.
type UVOptions struct {
	Swap   bool
	FlipU  bool
	FlipV  bool
	Scale  math.Vec2
	Offset math.Vec2
}

// Apply runs swap, flipU, flipV, offset and scale on one coordinate, in that order.
func (o UVOptions) Apply(uv math.Vec2) math.Vec2 {
	if o.Swap {
		uv = uv.Swap()
	}
	if o.FlipU {
		uv.X = -uv.X
	}
	if o.FlipV {
		uv.Y = -uv.Y
	}
	return uv.Add(o.Offset).Mul(o.Scale)
}

// MapUV lays the quads in verts (four per segment) out as one continuous strip.
//
// Each quad is turned back by its heading plus a quarter turn about its own
// centroid, so travel runs along V and the road width along U. Reversed
// segments get an extra half turn to keep the strip running forward. Each
// quad is then slid so its leading-right corner lands on the previous
// quad's trailing-right corner.
//
// The strip is finally scaled so the first quad's leading edge spans one
// unit of U. normalized is false when that edge has no U extent and the
// scale was skipped.
func MapUV(verts []math.Vec3, headings []float32, reversed []bool, opts UVOptions) (uvs []math.Vec2, normalized bool) {
	uvs = make([]math.Vec2, len(verts))
	if len(headings) == 0 || len(verts) < 4*len(headings) {
		return uvs, false
	}

	scale := float32(1)
	if d := verts[LeadRight].Distance(verts[LeadLeft]); d > 0 {
		scale = 1 / d
	}

	var topLeft math.Vec2
	for i, theta := range headings {
		base := 4 * i
		quad := verts[base : base+4]
		center := math.Centroid(quad)

		angle := float64(theta) + quarterTurn
		if reversed[i] {
			angle += halfTurn
		}

		for k, v := range quad {
			uvs[base+k] = v.RotateAroundY(center, float32(angle)).XZ().Scale(scale)
		}

		delta := topLeft.Sub(uvs[base+LeadRight])
		for k := range 4 {
			uvs[base+k] = uvs[base+k].Add(delta)
		}
		topLeft = uvs[base+TrailRight]
	}

	// uvs[0] is pinned to the origin above, so this is 1/uvs[1].X.
	if span := uvs[LeadLeft].X - uvs[LeadRight].X; span != 0 {
		s := 1 / span
		for i := range uvs {
			uvs[i] = uvs[i].Scale(s)
		}
		normalized = true
	}

	for i := range uvs {
		uvs[i] = opts.Apply(uvs[i])
	}
	return uvs, normalized
}
