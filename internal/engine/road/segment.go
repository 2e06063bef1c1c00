package road

import (
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// Quad corner slots. Right and left refer to the world-axis offset chosen
// before the quad is rotated onto the segment.
const (
	LeadRight  = 0
	LeadLeft   = 1
	TrailRight = 2
	TrailLeft  = 3
)

// Quad holds the four corners of one road segment.
type Quad [4]math.Vec3

// SegmentSet is the output of the segment builder: one quad and one heading per segment.
// Headings are consumed again by the UV mapper and must not be modified.
type SegmentSet struct {
	Quads    []Quad
	Headings []float32
	// Reversed marks segments whose start lies at a larger X than their end.
	// Their offsets were flipped and their heading points against travel.
	Reversed []bool
	Closed   bool
}

// SegmentCount returns how many segments a path of n points produces.
func SegmentCount(n int, closed bool) int {
	if n < 2 {
		return 0
	}
	if closed {
		return n
	}
	return n - 1
}

// Len returns the number of segments.
func (s *SegmentSet) Len() int {
	return len(s.Quads)
}

// Next returns the segment following i, wrapping to 0 on a closed loop.
// ok is false for the last segment of an open path.
func (s *SegmentSet) Next(i int) (next int, ok bool) {
	if i+1 < len(s.Quads) {
		return i + 1, true
	}
	if s.Closed && len(s.Quads) > 0 {
		return 0, true
	}
	return 0, false
}

// Vertices flattens the quads into a vertex buffer, four per segment.
func (s *SegmentSet) Vertices() []math.Vec3 {
	verts := make([]math.Vec3, 0, 4*len(s.Quads))
	for _, q := range s.Quads {
		verts = append(verts, q[:]...)
	}
	return verts
}

// Indices returns the triangle list for the flattened vertex buffer.
// Each segment contributes (2,1,0) and (2,3,1), which faces +Y.
func (s *SegmentSet) Indices() []uint32 {
	indices := make([]uint32, 0, 6*len(s.Quads))
	for i := range s.Quads {
		base := uint32(4 * i)
		indices = append(indices,
			base+TrailRight, base+LeadLeft, base+LeadRight,
			base+TrailRight, base+TrailLeft, base+LeadLeft,
		)
	}
	return indices
}

// Heading returns the ground-plane angle of the segment a->b as atan(dz/dx).
// A segment with no X extent reports 0, not ±pi/2. The joint resolver and the
// UV mapper are built around that value, so it is kept as is.
func Heading(a, b math.Vec2) float32 {
	adj := b.X - a.X
	if adj == 0 {
		return 0
	}
	return float32(gomath.Atan(float64((b.Y - a.Y) / adj)))
}

// BuildSegments turns a path into per-segment quads of half-width width.
// The path must hold at least two points; fewer yields an empty set.
func BuildSegments(points []math.Vec3, width float32, closed bool) *SegmentSet {
	n := SegmentCount(len(points), closed)
	set := &SegmentSet{
		Quads:    make([]Quad, n),
		Headings: make([]float32, n),
		Reversed: make([]bool, n),
		Closed:   closed,
	}

	for i := range n {
		start := points[i]
		end := points[(i+1)%len(points)]

		reversed := start.X > end.X
		right := math.Vec3{Z: width}
		if reversed {
			right = right.Neg()
		}

		theta := Heading(start.XZ(), end.XZ())

		// Offsets are laid out along world Z, then swung onto the segment.
		set.Quads[i] = Quad{
			LeadRight:  start.Add(right).RotateAroundY(start, -theta),
			LeadLeft:   start.Sub(right).RotateAroundY(start, -theta),
			TrailRight: end.Add(right).RotateAroundY(end, -theta),
			TrailLeft:  end.Sub(right).RotateAroundY(end, -theta),
		}
		set.Headings[i] = theta
		set.Reversed[i] = reversed
	}

	return set
}
