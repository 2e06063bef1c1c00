package road

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-road/pkg/math"
)

func TestSegmentCount(t *testing.T) {
	tests := []struct {
		points int
		closed bool
		want   int
	}{
		{0, false, 0},
		{1, false, 0},
		{1, true, 0},
		{2, false, 1},
		{2, true, 2},
		{5, false, 4},
		{5, true, 5},
	}

	for _, tt := range tests {
		if got := SegmentCount(tt.points, tt.closed); got != tt.want {
			t.Errorf("SegmentCount(%d, %v) = %d, want %d", tt.points, tt.closed, got, tt.want)
		}
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name string
		a, b math.Vec2
		want float32
	}{
		{"along x", math.Vec2{X: 0, Y: 0}, math.Vec2{X: 10, Y: 0}, 0},
		{"diagonal", math.Vec2{X: 0, Y: 0}, math.Vec2{X: 10, Y: 10}, gomath.Pi / 4},
		{"backwards diagonal", math.Vec2{X: 10, Y: 10}, math.Vec2{X: 0, Y: 0}, gomath.Pi / 4},
		{"descending", math.Vec2{X: 0, Y: 0}, math.Vec2{X: 10, Y: -10}, -gomath.Pi / 4},
		{"no x extent", math.Vec2{X: 3, Y: 0}, math.Vec2{X: 3, Y: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, Heading(tt.a, tt.b), approxOpt)
		})
	}
}

func TestBuildSegmentsSingleStraight(t *testing.T) {
	set := BuildSegments([]math.Vec3{v3(0, 0, 0), v3(10, 0, 0)}, 1, false)

	if set.Len() != 1 {
		t.Fatalf("expected 1 segment, got %d", set.Len())
	}
	want := Quad{v3(0, 0, 1), v3(0, 0, -1), v3(10, 0, 1), v3(10, 0, -1)}
	diff(t, want, set.Quads[0], approxOpt)
	diff(t, []float32{0}, set.Headings)
	diff(t, []bool{false}, set.Reversed)
	diff(t, []uint32{2, 1, 0, 2, 3, 1}, set.Indices())
}

func TestBuildSegmentsReversedOffsets(t *testing.T) {
	set := BuildSegments([]math.Vec3{v3(10, 0, 0), v3(0, 0, 0)}, 1, false)

	want := Quad{v3(10, 0, -1), v3(10, 0, 1), v3(0, 0, -1), v3(0, 0, 1)}
	diff(t, want, set.Quads[0], approxOpt)
	diff(t, []bool{true}, set.Reversed)
}

func TestBuildSegmentsDiagonal(t *testing.T) {
	set := BuildSegments([]math.Vec3{v3(0, 2, 0), v3(10, 3, 10)}, 1, false)

	h := float32(gomath.Sqrt2 / 2)
	want := Quad{
		v3(-h, 2, h),
		v3(h, 2, -h),
		v3(10-h, 3, 10+h),
		v3(10+h, 3, 10-h),
	}
	diff(t, want, set.Quads[0], approxOpt)
}

func TestBuildSegmentsVerticalKeepsWorldOffset(t *testing.T) {
	// Heading 0 means no rotation: offsets stay on world Z.
	set := BuildSegments([]math.Vec3{v3(5, 0, 0), v3(5, 0, 10)}, 1, false)

	want := Quad{v3(5, 0, 1), v3(5, 0, -1), v3(5, 0, 11), v3(5, 0, 9)}
	diff(t, want, set.Quads[0], approxOpt)
}

func TestBuildSegmentsCounts(t *testing.T) {
	for n := 2; n <= 6; n++ {
		points := make([]math.Vec3, n)
		for i := range points {
			points[i] = v3(float32(i*10), 0, float32((i%2)*5))
		}
		for _, closed := range []bool{false, true} {
			set := BuildSegments(points, 1.5, closed)
			segs := SegmentCount(n, closed)

			if got := len(set.Vertices()); got != 4*segs {
				t.Errorf("n=%d closed=%v: %d vertices, want %d", n, closed, got, 4*segs)
			}
			if got := len(set.Indices()); got != 6*segs {
				t.Errorf("n=%d closed=%v: %d indices, want %d", n, closed, got, 6*segs)
			}
			if len(set.Headings) != segs || len(set.Reversed) != segs {
				t.Errorf("n=%d closed=%v: heading table has %d entries, want %d", n, closed, len(set.Headings), segs)
			}
		}
	}
}

func TestBuildSegmentsWindingFacesUp(t *testing.T) {
	paths := [][]math.Vec3{
		{v3(0, 0, 0), v3(10, 0, 0)},
		{v3(10, 0, 0), v3(0, 0, 0)},
		{v3(0, 0, 0), v3(10, 0, 7)},
		{v3(10, 0, 0), v3(0, 0, 7)},
	}

	for _, path := range paths {
		set := BuildSegments(path, 1, false)
		verts := set.Vertices()
		indices := set.Indices()
		for tri := 0; tri < len(indices); tri += 3 {
			a, b, c := verts[indices[tri]], verts[indices[tri+1]], verts[indices[tri+2]]
			n := b.Sub(a).Cross(c.Sub(a))
			if n.Y <= 0 {
				t.Errorf("path %v triangle %d normal %v does not face up", path, tri/3, n)
			}
		}
	}
}

func TestSegmentSetNext(t *testing.T) {
	open := &SegmentSet{Quads: make([]Quad, 3)}
	if n, ok := open.Next(1); !ok || n != 2 {
		t.Errorf("open Next(1) = %d, %v; want 2, true", n, ok)
	}
	if _, ok := open.Next(2); ok {
		t.Error("open Next(last) should report no successor")
	}

	closed := &SegmentSet{Quads: make([]Quad, 3), Closed: true}
	if n, ok := closed.Next(2); !ok || n != 0 {
		t.Errorf("closed Next(last) = %d, %v; want 0, true", n, ok)
	}
}
