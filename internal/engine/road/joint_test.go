package road

import (
	gomath "math"
	"slices"
	"testing"

	"github.com/Faultbox/midgard-road/pkg/math"
)

func TestIntercept(t *testing.T) {
	tests := []struct {
		name           string
		p0, p1, p2, p3 math.Vec2
		want           math.Vec2
		wantOK         bool
	}{
		{
			name: "perpendicular",
			p0:   math.Vec2{X: 0, Y: 1}, p1: math.Vec2{X: 10, Y: 1},
			p2: math.Vec2{X: 4, Y: -5}, p3: math.Vec2{X: 4, Y: 5},
			want: math.Vec2{X: 4, Y: 1}, wantOK: true,
		},
		{
			name: "diagonals",
			p0:   math.Vec2{X: 0, Y: 0}, p1: math.Vec2{X: 1, Y: 1},
			p2: math.Vec2{X: 0, Y: 10}, p3: math.Vec2{X: 1, Y: 9},
			want: math.Vec2{X: 5, Y: 5}, wantOK: true,
		},
		{
			name: "intersection beyond both segments",
			p0:   math.Vec2{X: 0, Y: 0}, p1: math.Vec2{X: 1, Y: 0},
			p2: math.Vec2{X: 20, Y: 3}, p3: math.Vec2{X: 20, Y: 4},
			want: math.Vec2{X: 20, Y: 0}, wantOK: true,
		},
		{
			name: "parallel",
			p0:   math.Vec2{X: 0, Y: 1}, p1: math.Vec2{X: 10, Y: 1},
			p2: math.Vec2{X: 10, Y: 1}, p3: math.Vec2{X: 20, Y: 1},
			wantOK: false,
		},
		{
			name: "degenerate line",
			p0:   math.Vec2{X: 3, Y: 3}, p1: math.Vec2{X: 3, Y: 3},
			p2: math.Vec2{X: 0, Y: 0}, p3: math.Vec2{X: 1, Y: 5},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Intercept(tt.p0, tt.p1, tt.p2, tt.p3)
			if ok != tt.wantOK {
				t.Fatalf("Intercept ok = %v, want %v", ok, tt.wantOK)
			}
			if ok {
				diff(t, tt.want, got, approxOpt)
			}
		})
	}
}

func TestResolveJointsRightAngle(t *testing.T) {
	points := []math.Vec3{v3(0, 0, 0), v3(10, 0, 10), v3(20, 0, 0)}
	set := BuildSegments(points, 1, false)

	parallel := ResolveJoints(set, len(points), FallbackEndpoint)
	if len(parallel) != 0 {
		t.Fatalf("unexpected parallel joints %v", parallel)
	}

	// The two edge pairs meet exactly at the interior joint.
	if set.Quads[0][TrailRight] != set.Quads[1][LeadRight] {
		t.Errorf("right edge not shared: %v vs %v", set.Quads[0][TrailRight], set.Quads[1][LeadRight])
	}
	if set.Quads[0][TrailLeft] != set.Quads[1][LeadLeft] {
		t.Errorf("left edge not shared: %v vs %v", set.Quads[0][TrailLeft], set.Quads[1][LeadLeft])
	}

	// Miter corners sit sqrt(2)*width either side of the apex.
	diff(t, v3(10, 0, 10+gomath.Sqrt2), set.Quads[0][TrailRight], approxOpt)
	diff(t, v3(10, 0, 10-gomath.Sqrt2), set.Quads[0][TrailLeft], approxOpt)
}

func TestResolveJointsCollinear(t *testing.T) {
	tests := []struct {
		name      string
		points    []math.Vec3
		wantRight math.Vec3
		wantLeft  math.Vec3
	}{
		{
			name:      "along x",
			points:    []math.Vec3{v3(0, 0, 0), v3(10, 0, 0), v3(20, 0, 0)},
			wantRight: v3(10, 0, 1),
			wantLeft:  v3(10, 0, -1),
		},
		{
			name:      "diagonal",
			points:    []math.Vec3{v3(0, 0, 0), v3(10, 0, 10), v3(20, 0, 20)},
			wantRight: v3(10-gomath.Sqrt2/2, 0, 10+gomath.Sqrt2/2),
			wantLeft:  v3(10+gomath.Sqrt2/2, 0, 10-gomath.Sqrt2/2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := BuildSegments(tt.points, 1, false)
			ResolveJoints(set, len(tt.points), FallbackEndpoint)

			diff(t, tt.wantRight, set.Quads[0][TrailRight], approxOpt)
			diff(t, tt.wantLeft, set.Quads[0][TrailLeft], approxOpt)
			diff(t, tt.wantRight, set.Quads[1][LeadRight], approxOpt)
			diff(t, tt.wantLeft, set.Quads[1][LeadLeft], approxOpt)
		})
	}
}

func TestResolveJointsParallelFallback(t *testing.T) {
	points := []math.Vec3{v3(0, 0, 0), v3(10, 0, 0), v3(20, 0, 0)}

	set := BuildSegments(points, 1, false)
	if got := ResolveJoints(set, len(points), FallbackEndpoint); !slices.Equal(got, []int{0}) {
		t.Errorf("parallel joints = %v, want [0]", got)
	}

	set = BuildSegments(points, 1, false)
	ResolveJoints(set, len(points), FallbackOrigin)
	if set.Quads[0][TrailRight] != (math.Vec3{}) || set.Quads[1][LeadLeft] != (math.Vec3{}) {
		t.Errorf("origin fallback should collapse the joint to the origin, got %v / %v",
			set.Quads[0][TrailRight], set.Quads[1][LeadLeft])
	}
}

func TestResolveJointsIdempotent(t *testing.T) {
	points := []math.Vec3{v3(0, 0, 0), v3(10, 0, 4), v3(18, 0, -3), v3(30, 0, 2), v3(41, 0, 9)}
	for _, closed := range []bool{false, true} {
		set := BuildSegments(points, 1.25, closed)
		ResolveJoints(set, len(points), FallbackEndpoint)
		once := slices.Clone(set.Quads)

		ResolveJoints(set, len(points), FallbackEndpoint)
		diff(t, once, set.Quads, approxOpt)
	}
}

func TestResolveJointsOpenEndsUntouched(t *testing.T) {
	points := []math.Vec3{v3(0, 0, 0), v3(10, 0, 4), v3(18, 0, -3)}
	set := BuildSegments(points, 1, false)
	before := slices.Clone(set.Quads)

	ResolveJoints(set, len(points), FallbackEndpoint)

	last := len(set.Quads) - 1
	if set.Quads[0][LeadRight] != before[0][LeadRight] || set.Quads[0][LeadLeft] != before[0][LeadLeft] {
		t.Error("first segment's leading edge changed on an open path")
	}
	if set.Quads[last][TrailRight] != before[last][TrailRight] || set.Quads[last][TrailLeft] != before[last][TrailLeft] {
		t.Error("last segment's trailing edge changed on an open path")
	}
}

func TestResolveJointsClosedLoop(t *testing.T) {
	points := []math.Vec3{v3(0, 0, 0), v3(10, 0, 2), v3(8, 0, 12), v3(-2, 0, 9)}
	set := BuildSegments(points, 1, true)
	before := slices.Clone(set.Quads)

	ResolveJoints(set, len(points), FallbackEndpoint)

	for i := range set.Quads {
		n, ok := set.Next(i)
		if !ok {
			t.Fatalf("closed set has no successor for %d", i)
		}
		cur, next := set.Quads[i], set.Quads[n]
		if cur[TrailRight] != next[LeadRight] || cur[TrailLeft] != next[LeadLeft] {
			t.Errorf("joint %d->%d not shared", i, n)
		}
		// The joint lies on both adjoining edge lines.
		if !onLine(cur[TrailRight], before[i][LeadRight], before[i][TrailRight]) ||
			!onLine(cur[TrailRight], before[n][LeadRight], before[n][TrailRight]) {
			t.Errorf("joint %d right corner %v is off its edges", i, cur[TrailRight])
		}
		if !onLine(cur[TrailLeft], before[i][LeadLeft], before[i][TrailLeft]) ||
			!onLine(cur[TrailLeft], before[n][LeadLeft], before[n][TrailLeft]) {
			t.Errorf("joint %d left corner %v is off its edges", i, cur[TrailLeft])
		}
	}

	// The wrap joint moved the first segment's leading corners.
	if set.Quads[0][LeadRight] == before[0][LeadRight] {
		t.Error("wrap joint did not update segment 0")
	}
}

func TestResolveJointsSkippedForTwoPoints(t *testing.T) {
	points := []math.Vec3{v3(0, 0, 0), v3(10, 0, 5)}
	set := BuildSegments(points, 1, true)
	before := slices.Clone(set.Quads)

	if got := ResolveJoints(set, len(points), FallbackEndpoint); got != nil {
		t.Errorf("expected no joint report, got %v", got)
	}
	diff(t, before, set.Quads)
}

func TestResolveJointsKeepsPathHeight(t *testing.T) {
	points := []math.Vec3{v3(0, 1, 0), v3(10, 4, 10), v3(20, 2, 0)}
	set := BuildSegments(points, 1, false)
	ResolveJoints(set, len(points), FallbackEndpoint)

	if set.Quads[0][TrailRight].Y != 4 || set.Quads[1][LeadLeft].Y != 4 {
		t.Errorf("joint heights = %v / %v, want 4", set.Quads[0][TrailRight].Y, set.Quads[1][LeadLeft].Y)
	}
}

func TestParseParallelFallback(t *testing.T) {
	for _, f := range []ParallelFallback{FallbackEndpoint, FallbackOrigin} {
		got, err := ParseParallelFallback(f.String())
		if err != nil || got != f {
			t.Errorf("ParseParallelFallback(%q) = %v, %v", f.String(), got, err)
		}
	}
	if got, err := ParseParallelFallback(""); err != nil || got != FallbackEndpoint {
		t.Errorf("empty fallback = %v, %v; want endpoint", got, err)
	}
	if _, err := ParseParallelFallback("sideways"); err == nil {
		t.Error("expected error for unknown fallback")
	}
}
