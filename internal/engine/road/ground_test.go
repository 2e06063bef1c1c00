package road

import (
	"testing"

	"github.com/Faultbox/midgard-road/pkg/math"
)

func hitAt(y float32) *math.Vec3 {
	return &math.Vec3{Y: y}
}

func TestGroundHeightFallbackOrder(t *testing.T) {
	v := v3(3, 7, -2)
	down := math.Up.Neg()

	tests := []struct {
		name      string
		hits      []*math.Vec3
		want      float32
		wantOK    bool
		wantCalls int
	}{
		{"hit below", []*math.Vec3{hitAt(1)}, 1, true, 1},
		{"hit above after miss below", []*math.Vec3{nil, hitAt(9)}, 9, true, 2},
		{"high cast after both miss", []*math.Vec3{nil, nil, hitAt(4)}, 4, true, 3},
		{"all miss keeps height", nil, 7, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &scriptedGround{hits: tt.hits}
			got, ok := GroundHeight(g, v)

			if got != tt.want || ok != tt.wantOK {
				t.Errorf("GroundHeight = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
			if len(g.calls) != tt.wantCalls {
				t.Fatalf("made %d casts, want %d", len(g.calls), tt.wantCalls)
			}

			want := []castCall{
				{v, down, Unbounded},
				{v, math.Up, Unbounded},
				{v3(3, 7+HighCastHeight, -2), down, HighCastDistance},
			}
			diff(t, want[:tt.wantCalls], g.calls)
		})
	}
}

func TestGroundHeightNilQuery(t *testing.T) {
	h, ok := GroundHeight(nil, v3(1, 2, 3))
	if h != 2 || ok {
		t.Errorf("GroundHeight(nil) = %v, %v; want 2, false", h, ok)
	}
}

func TestGroundHeightPlane(t *testing.T) {
	g := &planeGround{height: 5}

	// Above the plane: the first cast hits.
	if h, ok := GroundHeight(g, v3(0, 20, 0)); !ok || h != 5 {
		t.Errorf("above plane: got %v, %v", h, ok)
	}
	// Below the plane: the upward cast hits.
	if h, ok := GroundHeight(g, v3(0, -20, 0)); !ok || h != 5 {
		t.Errorf("below plane: got %v, %v", h, ok)
	}
}

func TestProjectToGround(t *testing.T) {
	verts := []math.Vec3{v3(0, 0, 1), v3(0, 0, -1), v3(10, 2, 1), v3(10, 2, -1)}
	g := &planeGround{height: 5}

	origin, misses := ProjectToGround(verts, g, 0.5)

	diff(t, v3(5, 1, 0), origin, approxOpt)
	if misses != 0 {
		t.Errorf("misses = %d, want 0", misses)
	}

	want := []math.Vec3{v3(-5, 4.5, 1), v3(-5, 4.5, -1), v3(5, 4.5, 1), v3(5, 4.5, -1)}
	diff(t, want, verts, approxOpt)
}

func TestProjectToGroundMissKeepsHeight(t *testing.T) {
	verts := []math.Vec3{v3(0, 2, 0), v3(4, 6, 0)}

	origin, misses := ProjectToGround(verts, &scriptedGround{}, 0.1)

	if misses != 2 {
		t.Errorf("misses = %d, want 2", misses)
	}
	// World heights are the original heights plus the offset.
	diff(t, float32(2.1), verts[0].Add(origin).Y, approxOpt)
	diff(t, float32(6.1), verts[1].Add(origin).Y, approxOpt)
}

func TestFlatGround(t *testing.T) {
	g := FlatGround{Height: -3}

	tests := []struct {
		name   string
		origin math.Vec3
		dir    math.Vec3
		max    float32
		want   float32
		wantOK bool
	}{
		{"below", v3(1, 4, 1), math.Up.Neg(), Unbounded, -3, true},
		{"above", v3(1, -9, 1), math.Up, Unbounded, -3, true},
		{"wrong way", v3(1, 4, 1), math.Up, Unbounded, 0, false},
		{"too short", v3(1, 4, 1), math.Up.Neg(), 5, 0, false},
		{"horizontal", v3(1, 4, 1), v3(1, 0, 0), Unbounded, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := g.Raycast(tt.origin, tt.dir, tt.max)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && hit.Y != tt.want {
				t.Errorf("hit.Y = %v, want %v", hit.Y, tt.want)
			}
		})
	}

	if _, ok := GroundHeight(NoGround{}, v3(0, 1, 0)); ok {
		t.Error("NoGround reported a hit")
	}
}
