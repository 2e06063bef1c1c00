package road

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/midgard-road/pkg/math"
)

var approxOpt = cmpopts.EquateApprox(0, 1e-3)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func v3(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

// castCall records one Raycast invocation.
type castCall struct {
	Origin      math.Vec3
	Direction   math.Vec3
	MaxDistance float32
}

// scriptedGround answers the n-th cast of each vertex from a fixed script.
type scriptedGround struct {
	hits  []*math.Vec3
	calls []castCall
}

func (g *scriptedGround) Raycast(origin, direction math.Vec3, maxDistance float32) (math.Vec3, bool) {
	n := len(g.calls)
	g.calls = append(g.calls, castCall{origin, direction, maxDistance})
	if n < len(g.hits) && g.hits[n] != nil {
		return *g.hits[n], true
	}
	return math.Vec3{}, false
}

// planeGround is an infinite two-sided plane at a fixed height.
type planeGround struct {
	height float32
	casts  int
}

func (g *planeGround) Raycast(origin, direction math.Vec3, maxDistance float32) (math.Vec3, bool) {
	g.casts++
	if direction.Y == 0 {
		return math.Vec3{}, false
	}
	t := (g.height - origin.Y) / direction.Y
	if t < 0 || t > maxDistance {
		return math.Vec3{}, false
	}
	return origin.Add(direction.Scale(t)), true
}

// onLine reports whether p lies on the ground-plane line through a and b.
func onLine(p, a, b math.Vec3) bool {
	ab := b.XZ().Sub(a.XZ())
	ap := p.XZ().Sub(a.XZ())
	cross := ab.X*ap.Y - ab.Y*ap.X
	return cross*cross <= 1e-6*(ab.X*ab.X+ab.Y*ab.Y)*(ap.X*ap.X+ap.Y*ap.Y)+1e-8
}
