package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-road/pkg/math"
)

func approx(a, b math.Vec3) bool {
	const eps = 1e-5
	return gomath.Abs(float64(a.X-b.X)) < eps &&
		gomath.Abs(float64(a.Y-b.Y)) < eps &&
		gomath.Abs(float64(a.Z-b.Z)) < eps
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		lon, lat float32
		want     math.Vec3
	}{
		{0, 0, math.Vec3{Z: 1}},
		{90, 0, math.Vec3{X: 1}},
		{180, 0, math.Vec3{Z: -1}},
		{0, 90, math.Vec3{Y: 1}},
		{45, 45, math.Vec3{X: 0.5, Y: float32(gomath.Sqrt2 / 2), Z: 0.5}},
	}
	for _, tt := range tests {
		got := SunDirection(tt.lon, tt.lat)
		if !approx(got, tt.want) {
			t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
		}
		if l := got.Length(); gomath.Abs(float64(l-1)) > 1e-5 {
			t.Errorf("SunDirection(%v, %v) length = %v", tt.lon, tt.lat, l)
		}
	}
}

func TestLightDirectionPointsDown(t *testing.T) {
	if d := LightDirection(30, 60); d.Y >= 0 {
		t.Errorf("LightDirection Y = %v, want negative", d.Y)
	}
}
