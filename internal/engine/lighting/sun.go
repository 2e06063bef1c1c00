// Package lighting converts sun angles to light directions.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun. Longitude rotates around Y starting at
// +Z; latitude is the elevation above the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := float64(longitude) * gomath.Pi / 180
	lat := float64(latitude) * gomath.Pi / 180

	return math.Vec3{
		X: float32(gomath.Cos(lat) * gomath.Sin(lon)),
		Y: float32(gomath.Sin(lat)),
		Z: float32(gomath.Cos(lat) * gomath.Cos(lon)),
	}
}

// LightDirection is the direction sunlight travels, the opposite of
// SunDirection.
func LightDirection(longitude, latitude float32) math.Vec3 {
	return SunDirection(longitude, latitude).Neg()
}
