package math

import "math"

// Vec3 is a 3D vector. Y is up.
type Vec3 struct {
	X, Y, Z float32
}

// Up is the world up direction.
var Up = Vec3{0, 1, 0}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// XZ returns the XZ components as Vec2.
func (v Vec3) XZ() Vec2 {
	return Vec2{v.X, v.Z}
}

// WithY returns v with its height replaced.
func (v Vec3) WithY(y float32) Vec3 {
	return Vec3{v.X, y, v.Z}
}

// RotateAroundY rotates v about the vertical axis through origin.
// Only X and Z change:
//
//	x' = px*cos(theta) + pz*sin(theta)
//	z' = -px*sin(theta) + pz*cos(theta)
//
// so a positive theta turns clockwise when viewed from above with +Z pointing down the screen.
func (v Vec3) RotateAroundY(origin Vec3, theta float32) Vec3 {
	s := float32(math.Sin(float64(theta)))
	c := float32(math.Cos(float64(theta)))

	px := v.X - origin.X
	pz := v.Z - origin.Z

	return Vec3{
		X: px*c + pz*s + origin.X,
		Y: v.Y,
		Z: -px*s + pz*c + origin.Z,
	}
}

// Centroid returns the arithmetic mean of points, or the zero vector for an empty slice.
func Centroid(points []Vec3) Vec3 {
	if len(points) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(points)))
}
