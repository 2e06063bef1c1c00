// Package math provides the vector and matrix types shared by the road builder and the viewer.
package math

import "math"

// Vec2 is a 2D vector. For ground-plane work X maps to world X and Y to world Z.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Mul returns the component-wise product.
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

// Swap returns the vector with its components exchanged.
func (v Vec2) Swap() Vec2 {
	return Vec2{v.Y, v.X}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// XZ lifts a ground-plane vector back to 3D at height y.
func (v Vec2) XZ(y float32) Vec3 {
	return Vec3{v.X, y, v.Y}
}
