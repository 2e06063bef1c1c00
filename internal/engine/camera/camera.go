// Package camera provides the orbit camera used by the road viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        40.0,
		RotationX:       0.8,
		RotationY:       0.0,
		FovY:            gomath.Pi / 4,
		Near:            0.1,
		Far:             5000.0,
		MinDistance:     2.0,
		MaxDistance:     2000.0,
		MinPitch:        0.05,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandleMovement pans the camera center point on the ground plane.
func (c *OrbitCamera) HandleMovement(forward, right float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	dirX := float32(gomath.Sin(float64(c.RotationY)))
	dirZ := float32(gomath.Cos(float64(c.RotationY)))

	// Right direction (perpendicular to forward)
	rightX := float32(gomath.Cos(float64(c.RotationY)))
	rightZ := float32(-gomath.Sin(float64(c.RotationY)))

	// Negate forward so W moves "into" the scene
	c.Center.X += (-dirX*forward + rightX*right) * speed
	c.Center.Z += (-dirZ*forward + rightZ*right) * speed
}

// FitToBounds centers the camera on a box and backs off until it is in view.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	size := max.Sub(min).Length()
	dist := size / (2 * float32(gomath.Tan(float64(c.FovY)/2)))
	c.Distance = dist
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}

	c.RotationX = 0.8 // Look down at ~45 degrees
	c.RotationY = 0.0
}
