package math

import "math"

// Mat4 is a column-major 4x4 matrix as OpenGL expects it: element
// (row r, column c) is at index c*4+r.
type Mat4 [16]float32

// Vec4 is a homogeneous vector.
type Vec4 [4]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	for i := range 4 {
		m[i*5] = 1
	}
	return m
}

// Translate returns a translation by t.
func Translate(t Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Perspective returns a right-handed projection with clip depth in [-1, 1].
// fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	depth := 1 / (near - far)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) * depth
	m[11] = -1
	m[14] = 2 * far * near * depth
	return m
}

// LookAt returns a view matrix for a camera at eye facing target.
func LookAt(eye, target, up Vec3) Mat4 {
	fwd := target.Sub(eye).Normalize()
	side := fwd.Cross(up).Normalize()
	camUp := side.Cross(fwd)

	m := Identity()
	for i, axis := range [3]Vec3{side, camUp, fwd.Neg()} {
		m[0*4+i] = axis.X
		m[1*4+i] = axis.Y
		m[2*4+i] = axis.Z
		m[3*4+i] = -axis.Dot(eye)
	}
	return m
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for c := range 4 {
		for r := range 4 {
			var sum float32
			for k := range 4 {
				sum += m[k*4+r] * other[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for r := range 4 {
		out[r] = m[r]*v[0] + m[4+r]*v[1] + m[8+r]*v[2] + m[12+r]*v[3]
	}
	return out
}

// Project transforms p as a point and divides by w. ok is false when w is
// zero.
func (m Mat4) Project(p Vec3) (out Vec3, ok bool) {
	h := m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
	if h[3] == 0 {
		return Vec3{h[0], h[1], h[2]}, false
	}
	return Vec3{h[0] / h[3], h[1] / h[3], h[2] / h[3]}, true
}

// Inverse returns the inverse of m by Gauss-Jordan elimination with partial
// pivoting. ok is false when m is singular.
func (m Mat4) Inverse() (inv Mat4, ok bool) {
	// Row-major working copies in float64.
	var a, b [4][4]float64
	for r := range 4 {
		for c := range 4 {
			a[r][c] = float64(m[c*4+r])
		}
		b[r][r] = 1
	}

	for col := range 4 {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return Identity(), false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		scale := 1 / a[col][col]
		for c := range 4 {
			a[col][c] *= scale
			b[col][c] *= scale
		}
		for r := range 4 {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for c := range 4 {
				a[r][c] -= f * a[col][c]
				b[r][c] -= f * b[col][c]
			}
		}
	}

	for r := range 4 {
		for c := range 4 {
			inv[c*4+r] = float32(b[r][c])
		}
	}
	return inv, true
}
