package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	for i := range m {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if m[i] != want {
			t.Errorf("Identity()[%d] = %v, want %v", i, m[i], want)
		}
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * M = %v, want %v", got, m)
	}
}

func TestTranslateMulVec4(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.MulVec4(Vec4{1, 2, 3, 1})
	want := Vec4{11, 22, 33, 1}
	if got != want {
		t.Errorf("MulVec4: got %v, want %v", got, want)
	}

	// Directions ignore translation.
	if got := m.MulVec4(Vec4{1, 2, 3, 0}); got != (Vec4{1, 2, 3, 0}) {
		t.Errorf("MulVec4 direction: got %v", got)
	}
}

func TestMulOrder(t *testing.T) {
	a := Translate(Vec3{1, 0, 0})
	b := Translate(Vec3{0, 2, 0})
	p := a.Mul(b).MulVec4(Vec4{0, 0, 0, 1})
	if p != (Vec4{1, 2, 0, 1}) {
		t.Errorf("translations compose to %v", p)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	view := LookAt(Vec3{10, 50, 80}, Vec3{}, Up)
	proj := Perspective(float32(math.Pi/4), 16.0/9.0, 1, 1000)
	vp := proj.Mul(view)

	inv, ok := vp.Inverse()
	if !ok {
		t.Fatal("view-projection reported singular")
	}
	round := vp.Mul(inv)
	id := Identity()
	for i := range round {
		if math.Abs(float64(round[i]-id[i])) > 1e-3 {
			t.Fatalf("vp * inverse(vp) element %d = %f, want %f", i, round[i], id[i])
		}
	}
}

func TestInverseTranslate(t *testing.T) {
	inv, ok := Translate(Vec3{3, -4, 5}).Inverse()
	if !ok {
		t.Fatal("translation reported singular")
	}
	want := Translate(Vec3{-3, 4, -5})
	for i := range inv {
		if !approx(inv[i], want[i]) {
			t.Fatalf("inverse element %d = %v, want %v", i, inv[i], want[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	got, ok := zero.Inverse()
	if ok {
		t.Error("zero matrix reported invertible")
	}
	if got != Identity() {
		t.Errorf("Inverse of singular matrix = %v, want identity", got)
	}
}

func TestProject(t *testing.T) {
	proj := Perspective(float32(math.Pi/2), 1, 1, 100)

	// A point on the near plane maps to depth -1, the far plane to +1.
	near, ok := proj.Project(Vec3{0, 0, -1})
	if !ok || !approx(near.Z, -1) {
		t.Errorf("near plane depth = %v (ok %v), want -1", near.Z, ok)
	}
	far, _ := proj.Project(Vec3{0, 0, -100})
	if !approx(far.Z, 1) {
		t.Errorf("far plane depth = %v, want 1", far.Z)
	}

	// With a 90 degree fov, x == -z lands on the right edge.
	edge, _ := proj.Project(Vec3{5, 0, -5})
	if !approx(edge.X, 1) {
		t.Errorf("edge x = %v, want 1", edge.X)
	}

	if _, ok := proj.Project(Vec3{1, 1, 0}); ok {
		t.Error("point at the eye plane should have w = 0")
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 10}
	view := LookAt(eye, Vec3{}, Up)

	// Eye maps to the view-space origin.
	p := view.MulVec4(Vec4{eye.X, eye.Y, eye.Z, 1})
	if !approx(p[0], 0) || !approx(p[1], 0) || !approx(p[2], 0) {
		t.Errorf("LookAt eye in view space = %v, want origin", p)
	}

	// Target lies straight ahead on -Z.
	c := view.MulVec4(Vec4{0, 0, 0, 1})
	if !approx(c[2], -10) {
		t.Errorf("LookAt target z = %f, want -10", c[2])
	}
}
