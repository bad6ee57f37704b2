package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi/2, 3)
	if !near(v.X(), 0) || !near(v.Y(), 3) {
		t.Errorf("FromAngle(Pi/2, 3) = %v, expected (0, 3)", v)
	}
	if !near(Angle(v), math.Pi/2) {
		t.Errorf("Angle() = %f, expected %f", Angle(v), math.Pi/2)
	}
}

func TestRotate(t *testing.T) {
	v := Rotate(V(1, 0), math.Pi/2)
	if !near(v.X(), 0) || !near(v.Y(), 1) {
		t.Errorf("Rotate((1,0), Pi/2) = %v, expected (0, 1)", v)
	}
	p := Perp(V(1, 0))
	if !near(p.X(), 0) || !near(p.Y(), 1) {
		t.Errorf("Perp((1,0)) = %v, expected (0, 1)", p)
	}
}

func TestClampLen(t *testing.T) {
	tests := []struct {
		name     string
		in       Vec
		max      float64
		expected float64
	}{
		{"under limit", V(3, 4), 10, 5},
		{"over limit", V(30, 40), 10, 10},
		{"zero max", V(3, 4), 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClampLen(tc.in, tc.max).Len()
			if !near(got, tc.expected) {
				t.Errorf("ClampLen(%v, %f).Len() = %f, expected %f", tc.in, tc.max, got, tc.expected)
			}
		})
	}
}

func TestUnitZero(t *testing.T) {
	if Unit(Zero) != Zero {
		t.Error("Unit(Zero) should be Zero")
	}
	if Unit(V(math.NaN(), 1)) != Zero {
		t.Error("Unit of NaN vector should be Zero")
	}
	if !near(Unit(V(0, -7)).Len(), 1) {
		t.Error("Unit should have length 1")
	}
}

func TestFinite(t *testing.T) {
	if !Finite(V(1, 2)) {
		t.Error("Finite((1,2)) should be true")
	}
	if Finite(V(math.Inf(1), 0)) {
		t.Error("Finite(Inf) should be false")
	}
}

func TestStepAngle(t *testing.T) {
	tests := []struct {
		name                  string
		current, target, step float64
		expected              float64
	}{
		{"reaches target", 0, 0.05, 0.1, 0.05},
		{"steps positive", 0, 1, 0.1, 0.1},
		{"steps negative", 0, -1, 0.1, -0.1},
		{"wraps shortest way", 3.1, -3.1, 0.05, 3.15 - 2*math.Pi},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StepAngle(tc.current, tc.target, tc.step)
			if math.Abs(AngleDiff(got, tc.expected)) > 1e-6 {
				t.Errorf("StepAngle(%f, %f, %f) = %f, expected %f", tc.current, tc.target, tc.step, got, tc.expected)
			}
		})
	}
}

func TestWrapAngle(t *testing.T) {
	if !near(WrapAngle(2.5*math.Pi), 0.5*math.Pi) {
		t.Errorf("WrapAngle(2.5Pi) = %f, expected Pi/2", WrapAngle(2.5*math.Pi))
	}
	if !near(WrapAngle(-math.Pi), math.Pi) {
		t.Errorf("WrapAngle(-Pi) = %f, expected Pi", WrapAngle(-math.Pi))
	}
}

func TestRayDistance(t *testing.T) {
	tests := []struct {
		name          string
		p             Vec
		expectedDist  float64
		expectedAlong float64
	}{
		{"on the ray", V(5, 0), 0, 5},
		{"beside the ray", V(5, 3), 3, 5},
		{"behind origin", V(-4, 3), 5, 0},
		{"past the end", V(13, 0), 3, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist, along := RayDistance(Zero, 0, 10, tc.p)
			if !near(dist, tc.expectedDist) || !near(along, tc.expectedAlong) {
				t.Errorf("RayDistance(%v) = (%f, %f), expected (%f, %f)", tc.p, dist, along, tc.expectedDist, tc.expectedAlong)
			}
		})
	}
}
