package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectCentered(t *testing.T) {
	r := NewRect(0, 0, 80, 24).Centered(20, 10)
	if r.X != 30 || r.Y != 7 || r.W != 20 || r.H != 10 {
		t.Errorf("Centered() = %+v, expected {30 7 20 10}", r)
	}
	if r.Right() != 50 || r.Bottom() != 17 {
		t.Errorf("edges = (%d, %d), expected (50, 17)", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if ClampF(-0.5, 0, 1) != 0 {
		t.Error("ClampF(-0.5, 0, 1) should be 0")
	}
	if ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF(1.5, 0, 1) should be 1")
	}
	if ClampF(0.25, 0, 1) != 0.25 {
		t.Error("ClampF(0.25, 0, 1) should be 0.25")
	}
}
