package core

import (
	"math"
	"testing"
)

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        BoxAt(V(0, 0), V(10, 10)),
			b:        BoxAt(V(5, 5), V(10, 10)),
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        BoxAt(V(0, 0), V(10, 10)),
			b:        BoxAt(V(20, 0), V(10, 10)),
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        BoxAt(V(0, 0), V(10, 10)),
			b:        BoxAt(V(0, -20), V(10, 10)),
			expected: false,
		},
		{
			name:     "touching edges",
			a:        BoxAt(V(0, 0), V(10, 10)),
			b:        BoxAt(V(10, 0), V(10, 10)),
			expected: false,
		},
		{
			name:     "contained box",
			a:        BoxAt(V(0, 0), V(100, 100)),
			b:        BoxAt(V(3, -4), V(2, 2)),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxAt(t *testing.T) {
	b := BoxAt(V(10, -4), V(6, 2))

	if b.Min != V(7, -5) || b.Max != V(13, -3) {
		t.Errorf("BoxAt() = %+v, expected min (7,-5) max (13,-3)", b)
	}
	if b.Center() != V(10, -4) {
		t.Errorf("Center() = %+v, expected (10,-4)", b.Center())
	}
	if b.Width() != 6 || b.Height() != 2 {
		t.Errorf("size = %vx%v, expected 6x2", b.Width(), b.Height())
	}
}

func TestVecOps(t *testing.T) {
	v := V(3, 4)

	if v.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", v.Len())
	}
	if got := v.Add(V(1, 1)).Sub(V(2, 2)); got != V(2, 3) {
		t.Errorf("Add/Sub = %+v, expected (2,3)", got)
	}
	if got := v.Scale(2); got != V(6, 8) {
		t.Errorf("Scale(2) = %+v, expected (6,8)", got)
	}

	left := FromAngle(math.Pi, 2)
	if math.Abs(left.X+2) > 1e-9 || math.Abs(left.Y) > 1e-9 {
		t.Errorf("FromAngle(pi, 2) = %+v, expected (-2,0)", left)
	}
	if math.Abs(V(0, -1).Angle()+math.Pi/2) > 1e-9 {
		t.Errorf("Angle() of down vector = %v, expected -pi/2", V(0, -1).Angle())
	}
}

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
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
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
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(400, -384, 384); got != 384 {
		t.Errorf("ClampF(400, -384, 384) = %v, expected 384", got)
	}
	if got := ClampF(-500, -384, 384); got != -384 {
		t.Errorf("ClampF(-500, -384, 384) = %v, expected -384", got)
	}
}
