package core

import (
	"math"
	"testing"
)

func TestRadicalInverse(t *testing.T) {
	tests := []struct {
		i        uint32
		expected float64
	}{
		{0, 0},
		{1, 0.5},
		{2, 0.25},
		{3, 0.75},
		{4, 0.125},
		{5, 0.625},
	}

	for _, tt := range tests {
		got := RadicalInverse(tt.i)
		if math.Abs(got-tt.expected) > 1e-15 {
			t.Errorf("RadicalInverse(%d) = %f, expected %f", tt.i, got, tt.expected)
		}
	}
}

func TestHammersley(t *testing.T) {
	const n = 16
	seen := make(map[float64]bool)
	for i := 0; i < n; i++ {
		u, v := Hammersley(i, n)
		if u < 0 || u >= 1 || v < 0 || v >= 1 {
			t.Fatalf("Point %d out of unit square: (%f, %f)", i, u, v)
		}
		if seen[u] {
			t.Errorf("Duplicate radical inverse %f at index %d", u, i)
		}
		seen[u] = true
	}
}

func TestNewRandom_Deterministic(t *testing.T) {
	a := NewRandom(7)
	b := NewRandom(7)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 {
		t.Error("Expected clamp to upper bound")
	}
	if Clamp(-1.5, 0.0, 1.0) != 0.0 {
		t.Error("Expected clamp to lower bound")
	}
	if Clamp(0.25, 0.0, 1.0) != 0.25 {
		t.Error("Expected value inside range to pass through")
	}
}

func TestFract(t *testing.T) {
	if got := Fract(2.75); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Fract(2.75) = %f", got)
	}
	if got := Fract(-0.25); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Fract(-0.25) = %f", got)
	}
}
