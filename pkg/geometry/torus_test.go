package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func newTestTorus(t *testing.T) *Torus {
	t.Helper()
	torus, err := NewTorus(core.NewVec3(0, 0, 0), 2, 0.5, material.NewWhiteMatte())
	if err != nil {
		t.Fatalf("NewTorus failed: %v", err)
	}
	return torus
}

func TestNewTorus_Validation(t *testing.T) {
	tests := []struct {
		name         string
		major, minor float64
	}{
		{"zero minor", 2, 0},
		{"negative major", -2, 0.5},
		{"minor equals major", 1, 1},
		{"minor larger than major", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTorus(core.NewVec3(0, 0, 0), tt.major, tt.minor, nil)
			if !errors.Is(err, core.ErrInvalidGeometry) {
				t.Errorf("Expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestTorus_Intersections_AlongAxis(t *testing.T) {
	torus := newTestTorus(t)

	// Straight down the hole: the tube is never crossed
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	roots := torus.Intersections(ray)
	if len(roots)%2 != 0 {
		t.Errorf("Expected an even number of intersections, got %d: %v", len(roots), roots)
	}
	if len(roots) != 0 {
		t.Errorf("Expected no intersections through the hole, got %v", roots)
	}
	if _, isHit := torus.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Expected axis ray to miss")
	}
}

func TestTorus_Intersections_ThroughBothTubes(t *testing.T) {
	torus := newTestTorus(t)

	ray := core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0))
	roots := torus.Intersections(ray)
	expected := []float64{2.5, 3.5, 6.5, 7.5}
	if len(roots) != len(expected) {
		t.Fatalf("Expected %d roots, got %v", len(expected), roots)
	}
	for i, root := range roots {
		if math.Abs(root-expected[i]) > 1e-6 {
			t.Errorf("Root %d: expected %f, got %f", i, expected[i], root)
		}
	}
}

func TestTorus_Hit(t *testing.T) {
	torus := newTestTorus(t)

	tests := []struct {
		name           string
		ray            core.Ray
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "outer equator",
			ray:            core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0)),
			expectedT:      2.5,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:           "unnormalized direction",
			ray:            core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-2, 0, 0)),
			expectedT:      1.25,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:           "top of the tube",
			ray:            core.NewRay(core.NewVec3(0, 5, 2), core.NewVec3(0, -1, 0)),
			expectedT:      4.5,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:           "inner equator from the hole",
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
			expectedT:      1.5,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := torus.Hit(tt.ray, 0.001, 1000)
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-6 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if !hit.Normal.Equals(tt.expectedNormal, 1e-5) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if !hit.FrontFace {
				t.Error("Expected front face hit")
			}
		})
	}
}

func TestTorus_Hit_Interval(t *testing.T) {
	torus := newTestTorus(t)
	ray := core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0))

	// Skipping the first tube entry yields the exit at 3.5
	hit, isHit := torus.Hit(ray, 3, 1000)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-3.5) > 1e-6 {
		t.Errorf("Expected t=3.5, got %f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Expected back face when leaving the tube")
	}
}
