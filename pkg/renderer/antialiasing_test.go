package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// countingTracer returns a constant color and records every ray it is asked to trace
type countingTracer struct {
	color core.Vec3
	rays  []core.Ray
}

func (c *countingTracer) TraceRay(ray core.Ray, s *scene.Scene, depth int) core.Vec3 {
	c.rays = append(c.rays, ray)
	return c.color
}

func newSamplerScene(samples int) *scene.Scene {
	s := &scene.Scene{
		Settings: scene.DefaultRenderSettings(),
		Width:    4,
		Height:   3,
	}
	s.Settings.SamplesPerPixel = samples
	s.Camera = geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewVec3(0, 0, 0),
		Direction:   core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 4.0 / 3.0,
	})
	return s
}

func TestNewAntiAliaser(t *testing.T) {
	tests := []struct {
		name     scene.AntiAliasing
		expected AntiAliaser
	}{
		{scene.NoAliasing, NoAliasing{}},
		{scene.RandomAliasing, RandomAliasing{}},
		{scene.JitteredSampling, JitteredSampling{}},
		{scene.Supersampling, Supersampling{}},
		{scene.Hammersley, HammersleyAliasing{}},
		{scene.CorrelatedMultiJittered, CorrelatedMultiJittered{}},
		{"supersamplingaliasing", Supersampling{}},
		{"cmj", CorrelatedMultiJittered{}},
		{"none", NoAliasing{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got, err := NewAntiAliaser(tt.name)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %T, got %T", tt.expected, got)
			}
		})
	}

	if _, err := NewAntiAliaser("Blurry"); !errors.Is(err, core.ErrUnknownAntiAliasing) {
		t.Errorf("Expected ErrUnknownAntiAliasing, got %v", err)
	}
}

// A constant tracer exposes each strategy's sample count and denominator
func TestAntiAliaserDenominators(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	tests := []struct {
		name     string
		sampler  AntiAliaser
		samples  int
		rays     int
		expected float64
	}{
		{"none", NoAliasing{}, 5, 1, 1},
		{"random", RandomAliasing{}, 5, 5, 1},
		{"jittered", JitteredSampling{}, 5, 2, 1},
		{"jittered square", JitteredSampling{}, 9, 3, 1},
		{"supersampling", Supersampling{}, 5, 4, 1},
		{"supersampling square", Supersampling{}, 9, 9, 1},
		{"hammersley", HammersleyAliasing{}, 5, 5, 1},
		{"cmj truncated grid", CorrelatedMultiJittered{}, 5, 4, 0.8},
		{"cmj square", CorrelatedMultiJittered{}, 16, 16, 1},
		{"zero budget", RandomAliasing{}, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSamplerScene(tt.samples)
			tracer := &countingTracer{color: white}
			random := core.NewRandom(1)

			got := tt.sampler.PixelColor(1, 1, s.Width, s.Height, s.Camera, tracer, s, random)

			if len(tracer.rays) != tt.rays {
				t.Errorf("Expected %d rays, got %d", tt.rays, len(tracer.rays))
			}
			if taken := tt.sampler.SamplesTaken(tt.samples); taken != tt.rays {
				t.Errorf("SamplesTaken: expected %d, got %d", tt.rays, taken)
			}
			expected := white.Multiply(tt.expected)
			if !got.Equals(expected, 1e-12) {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

// poisonedTracer returns NaN for its first ray and a constant color afterwards
type poisonedTracer struct {
	color core.Vec3
	calls int
}

func (p *poisonedTracer) TraceRay(ray core.Ray, s *scene.Scene, depth int) core.Vec3 {
	p.calls++
	if p.calls == 1 {
		return core.NewVec3(math.NaN(), 0, math.Inf(1))
	}
	return p.color
}

func TestNonFiniteSampleCountsAsBlack(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	tests := []struct {
		name     string
		sampler  AntiAliaser
		samples  int
		expected float64
	}{
		{"random", RandomAliasing{}, 4, 0.75},
		{"supersampling", Supersampling{}, 4, 0.75},
		{"hammersley", HammersleyAliasing{}, 4, 0.75},
		{"cmj", CorrelatedMultiJittered{}, 4, 0.75},
		{"none", NoAliasing{}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSamplerScene(tt.samples)
			tracer := &poisonedTracer{color: white}

			got := tt.sampler.PixelColor(1, 1, s.Width, s.Height, s.Camera, tracer, s, core.NewRandom(1))

			if !got.IsFinite() {
				t.Fatalf("Expected a finite pixel, got %v", got)
			}
			expected := white.Multiply(tt.expected)
			if !got.Equals(expected, 1e-12) {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestNoAliasingRayThroughPixelCorner(t *testing.T) {
	s := newSamplerScene(1)
	tracer := &countingTracer{}
	NoAliasing{}.PixelColor(2, 1, s.Width, s.Height, s.Camera, tracer, s, core.NewRandom(1))

	expected := s.Camera.GetRay(2.0/3.0, 1.0/2.0)
	got := tracer.rays[0]
	if !got.Origin.Equals(expected.Origin, 1e-12) || !got.Direction.Equals(expected.Direction, 1e-12) {
		t.Errorf("Expected ray %v, got %v", expected, got)
	}
}

func TestSamplesStayNearPixel(t *testing.T) {
	samplers := []AntiAliaser{RandomAliasing{}, JitteredSampling{}, Supersampling{}, HammersleyAliasing{}, CorrelatedMultiJittered{}}
	s := newSamplerScene(16)

	// Bounds of the sample footprint for pixel (1,1): [1,2) in each axis
	lo := s.Camera.GetRay(1.0/3.0, 1.0/2.0).Direction
	hi := s.Camera.GetRay(2.0/3.0, 2.0/2.0).Direction

	for _, sampler := range samplers {
		tracer := &countingTracer{}
		sampler.PixelColor(1, 1, s.Width, s.Height, s.Camera, tracer, s, core.NewRandom(3))
		for _, ray := range tracer.rays {
			d := ray.Direction
			if d.X < lo.X-1e-9 || d.X > hi.X+1e-9 || d.Y < lo.Y-1e-9 || d.Y > hi.Y+1e-9 {
				t.Errorf("%T: sample direction %v outside pixel footprint [%v, %v]", sampler, d, lo, hi)
			}
		}
	}
}

func TestHammersleyIsDeterministic(t *testing.T) {
	s := newSamplerScene(8)
	first := &countingTracer{}
	second := &countingTracer{}
	HammersleyAliasing{}.PixelColor(0, 0, s.Width, s.Height, s.Camera, first, s, core.NewRandom(1))
	HammersleyAliasing{}.PixelColor(0, 0, s.Width, s.Height, s.Camera, second, s, core.NewRandom(99))

	for k := range first.rays {
		if first.rays[k] != second.rays[k] {
			t.Fatalf("Sample %d differs between seeds: %v vs %v", k, first.rays[k], second.rays[k])
		}
	}
}
