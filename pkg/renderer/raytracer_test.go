package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestRenderAmbientScene(t *testing.T) {
	s := scene.NewAmbientScene()
	rt, err := NewRaytracer(s)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	img, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Width != 100 || img.Height != 100 || len(img.Pixels) != 100 || len(img.Pixels[0]) != 100 {
		t.Fatalf("Expected 100x100 image, got %dx%d", img.Width, img.Height)
	}

	// Every sphere pixel is color*kA*light under ambient-only lighting
	center := img.Pixels[50][50]
	expected := core.NewVec3(0.4, 0.15, 0.15)
	if !center.Equals(expected, 1e-9) {
		t.Errorf("Expected center %v, got %v", expected, center)
	}

	// Row 0 is the top of the image, so its first pixel looks along GetRay(0, 1)
	corners := []struct {
		name     string
		row, col int
		u, v     float64
	}{
		{"top left", 0, 0, 0, 1},
		{"top right", 0, 99, 1, 1},
		{"bottom left", 99, 0, 0, 0},
		{"bottom right", 99, 99, 1, 0},
	}
	for _, c := range corners {
		t.Run(c.name, func(t *testing.T) {
			want := integrator.Background(s.Camera.GetRay(c.u, c.v).Direction, s.Background)
			if got := img.Pixels[c.row][c.col]; !got.Equals(want, 1e-9) {
				t.Errorf("Expected background %v, got %v", want, got)
			}
		})
	}

	if stats.JobID == "" {
		t.Error("Expected a job ID")
	}
	if stats.TotalPixels != 10000 || stats.TotalSamples != 10000 {
		t.Errorf("Expected 10000 pixels and samples, got %d and %d", stats.TotalPixels, stats.TotalSamples)
	}
	if stats.Rays != 10000 {
		t.Errorf("Expected one ray per pixel with recursion disabled, got %d", stats.Rays)
	}
}

func TestRenderParallelMatchesSequential(t *testing.T) {
	for _, strategy := range scene.AntiAliasingStrategies {
		t.Run(string(strategy), func(t *testing.T) {
			s := scene.NewDefaultScene()
			if err := s.SetImageSize(24, 16); err != nil {
				t.Fatal(err)
			}
			s.Settings.AntiAliasing = strategy
			s.Settings.SamplesPerPixel = 4
			s.Settings.Seed = 11

			s.Settings.Parallel = true
			s.Settings.Workers = 4
			parallel := renderScene(t, s)

			s.Settings.Parallel = false
			sequential := renderScene(t, s)

			for row := range parallel {
				for col := range parallel[row] {
					if parallel[row][col] != sequential[row][col] {
						t.Fatalf("Pixel (%d,%d) differs: %v vs %v", col, row, parallel[row][col], sequential[row][col])
					}
				}
			}
		})
	}
}

func renderScene(t *testing.T, s *scene.Scene) [][]core.Vec3 {
	t.Helper()
	rt, err := NewRaytracer(s)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	img, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return img.Pixels
}

func TestRenderPixelsAreFinite(t *testing.T) {
	s := scene.NewMirrorsScene()
	pixels, err := Render(context.Background(), s, 16, 12)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for row := range pixels {
		for col, c := range pixels[row] {
			if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
				t.Fatalf("Pixel (%d,%d) is not a finite non-negative color: %v", col, row, c)
			}
		}
	}
}

func TestRenderDoesNotResizeCallerScene(t *testing.T) {
	s := scene.NewAmbientScene()
	camera := s.Camera

	pixels, err := Render(context.Background(), s, 8, 4)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(pixels) != 4 || len(pixels[0]) != 8 {
		t.Errorf("Expected 8x4 pixels, got %dx%d", len(pixels[0]), len(pixels))
	}
	if s.Width != 100 || s.Height != 100 || s.Camera != camera {
		t.Errorf("Expected caller scene unchanged, got %dx%d", s.Width, s.Height)
	}
}

func TestRenderExposure(t *testing.T) {
	s := scene.NewAmbientScene()
	base, err := Render(context.Background(), s, 10, 10)
	if err != nil {
		t.Fatal(err)
	}

	s.Settings.Exposure = 2
	bright, err := Render(context.Background(), s, 10, 10)
	if err != nil {
		t.Fatal(err)
	}

	if !bright[5][5].Equals(base[5][5].Multiply(2), 1e-12) {
		t.Errorf("Expected exposure to double %v, got %v", base[5][5], bright[5][5])
	}
}

func TestRenderErrors(t *testing.T) {
	t.Run("invalid size", func(t *testing.T) {
		_, err := Render(context.Background(), scene.NewAmbientScene(), 0, 10)
		if !errors.Is(err, core.ErrInvalidImageSize) {
			t.Errorf("Expected ErrInvalidImageSize, got %v", err)
		}
	})

	t.Run("unknown antialiasing", func(t *testing.T) {
		s := scene.NewAmbientScene()
		s.Settings.AntiAliasing = "Smudge"
		if _, err := NewRaytracer(s); !errors.Is(err, core.ErrUnknownAntiAliasing) {
			t.Errorf("Expected ErrUnknownAntiAliasing, got %v", err)
		}
	})

	for _, parallel := range []bool{true, false} {
		name := "cancelled sequential"
		if parallel {
			name = "cancelled parallel"
		}
		t.Run(name, func(t *testing.T) {
			s := scene.NewAmbientScene()
			s.Settings.Parallel = parallel
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			rt, err := NewRaytracer(s)
			if err != nil {
				t.Fatal(err)
			}
			if _, _, err := rt.Render(ctx); !errors.Is(err, context.Canceled) {
				t.Errorf("Expected context.Canceled, got %v", err)
			}
		})
	}
}

func TestImageToRGBA(t *testing.T) {
	img := &Image{
		Width:  2,
		Height: 1,
		Pixels: [][]core.Vec3{{core.NewVec3(1, 0, 0), core.NewVec3(2, 2, 2)}},
	}
	rgba := img.ToRGBA(1)
	if c := rgba.RGBAAt(0, 0); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("Expected red, got %v", c)
	}
	if c := rgba.RGBAAt(1, 0); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("Expected clamped white, got %v", c)
	}
}
