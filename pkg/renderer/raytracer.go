package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Image holds linear colors, rows top to bottom
type Image struct {
	Width  int
	Height int
	Pixels [][]core.Vec3
}

// ToRGBA converts the image to 8 bits per channel with the given gamma
func (img *Image) ToRGBA(gamma float64) *image.RGBA {
	return loaders.ToRGBA(img.Pixels, gamma)
}

// Raytracer renders a scene at its configured size
type Raytracer struct {
	scene      *scene.Scene
	width      int
	height     int
	integrator *integrator.WhittedIntegrator
	sampler    AntiAliaser
}

// NewRaytracer validates the scene and prepares its sampler
func NewRaytracer(s *scene.Scene) (*Raytracer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sampler, err := NewAntiAliaser(s.Settings.AntiAliasing)
	if err != nil {
		return nil, err
	}
	return &Raytracer{
		scene:      s,
		width:      s.Width,
		height:     s.Height,
		integrator: integrator.NewWhittedIntegrator(),
		sampler:    sampler,
	}, nil
}

// Render traces every pixel. Rows are independent: each owns its output slice
// and a generator seeded from the scene seed and the row index, so parallel
// and sequential renders produce identical images.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	start := time.Now()
	settings := rt.scene.Settings
	stats := RenderStats{
		JobID:        uuid.NewString(),
		Width:        rt.width,
		Height:       rt.height,
		TotalPixels:  rt.width * rt.height,
		TotalSamples: rt.width * rt.height * rt.sampler.SamplesTaken(settings.SamplesPerPixel),
		Workers:      1,
	}

	core.LogInfo("render started", "job", stats.JobID, "scene", rt.scene.Name,
		"width", rt.width, "height", rt.height, "antialiasing", settings.AntiAliasing,
		"samples", settings.SamplesPerPixel, "depth", settings.MaxDepth)

	img := &Image{Width: rt.width, Height: rt.height, Pixels: make([][]core.Vec3, rt.height)}
	for row := range img.Pixels {
		img.Pixels[row] = make([]core.Vec3, rt.width)
	}

	var err error
	if settings.Parallel {
		pool := NewWorkerPool(settings.Workers)
		stats.Workers = pool.GetNumWorkers()
		err = pool.Run(ctx, rt.height, func(_ context.Context, row int) error {
			rt.RenderRow(row, img.Pixels[row])
			return nil
		})
	} else {
		for row := 0; row < rt.height; row++ {
			if err = ctx.Err(); err != nil {
				break
			}
			rt.RenderRow(row, img.Pixels[row])
		}
	}
	if err != nil {
		core.LogWarn("render aborted", "job", stats.JobID, "err", err)
		return nil, stats, fmt.Errorf("render %s: %w", stats.JobID, err)
	}

	stats.Rays = rt.integrator.RayCount()
	stats.Duration = time.Since(start)
	stats.AverageLuminance = CalculateAverageLuminance(img.ToRGBA(loaders.DisplayGamma))

	core.LogInfo("render finished", "job", stats.JobID, "duration", stats.Duration.Round(time.Millisecond),
		"rays", stats.Rays, "workers", stats.Workers)
	return img, stats, nil
}

// RenderRow fills one image row, counted from the top, into out
func (rt *Raytracer) RenderRow(row int, out []core.Vec3) {
	settings := rt.scene.Settings
	random := core.NewRandom(settings.Seed + uint64(row))
	j := rt.height - 1 - row
	exposure := settings.Exposure
	if exposure <= 0 {
		exposure = 1
	}

	for i := 0; i < rt.width; i++ {
		c := rt.sampler.PixelColor(i, j, rt.width, rt.height, rt.scene.Camera, rt.integrator, rt.scene, random)
		c = c.Multiply(exposure)
		if !c.IsFinite() {
			c = core.Vec3{}
		}
		out[i] = c
	}
}

// Render draws a scene at the given size and returns linear RGB rows, top to bottom.
// The caller's scene is not modified.
func Render(ctx context.Context, s *scene.Scene, width, height int) ([][]core.Vec3, error) {
	sized := *s
	if err := sized.SetImageSize(width, height); err != nil {
		return nil, err
	}
	rt, err := NewRaytracer(&sized)
	if err != nil {
		return nil, err
	}
	img, _, err := rt.Render(ctx)
	if err != nil {
		return nil, err
	}
	return img.Pixels, nil
}
