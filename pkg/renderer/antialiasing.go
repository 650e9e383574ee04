package renderer

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// AntiAliaser computes the color of one pixel from one or more camera rays.
// Pixel (i, j) has j = 0 on the bottom row. Implementations are stateless;
// all randomness comes from the supplied generator.
type AntiAliaser interface {
	PixelColor(i, j, width, height int, cam *geometry.Camera, tracer integrator.Integrator, s *scene.Scene, random *rand.Rand) core.Vec3
	// SamplesTaken returns how many rays PixelColor traces for a sample budget
	SamplesTaken(samples int) int
}

// NewAntiAliaser returns the strategy for a name or short alias
func NewAntiAliaser(name scene.AntiAliasing) (AntiAliaser, error) {
	strategy, err := scene.ParseAntiAliasing(string(name))
	if err != nil {
		return nil, err
	}
	switch strategy {
	case scene.NoAliasing:
		return NoAliasing{}, nil
	case scene.RandomAliasing:
		return RandomAliasing{}, nil
	case scene.Supersampling:
		return Supersampling{}, nil
	case scene.Hammersley:
		return HammersleyAliasing{}, nil
	case scene.CorrelatedMultiJittered:
		return CorrelatedMultiJittered{}, nil
	default:
		return JitteredSampling{}, nil
	}
}

// NoAliasing traces a single ray through the pixel corner
type NoAliasing struct{}

func (NoAliasing) PixelColor(i, j, width, height int, cam *geometry.Camera, tracer integrator.Integrator, s *scene.Scene, random *rand.Rand) core.Vec3 {
	return trace(cam, tracer, s, float64(i)/span(width), float64(j)/span(height))
}

func (NoAliasing) SamplesTaken(int) int { return 1 }

// RandomAliasing averages independently jittered rays
type RandomAliasing struct{}

func (RandomAliasing) PixelColor(i, j, width, height int, cam *geometry.Camera, tracer integrator.Integrator, s *scene.Scene, random *rand.Rand) core.Vec3 {
	samples := sampleBudget(s)
	var sum core.Vec3
	for k := 0; k < samples; k++ {
		u := (float64(i) + random.Float64()) / span(width)
		v := (float64(j) + random.Float64()) / span(height)
		sum = sum.Add(trace(cam, tracer, s, u, v))
	}
	return sum.Divide(float64(samples))
}

func (RandomAliasing) SamplesTaken(samples int) int { return max(samples, 1) }

// JitteredSampling takes floor(sqrt(samples)) rays stratified along the pixel
// diagonal; both axes share the stratum index.
type JitteredSampling struct{}

func (JitteredSampling) PixelColor(i, j, width, height int, cam *geometry.Camera, tracer integrator.Integrator, s *scene.Scene, random *rand.Rand) core.Vec3 {
	n := gridSize(sampleBudget(s))
	var sum core.Vec3
	for k := 0; k < n; k++ {
		u := (float64(i) + (float64(k)+random.Float64())/float64(n)) / span(width)
		v := (float64(j) + (float64(k)+random.Float64())/float64(n)) / span(height)
		sum = sum.Add(trace(cam, tracer, s, u, v))
	}
	return sum.Divide(float64(n))
}

func (JitteredSampling) SamplesTaken(samples int) int { return gridSize(max(samples, 1)) }

// Supersampling jitters one ray inside each cell of an n x n grid
type Supersampling struct{}

func (Supersampling) PixelColor(i, j, width, height int, cam *geometry.Camera, tracer integrator.Integrator, s *scene.Scene, random *rand.Rand) core.Vec3 {
	n := gridSize(sampleBudget(s))
	var sum core.Vec3
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			u := (float64(i) + (float64(p)+random.Float64())/float64(n)) / span(width)
			v := (float64(j) + (float64(q)+random.Float64())/float64(n)) / span(height)
			sum = sum.Add(trace(cam, tracer, s, u, v))
		}
	}
	return sum.Divide(float64(n * n))
}

func (Supersampling) SamplesTaken(samples int) int {
	n := gridSize(max(samples, 1))
	return n * n
}

// HammersleyAliasing uses the base-2 radical inverse for u and a linear ramp for v.
// It is deterministic and ignores the generator.
type HammersleyAliasing struct{}

func (HammersleyAliasing) PixelColor(i, j, width, height int, cam *geometry.Camera, tracer integrator.Integrator, s *scene.Scene, random *rand.Rand) core.Vec3 {
	samples := sampleBudget(s)
	var sum core.Vec3
	for k := 0; k < samples; k++ {
		u := (float64(i) + core.RadicalInverse(uint32(k))) / span(width)
		v := (float64(j) + float64(k)/float64(samples)) / span(height)
		sum = sum.Add(trace(cam, tracer, s, u, v))
	}
	return sum.Divide(float64(samples))
}

func (HammersleyAliasing) SamplesTaken(samples int) int { return max(samples, 1) }

// CorrelatedMultiJittered places one jittered ray per grid cell with the
// sub-cell offsets of the two axes swapped. The sum is divided by the full
// sample budget even when it is not a perfect square.
type CorrelatedMultiJittered struct{}

func (CorrelatedMultiJittered) PixelColor(i, j, width, height int, cam *geometry.Camera, tracer integrator.Integrator, s *scene.Scene, random *rand.Rand) core.Vec3 {
	samples := sampleBudget(s)
	grid := gridSize(samples)
	g := float64(grid)
	var sum core.Vec3
	for m := 0; m < grid; m++ {
		for n := 0; n < grid; n++ {
			si := (float64(m) + (float64(n)+random.Float64())/g) / g
			sj := (float64(n) + (float64(m)+random.Float64())/g) / g
			u := (float64(i) + si) / span(width)
			v := (float64(j) + sj) / span(height)
			sum = sum.Add(trace(cam, tracer, s, u, v))
		}
	}
	return sum.Divide(float64(samples))
}

func (CorrelatedMultiJittered) SamplesTaken(samples int) int {
	n := gridSize(max(samples, 1))
	return n * n
}

// trace returns the color of one sample; a NaN or infinite sample counts as black
func trace(cam *geometry.Camera, tracer integrator.Integrator, s *scene.Scene, u, v float64) core.Vec3 {
	c := tracer.TraceRay(cam.GetRay(u, v), s, s.Settings.MaxDepth)
	if !c.IsFinite() {
		return core.Vec3{}
	}
	return c
}

// span is the pixel coordinate normalizer, width-1 clamped to at least 1
func span(size int) float64 {
	return float64(max(size-1, 1))
}

func sampleBudget(s *scene.Scene) int {
	return max(s.Settings.SamplesPerPixel, 1)
}

func gridSize(samples int) int {
	return max(int(math.Sqrt(float64(samples))), 1)
}
