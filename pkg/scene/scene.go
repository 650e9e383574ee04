package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultMinimalPerformance is the t_min floor used when a scene does not set one
const DefaultMinimalPerformance = 0.001

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	Camera     *geometry.Camera
	Shapes     []geometry.Shape // Objects in the scene, scanned in order
	Lights     []lights.Light   // Ambient and point lights
	Background core.Vec3        // Bottom color of the background gradient
	Settings   RenderSettings
	Width      int // Image width
	Height     int // Image height
}

// RenderSettings contains the tracer and sampler configuration
type RenderSettings struct {
	MaxDepth           int          // Maximum recursion depth for reflection and refraction
	SamplesPerPixel    int          // Sample budget for the anti-aliasing strategy
	ShadowsEnabled     bool         // Cast shadow rays; also gates diffuse shading
	ReflectionsEnabled bool         // Spawn reflection rays
	RefractionsEnabled bool         // Spawn refraction rays
	AntiAliasing       AntiAliasing // Sampling strategy
	Parallel           bool         // Render rows on a worker pool
	Workers            int          // Worker count, 0 means one per CPU
	MinimalPerformance float64      // Ray t_min floor
	Exposure           float64      // Output multiplier
	Seed               uint64       // Base seed for jittered samplers
}

// DefaultRenderSettings returns the settings used when a scene file leaves the algorithm section empty
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		MaxDepth:           5,
		SamplesPerPixel:    5,
		ShadowsEnabled:     true,
		ReflectionsEnabled: true,
		RefractionsEnabled: true,
		AntiAliasing:       JitteredSampling,
		Parallel:           true,
		MinimalPerformance: DefaultMinimalPerformance,
		Exposure:           1,
	}
}

// TMin returns the effective t_min floor for scene queries
func (rs RenderSettings) TMin() float64 {
	if rs.MinimalPerformance <= 0 {
		return DefaultMinimalPerformance
	}
	return rs.MinimalPerformance
}

// Hit returns the nearest intersection in (tMin, tMax). Ties keep the shape added first.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return geometry.HitClosest(s.Shapes, ray, tMin, tMax)
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddAmbientLight adds an unshadowed ambient light
func (s *Scene) AddAmbientLight(color core.Vec3, intensity float64) {
	s.Lights = append(s.Lights, lights.NewAmbientLight(color, intensity))
}

// AddPointLight adds a point light
func (s *Scene) AddPointLight(position, color core.Vec3, intensity float64) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, color, intensity))
}

// SetImageSize changes the output resolution and rebuilds the camera for the new aspect ratio
func (s *Scene) SetImageSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", core.ErrInvalidImageSize, width, height)
	}
	s.Width = width
	s.Height = height
	if s.Camera != nil {
		config := s.Camera.Config()
		config.AspectRatio = float64(width) / float64(height)
		s.Camera = geometry.NewCamera(config)
	}
	return nil
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", core.ErrInvalidImageSize, s.Width, s.Height)
	}
	if s.Camera == nil {
		return fmt.Errorf("scene %q has no camera", s.Name)
	}
	if _, err := ParseAntiAliasing(string(s.Settings.AntiAliasing)); err != nil {
		return err
	}
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, descending into composites
func countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.TriangleMesh:
		return obj.GetTriangleCount()
	case *geometry.Group:
		count := 0
		for _, child := range obj.Children {
			count += countPrimitivesInShape(child)
		}
		return count
	default:
		return 1
	}
}
