package integrator

import (
	"math"
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator implements recursive Whitted ray tracing: local Phong shading plus
// perfect reflection and refraction rays, bounded by the scene's MaxDepth
type WhittedIntegrator struct {
	rays atomic.Int64
}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayCount returns the number of rays traced so far, shadow rays excluded
func (w *WhittedIntegrator) RayCount() int64 {
	return w.rays.Load()
}

// TraceRay returns the color for a ray, recursing for reflection and refraction
func (w *WhittedIntegrator) TraceRay(ray core.Ray, s *scene.Scene, depth int) core.Vec3 {
	depth = min(depth, s.Settings.MaxDepth)
	if depth <= 0 {
		return core.Vec3{}
	}
	w.rays.Add(1)

	tMin := s.Settings.TMin()
	hit, isHit := s.Hit(ray, tMin, math.Inf(1))
	if !isHit {
		return Background(ray.Direction, s.Background)
	}

	color := Shade(ray, hit, s)
	mat := hitMaterial(hit)

	if s.Settings.ReflectionsEnabled && mat.Reflectivity > 0 {
		reflected := core.NewRay(hit.Point.Add(hit.Normal.Multiply(tMin)), core.Reflect(ray.Direction, hit.Normal))
		color = color.Add(w.TraceRay(reflected, s, depth-1).Multiply(mat.Reflectivity))
	}

	if s.Settings.RefractionsEnabled && mat.Refractivity > 0 {
		// Total internal reflection contributes nothing
		if direction, ok := core.Refract(ray.Direction, hit.Normal, mat.Refractivity, hit.FrontFace); ok {
			refracted := core.NewRay(hit.Point.Subtract(hit.Normal.Multiply(tMin)), direction)
			color = color.Add(w.TraceRay(refracted, s, depth-1).Multiply(mat.Refractivity))
		}
	}

	return color
}

// hitMaterial guards against shapes built without a material
func hitMaterial(hit *material.HitRecord) *material.Material {
	if hit.Material == nil {
		return material.NewWhiteMatte()
	}
	return hit.Material
}
