package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// SkyColor is the top color of the background gradient
var SkyColor = core.NewVec3(0.5, 0.7, 1.0)

// shadowEpsilon offsets shadow rays off the surface and is their t_min
const shadowEpsilon = 1e-3

// Background blends the scene background (looking down) into SkyColor (looking up)
func Background(direction, background core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Normalize().Y + 1.0)
	return background.Multiply(1.0 - t).Add(SkyColor.Multiply(t))
}

// Shade computes the local Phong color at a hit.
// The terms kept depend on the scene switches: shadows on gives ambient+diffuse+specular,
// reflections on with shadows off gives ambient+specular, anything else ambient only.
func Shade(ray core.Ray, hit *material.HitRecord, s *scene.Scene) core.Vec3 {
	mat := hitMaterial(hit)
	color := mat.GetColor(hit.U, hit.V, hit.Point)
	normal := mat.PerturbNormal(hit.U, hit.V, hit.Point, hit.Normal)
	viewDir := ray.Direction.Negate().Normalize()

	var ambient, diffuse, specular core.Vec3
	for _, light := range s.Lights {
		switch l := light.(type) {
		case *lights.AmbientLight:
			ambient = ambient.Add(color.MultiplyVec(l.Color()).Multiply(mat.KAmbient))
		case lights.PositionalLight:
			sample := l.Sample(hit.Point)
			nDotL := normal.Dot(sample.Direction)
			if nDotL <= 0 || occluded(hit, sample, s) {
				continue
			}
			diffuse = diffuse.Add(color.MultiplyVec(sample.Emission).Multiply(nDotL * mat.KDiffuse))

			reflectDir := core.Reflect(sample.Direction.Negate(), normal)
			highlight := math.Pow(math.Max(viewDir.Dot(reflectDir), 0), mat.Shininess)
			specular = specular.Add(sample.Emission.Multiply(highlight * mat.KSpecular))
		}
	}

	switch {
	case s.Settings.ShadowsEnabled:
		return ambient.Add(diffuse).Add(specular)
	case s.Settings.ReflectionsEnabled:
		return ambient.Add(specular)
	default:
		return ambient
	}
}

// occluded reports whether any shape lies between the hit point and the light
func occluded(hit *material.HitRecord, sample lights.LightSample, s *scene.Scene) bool {
	shadowRay := core.NewRay(hit.Point.Add(hit.Normal.Multiply(shadowEpsilon)), sample.Direction)
	_, blocked := s.Hit(shadowRay, shadowEpsilon, sample.Distance)
	return blocked
}
