package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMirrorsScene creates two parallel mirrors facing each other with a glass sphere between them.
// Rays bounce until the depth limit, so this scene exercises bounded recursion.
func NewMirrorsScene() *Scene {
	s := newScene("mirrors", core.NewVec3(0, 1.5, 7), core.NewVec3(0, 0.5, 0), 55)
	s.Settings.MaxDepth = 8

	mirror := material.NewMaterial(core.NewVec3(0.95, 0.95, 0.95), 0.02, 0.05, 0.6, 800)
	mirror.Name = "mirror"
	mirror.Reflectivity = 0.9

	glass := material.NewMaterial(core.NewVec3(1, 1, 1), 0.0, 0.0, 0.9, 400)
	glass.Name = "glass"
	glass.Reflectivity = 0.05
	glass.Refractivity = 1.5

	orange := material.NewMaterial(core.NewVec3(0.9, 0.45, 0.1), 0.15, 0.8, 0.4, 60)
	teal := material.NewMaterial(core.NewVec3(0.1, 0.6, 0.6), 0.15, 0.8, 0.4, 60)
	floor := material.NewMaterial(core.NewVec3(0.8, 0.8, 0.8), 0.1, 0.8, 0.0, 10).
		WithTexture(material.NewCheckerTexture(core.NewVec3(0.85, 0.85, 0.85), core.NewVec3(0.1, 0.1, 0.1), 2))

	s.Add(
		must(geometry.NewPlane(core.NewVec3(-3, 0, 0), core.NewVec3(1, 0, 0), mirror)),
		must(geometry.NewPlane(core.NewVec3(3, 0, 0), core.NewVec3(-1, 0, 0), mirror)),
		must(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floor)),
		must(geometry.NewSphere(core.NewVec3(0, 0.2, 0), 1.2, glass)),
		must(geometry.NewSphere(core.NewVec3(-1.5, -0.5, -2), 0.5, orange)),
		must(geometry.NewCube(core.NewVec3(1.5, -0.5, -2), core.NewVec3(1, 1, 1), 45, teal)),
	)

	s.AddAmbientLight(core.NewVec3(1, 1, 1), 0.2)
	s.AddPointLight(core.NewVec3(0, 6, 4), core.NewVec3(1, 1, 1), 1.0)

	return s
}
