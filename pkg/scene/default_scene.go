package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, a torus, a cube, a cylinder and a cone on a checker floor
func NewDefaultScene() *Scene {
	s := newScene("default", core.NewVec3(0, 2, 7), core.NewVec3(0, 0.3, 0), 50)

	// Create materials
	floor := material.NewMaterial(core.NewVec3(0.9, 0.9, 0.9), 0.1, 0.8, 0.1, 20).
		WithTexture(material.NewCheckerTexture(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.15, 0.15, 0.15), 3))
	red := material.NewMaterial(core.NewVec3(0.8, 0.15, 0.1), 0.1, 0.8, 0.5, 100)
	blue := material.NewMaterial(core.NewVec3(0.1, 0.2, 0.6), 0.1, 0.8, 0.3, 50)
	gold := material.NewMaterial(core.NewVec3(0.85, 0.65, 0.2), 0.1, 0.6, 0.8, 200)
	gold.Reflectivity = 0.3
	mirror := material.NewMaterial(core.NewVec3(0.9, 0.9, 0.9), 0.05, 0.1, 0.9, 500)
	mirror.Reflectivity = 0.8
	glass := material.NewMaterial(core.NewVec3(0.95, 0.95, 1.0), 0.0, 0.05, 0.9, 300)
	glass.Reflectivity = 0.1
	glass.Refractivity = 1.5
	wood := material.NewMaterial(core.NewVec3(0.75, 0.5, 0.25), 0.1, 0.8, 0.2, 30).
		WithTexture(material.NewWoodTexture(core.NewVec3(0.75, 0.5, 0.25), core.NewVec3(0.4, 0.22, 0.1), 12))

	s.Add(
		must(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floor)),
		must(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mirror)),
		must(geometry.NewSphere(core.NewVec3(-2.2, -0.4, 0.8), 0.6, red)),
		must(geometry.NewSphere(core.NewVec3(1.2, -0.6, 2), 0.4, glass)),
		must(geometry.NewTorus(core.NewVec3(2.4, -0.75, 0), 0.8, 0.25, gold)),
		must(geometry.NewCube(core.NewVec3(-1, -0.6, -2.2), core.NewVec3(0.8, 0.8, 0.8), 30, blue)),
		must(geometry.NewCylinder(core.NewVec3(2.2, -1, -2), core.Vec3{}, 1.6, 0.45, wood)),
		must(geometry.NewCone(core.NewVec3(-2.8, 0.6, -1.2), core.Vec3{}, 1.6, 0.6, gold)),
	)

	s.AddAmbientLight(core.NewVec3(1, 1, 1), 0.3)
	s.AddPointLight(core.NewVec3(4, 6, 5), core.NewVec3(1, 0.97, 0.9), 1.0)
	s.AddPointLight(core.NewVec3(-5, 4, 3), core.NewVec3(0.6, 0.7, 1.0), 0.4)

	return s
}

// NewAmbientScene creates a single matte sphere lit only by ambient light.
// With no aliasing the center pixel equals color*kA*light and the corners show the background.
func NewAmbientScene() *Scene {
	s := newScene("ambient", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), 90)
	if err := s.SetImageSize(100, 100); err != nil {
		panic(err)
	}

	s.Settings.AntiAliasing = NoAliasing
	s.Settings.ShadowsEnabled = false
	s.Settings.ReflectionsEnabled = false
	s.Settings.RefractionsEnabled = false

	matte := material.NewMaterial(core.NewVec3(0.8, 0.3, 0.3), 0.5, 0.9, 0.0, 10)
	s.Add(must(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, matte)))
	s.AddAmbientLight(core.NewVec3(1, 1, 1), 1)

	return s
}
