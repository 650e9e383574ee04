package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewConeTestScene creates a test scene with cones standing, inverted, tilted and glass
func NewConeTestScene() *Scene {
	s := newScene("cones", core.NewVec3(0, 1.5, 5), core.NewVec3(0, 0.8, 0), 50)

	// Create materials
	gray := material.NewMaterial(core.NewVec3(0.5, 0.5, 0.5), 0.1, 0.8, 0.1, 10)
	red := material.NewMaterial(core.NewVec3(0.8, 0.2, 0.2), 0.1, 0.8, 0.4, 80)
	blue := material.NewMaterial(core.NewVec3(0.2, 0.2, 0.8), 0.1, 0.8, 0.4, 80)
	green := material.NewMaterial(core.NewVec3(0.2, 0.8, 0.2), 0.1, 0.8, 0.4, 80)
	gold := material.NewMaterial(core.NewVec3(0.8, 0.6, 0.2), 0.1, 0.5, 0.9, 300)
	gold.Reflectivity = 0.4
	glass := material.NewMaterial(core.NewVec3(1, 1, 1), 0.0, 0.0, 0.9, 300)
	glass.Reflectivity = 0.05
	glass.Refractivity = 1.5

	s.Add(
		must(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), gray)),

		// Central tall cone, apex up, base on the ground
		must(geometry.NewCone(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), 2, 0.5, red)),

		// Inverted cone balanced on its apex, base cap facing up
		must(geometry.NewCone(core.NewVec3(-1.8, 0, 0), core.NewVec3(0, 1, 0), 1.2, 0.6, gold)),

		// Wide short cone on the right with a glass cone stacked on top
		must(geometry.NewCone(core.NewVec3(1.8, 0.6, 0), core.NewVec3(0, -1, 0), 0.6, 0.8, blue)),
		must(geometry.NewCone(core.NewVec3(1.8, 1.8, 0), core.NewVec3(0, -1, 0), 1.2, 0.5, glass)),

		// Tilted cone lying toward the camera
		must(geometry.NewCone(core.NewVec3(-0.9, 0.9, 1.2), core.NewVec3(0.3, -0.6, -1), 1.1, 0.35, green)),
	)

	s.AddAmbientLight(core.NewVec3(1, 1, 1), 0.2)
	s.AddPointLight(core.NewVec3(3, 5, 3), core.NewVec3(1, 1, 1), 1.0)

	return s
}
