package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCylinderTestScene creates a test scene with cylinders in different orientations and materials
func NewCylinderTestScene() *Scene {
	s := newScene("cylinders", core.NewVec3(0, 1.5, 5), core.NewVec3(0, 0.7, 0), 50)

	// Create materials
	gray := material.NewMaterial(core.NewVec3(0.5, 0.5, 0.5), 0.1, 0.8, 0.1, 10)
	red := material.NewMaterial(core.NewVec3(0.8, 0.2, 0.2), 0.1, 0.8, 0.4, 80)
	blue := material.NewMaterial(core.NewVec3(0.2, 0.2, 0.8), 0.1, 0.8, 0.4, 80)
	gold := material.NewMaterial(core.NewVec3(0.8, 0.6, 0.2), 0.1, 0.5, 0.9, 300)
	gold.Reflectivity = 0.4
	glass := material.NewMaterial(core.NewVec3(1, 1, 1), 0.0, 0.0, 0.9, 300)
	glass.Reflectivity = 0.05
	glass.Refractivity = 1.5

	s.Add(
		must(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), gray)),

		// Center: gold cylinder pointing toward the camera
		cylinderBetween(core.NewVec3(-0.3, 1.0, -1.5), core.NewVec3(0, 1.2, 2.0), 0.35, gold),

		// Right: tall upright cylinder
		cylinderBetween(core.NewVec3(1.8, 0, 0), core.NewVec3(1.8, 2, 0), 0.5, red),

		// Left: lying along X so both caps show
		cylinderBetween(core.NewVec3(-2.5, 0.3, 0), core.NewVec3(-1.5, 0.3, 0), 0.3, blue),

		// Small glass cylinder in front
		cylinderBetween(core.NewVec3(0.5, 0, 1), core.NewVec3(0.5, 0.6, 1), 0.2, glass),
	)

	s.AddAmbientLight(core.NewVec3(1, 1, 1), 0.2)
	s.AddPointLight(core.NewVec3(3, 5, 3), core.NewVec3(1, 1, 1), 1.0)

	return s
}

// cylinderBetween creates a capped cylinder spanning two end points
func cylinderBetween(base, top core.Vec3, radius float64, mat *material.Material) *geometry.Cylinder {
	axis := top.Subtract(base)
	return must(geometry.NewCylinder(base, axis, axis.Length(), radius, mat))
}
