package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewShapesScene places one of each primitive in a row, plus a scaled and rotated group
func NewShapesScene() *Scene {
	s := newScene("shapes", core.NewVec3(0, 3, 10), core.NewVec3(0, 0.5, 0), 45)

	palette := []core.Vec3{
		core.NewVec3(0.85, 0.2, 0.2),
		core.NewVec3(0.9, 0.6, 0.1),
		core.NewVec3(0.2, 0.7, 0.3),
		core.NewVec3(0.2, 0.4, 0.85),
		core.NewVec3(0.6, 0.3, 0.8),
		core.NewVec3(0.8, 0.8, 0.8),
	}
	mats := make([]*material.Material, len(palette))
	for i, color := range palette {
		mats[i] = material.NewMaterial(color, 0.1, 0.8, 0.5, 120)
	}

	ground := material.NewMaterial(core.NewVec3(0.6, 0.6, 0.6), 0.1, 0.7, 0.1, 10)

	s.Add(
		must(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground)),
		must(geometry.NewSphere(core.NewVec3(-5, 1, 0), 1, mats[0])),
		must(geometry.NewCube(core.NewVec3(-2.6, 0.8, 0), core.NewVec3(1.6, 1.6, 1.6), 25, mats[1])),
		must(geometry.NewCylinder(core.NewVec3(-0.5, 0, 0), core.Vec3{}, 1.8, 0.7, mats[2])),
		must(geometry.NewCone(core.NewVec3(1.6, 2, 0), core.Vec3{}, 2, 0.8, mats[3])),
		must(geometry.NewTorus(core.NewVec3(4.2, 0.4, 0), 1, 0.4, mats[4])),
		must(geometry.NewTriangleCube(core.NewVec3(-3.5, 0.5, 2.5), 1, mats[5])),
	)

	// A flattened, tilted sphere and a torus standing on edge, both nested in one group
	inner := must(geometry.NewGroup("tilted-sphere", geometry.Transform{
		Rotation: core.NewVec3(0, 0, 30),
		Scale:    core.NewVec3(1, 0.5, 1),
	}, must(geometry.NewSphere(core.Vec3{}, 1, mats[3]))))
	ring := must(geometry.NewGroup("standing-torus", geometry.Transform{
		Translation: core.NewVec3(2.2, 0.5, 0),
		Rotation:    core.NewVec3(90, 0, 0),
		Scale:       core.NewVec3(1, 1, 1),
	}, must(geometry.NewTorus(core.Vec3{}, 0.6, 0.15, mats[1]))))
	s.Add(must(geometry.NewGroup("ornament", geometry.Transform{
		Translation: core.NewVec3(1.5, 0.8, 2.5),
		Scale:       core.NewVec3(0.8, 0.8, 0.8),
	}, inner, ring)))

	s.AddAmbientLight(core.NewVec3(1, 1, 1), 0.25)
	s.AddPointLight(core.NewVec3(-4, 8, 6), core.NewVec3(1, 1, 1), 1.0)

	return s
}
