package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// cornellSize is the edge length of the box; the open side faces +Z
const cornellSize = 5.0

// NewCornellScene creates a Cornell box from five planes with a mirror block, a matte block and a glass sphere
func NewCornellScene() *Scene {
	half := cornellSize / 2
	s := newScene("cornell", core.NewVec3(0, half, 9), core.NewVec3(0, half, 0), 40)
	if err := s.SetImageSize(400, 400); err != nil {
		panic(err)
	}
	s.Background = core.NewVec3(0, 0, 0)

	// Create materials
	white := material.NewMaterial(core.NewVec3(0.73, 0.73, 0.73), 0.1, 0.8, 0.05, 10)
	red := material.NewMaterial(core.NewVec3(0.65, 0.05, 0.05), 0.1, 0.8, 0.05, 10)
	green := material.NewMaterial(core.NewVec3(0.12, 0.45, 0.15), 0.1, 0.8, 0.05, 10)
	mirror := material.NewMaterial(core.NewVec3(0.9, 0.9, 0.9), 0.02, 0.1, 0.8, 400)
	mirror.Reflectivity = 0.85
	glass := material.NewMaterial(core.NewVec3(1, 1, 1), 0.0, 0.0, 0.9, 300)
	glass.Reflectivity = 0.05
	glass.Refractivity = 1.5

	// Walls: floor, ceiling, back, left (red), right (green)
	s.Add(
		must(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), white)),
		must(geometry.NewPlane(core.NewVec3(0, cornellSize, 0), core.NewVec3(0, -1, 0), white)),
		must(geometry.NewPlane(core.NewVec3(0, 0, -cornellSize), core.NewVec3(0, 0, 1), white)),
		must(geometry.NewPlane(core.NewVec3(-half, 0, 0), core.NewVec3(1, 0, 0), red)),
		must(geometry.NewPlane(core.NewVec3(half, 0, 0), core.NewVec3(-1, 0, 0), green)),
	)

	// Tall mirror block at the back left, short block at the front right with a glass sphere on top
	tallHeight, shortHeight := 3.0, 1.5
	s.Add(
		must(geometry.NewCube(core.NewVec3(-0.9, tallHeight/2, -3.2), core.NewVec3(1.5, tallHeight, 1.5), 15, mirror)),
		must(geometry.NewCube(core.NewVec3(0.9, shortHeight/2, -1.6), core.NewVec3(1.5, shortHeight, 1.5), -18, white)),
		must(geometry.NewSphere(core.NewVec3(0.9, shortHeight+0.6, -1.6), 0.6, glass)),
	)

	s.AddAmbientLight(core.NewVec3(1, 1, 1), 0.15)
	s.AddPointLight(core.NewVec3(0, cornellSize-0.2, -half), core.NewVec3(1, 0.95, 0.85), 1.0)

	return s
}
