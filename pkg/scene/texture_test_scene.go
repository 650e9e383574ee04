package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTextureTestScene creates a row of shapes showing UV-mapped image textures
// next to the solid-space checker and wood textures
func NewTextureTestScene() *Scene {
	s := newScene("textures", core.NewVec3(0, 3, 11), core.NewVec3(0, 1, 0), 45)

	// Generated image textures
	checkerboard := material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.9, 0.9, 0.9), // White
		core.NewVec3(0.2, 0.2, 0.8), // Blue
	)
	redGreenGradient := material.NewGradientTexture(256, 256,
		core.NewVec3(1.0, 0.2, 0.2), // Red (top)
		core.NewVec3(0.2, 1.0, 0.2), // Green (bottom)
	)
	uvDebug := material.NewUVDebugTexture(256, 256)

	textured := func(texture material.Texture) *material.Material {
		return material.NewMaterial(core.NewVec3(1, 1, 1), 0.15, 0.8, 0.3, 50).WithTexture(texture)
	}

	checker3D := material.NewCheckerTexture(core.NewVec3(0.7, 0.3, 0.1), core.NewVec3(0.5, 0.2, 0.05), 4)
	wood := material.NewWoodTexture(core.NewVec3(0.8, 0.55, 0.3), core.NewVec3(0.45, 0.25, 0.1), 20)

	s.Add(
		// UV textures: sphere, cylinder, cone, torus
		must(geometry.NewSphere(core.NewVec3(-4.5, 1, 0), 1, textured(checkerboard))),
		must(geometry.NewCylinder(core.NewVec3(-2, 0, 0), core.Vec3{}, 2, 0.7, textured(redGreenGradient))),
		must(geometry.NewCone(core.NewVec3(0, 2, 0), core.Vec3{}, 2, 0.8, textured(uvDebug))),
		must(geometry.NewTorus(core.NewVec3(2.2, 0.4, 0), 0.9, 0.4, textured(checkerboard))),

		// Solid textures are sampled at the hit point: wood sphere and checkered cube
		must(geometry.NewSphere(core.NewVec3(4.5, 1, 0), 1, textured(wood))),
		must(geometry.NewCube(core.NewVec3(0, 0.5, 2.5), core.NewVec3(1, 1, 1), 20, textured(checker3D))),

		// Ground
		must(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), textured(checker3D))),
	)

	s.AddAmbientLight(core.NewVec3(1, 1, 1), 0.3)
	s.AddPointLight(core.NewVec3(0, 8, 5), core.NewVec3(1, 1, 1), 1.0)

	return s
}
