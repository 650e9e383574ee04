package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTriangleMeshScene creates a scene with triangle meshes, each built around the origin
// and placed by a group transform
func NewTriangleMeshScene() *Scene {
	s := newScene("mesh", core.NewVec3(0, 2.5, 6), core.NewVec3(0, 0.7, 0), 45)

	// Create materials
	ground := material.NewMaterial(core.NewVec3(0.7, 0.7, 0.7), 0.1, 0.8, 0.0, 10)
	red := material.NewMaterial(core.NewVec3(0.8, 0.2, 0.2), 0.1, 0.6, 0.8, 250)
	red.Reflectivity = 0.25
	blue := material.NewMaterial(core.NewVec3(0.2, 0.3, 0.8), 0.1, 0.8, 0.3, 40)
	gold := material.NewMaterial(core.NewVec3(0.8, 0.6, 0.2), 0.1, 0.5, 0.9, 300)
	gold.Reflectivity = 0.4

	s.Add(must(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground)))

	// Box rotated 30° around Y, pyramid 45°, icosahedron tilted on two axes
	s.Add(
		placeMesh("box", must(geometry.NewTriangleCube(core.Vec3{}, 1, red)),
			core.NewVec3(-2, 0.5, 0), core.NewVec3(0, 30, 0)),
		placeMesh("pyramid", createPyramidMesh(1.5, 2.0, blue),
			core.NewVec3(0, 1, 0), core.NewVec3(0, 45, 0)),
		placeMesh("icosahedron", createIcosahedronMesh(0.8, gold),
			core.NewVec3(2, 0.8, 0), core.NewVec3(20, 60, 0)),
	)

	s.AddAmbientLight(core.NewVec3(1, 1, 1), 0.2)
	s.AddPointLight(core.NewVec3(-3, 6, 4), core.NewVec3(1, 1, 1), 1.0)

	return s
}

// placeMesh wraps a shape in a group translated to position and rotated by degrees
func placeMesh(name string, shape geometry.Shape, position, rotation core.Vec3) *geometry.Group {
	return must(geometry.NewGroup(name, geometry.Transform{
		Translation: position,
		Rotation:    rotation,
		Scale:       core.NewVec3(1, 1, 1),
	}, shape))
}

// createPyramidMesh creates a square pyramid centered on the origin
func createPyramidMesh(baseSize, height float64, mat *material.Material) *geometry.TriangleMesh {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		core.NewVec3(-halfBase, -halfHeight, -halfBase), // 0: left-back
		core.NewVec3(+halfBase, -halfHeight, -halfBase), // 1: right-back
		core.NewVec3(+halfBase, -halfHeight, +halfBase), // 2: right-front
		core.NewVec3(-halfBase, -halfHeight, +halfBase), // 3: left-front
		core.NewVec3(0, +halfHeight, 0),                 // 4: apex
	}

	faces := []int{
		0, 2, 1, 0, 3, 2, // base
		0, 1, 4, // back
		1, 2, 4, // right
		2, 3, 4, // front
		3, 0, 4, // left
	}

	return must(geometry.NewTriangleMesh(vertices, faces, mat))
}

// createIcosahedronMesh creates a 20-sided polyhedron centered on the origin with the given circumradius
func createIcosahedronMesh(radius float64, mat *material.Material) *geometry.TriangleMesh {
	phi := (1.0 + math.Sqrt(5)) / 2.0
	scale := radius / math.Sqrt(1+phi*phi)

	vertices := []core.Vec3{
		core.NewVec3(-1, phi, 0).Multiply(scale),  // 0
		core.NewVec3(1, phi, 0).Multiply(scale),   // 1
		core.NewVec3(-1, -phi, 0).Multiply(scale), // 2
		core.NewVec3(1, -phi, 0).Multiply(scale),  // 3
		core.NewVec3(0, -1, phi).Multiply(scale),  // 4
		core.NewVec3(0, 1, phi).Multiply(scale),   // 5
		core.NewVec3(0, -1, -phi).Multiply(scale), // 6
		core.NewVec3(0, 1, -phi).Multiply(scale),  // 7
		core.NewVec3(phi, 0, -1).Multiply(scale),  // 8
		core.NewVec3(phi, 0, 1).Multiply(scale),   // 9
		core.NewVec3(-phi, 0, -1).Multiply(scale), // 10
		core.NewVec3(-phi, 0, 1).Multiply(scale),  // 11
	}

	faces := []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return must(geometry.NewTriangleMesh(vertices, faces, mat))
}
