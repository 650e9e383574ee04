package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TriangleMesh is a composite of triangles that reports the closest hit among them
type TriangleMesh struct {
	Triangles []*Triangle
	shapes    []Shape
}

// NewTriangleMesh creates a mesh from vertices and face indices
// (each group of 3 indices forms a triangle)
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat *material.Material) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: face indices must be a multiple of 3, got %d", core.ErrInvalidGeometry, len(faces))
	}

	mesh := &TriangleMesh{}
	for i := 0; i < len(faces); i += 3 {
		for _, index := range faces[i : i+3] {
			if index < 0 || index >= len(vertices) {
				return nil, fmt.Errorf("%w: face index %d out of range", core.ErrInvalidGeometry, index)
			}
		}
		triangle, err := NewTriangle(vertices[faces[i]], vertices[faces[i+1]], vertices[faces[i+2]], mat)
		if err != nil {
			return nil, err
		}
		mesh.Triangles = append(mesh.Triangles, triangle)
		mesh.shapes = append(mesh.shapes, triangle)
	}

	return mesh, nil
}

// NewTriangleCube builds an axis-aligned cube of the given edge length out of 12 triangles
func NewTriangleCube(center core.Vec3, side float64, mat *material.Material) (*TriangleMesh, error) {
	if side <= 0 {
		return nil, fmt.Errorf("%w: cube side must be positive, got %f", core.ErrInvalidGeometry, side)
	}

	h := side / 2
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-h, -h, h)),  // 0: left-bottom-front
		center.Add(core.NewVec3(h, -h, h)),   // 1: right-bottom-front
		center.Add(core.NewVec3(h, h, h)),    // 2: right-top-front
		center.Add(core.NewVec3(-h, h, h)),   // 3: left-top-front
		center.Add(core.NewVec3(-h, -h, -h)), // 4: left-bottom-back
		center.Add(core.NewVec3(h, -h, -h)),  // 5: right-bottom-back
		center.Add(core.NewVec3(h, h, -h)),   // 6: right-top-back
		center.Add(core.NewVec3(-h, h, -h)),  // 7: left-top-back
	}

	// Counter-clockwise when seen from outside
	faces := []int{
		0, 1, 2, 0, 2, 3, // front (Z+)
		5, 4, 7, 5, 7, 6, // back (Z-)
		1, 5, 6, 1, 6, 2, // right (X+)
		4, 0, 3, 4, 3, 7, // left (X-)
		3, 2, 6, 3, 6, 7, // top (Y+)
		4, 5, 1, 4, 1, 0, // bottom (Y-)
	}

	return NewTriangleMesh(vertices, faces, mat)
}

// Hit returns the closest hit among the mesh triangles
func (m *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return HitClosest(m.shapes, ray, tMin, tMax)
}

// GetTriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) GetTriangleCount() int {
	return len(m.Triangles)
}
