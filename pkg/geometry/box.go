package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cube represents a box with full edge lengths Size, optionally rotated around the Y axis
type Cube struct {
	Center    core.Vec3          // Center point of the box
	Size      core.Vec3          // Full edge length along each local axis
	RotationY float64            // Rotation around Y in degrees
	Material  *material.Material // Material for all faces
	half      core.Vec3          // Cached half extents
	angle     float64            // Cached rotation in radians
}

// NewCube creates a new box with the given center, edge lengths, Y rotation (degrees) and material
func NewCube(center, size core.Vec3, rotationY float64, mat *material.Material) (*Cube, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("%w: cube size must be positive on every axis, got %v", core.ErrInvalidGeometry, size)
	}
	return &Cube{
		Center:    center,
		Size:      size,
		RotationY: rotationY,
		Material:  mat,
		half:      size.Multiply(0.5),
		angle:     core.DegreesToRadians(rotationY),
	}, nil
}

// NewAxisAlignedCube creates an unrotated cube with equal edges
func NewAxisAlignedCube(center core.Vec3, side float64, mat *material.Material) (*Cube, error) {
	return NewCube(center, core.NewVec3(side, side, side), 0, mat)
}

// SetPosition moves the cube to a new center
func (c *Cube) SetPosition(center core.Vec3) {
	c.Center = center
}

// Hit performs a slab test in the cube's local (unrotated) frame
func (c *Cube) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	origin := ray.Origin.Subtract(c.Center).RotateY(-c.angle)
	direction := ray.Direction.RotateY(-c.angle)

	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	nearAxis, farAxis := -1, -1

	for axis := 0; axis < 3; axis++ {
		o := origin.Component(axis)
		d := direction.Component(axis)
		h := c.half.Component(axis)

		if d == 0 {
			// Parallel to this slab: either always inside it or never
			if o < -h || o > h {
				return nil, false
			}
			continue
		}

		invD := 1.0 / d
		t0 := (-h - o) * invD
		t1 := (h - o) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tNear {
			tNear = t0
			nearAxis = axis
		}
		if t1 < tFar {
			tFar = t1
			farAxis = axis
		}
	}

	if tFar < 0 || tNear > tFar {
		return nil, false
	}

	// Entry hit unless the ray starts inside the box
	t, axis := tNear, nearAxis
	if tNear <= tMin {
		t, axis = tFar, farAxis
	}
	if axis < 0 || !inRange(t, tMin, tMax) {
		return nil, false
	}

	localPoint := origin.Add(direction.Multiply(t))
	var localNormal core.Vec3
	switch axis {
	case 0:
		localNormal = core.NewVec3(math.Copysign(1, localPoint.X), 0, 0)
	case 1:
		localNormal = core.NewVec3(0, math.Copysign(1, localPoint.Y), 0)
	default:
		localNormal = core.NewVec3(0, 0, math.Copysign(1, localPoint.Z))
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: c.Material,
	}
	hitRecord.SetFaceNormal(ray, localNormal.RotateY(c.angle))

	return hitRecord, true
}
