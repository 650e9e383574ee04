package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// parallelEpsilon rejects rays that run (almost) parallel to a flat surface
const parallelEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3          // A point on the plane
	Normal   core.Vec3          // Unit normal vector
	Material *material.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat *material.Material) (*Plane, error) {
	if normal.LengthSquared() == 0 {
		return nil, fmt.Errorf("%w: plane normal must be non-zero", core.ErrInvalidGeometry)
	}
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}, nil
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denominator := p.Normal.Dot(ray.Direction)
	if math.Abs(denominator) <= parallelEpsilon {
		return nil, false
	}

	// t = (point_on_plane - ray_origin) · normal / (normal · ray_direction)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !inRange(t, tMin, tMax) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hitRecord.SetFaceNormal(ray, p.Normal)

	return hitRecord, true
}
