package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cylinder represents a finite capped cylinder standing on its base center
type Cylinder struct {
	BaseCenter core.Vec3
	Axis       core.Vec3 // Unit vector from base to top
	Height     float64
	Radius     float64
	Material   *material.Material
}

// NewCylinder creates a new capped cylinder. The axis is normalized; a zero axis means +Y.
func NewCylinder(baseCenter, axis core.Vec3, height, radius float64, mat *material.Material) (*Cylinder, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: cylinder radius must be positive, got %f", core.ErrInvalidGeometry, radius)
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: cylinder height must be positive, got %f", core.ErrInvalidGeometry, height)
	}
	if axis.LengthSquared() == 0 {
		axis = core.NewVec3(0, 1, 0)
	}

	return &Cylinder{
		BaseCenter: baseCenter,
		Axis:       axis.Normalize(),
		Height:     height,
		Radius:     radius,
		Material:   mat,
	}, nil
}

// TopCenter returns the center of the top cap
func (c *Cylinder) TopCenter() core.Vec3 {
	return c.BaseCenter.Add(c.Axis.Multiply(c.Height))
}

// Hit tests the lateral surface and both caps, keeping the closest valid hit
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestT := tMax

	if hit := c.hitLateral(ray, tMin, closestT); hit != nil {
		closestHit = hit
		closestT = hit.T
	}
	if hit := hitDisc(ray, c.BaseCenter, c.Axis.Negate(), c.Radius, tMin, closestT, c.Material); hit != nil {
		closestHit = hit
		closestT = hit.T
	}
	if hit := hitDisc(ray, c.TopCenter(), c.Axis, c.Radius, tMin, closestT, c.Material); hit != nil {
		closestHit = hit
	}

	return closestHit, closestHit != nil
}

// hitLateral solves the quadratic in the plane perpendicular to the axis
func (c *Cylinder) hitLateral(ray core.Ray, tMin, tMax float64) *material.HitRecord {
	delta := ray.Origin.Subtract(c.BaseCenter)

	// Split direction and origin offset into axis-parallel and perpendicular parts
	dv := ray.Direction.Dot(c.Axis)
	deltaV := delta.Dot(c.Axis)
	dPerp := ray.Direction.Subtract(c.Axis.Multiply(dv))
	deltaPerp := delta.Subtract(c.Axis.Multiply(deltaV))

	a := dPerp.LengthSquared()
	if a < 1e-12 {
		// Ray parallel to the axis never crosses the lateral surface
		return nil
	}
	b := 2.0 * dPerp.Dot(deltaPerp)
	cc := deltaPerp.LengthSquared() - c.Radius*c.Radius

	for _, t := range core.SolveQuadratic(a, b, cc) {
		if !inRange(t, tMin, tMax) {
			continue
		}
		z := deltaV + t*dv
		if z < 0 || z > c.Height {
			continue
		}

		point := ray.At(t)
		axisPoint := c.BaseCenter.Add(c.Axis.Multiply(z))
		outwardNormal := point.Subtract(axisPoint).Divide(c.Radius)

		hitRecord := &material.HitRecord{
			T:        t,
			Point:    point,
			U:        cylinderU(outwardNormal, c.Axis),
			V:        z / c.Height,
			Material: c.Material,
		}
		hitRecord.SetFaceNormal(ray, outwardNormal)
		return hitRecord
	}

	return nil
}

// cylinderU is the angle around the axis mapped to [0,1)
func cylinderU(radial, axis core.Vec3) float64 {
	reference := core.NewVec3(1, 0, 0)
	if math.Abs(axis.X) > 0.9 {
		reference = core.NewVec3(0, 0, 1)
	}
	tangent := axis.Cross(reference).Normalize()
	bitangent := axis.Cross(tangent)
	return 0.5 + math.Atan2(radial.Dot(bitangent), radial.Dot(tangent))/(2*math.Pi)
}

// hitDisc intersects the ray with a flat disc (used for cylinder and cone caps)
func hitDisc(ray core.Ray, center, normal core.Vec3, radius, tMin, tMax float64, mat *material.Material) *material.HitRecord {
	denom := ray.Direction.Dot(normal)
	if math.Abs(denom) <= parallelEpsilon {
		return nil
	}

	t := center.Subtract(ray.Origin).Dot(normal) / denom
	if !inRange(t, tMin, tMax) {
		return nil
	}

	point := ray.At(t)
	if point.Subtract(center).LengthSquared() > radius*radius {
		return nil
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    point,
		Material: mat,
	}
	hitRecord.SetFaceNormal(ray, normal)

	return hitRecord
}
