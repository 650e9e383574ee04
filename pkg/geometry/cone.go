package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cone represents a finite cone opening from its apex along Axis, closed by a flat base cap
type Cone struct {
	Apex     core.Vec3
	Axis     core.Vec3 // Unit vector from apex toward the base
	Height   float64
	Radius   float64 // Base radius
	Material *material.Material

	// Cached derived values
	tanSquared float64 // tan²(half angle) = (radius/height)²
}

// NewCone creates a new cone. The axis is normalized; a zero axis means -Y (apex on top).
func NewCone(apex, axis core.Vec3, height, radius float64, mat *material.Material) (*Cone, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: cone radius must be positive, got %f", core.ErrInvalidGeometry, radius)
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: cone height must be positive, got %f", core.ErrInvalidGeometry, height)
	}
	if axis.LengthSquared() == 0 {
		axis = core.NewVec3(0, -1, 0)
	}

	tanTheta := radius / height
	return &Cone{
		Apex:       apex,
		Axis:       axis.Normalize(),
		Height:     height,
		Radius:     radius,
		Material:   mat,
		tanSquared: tanTheta * tanTheta,
	}, nil
}

// BaseCenter returns the center of the base cap
func (c *Cone) BaseCenter() core.Vec3 {
	return c.Apex.Add(c.Axis.Multiply(c.Height))
}

// Hit tests the cone body and base cap, keeping the closest valid hit
func (c *Cone) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestT := tMax

	if bodyHit := c.hitBody(ray, tMin, closestT); bodyHit != nil {
		closestHit = bodyHit
		closestT = bodyHit.T
	}
	if capHit := hitDisc(ray, c.BaseCenter(), c.Axis, c.Radius, tMin, closestT, c.Material); capHit != nil {
		closestHit = capHit
	}

	return closestHit, closestHit != nil
}

// hitBody checks for intersection with the curved surface
func (c *Cone) hitBody(ray core.Ray, tMin, tMax float64) *material.HitRecord {
	co := ray.Origin.Subtract(c.Apex)

	dv := ray.Direction.Dot(c.Axis)
	cov := co.Dot(c.Axis)
	k := 1 + c.tanSquared

	// |Q|² = (1 + tan²θ)(Q·V)² for points Q relative to the apex
	a := ray.Direction.LengthSquared() - k*dv*dv
	b := 2.0 * (ray.Direction.Dot(co) - k*dv*cov)
	cc := co.LengthSquared() - k*cov*cov

	for _, t := range core.SolveQuadratic(a, b, cc) {
		if !inRange(t, tMin, tMax) {
			continue
		}
		// Height from the apex also rejects the mirrored nappe (h < 0)
		h := cov + t*dv
		if h < 0 || h > c.Height {
			continue
		}

		point := ray.At(t)
		q := point.Subtract(c.Apex)
		outwardNormal := q.Subtract(c.Axis.Multiply(k * h)).Normalize()

		hitRecord := &material.HitRecord{
			T:        t,
			Point:    point,
			U:        cylinderU(q.Subtract(c.Axis.Multiply(h)), c.Axis),
			V:        h / c.Height,
			Material: c.Material,
		}
		hitRecord.SetFaceNormal(ray, outwardNormal)
		return hitRecord
	}

	return nil
}
