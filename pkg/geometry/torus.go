package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Torus is a ring around the Y axis through Center.
// MajorRadius is the distance from the center to the tube center, MinorRadius the tube radius.
type Torus struct {
	Center      core.Vec3
	MajorRadius float64
	MinorRadius float64
	Material    *material.Material
}

// NewTorus creates a new torus lying in the XZ plane
func NewTorus(center core.Vec3, majorRadius, minorRadius float64, mat *material.Material) (*Torus, error) {
	if minorRadius <= 0 || majorRadius <= 0 {
		return nil, fmt.Errorf("%w: torus radii must be positive, got %f and %f", core.ErrInvalidGeometry, majorRadius, minorRadius)
	}
	if minorRadius >= majorRadius {
		return nil, fmt.Errorf("%w: torus minor radius %f must be smaller than major radius %f", core.ErrInvalidGeometry, minorRadius, majorRadius)
	}
	return &Torus{
		Center:      center,
		MajorRadius: majorRadius,
		MinorRadius: minorRadius,
		Material:    mat,
	}, nil
}

// Intersections returns every real ray parameter t where the ray meets the torus, ascending
func (tr *Torus) Intersections(ray core.Ray) []float64 {
	length := ray.Direction.Length()
	if length == 0 {
		return nil
	}

	// Solve in distance units along a unit direction, then rescale to the caller's t
	o := ray.Origin.Subtract(tr.Center)
	d := ray.Direction.Divide(length)

	R2 := tr.MajorRadius * tr.MajorRadius
	r2 := tr.MinorRadius * tr.MinorRadius

	// (|p|² + R² - r²)² = 4R²(px² + pz²) with p = o + s*d
	m := o.Dot(d)
	k := o.LengthSquared() + R2 - r2
	dxz := d.X*d.X + d.Z*d.Z
	odxz := o.X*d.X + o.Z*d.Z
	oxz := o.X*o.X + o.Z*o.Z

	roots := core.SolveQuartic(
		1,
		4*m,
		4*m*m+2*k-4*R2*dxz,
		4*m*k-8*R2*odxz,
		k*k-4*R2*oxz,
	)

	for i := range roots {
		roots[i] /= length
	}
	return roots
}

// Hit returns the nearest quartic root inside (tMin, tMax)
func (tr *Torus) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	for _, t := range tr.Intersections(ray) {
		if !inRange(t, tMin, tMax) {
			continue
		}

		point := ray.At(t)
		local := point.Subtract(tr.Center)
		ring := math.Sqrt(local.X*local.X + local.Z*local.Z)
		if ring == 0 {
			continue
		}

		// Outward normal points away from the nearest point on the tube's center circle
		tubeCenter := core.NewVec3(local.X/ring*tr.MajorRadius, 0, local.Z/ring*tr.MajorRadius)
		outwardNormal := local.Subtract(tubeCenter).Normalize()

		hitRecord := &material.HitRecord{
			T:        t,
			Point:    point,
			U:        0.5 + math.Atan2(local.Z, local.X)/(2*math.Pi),
			V:        0.5 + math.Atan2(outwardNormal.Y, ring-tr.MajorRadius)/(2*math.Pi),
			Material: tr.Material,
		}
		hitRecord.SetFaceNormal(ray, outwardNormal)
		return hitRecord, true
	}

	return nil, false
}
