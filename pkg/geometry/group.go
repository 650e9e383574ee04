package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Transform places a group in its parent frame: scale, then rotate (degrees, X then Y then Z), then translate
type Transform struct {
	Translation core.Vec3
	Rotation    core.Vec3 // Degrees around X, Y, Z
	Scale       core.Vec3
}

// IdentityTransform leaves coordinates unchanged
func IdentityTransform() Transform {
	return Transform{Scale: core.NewVec3(1, 1, 1)}
}

// Group is a composite shape whose children live in a local frame
type Group struct {
	Name      string
	Children  []Shape
	Transform Transform

	rotation core.Vec3 // Cached rotation in radians
}

// NewGroup creates a group. Every scale component must be non-zero.
func NewGroup(name string, transform Transform, children ...Shape) (*Group, error) {
	s := transform.Scale
	if s.X == 0 || s.Y == 0 || s.Z == 0 {
		return nil, fmt.Errorf("%w: group %q has a zero scale component %v", core.ErrInvalidGeometry, name, s)
	}
	return &Group{
		Name:      name,
		Children:  children,
		Transform: transform,
		rotation: core.NewVec3(
			core.DegreesToRadians(transform.Rotation.X),
			core.DegreesToRadians(transform.Rotation.Y),
			core.DegreesToRadians(transform.Rotation.Z),
		),
	}, nil
}

// Add appends shapes to the group
func (g *Group) Add(shapes ...Shape) {
	g.Children = append(g.Children, shapes...)
}

// SetPosition moves the group origin in its parent frame
func (g *Group) SetPosition(position core.Vec3) {
	g.Transform.Translation = position
}

// toLocal maps a world-space ray into the group frame. The direction keeps its scale so t is unchanged.
func (g *Group) toLocal(ray core.Ray) core.Ray {
	origin := ray.Origin.Subtract(g.Transform.Translation).InverseRotate(g.rotation).DivideVec(g.Transform.Scale)
	direction := ray.Direction.InverseRotate(g.rotation).DivideVec(g.Transform.Scale)
	return core.NewRay(origin, direction)
}

// Hit finds the closest child hit in the local frame and maps it back
func (g *Group) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	hit, isHit := HitClosest(g.Children, g.toLocal(ray), tMin, tMax)
	if !isHit {
		return nil, false
	}

	// Normals transform by the inverse transpose: undo the scale, then rotate
	hit.Point = ray.At(hit.T)
	hit.Normal = hit.Normal.DivideVec(g.Transform.Scale).Rotate(g.rotation).Normalize()
	return hit, true
}
