package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// AmbientLight lights every surface uniformly and is never shadowed
type AmbientLight struct {
	color core.Vec3
}

// NewAmbientLight creates an ambient light with radiance color*intensity
func NewAmbientLight(color core.Vec3, intensity float64) *AmbientLight {
	return &AmbientLight{color: color.Multiply(intensity)}
}

func (al *AmbientLight) Type() LightType {
	return LightTypeAmbient
}

func (al *AmbientLight) Color() core.Vec3 {
	return al.color
}

// PointLight emits from a single position with no falloff
type PointLight struct {
	Position core.Vec3
	color    core.Vec3
}

// NewPointLight creates a point light with radiance color*intensity
func NewPointLight(position, color core.Vec3, intensity float64) *PointLight {
	return &PointLight{
		Position: position,
		color:    color.Multiply(intensity),
	}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

func (pl *PointLight) Color() core.Vec3 {
	return pl.color
}

// Sample returns the unit direction and distance from point to the light
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()

	var direction core.Vec3
	if distance > 0 {
		direction = toLight.Divide(distance)
	}

	return LightSample{
		Point:     pl.Position,
		Direction: direction,
		Distance:  distance,
		Emission:  pl.color,
	}
}
