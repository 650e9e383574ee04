package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypeAmbient LightType = "ambient"
	LightTypePoint   LightType = "point"
)

// Light is a source of illumination for local shading.
// Color is the effective radiance: the configured color already scaled by intensity.
type Light interface {
	Type() LightType
	Color() core.Vec3
}

// PositionalLight is a light that can be occluded and therefore needs a shadow test
type PositionalLight interface {
	Light

	// Sample returns the direction and distance from the shading point to the light
	Sample(point core.Vec3) LightSample
}

// LightSample describes a light as seen from a shading point
type LightSample struct {
	Point     core.Vec3 // Position of the light
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Emission  core.Vec3 // Radiance arriving from the light
}
