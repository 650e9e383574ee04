package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture provides spatially-varying color and normal perturbation for a surface.
// UV is set by shapes that parameterize their surface, point is the world-space hit point.
type Texture interface {
	ColorAt(u, v float64, point core.Vec3) core.Vec3
	NormalAt(u, v float64, point, normal core.Vec3) core.Vec3
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, always opposing the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	U, V      float64   // Surface coordinates, zero when the shape has none
	Material  *Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
