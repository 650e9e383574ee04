package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains the parameters for a perspective camera
type CameraConfig struct {
	Position    core.Vec3 // Eye position
	Direction   core.Vec3 // View direction, need not be normalized
	Up          core.Vec3 // World up; defaults to +Y
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// Camera generates primary rays through a viewport one unit in front of the eye
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1
	}
	if config.Up.LengthSquared() == 0 {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.Direction.LengthSquared() == 0 {
		config.Direction = core.NewVec3(0, 0, -1)
	}

	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Direction.Negate().Normalize()
	u := config.Up.Cross(w)
	if u.LengthSquared() < 1e-12 {
		// Looking straight along the up vector; pick any perpendicular up
		u = core.NewVec3(0, 0, 1).Cross(w)
		if u.LengthSquared() < 1e-12 {
			u = core.NewVec3(1, 0, 0).Cross(w)
		}
	}
	u = u.Normalize()
	v := w.Cross(u)

	origin := config.Position
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1 and t = 0 is the bottom edge
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// Forward returns the normalized view direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
