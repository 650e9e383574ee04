package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// TraceRay returns the color seen along ray with at most depth recursive bounces.
	// Implementations must be safe for concurrent use.
	TraceRay(ray core.Ray, scene *scene.Scene, depth int) core.Vec3
}
