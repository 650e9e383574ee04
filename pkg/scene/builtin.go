package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// Builtin describes a scene compiled into the binary
type Builtin struct {
	Name        string
	Description string
	New         func() *Scene
}

var builtins = map[string]Builtin{
	"default":    {"default", "Spheres, torus, cube, cylinder and cone on a checker floor", NewDefaultScene},
	"ambient":    {"ambient", "Single matte sphere under ambient light only", NewAmbientScene},
	"mirrors":    {"mirrors", "Two facing mirrors around a glass sphere", NewMirrorsScene},
	"shapes":     {"shapes", "One of each primitive, including nested groups", NewShapesScene},
	"cornell":    {"cornell", "Cornell box with a mirror block and a glass sphere", NewCornellScene},
	"cones":      {"cones", "Cones in various orientations and materials", NewConeTestScene},
	"cylinders":  {"cylinders", "Cylinders in various orientations and materials", NewCylinderTestScene},
	"spheregrid": {"spheregrid", "Grid of spheres sweeping shininess and reflectivity", NewSphereGridScene},
	"textures":   {"textures", "Solid, checker, wood and image textures side by side", NewTextureTestScene},
	"mesh":       {"mesh", "Triangle meshes and transformed groups", NewTriangleMeshScene},
}

// Builtins returns the compiled-in scenes sorted by name
func Builtins() []Builtin {
	list := make([]Builtin, 0, len(builtins))
	for _, b := range builtins {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// NewBuiltin creates a compiled-in scene by name
func NewBuiltin(name string) (*Scene, error) {
	b, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownScene, name)
	}
	return b.New(), nil
}

// newScene creates an empty scene with default settings and a camera looking from 'from' toward 'to'
func newScene(name string, from, to core.Vec3, vfov float64) *Scene {
	s := &Scene{
		Name:       name,
		Background: core.NewVec3(0.2, 0.2, 0.2),
		Settings:   DefaultRenderSettings(),
		Width:      loaders.DefaultImageWidth,
		Height:     loaders.DefaultImageHeight,
	}
	s.Camera = geometry.NewCamera(geometry.CameraConfig{
		Position:    from,
		Direction:   to.Subtract(from),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        vfov,
		AspectRatio: float64(s.Width) / float64(s.Height),
	})
	return s
}

// must unwraps a shape constructor; compiled-in scenes only use valid parameters
func must[T geometry.Shape](shape T, err error) T {
	if err != nil {
		panic(err)
	}
	return shape
}
