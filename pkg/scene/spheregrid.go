package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := core.DegreesToRadians(h)

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	rgb := core.NewVec3(
		+4.0767416621*l_-3.3077115913*m_+0.2309699292*s_,
		-1.2684380046*l_+2.6097574011*m_-0.3413193965*s_,
		-0.0041960863*l_-0.7034186147*m_+1.7076147010*s_,
	)
	return rgb.Clamp(0, 1)
}

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 8

// NewSphereGridScene creates a grid of spheres. Hue varies along X, shininess grows along X
// and reflectivity grows along Z, so the grid doubles as a material chart.
func NewSphereGridScene() *Scene {
	s := newScene("spheregrid", core.NewVec3(0, 6, 10), core.NewVec3(0, 0, -0.5), 45)

	ground := material.NewMaterial(core.NewVec3(0.5, 0.5, 0.5), 0.1, 0.8, 0.0, 10)
	s.Add(must(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground)))

	extent := 8.0
	spacing := extent / float64(sphereGridSize-1)
	radius := spacing * 0.35

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			fi := float64(i) / float64(sphereGridSize-1)
			fj := float64(j) / float64(sphereGridSize-1)

			position := core.NewVec3(float64(i)*spacing-extent/2, radius, float64(j)*spacing-extent/2)
			color := oklchToRGB(0.7+0.08*math.Sin(float64(i+j)*0.5), 0.15, fi*360)

			mat := material.NewMaterial(color, 0.1, 0.7, 0.6, 5+fi*395)
			mat.Reflectivity = 0.6 * fj
			s.Add(must(geometry.NewSphere(position, radius, mat)))
		}
	}

	s.AddAmbientLight(core.NewVec3(1, 1, 1), 0.2)
	s.AddPointLight(core.NewVec3(6, 10, 8), core.NewVec3(1, 0.96, 0.9), 1.0)

	return s
}
