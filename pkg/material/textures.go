package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SolidTexture provides uniform color and leaves normals untouched
type SolidTexture struct {
	Color core.Vec3
}

// NewSolidTexture creates a new solid color texture
func NewSolidTexture(color core.Vec3) *SolidTexture {
	return &SolidTexture{Color: color}
}

// ColorAt returns the solid color regardless of UV or position
func (s *SolidTexture) ColorAt(u, v float64, point core.Vec3) core.Vec3 {
	return s.Color
}

// NormalAt returns the input normal unmodified
func (s *SolidTexture) NormalAt(u, v float64, point, normal core.Vec3) core.Vec3 {
	return normal
}

// CheckerTexture is a 3D checker: the sign of sin(s·x)·sin(s·y)·sin(s·z) picks the color.
// Larger Scale gives smaller cells.
type CheckerTexture struct {
	Color1 core.Vec3
	Color2 core.Vec3
	Scale  float64
}

// NewCheckerTexture creates a new 3D checker texture
func NewCheckerTexture(color1, color2 core.Vec3, scale float64) *CheckerTexture {
	return &CheckerTexture{Color1: color1, Color2: color2, Scale: scale}
}

// ColorAt returns Color1 where the sine product is negative, Color2 otherwise
func (c *CheckerTexture) ColorAt(u, v float64, point core.Vec3) core.Vec3 {
	sines := math.Sin(c.Scale*point.X) * math.Sin(c.Scale*point.Y) * math.Sin(c.Scale*point.Z)
	if sines < 0 {
		return c.Color1
	}
	return c.Color2
}

// NormalAt returns the input normal unmodified
func (c *CheckerTexture) NormalAt(u, v float64, point, normal core.Vec3) core.Vec3 {
	return normal
}

// noiseWeights are the fixed constants of the hash-style pseudo noise
var noiseWeights = core.NewVec3(12.9898, 78.233, 54.53)

const (
	noiseScale        = 43758.5453
	woodNormalEpsilon = 0.001
	woodBumpStrength  = 0.1
)

// WoodTexture draws concentric rings around the Y axis, distorted by pseudo noise,
// and bumps the normal along the noise gradient.
type WoodTexture struct {
	Light          core.Vec3
	Dark           core.Vec3
	RingFrequency  float64
	GrainFrequency float64
}

// NewWoodTexture creates a wood texture; the grain frequency is a quarter of the ring frequency
func NewWoodTexture(light, dark core.Vec3, ringFrequency float64) *WoodTexture {
	return &WoodTexture{
		Light:          light,
		Dark:           dark,
		RingFrequency:  ringFrequency,
		GrainFrequency: ringFrequency / 4,
	}
}

// ColorAt blends dark and light colors by a ring function of the distance from the Y axis
func (w *WoodTexture) ColorAt(u, v float64, point core.Vec3) core.Vec3 {
	distance := math.Sqrt(point.X*point.X + point.Z*point.Z)
	grain := math.Sin(distance*w.RingFrequency+SimpleNoise(point.Multiply(w.GrainFrequency)))*0.5 + 0.5
	return core.Lerp(w.Dark, w.Light, grain)
}

// NormalAt tilts the normal along a forward-difference gradient of the noise in X and Y
func (w *WoodTexture) NormalAt(u, v float64, point, normal core.Vec3) core.Vec3 {
	base := SimpleNoise(point)
	noiseX := SimpleNoise(point.Add(core.NewVec3(woodNormalEpsilon, 0, 0)))
	noiseY := SimpleNoise(point.Add(core.NewVec3(0, woodNormalEpsilon, 0)))

	gradient := core.NewVec3(noiseX-base, noiseY-base, 0).Normalize()
	return normal.Add(gradient.Multiply(woodBumpStrength)).Normalize()
}

// SimpleNoise is a cheap hash noise in [0,1): fract(sin(p·k) * 43758.5453)
func SimpleNoise(point core.Vec3) float64 {
	return core.Fract(math.Sin(point.Dot(noiseWeights)) * noiseScale)
}
