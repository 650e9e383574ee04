package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material holds Phong reflection coefficients and the recursive ray weights of a surface.
// KAmbient, KDiffuse and KSpecular are used as given; they need not sum to one.
type Material struct {
	Name           string
	Color          core.Vec3 // Base color in linear [0,1] RGB
	SecondaryColor core.Vec3 // Second pattern color for procedural textures
	Texture        Texture
	KAmbient       float64
	KDiffuse       float64
	KSpecular      float64
	Shininess      float64 // Phong exponent
	Reflectivity   float64 // Weight of the reflected ray, in [0,1]
	Refractivity   float64 // Refractive index; zero disables refraction
}

// NewMaterial creates a material with a solid texture of the given color
func NewMaterial(color core.Vec3, kAmbient, kDiffuse, kSpecular, shininess float64) *Material {
	return &Material{
		Color:     color,
		Texture:   NewSolidTexture(color),
		KAmbient:  kAmbient,
		KDiffuse:  kDiffuse,
		KSpecular: kSpecular,
		Shininess: shininess,
	}
}

// NewWhiteMatte creates the default matte white material
func NewWhiteMatte() *Material {
	m := NewMaterial(core.NewVec3(0.9, 0.9, 0.9), 0.1, 0.6, 0.4, 80)
	m.Name = "WhiteMatte"
	return m
}

// WithTexture replaces the texture and returns the material for chaining
func (m *Material) WithTexture(texture Texture) *Material {
	m.Texture = texture
	return m
}

// GetColor returns the surface color at the hit location
func (m *Material) GetColor(u, v float64, point core.Vec3) core.Vec3 {
	return m.Texture.ColorAt(u, v, point)
}

// PerturbNormal returns the shading normal after texture normal mapping
func (m *Material) PerturbNormal(u, v float64, point, normal core.Vec3) core.Vec3 {
	return m.Texture.NormalAt(u, v, point, normal)
}
