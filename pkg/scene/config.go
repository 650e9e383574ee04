package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// FromConfig assembles a renderable scene from a loaded scene file.
// Every configuration error is reported here, before any pixel work.
func FromConfig(cfg *loaders.SceneConfig) (*Scene, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", core.ErrInvalidImageSize, cfg.Width, cfg.Height)
	}

	settings, err := settingsFromConfig(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	materials, err := buildMaterials(cfg)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]loaders.ObjectConfig, len(cfg.Objects))
	for _, object := range cfg.Objects {
		if _, exists := templates[object.Name]; exists {
			return nil, fmt.Errorf("object %q defined twice", object.Name)
		}
		templates[object.Name] = object
	}

	camera, background, err := cameraFromConfig(cfg.Camera, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Name:       cfg.Name,
		Camera:     camera,
		Background: background,
		Settings:   settings,
		Width:      cfg.Width,
		Height:     cfg.Height,
	}

	for i, instance := range cfg.Scene {
		group, err := buildInstance(cfg, instance, templates, materials)
		if err != nil {
			return nil, fmt.Errorf("scene instance %d: %w", i, err)
		}
		s.Add(group)
	}

	for i, lc := range cfg.Lights {
		light, err := buildLight(lc)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.Lights = append(s.Lights, light)
	}

	core.LogDebug("scene assembled", "scene", s.Name, "shapes", len(s.Shapes),
		"primitives", s.GetPrimitiveCount(), "lights", len(s.Lights))
	return s, nil
}

func settingsFromConfig(a loaders.AlgorithmConfig) (RenderSettings, error) {
	settings := DefaultRenderSettings()

	strategy, err := ParseAntiAliasing(a.AntiAliasing)
	if err != nil {
		return settings, err
	}
	settings.AntiAliasing = strategy

	if a.MaxDepth > 0 {
		settings.MaxDepth = a.MaxDepth
	}
	if a.SamplesPerPixel > 0 {
		settings.SamplesPerPixel = a.SamplesPerPixel
	}
	if a.ShadowsEnabled != nil {
		settings.ShadowsEnabled = *a.ShadowsEnabled
	}
	if a.ReflectionsEnabled != nil {
		settings.ReflectionsEnabled = *a.ReflectionsEnabled
	}
	if a.RefractionsEnabled != nil {
		settings.RefractionsEnabled = *a.RefractionsEnabled
	}
	if a.Parallel != nil {
		settings.Parallel = *a.Parallel
	}
	if a.MinimalPerformance > 0 {
		settings.MinimalPerformance = a.MinimalPerformance
	}
	if a.Exposure > 0 {
		settings.Exposure = a.Exposure
	}
	settings.Workers = a.Workers
	settings.Seed = a.Seed
	return settings, nil
}

func buildMaterials(cfg *loaders.SceneConfig) (map[string]*material.Material, error) {
	materials := make(map[string]*material.Material, len(cfg.Materials))
	for _, mc := range cfg.Materials {
		if _, exists := materials[mc.Name]; exists {
			return nil, fmt.Errorf("material %q defined twice", mc.Name)
		}
		mat, err := buildMaterial(cfg, mc)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", mc.Name, err)
		}
		materials[mc.Name] = mat
	}
	return materials, nil
}

func buildMaterial(cfg *loaders.SceneConfig, mc loaders.MaterialConfig) (*material.Material, error) {
	color, err := colorFromConfig(mc.Color)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	secondary, err := colorFromConfig(mc.SecondaryColor)
	if err != nil {
		return nil, fmt.Errorf("secondary color: %w", err)
	}

	mat := material.NewMaterial(color, deref(mc.Ambient), deref(mc.Diffuse), deref(mc.Specular), deref(mc.Shininess))
	mat.Name = mc.Name
	mat.SecondaryColor = secondary
	mat.Reflectivity = mc.Reflectivity
	mat.Refractivity = mc.Refractivity

	coef := deref(mc.TextureCoef)
	switch strings.ToLower(mc.Texture) {
	case "", "none", "solid":
		// NewMaterial already attached a solid texture
	case "checker":
		mat.WithTexture(material.NewCheckerTexture(color, secondary, coef))
	case "wood":
		mat.WithTexture(material.NewWoodTexture(color, secondary, coef))
	case "image":
		if mc.TextureFile == "" {
			return nil, fmt.Errorf("%w: image texture needs texture_file", core.ErrUnknownTexture)
		}
		img, err := loaders.LoadImage(cfg.ResolvePath(mc.TextureFile))
		if err != nil {
			return nil, err
		}
		mat.WithTexture(material.NewImageTexture(img.Width, img.Height, img.Pixels))
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownTexture, mc.Texture)
	}
	return mat, nil
}

func buildInstance(cfg *loaders.SceneConfig, instance loaders.InstanceConfig, templates map[string]loaders.ObjectConfig, materials map[string]*material.Material) (*geometry.Group, error) {
	object, ok := templates[instance.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownObject, instance.Type)
	}

	transform, err := transformFromConfig(instance.Position, instance.Rotation, instance.Scale)
	if err != nil {
		return nil, err
	}

	children := make([]geometry.Shape, 0, len(object.BasicShapes))
	for j, primitive := range object.BasicShapes {
		shape, err := buildPrimitive(cfg, primitive, materials)
		if err != nil {
			return nil, fmt.Errorf("object %q shape %d: %w", object.Name, j, err)
		}
		children = append(children, shape)
	}

	return geometry.NewGroup(object.Name, transform, children...)
}

// buildPrimitive creates one basic shape. A primitive with its own scale or rotation
// is built at the origin and wrapped in a group placed at its position.
func buildPrimitive(cfg *loaders.SceneConfig, p loaders.PrimitiveConfig, materials map[string]*material.Material) (geometry.Shape, error) {
	mat, ok := materials[p.Material]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownMaterial, p.Material)
	}

	position, err := loaders.Vec(p.Position)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}

	if !p.HasTransform() {
		return newPrimitive(cfg, p, position, mat)
	}

	shape, err := newPrimitive(cfg, p, core.Vec3{}, mat)
	if err != nil {
		return nil, err
	}
	transform, err := transformFromConfig(p.Position, p.Rotation, p.Scale)
	if err != nil {
		return nil, err
	}
	return geometry.NewGroup(p.Type, transform, shape)
}

func newPrimitive(cfg *loaders.SceneConfig, p loaders.PrimitiveConfig, position core.Vec3, mat *material.Material) (geometry.Shape, error) {
	size, err := loaders.Vec(p.Size)
	if err != nil {
		return nil, fmt.Errorf("size: %w", err)
	}
	var axis core.Vec3
	if p.Axis != nil {
		if axis, err = loaders.Vec(p.Axis); err != nil {
			return nil, fmt.Errorf("axis: %w", err)
		}
	}

	switch strings.ToLower(p.Type) {
	case "sphere":
		return geometry.NewSphere(position, deref(p.Radius), mat)
	case "plane":
		normal, err := loaders.Vec(p.Normal)
		if err != nil {
			return nil, fmt.Errorf("normal: %w", err)
		}
		return geometry.NewPlane(position, normal, mat)
	case "cube":
		return geometry.NewCube(position, size, p.RotationAngle, mat)
	case "trianglecube":
		return geometry.NewTriangleCube(position, size.X, mat)
	case "cylinder":
		return geometry.NewCylinder(position, axis, deref(p.Height), deref(p.Radius), mat)
	case "cone":
		return geometry.NewCone(position, axis, deref(p.Height), deref(p.Radius), mat)
	case "torus":
		return geometry.NewTorus(position, deref(p.Radius), deref(p.MinorRadius), mat)
	case "mesh":
		return loadMesh(cfg.ResolvePath(p.File), position, mat)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownPrimitive, p.Type)
	}
}

// loadMesh reads a PLY file and places its vertices relative to position
func loadMesh(path string, position core.Vec3, mat *material.Material) (*geometry.TriangleMesh, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: mesh needs a file", core.ErrInvalidGeometry)
	}
	data, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, err
	}
	vertices := make([]core.Vec3, len(data.Vertices))
	for i, v := range data.Vertices {
		vertices[i] = v.Add(position)
	}
	return geometry.NewTriangleMesh(vertices, data.Faces, mat)
}

func buildLight(lc loaders.LightConfig) (lights.Light, error) {
	color, err := colorFromConfig(lc.Color)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}

	switch strings.ToLower(lc.Type) {
	case "ambientlight", "ambient":
		return lights.NewAmbientLight(color, deref(lc.Intensity)), nil
	case "pointlight", "point":
		position, err := loaders.Vec(lc.Position)
		if err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
		return lights.NewPointLight(position, color, deref(lc.Intensity)), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownLight, lc.Type)
	}
}

func cameraFromConfig(cc loaders.CameraConfig, width, height int) (*geometry.Camera, core.Vec3, error) {
	position, err := loaders.Vec(cc.Position)
	if err != nil {
		return nil, core.Vec3{}, fmt.Errorf("camera position: %w", err)
	}
	direction, err := loaders.Vec(cc.Direction)
	if err != nil {
		return nil, core.Vec3{}, fmt.Errorf("camera direction: %w", err)
	}
	up, err := loaders.Vec(cc.Up)
	if err != nil {
		return nil, core.Vec3{}, fmt.Errorf("camera up: %w", err)
	}
	background, err := colorFromConfig(cc.BackgroundColor)
	if err != nil {
		return nil, core.Vec3{}, fmt.Errorf("background color: %w", err)
	}

	camera := geometry.NewCamera(geometry.CameraConfig{
		Position:    position,
		Direction:   direction,
		Up:          up,
		VFov:        deref(cc.FOV),
		AspectRatio: float64(width) / float64(height),
	})
	return camera, background, nil
}

func transformFromConfig(position, rotation, scale []float64) (geometry.Transform, error) {
	translation, err := loaders.Vec(position)
	if err != nil {
		return geometry.Transform{}, fmt.Errorf("position: %w", err)
	}
	rot, err := loaders.Vec(rotation)
	if err != nil {
		return geometry.Transform{}, fmt.Errorf("rotation: %w", err)
	}
	sc, err := loaders.Vec(scale)
	if err != nil {
		return geometry.Transform{}, fmt.Errorf("scale: %w", err)
	}
	return geometry.Transform{Translation: translation, Rotation: rot, Scale: sc}, nil
}

// colorFromConfig reads a linear [0,1] color. Colors with any component above 1
// are taken as 8-bit values and divided by 255.
func colorFromConfig(values []float64) (core.Vec3, error) {
	color, err := loaders.Vec(values)
	if err != nil {
		return core.Vec3{}, err
	}
	if color.X > 1 || color.Y > 1 || color.Z > 1 {
		color = color.Divide(255)
	}
	return color, nil
}

func deref[T any](value *T) T {
	if value == nil {
		var zero T
		return zero
	}
	return *value
}
