package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Format identifies the encoding of a scene file
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// SceneConfig is the on-disk description of a scene.
// Optional numeric fields are pointers so an explicit zero can be told apart from "use the default".
type SceneConfig struct {
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	Width       int    `toml:"width" json:"width"`
	Height      int    `toml:"height" json:"height"`
	Output      string `toml:"output" json:"output"`

	// BaseDir resolves relative paths inside the file; set by LoadSceneConfig
	BaseDir string `toml:"-" json:"-"`

	Materials []MaterialConfig `toml:"materials" json:"materials"`
	Objects   []ObjectConfig   `toml:"objects" json:"objects"`
	Scene     []InstanceConfig `toml:"scene" json:"scene"`
	Lights    []LightConfig    `toml:"lights" json:"lights"`
	Camera    CameraConfig     `toml:"camera" json:"camera"`
	Algorithm AlgorithmConfig  `toml:"algorithm" json:"algorithm"`
}

// MaterialConfig describes a named Phong material and its texture
type MaterialConfig struct {
	Name           string    `toml:"name" json:"name"`
	Color          []float64 `toml:"color" json:"color"`
	SecondaryColor []float64 `toml:"secondary_color" json:"secondaryColor"`
	Texture        string    `toml:"texture" json:"texture"`          // None, Solid, Checker, Wood, Image
	TextureCoef    *float64  `toml:"texture_coef" json:"textureCoef"` // Checker scale or wood ring frequency
	TextureFile    string    `toml:"texture_file" json:"textureFile"` // Image texture path, relative to the scene file
	Ambient        *float64  `toml:"ambient" json:"ambient"`
	Diffuse        *float64  `toml:"diffuse" json:"diffuse"`
	Specular       *float64  `toml:"specular" json:"specular"`
	Shininess      *float64  `toml:"shininess" json:"shininess"`
	Reflectivity   float64   `toml:"reflectivity" json:"reflectivity"`
	Refractivity   float64   `toml:"refractivity" json:"refractivity"`
}

// PrimitiveConfig describes one basic shape inside an object template
type PrimitiveConfig struct {
	Type          string    `toml:"type" json:"type"` // Sphere, Plane, Cube, Cylinder, Cone, Torus, TriangleCube, Mesh
	Position      []float64 `toml:"position" json:"position"`
	Radius        *float64  `toml:"radius" json:"radius"` // sphere, cylinder, cone base, torus major
	MinorRadius   *float64  `toml:"minor_radius" json:"minorRadius"`
	Size          []float64 `toml:"size" json:"size"`
	Normal        []float64 `toml:"normal" json:"normal"` // plane
	Axis          []float64 `toml:"axis" json:"axis"`     // cylinder and cone
	Height        *float64  `toml:"height" json:"height"`
	RotationAngle float64   `toml:"rotation_angle" json:"rotationAngle"` // cube, degrees around Y
	Scale         []float64 `toml:"scale" json:"scale"`
	Rotation      []float64 `toml:"rotation" json:"rotation"`
	Material      string    `toml:"material" json:"material"`
	File          string    `toml:"file" json:"file"` // mesh, PLY path relative to the scene file
}

// ObjectConfig is a named template made of basic shapes
type ObjectConfig struct {
	Name        string            `toml:"name" json:"name"`
	BasicShapes []PrimitiveConfig `toml:"basic_shapes" json:"basicShapes"`
}

// InstanceConfig places an object template in the scene
type InstanceConfig struct {
	Type     string    `toml:"type" json:"type"` // Name of an ObjectConfig
	Position []float64 `toml:"position" json:"position"`
	Scale    []float64 `toml:"scale" json:"scale"`
	Rotation []float64 `toml:"rotation" json:"rotation"`
}

// LightConfig describes an ambient or point light
type LightConfig struct {
	Type      string    `toml:"type" json:"type"` // AmbientLight, PointLight
	Position  []float64 `toml:"position" json:"position"`
	Color     []float64 `toml:"color" json:"color"`
	Intensity *float64  `toml:"intensity" json:"intensity"`
}

// CameraConfig describes the viewpoint and background
type CameraConfig struct {
	Position        []float64 `toml:"position" json:"position"`
	Direction       []float64 `toml:"direction" json:"direction"`
	Up              []float64 `toml:"up" json:"up"`
	BackgroundColor []float64 `toml:"background_color" json:"backgroundColor"`
	FOV             *float64  `toml:"fov" json:"fovAngle"`
}

// AlgorithmConfig holds the tracer switches
type AlgorithmConfig struct {
	ReflectionsEnabled *bool   `toml:"reflections" json:"reflectionsEnabled"`
	ShadowsEnabled     *bool   `toml:"shadows" json:"shadowsEnabled"`
	RefractionsEnabled *bool   `toml:"refractions" json:"refractionsEnabled"`
	MaxDepth           int     `toml:"max_depth" json:"maxDepth"`
	SamplesPerPixel    int     `toml:"samples_per_pixel" json:"samplesPerPixel"`
	MinimalPerformance float64 `toml:"minimal_performance" json:"minimalPerformance"`
	AntiAliasing       string  `toml:"anti_aliasing" json:"antiAliasing"`
	Parallel           *bool   `toml:"parallel" json:"parallelism"`
	Workers            int     `toml:"workers" json:"workers"`
	Exposure           float64 `toml:"exposure" json:"exposure"`
	Seed               uint64  `toml:"seed" json:"seed"`
}

// Defaults for fields left out of a scene file
const (
	DefaultMaterialName    = "Default"
	DefaultAmbient         = 0.1
	DefaultDiffuse         = 0.9
	DefaultSpecular        = 0.5
	DefaultShininess       = 200.0
	DefaultTextureCoef     = 1.0
	DefaultRadius          = 1.0
	DefaultMinorRadius     = 0.5
	DefaultShapeHeight     = 1.0
	DefaultFOV             = 90.0
	DefaultMaxDepth        = 5
	DefaultSamplesPerPixel = 5
	DefaultAntiAliasing    = "JitteredSamplingAliasing"
	DefaultImageWidth      = 600
	DefaultImageHeight     = 400
	DefaultLightIntensity  = 1.0
)

// LoadSceneConfig reads a scene file; the format is chosen by extension (.toml or .json)
func LoadSceneConfig(path string) (*SceneConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	config, err := ParseSceneConfig(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if config.Name == "" {
		config.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	config.BaseDir = filepath.Dir(path)
	return config, nil
}

// FormatFromPath maps a file extension to a scene format
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: scene file %q", core.ErrUnsupportedFormat, path)
	}
}

// ParseSceneConfig decodes a scene and fills in defaults. Unknown keys are rejected.
func ParseSceneConfig(data []byte, format Format) (*SceneConfig, error) {
	var config SceneConfig

	switch format {
	case FormatTOML:
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&config); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := decodeStrictJSON(data, &config); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: scene format %q", core.ErrUnsupportedFormat, format)
	}

	config.ApplyDefaults()
	return &config, nil
}

// sceneConfigFields and algorithmConfigFields drop the custom unmarshalers so the
// plain struct tags can be decoded without recursion
type (
	sceneConfigFields     SceneConfig
	algorithmConfigFields AlgorithmConfig
)

// UnmarshalJSON decodes a scene in either key style. Legacy scene files use
// ObjectsInScene, CameraSettings, AlgorithmSettings and FileName in place of
// objects, camera, algorithm and output.
func (c *SceneConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		sceneConfigFields
		ObjectsInScene    []ObjectConfig   `json:"ObjectsInScene"`
		CameraSettings    *CameraConfig    `json:"CameraSettings"`
		AlgorithmSettings *AlgorithmConfig `json:"AlgorithmSettings"`
		FileName          string           `json:"FileName"`
	}
	if err := decodeStrictJSON(data, &raw); err != nil {
		return err
	}

	*c = SceneConfig(raw.sceneConfigFields)
	c.Objects = append(c.Objects, raw.ObjectsInScene...)
	if raw.CameraSettings != nil {
		c.Camera = *raw.CameraSettings
	}
	if raw.AlgorithmSettings != nil {
		c.Algorithm = *raw.AlgorithmSettings
	}
	if c.Output == "" {
		c.Output = raw.FileName
	}
	return nil
}

// UnmarshalJSON accepts the earlier Paralellism spelling and the RayTracer selector,
// which only ever had the Basic (Whitted) tracer.
func (a *AlgorithmConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		algorithmConfigFields
		Paralellism *bool  `json:"Paralellism"`
		RayTracer   string `json:"RayTracer"`
	}
	if err := decodeStrictJSON(data, &raw); err != nil {
		return err
	}
	if raw.RayTracer != "" && !strings.EqualFold(raw.RayTracer, "basic") {
		return fmt.Errorf("%w: ray tracer %q", core.ErrUnsupportedFormat, raw.RayTracer)
	}

	*a = AlgorithmConfig(raw.algorithmConfigFields)
	if a.Parallel == nil {
		a.Parallel = raw.Paralellism
	}
	return nil
}

// decodeStrictJSON decodes one JSON value, rejecting unknown keys
func decodeStrictJSON(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// ApplyDefaults fills every unset field with its default
func (c *SceneConfig) ApplyDefaults() {
	if c.Width <= 0 {
		c.Width = DefaultImageWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultImageHeight
	}

	if c.Materials == nil {
		c.Materials = []MaterialConfig{{}}
	}
	for i := range c.Materials {
		c.Materials[i].applyDefaults()
	}

	for i := range c.Objects {
		for j := range c.Objects[i].BasicShapes {
			c.Objects[i].BasicShapes[j].applyDefaults()
		}
	}

	for i := range c.Scene {
		instance := &c.Scene[i]
		instance.Position = vectorOr(instance.Position, 0, 0, 0)
		instance.Scale = vectorOr(instance.Scale, 1, 1, 1)
		instance.Rotation = vectorOr(instance.Rotation, 0, 0, 0)
	}

	if c.Lights == nil {
		c.Lights = []LightConfig{{}}
	}
	for i := range c.Lights {
		light := &c.Lights[i]
		if light.Type == "" {
			light.Type = "PointLight"
		}
		light.Position = vectorOr(light.Position, 0, 10, 0)
		light.Color = vectorOr(light.Color, 1, 1, 1)
		setDefault(&light.Intensity, DefaultLightIntensity)
	}

	c.Camera.Position = vectorOr(c.Camera.Position, 0, 0, 5)
	c.Camera.Direction = vectorOr(c.Camera.Direction, 0, 0, -1)
	c.Camera.Up = vectorOr(c.Camera.Up, 0, 1, 0)
	c.Camera.BackgroundColor = vectorOr(c.Camera.BackgroundColor, 0.2, 0.2, 0.2)
	setDefault(&c.Camera.FOV, DefaultFOV)

	a := &c.Algorithm
	setDefault(&a.ReflectionsEnabled, true)
	setDefault(&a.ShadowsEnabled, true)
	setDefault(&a.RefractionsEnabled, true)
	setDefault(&a.Parallel, true)
	if a.MaxDepth <= 0 {
		a.MaxDepth = DefaultMaxDepth
	}
	if a.SamplesPerPixel <= 0 {
		a.SamplesPerPixel = DefaultSamplesPerPixel
	}
	if a.AntiAliasing == "" {
		a.AntiAliasing = DefaultAntiAliasing
	}
	if a.Exposure <= 0 {
		a.Exposure = 1
	}
}

func (m *MaterialConfig) applyDefaults() {
	if m.Name == "" {
		m.Name = DefaultMaterialName
	}
	m.Color = vectorOr(m.Color, 1, 1, 1)
	m.SecondaryColor = vectorOr(m.SecondaryColor, 0, 0, 0)
	if m.Texture == "" {
		m.Texture = "None"
	}
	setDefault(&m.TextureCoef, DefaultTextureCoef)
	setDefault(&m.Ambient, DefaultAmbient)
	setDefault(&m.Diffuse, DefaultDiffuse)
	setDefault(&m.Specular, DefaultSpecular)
	setDefault(&m.Shininess, DefaultShininess)
}

func (p *PrimitiveConfig) applyDefaults() {
	if p.Type == "" {
		p.Type = "Sphere"
	}
	if p.Material == "" {
		p.Material = DefaultMaterialName
	}
	p.Position = vectorOr(p.Position, 0, 0, 0)
	p.Size = vectorOr(p.Size, 1, 1, 1)
	p.Normal = vectorOr(p.Normal, 0, 1, 0)
	p.Scale = vectorOr(p.Scale, 1, 1, 1)
	p.Rotation = vectorOr(p.Rotation, 0, 0, 0)
	setDefault(&p.Radius, DefaultRadius)
	setDefault(&p.MinorRadius, DefaultMinorRadius)
	setDefault(&p.Height, DefaultShapeHeight)
}

// ResolvePath joins a relative path onto the scene file directory
func (c *SceneConfig) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.BaseDir == "" {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}

// HasTransform reports whether the primitive carries its own scale or rotation
func (p *PrimitiveConfig) HasTransform() bool {
	return !sameVector(p.Scale, 1, 1, 1) || !sameVector(p.Rotation, 0, 0, 0)
}

// Vec converts a 3-element config vector to core.Vec3
func Vec(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func setDefault[T any](field **T, value T) {
	if *field == nil {
		*field = &value
	}
}

func vectorOr(values []float64, x, y, z float64) []float64 {
	if values == nil {
		return []float64{x, y, z}
	}
	return values
}

func sameVector(values []float64, x, y, z float64) bool {
	return len(values) == 3 && values[0] == x && values[1] == y && values[2] == z
}
