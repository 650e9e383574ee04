package scene

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

const minimalScene = `
width = 40
height = 20

[[materials]]
name = "Red"
color = [0.8, 0.1, 0.1]

[[objects]]
name = "Ball"
  [[objects.basic_shapes]]
  type = "Sphere"
  radius = 1.0
  material = "Red"

[[scene]]
type = "Ball"
`

func parseScene(t *testing.T, data string) *loaders.SceneConfig {
	t.Helper()
	cfg, err := loaders.ParseSceneConfig([]byte(data), loaders.FormatTOML)
	if err != nil {
		t.Fatalf("ParseSceneConfig failed: %v", err)
	}
	return cfg
}

func TestFromConfigMinimal(t *testing.T) {
	s, err := FromConfig(parseScene(t, minimalScene))
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}

	if s.Width != 40 || s.Height != 20 {
		t.Errorf("Expected 40x20, got %dx%d", s.Width, s.Height)
	}
	if len(s.Shapes) != 1 {
		t.Fatalf("Expected one instance, got %d", len(s.Shapes))
	}
	if _, ok := s.Shapes[0].(*geometry.Group); !ok {
		t.Errorf("Expected instance to be a group, got %T", s.Shapes[0])
	}

	// Missing lights default to a single point light above the origin
	if len(s.Lights) != 1 || s.Lights[0].Type() != lights.LightTypePoint {
		t.Errorf("Expected one default point light, got %v", s.Lights)
	}

	if s.Settings.AntiAliasing != JitteredSampling {
		t.Errorf("Expected default anti-aliasing %q, got %q", JitteredSampling, s.Settings.AntiAliasing)
	}
	if s.Settings.MaxDepth != 5 || s.Settings.SamplesPerPixel != 5 {
		t.Errorf("Expected depth 5 and 5 samples, got %d and %d", s.Settings.MaxDepth, s.Settings.SamplesPerPixel)
	}
	if !s.Settings.ShadowsEnabled || !s.Settings.ReflectionsEnabled || !s.Settings.RefractionsEnabled {
		t.Error("Expected all tracer switches on by default")
	}
	if !s.Background.Equals(core.NewVec3(0.2, 0.2, 0.2), 1e-12) {
		t.Errorf("Expected default background, got %v", s.Background)
	}

	// Default camera at (0,0,5) looking down -Z sees the sphere front at t=4
	ray := core.NewRay(s.Camera.Origin(), s.Camera.Forward())
	hit, ok := s.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected camera axis ray to hit the sphere")
	}
	if math.Abs(hit.T*s.Camera.Forward().Length()-4) > 1e-9 {
		t.Errorf("Expected hit distance 4, got %f", hit.T*s.Camera.Forward().Length())
	}
	if hit.Material.Name != "Red" {
		t.Errorf("Expected material Red, got %q", hit.Material.Name)
	}
}

func TestFromConfigExplicitFalseSwitches(t *testing.T) {
	cfg := parseScene(t, minimalScene+`
[algorithm]
shadows = false
reflections = false
parallel = false
anti_aliasing = "none"
minimal_performance = 0.01
exposure = 2.0
seed = 42
`)
	s, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	rs := s.Settings
	if rs.ShadowsEnabled || rs.ReflectionsEnabled || rs.Parallel {
		t.Error("Expected explicit false switches to be kept")
	}
	if !rs.RefractionsEnabled {
		t.Error("Expected unset refraction switch to default on")
	}
	if rs.AntiAliasing != NoAliasing {
		t.Errorf("Expected NoAliasing, got %q", rs.AntiAliasing)
	}
	if rs.MinimalPerformance != 0.01 || rs.Exposure != 2 || rs.Seed != 42 {
		t.Errorf("Unexpected settings %+v", rs)
	}
}

func TestFromConfigInstanceTransform(t *testing.T) {
	cfg := parseScene(t, minimalScene)
	cfg.Scene[0].Position = []float64{0, 0, -3}
	cfg.Scene[0].Scale = []float64{2, 2, 2}

	s, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}

	// Sphere of radius 2 centered at z=-3: front surface at z=-1
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit, ok := s.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if math.Abs(hit.T-6) > 1e-9 {
		t.Errorf("Expected t=6, got %f", hit.T)
	}
	if !hit.Normal.Equals(core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

func TestFromConfigPrimitiveTransform(t *testing.T) {
	cfg := parseScene(t, minimalScene)
	shape := &cfg.Objects[0].BasicShapes[0]
	shape.Position = []float64{0, 0, -1}
	shape.Scale = []float64{1, 1, 0.5}

	s, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}

	// Flattened sphere centered at z=-1 with half depth: front surface at z=-0.5
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit, ok := s.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if math.Abs(hit.T-5.5) > 1e-9 {
		t.Errorf("Expected t=5.5, got %f", hit.T)
	}
}

func TestFromConfigTextures(t *testing.T) {
	tests := []struct {
		texture  string
		expected string
	}{
		{"None", "*material.SolidTexture"},
		{"solid", "*material.SolidTexture"},
		{"Checker", "*material.CheckerTexture"},
		{"WOOD", "*material.WoodTexture"},
	}
	for _, tt := range tests {
		t.Run(tt.texture, func(t *testing.T) {
			cfg := parseScene(t, minimalScene)
			cfg.Materials[0].Texture = tt.texture
			mats, err := buildMaterials(cfg)
			if err != nil {
				t.Fatalf("buildMaterials failed: %v", err)
			}
			if got := fmt.Sprintf("%T", mats["Red"].Texture); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestFromConfigByteColors(t *testing.T) {
	cfg := parseScene(t, minimalScene)
	cfg.Materials[0].Color = []float64{255, 51, 0}
	mats, err := buildMaterials(cfg)
	if err != nil {
		t.Fatalf("buildMaterials failed: %v", err)
	}
	if !mats["Red"].Color.Equals(core.NewVec3(1, 0.2, 0), 1e-12) {
		t.Errorf("Expected 8-bit color scaled to (1,0.2,0), got %v", mats["Red"].Color)
	}
}

func TestFromConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(cfg *loaders.SceneConfig)
		expected error
	}{
		{"undefined material", func(cfg *loaders.SceneConfig) {
			cfg.Objects[0].BasicShapes[0].Material = "Blue"
		}, core.ErrUnknownMaterial},
		{"unknown primitive", func(cfg *loaders.SceneConfig) {
			cfg.Objects[0].BasicShapes[0].Type = "Teapot"
		}, core.ErrUnknownPrimitive},
		{"unknown object", func(cfg *loaders.SceneConfig) {
			cfg.Scene[0].Type = "Chair"
		}, core.ErrUnknownObject},
		{"unknown texture", func(cfg *loaders.SceneConfig) {
			cfg.Materials[0].Texture = "Marble"
		}, core.ErrUnknownTexture},
		{"image texture without file", func(cfg *loaders.SceneConfig) {
			cfg.Materials[0].Texture = "Image"
		}, core.ErrUnknownTexture},
		{"unknown light", func(cfg *loaders.SceneConfig) {
			cfg.Lights[0].Type = "SpotLight"
		}, core.ErrUnknownLight},
		{"unknown anti-aliasing", func(cfg *loaders.SceneConfig) {
			cfg.Algorithm.AntiAliasing = "Blur"
		}, core.ErrUnknownAntiAliasing},
		{"negative radius", func(cfg *loaders.SceneConfig) {
			radius := -1.0
			cfg.Objects[0].BasicShapes[0].Radius = &radius
		}, core.ErrInvalidGeometry},
		{"torus minor radius too large", func(cfg *loaders.SceneConfig) {
			minor := 2.0
			cfg.Objects[0].BasicShapes[0].Type = "Torus"
			cfg.Objects[0].BasicShapes[0].MinorRadius = &minor
		}, core.ErrInvalidGeometry},
		{"zero instance scale", func(cfg *loaders.SceneConfig) {
			cfg.Scene[0].Scale = []float64{1, 0, 1}
		}, core.ErrInvalidGeometry},
		{"invalid size", func(cfg *loaders.SceneConfig) {
			cfg.Width = 0
		}, core.ErrInvalidImageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parseScene(t, minimalScene)
			tt.modify(cfg)
			_, err := FromConfig(cfg)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestFromConfigMalformedVector(t *testing.T) {
	cfg := parseScene(t, minimalScene)
	cfg.Scene[0].Position = []float64{1, 2}
	if _, err := FromConfig(cfg); err == nil {
		t.Error("Expected an error for a two-component position")
	}
}

func TestFromConfigDuplicateMaterial(t *testing.T) {
	cfg := parseScene(t, minimalScene)
	cfg.Materials = append(cfg.Materials, cfg.Materials[0])
	if _, err := FromConfig(cfg); err == nil {
		t.Error("Expected an error for a duplicate material name")
	}
}

const tetrahedronPLY = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 4
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
0 1 0
0 0 1
3 0 2 1
3 0 1 3
3 0 3 2
3 1 2 3
`

func TestFromConfigMesh(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tet.ply", tetrahedronPLY)
	path := writeFile(t, dir, "tet.toml", strings.Replace(minimalScene, `type = "Sphere"
  radius = 1.0`, `type = "Mesh"
  file = "tet.ply"
  position = [0.0, 0.0, -2.0]`, 1))

	s, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := s.GetPrimitiveCount(); got != 4 {
		t.Errorf("Expected 4 triangles, got %d", got)
	}

	// The mesh is offset by its position; the face x+y+z=1 now sits at z = -1 on the axis
	hit, ok := s.Hit(core.NewRay(core.NewVec3(0.1, 0.1, 5), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected the ray to hit the mesh")
	}
	if !hit.Point.Equals(core.NewVec3(0.1, 0.1, -1.2), 1e-9) {
		t.Errorf("Expected hit at (0.1, 0.1, -1.2), got %v", hit.Point)
	}
}

func TestFromConfigMeshErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
	}{
		{"missing file field", ""},
		{"file not found", "nope.ply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := strings.Replace(minimalScene, `type = "Sphere"`, `type = "Mesh"
  file = "`+tt.file+`"`, 1)
			path := writeFile(t, dir, "mesh.toml", scene)
			if _, err := Load(path, ""); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
