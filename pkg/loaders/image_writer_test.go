package loaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func testPixels() [][]core.Vec3 {
	return [][]core.Vec3{
		{core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)},
		{core.NewVec3(0, 0, 0), core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(2, 1, 0)},
	}
}

func TestToRGBA(t *testing.T) {
	img := ToRGBA(testPixels(), DisplayGamma)
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", img.Bounds())
	}

	red := img.RGBAAt(0, 0)
	if red.R != 255 || red.G != 0 || red.B != 0 || red.A != 255 {
		t.Errorf("Expected pure red, got %v", red)
	}

	// Over-range values clamp to white before gamma
	bright := img.RGBAAt(2, 1)
	if bright.R != 255 || bright.G != 255 || bright.B != 0 {
		t.Errorf("Expected clamped (255,255,0), got %v", bright)
	}

	gray := img.RGBAAt(1, 1)
	expected := uint8(math.Round(255 * math.Pow(0.5, 1/DisplayGamma)))
	if gray.R != expected {
		t.Errorf("Expected gamma-corrected gray %d, got %d", expected, gray.R)
	}
}

func TestVec3ToColor_NaN(t *testing.T) {
	c := vec3ToColor(core.NewVec3(math.NaN(), 1, math.Inf(1)), DisplayGamma)
	if c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("Expected non-finite color to become black, got %v", c)
	}
}

func TestWritePFM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePFM(&buf, testPixels()); err != nil {
		t.Fatalf("WritePFM failed: %v", err)
	}

	header := "PF\n3 2\n-1.0\n"
	if !strings.HasPrefix(buf.String(), header) {
		t.Fatalf("Unexpected header %q", buf.String()[:len(header)])
	}

	data := buf.Bytes()[len(header):]
	if len(data) != 3*2*3*4 {
		t.Fatalf("Expected %d bytes of float data, got %d", 3*2*3*4, len(data))
	}

	// First stored row is the bottom row of the image
	first := math.Float32frombits(binary.LittleEndian.Uint32(data[3*4:]))
	if first != 0.5 {
		t.Errorf("Expected bottom row middle pixel red 0.5, got %f", first)
	}
	last := math.Float32frombits(binary.LittleEndian.Uint32(data[3*3*4:]))
	if last != 1 {
		t.Errorf("Expected top row first pixel red 1, got %f", last)
	}
}

func TestWriteHDR(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHDR(&buf, testPixels()); err != nil {
		t.Fatalf("WriteHDR failed: %v", err)
	}

	header := "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 2 +X 3\n"
	if !strings.HasPrefix(buf.String(), header) {
		t.Fatalf("Unexpected header %q", buf.String())
	}
	data := buf.Bytes()[len(header):]
	if len(data) != 3*2*4 {
		t.Fatalf("Expected %d bytes of pixel data, got %d", 3*2*4, len(data))
	}

	// Black encodes as all zeros
	if !bytes.Equal(data[12:16], []byte{0, 0, 0, 0}) {
		t.Errorf("Expected zero RGBE for black, got %v", data[12:16])
	}
}

func TestToRGBE_RoundTrip(t *testing.T) {
	colors := []core.Vec3{
		core.NewVec3(1, 0.5, 0.25),
		core.NewVec3(10, 3, 0.1),
		core.NewVec3(0.01, 0.02, 0.03),
	}
	for _, c := range colors {
		rgbe := toRGBE(c)
		scale := math.Ldexp(1, int(rgbe[3])-(128+8))
		decoded := core.NewVec3(float64(rgbe[0])*scale, float64(rgbe[1])*scale, float64(rgbe[2])*scale)

		maxComponent := math.Max(c.X, math.Max(c.Y, c.Z))
		if !decoded.Equals(c, maxComponent/100) {
			t.Errorf("RGBE round trip of %v gave %v", c, decoded)
		}
	}
}

func TestSaveImage_AllFormats(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{".png", ".bmp", ".tiff", ".pfm", ".hdr"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "nested", "render"+ext)
			if err := SaveImage(path, testPixels()); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}
		})
	}

	err := SaveImage(filepath.Join(dir, "render.gif"), testPixels())
	if !errors.Is(err, core.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSaveImage_LoadBack(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "roundtrip"+ext)
			if err := SaveImage(path, testPixels()); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}

			loaded, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if loaded.Width != 3 || loaded.Height != 2 {
				t.Fatalf("Expected 3x2, got %dx%d", loaded.Width, loaded.Height)
			}
			if !loaded.Pixels[0].Equals(core.NewVec3(1, 0, 0), 0.01) {
				t.Errorf("Expected red top-left pixel, got %v", loaded.Pixels[0])
			}
			if !loaded.Pixels[2].Equals(core.NewVec3(0, 0, 1), 0.01) {
				t.Errorf("Expected blue top-right pixel, got %v", loaded.Pixels[2])
			}
		})
	}
}
