package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DisplayGamma is applied when converting linear colors to 8-bit formats
const DisplayGamma = 2.2

// SaveImage writes pixels (rows top to bottom, linear RGB) to path. The encoder is chosen by extension.
func SaveImage(path string, pixels [][]core.Vec3) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := EncodeImage(w, strings.ToLower(filepath.Ext(path)), pixels); err != nil {
		return err
	}
	return w.Flush()
}

// EncodeImage writes pixels in the format named by ext (".png", ".bmp", ".tif", ".tiff", ".pfm", ".hdr")
func EncodeImage(w io.Writer, ext string, pixels [][]core.Vec3) error {
	switch ext {
	case ".png":
		return png.Encode(w, ToRGBA(pixels, DisplayGamma))
	case ".bmp":
		return bmp.Encode(w, ToRGBA(pixels, DisplayGamma))
	case ".tif", ".tiff":
		return tiff.Encode(w, ToRGBA(pixels, DisplayGamma), &tiff.Options{Compression: tiff.Deflate})
	case ".pfm":
		return WritePFM(w, pixels)
	case ".hdr":
		return WriteHDR(w, pixels)
	default:
		return fmt.Errorf("%w: image extension %q", core.ErrUnsupportedFormat, ext)
	}
}

// ToRGBA converts linear colors to an 8-bit image with gamma correction and clamping
func ToRGBA(pixels [][]core.Vec3, gamma float64) *image.RGBA {
	height := len(pixels)
	width := 0
	if height > 0 {
		width = len(pixels[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y, row := range pixels {
		for x, c := range row {
			img.SetRGBA(x, y, vec3ToColor(c, gamma))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3, gamma float64) color.RGBA {
	if !colorVec.IsFinite() {
		colorVec = core.Vec3{}
	}
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(gamma)

	return color.RGBA{
		R: uint8(math.Round(255 * colorVec.X)),
		G: uint8(math.Round(255 * colorVec.Y)),
		B: uint8(math.Round(255 * colorVec.Z)),
		A: 255,
	}
}

// WritePFM writes a little-endian color Portable Float Map. PFM stores rows bottom to top.
func WritePFM(w io.Writer, pixels [][]core.Vec3) error {
	height := len(pixels)
	width := 0
	if height > 0 {
		width = len(pixels[0])
	}

	// Negative scale marks little-endian data
	if _, err := fmt.Fprintf(w, "PF\n%d %d\n-1.0\n", width, height); err != nil {
		return err
	}

	row := make([]float32, 3*width)
	for y := height - 1; y >= 0; y-- {
		for x, c := range pixels[y] {
			row[3*x] = float32(c.X)
			row[3*x+1] = float32(c.Y)
			row[3*x+2] = float32(c.Z)
		}
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	return nil
}

// WriteHDR writes a Radiance RGBE image with uncompressed scanlines, top row first
func WriteHDR(w io.Writer, pixels [][]core.Vec3) error {
	height := len(pixels)
	width := 0
	if height > 0 {
		width = len(pixels[0])
	}

	header := fmt.Sprintf("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", height, width)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	scanline := make([]byte, 4*width)
	for _, row := range pixels {
		for x, c := range row {
			rgbe := toRGBE(c)
			copy(scanline[4*x:], rgbe[:])
		}
		if _, err := w.Write(scanline); err != nil {
			return err
		}
	}
	return nil
}

// toRGBE packs a linear color into a shared-exponent RGBE pixel
func toRGBE(c core.Vec3) [4]byte {
	if !c.IsFinite() {
		return [4]byte{}
	}
	r := math.Max(c.X, 0)
	g := math.Max(c.Y, 0)
	b := math.Max(c.Z, 0)

	maxComponent := math.Max(r, math.Max(g, b))
	if maxComponent < 1e-32 {
		return [4]byte{}
	}

	mantissa, exponent := math.Frexp(maxComponent)
	scale := mantissa * 256.0 / maxComponent
	return [4]byte{
		byte(r * scale),
		byte(g * scale),
		byte(b * scale),
		byte(exponent + 128),
	}
}
