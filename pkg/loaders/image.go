package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageData is a decoded texture image, row-major from the top-left corner
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage reads a texture image from disk. PNG, JPEG, BMP and TIFF are recognised;
// BMP and TIFF register through the x/image imports in image_writer.go.
func LoadImage(path string) (*ImageData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	data, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// DecodeImage sniffs the format from the stream header and converts every pixel to a
// 0-1 color. Alpha is dropped.
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, format, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%w: unrecognised image data", core.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty %s image", core.ErrInvalidImageSize, format)
	}
	core.LogDebug("decoded texture image", "format", format, "width", bounds.Dx(), "height", bounds.Dy())

	data := &ImageData{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: make([]core.Vec3, 0, bounds.Dx()*bounds.Dy()),
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			data.Pixels = append(data.Pixels, core.NewVec3(float64(r), float64(g), float64(b)).Divide(0xffff))
		}
	}
	return data, nil
}
