package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	JobID            string        // Unique identifier of the render
	Width            int           // Image width
	Height           int           // Image height
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of camera rays
	Rays             int64         // Rays traced including shadow-free recursion
	Workers          int           // Workers used, 1 for sequential renders
	Duration         time.Duration // Wall time
	AverageLuminance float64       // Mean luminance of the encoded image
}

// SamplesPerPixel returns the average number of camera rays per pixel
func (rs RenderStats) SamplesPerPixel() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(rs.TotalPixels)
}

// CalculateAverageLuminance returns the mean luminance of an 8-bit image, in [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Divide(255).Luminance()
		}
	}
	return total / float64(pixels)
}
