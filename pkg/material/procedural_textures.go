package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// generateImageTexture fills a width×height texture from a per-pixel function (row 0 at the top)
func generateImageTexture(width, height int, pixel func(x, y int) core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels[y*width+x] = pixel(x, y)
		}
	}
	return NewImageTexture(width, height, pixels)
}

// NewCheckerboardTexture creates a 2D checkerboard in UV space with checkSize-pixel squares
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	if checkSize <= 0 {
		checkSize = 1
	}
	return generateImageTexture(width, height, func(x, y int) core.Vec3 {
		if (x/checkSize+y/checkSize)%2 == 0 {
			return color1
		}
		return color2
	})
}

// NewUVDebugTexture shows UV coordinates as colors: U in red, V in green
func NewUVDebugTexture(width, height int) *ImageTexture {
	return generateImageTexture(width, height, func(x, y int) core.Vec3 {
		u := float64(x) / float64(max(width-1, 1))
		v := 1 - float64(y)/float64(max(height-1, 1))
		return core.NewVec3(u, v, 0.0)
	})
}

// NewGradientTexture creates a vertical gradient from top to bottom
func NewGradientTexture(width, height int, top, bottom core.Vec3) *ImageTexture {
	return generateImageTexture(width, height, func(x, y int) core.Vec3 {
		return core.Lerp(top, bottom, float64(y)/float64(max(height-1, 1)))
	})
}
