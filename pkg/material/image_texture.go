package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageTexture maps surface UV coordinates onto a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 at the top
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// ColorAt samples the image at (u, v) with nearest-neighbor filtering. UV wraps around.
func (t *ImageTexture) ColorAt(u, v float64, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}

	u = core.Fract(u)
	v = core.Fract(v)

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := core.Clamp(int(u*float64(t.Width)), 0, t.Width-1)
	y := core.Clamp(int((1.0-v)*float64(t.Height)), 0, t.Height-1)

	return t.Pixels[y*t.Width+x]
}

// NormalAt returns the input normal unmodified
func (t *ImageTexture) NormalAt(u, v float64, point, normal core.Vec3) core.Vec3 {
	return normal
}
