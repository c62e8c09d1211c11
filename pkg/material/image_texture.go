package material

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// ImageTexture tiles an image over the XZ plane. One copy of the image
// covers Scale×Scale world units.
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
	Scale  float64
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3, scale float64) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Scale:  scale,
	}
}

// Evaluate projects point onto the XZ plane and samples the nearest texel
func (t *ImageTexture) Evaluate(point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || t.Scale <= 0 {
		return core.Vec3{}
	}

	u := wrap(point.X / t.Scale)
	v := wrap(point.Z / t.Scale)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.Pixels[y*t.Width+x]
}

// wrap maps x into [0, 1)
func wrap(x float64) float64 {
	return x - math.Floor(x)
}
