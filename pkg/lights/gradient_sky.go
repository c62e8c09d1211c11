package lights

import (
	"github.com/df07/go-hair-raytracer/pkg/core"
)

// GradientSky is an environment that blends from Bottom at the nadir to Top
// at the zenith. It is the target of indirect rays that leave the scene.
type GradientSky struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientSky creates a sky gradient
func NewGradientSky(top, bottom core.Vec3) *GradientSky {
	return &GradientSky{Top: top, Bottom: bottom}
}

// Radiance returns the sky color seen along direction
func (s *GradientSky) Radiance(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Normalize().Y + 1.0)
	return s.Bottom.Multiply(1.0 - t).Add(s.Top.Multiply(t))
}

// Average is the sky radiance averaged over all directions
func (s *GradientSky) Average() core.Vec3 {
	return s.Top.Add(s.Bottom).Multiply(0.5)
}
