package lights

import (
	"github.com/df07/go-hair-raytracer/pkg/core"
	"github.com/df07/go-hair-raytracer/pkg/hair"
)

// PointLight emits Intensity in every direction from a single position
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
	Shadow    hair.ShadowType
}

// NewPointLight creates a point light with ray-traced shadows
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity, Shadow: hair.ShadowRayTraced}
}

func (pl *PointLight) ShadowType() hair.ShadowType { return pl.Shadow }

// ShadowSamples is 1: every shadow ray ends at the same point
func (pl *PointLight) ShadowSamples() int { return 1 }

// ShadowRay points at the light position
func (pl *PointLight) ShadowRay(point core.Vec3, sample core.Vec2) (core.Vec3, float64) {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return core.NewVec3(0, 1, 0), 0
	}
	return toLight.Multiply(1 / distance), distance
}

// SampleDirection is the shadow ray direction
func (pl *PointLight) SampleDirection(point, shadowDirection core.Vec3) core.Vec3 {
	return shadowDirection
}

// Color falls off with the squared distance
func (pl *PointLight) Color(point core.Vec3) core.Vec3 {
	d2 := pl.Position.Subtract(point).LengthSquared()
	if d2 == 0 {
		return core.Vec3{}
	}
	return pl.Intensity.Multiply(1 / d2)
}
