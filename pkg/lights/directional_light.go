package lights

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
	"github.com/df07/go-hair-raytracer/pkg/hair"
)

// DirectionalLight is a distant light such as the sun. Shadow rays are
// jittered inside its angular radius for soft shadows; shading always uses
// the nominal direction.
type DirectionalLight struct {
	Direction  core.Vec3 // unit direction toward the light
	Irradiance core.Vec3
	// AngularRadius in radians; 0 gives hard shadows
	AngularRadius float64
	Samples       int
	Shadow        hair.ShadowType
}

// NewDirectionalLight creates a distant light shining from direction
func NewDirectionalLight(direction, irradiance core.Vec3, angularRadius float64, samples int) *DirectionalLight {
	return &DirectionalLight{
		Direction:     direction.Normalize(),
		Irradiance:    irradiance,
		AngularRadius: angularRadius,
		Samples:       max(1, samples),
		Shadow:        hair.ShadowRayTraced,
	}
}

func (dl *DirectionalLight) ShadowType() hair.ShadowType { return dl.Shadow }
func (dl *DirectionalLight) ShadowSamples() int          { return dl.Samples }

// ShadowRay returns a direction inside the light's disk at infinite distance
func (dl *DirectionalLight) ShadowRay(point core.Vec3, sample core.Vec2) (core.Vec3, float64) {
	if dl.AngularRadius <= 0 {
		return dl.Direction, math.Inf(1)
	}
	return core.SampleCone(dl.Direction, math.Cos(dl.AngularRadius), sample), math.Inf(1)
}

// SampleDirection ignores the jitter
func (dl *DirectionalLight) SampleDirection(point, shadowDirection core.Vec3) core.Vec3 {
	return dl.Direction
}

// Color is constant everywhere
func (dl *DirectionalLight) Color(point core.Vec3) core.Vec3 {
	return dl.Irradiance
}
