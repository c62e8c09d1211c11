package lights

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
	"github.com/df07/go-hair-raytracer/pkg/geometry"
	"github.com/df07/go-hair-raytracer/pkg/hair"
	"github.com/df07/go-hair-raytracer/pkg/material"
)

// SphereLight is a spherical area light. The embedded sphere is also added
// to the scene so camera rays see it.
type SphereLight struct {
	*geometry.Sphere
	Emission core.Vec3
	Samples  int
}

// NewSphereLight creates an area light with the given radiance
func NewSphereLight(center core.Vec3, radius float64, emission core.Vec3, samples int) *SphereLight {
	return &SphereLight{
		Sphere:   geometry.NewSphere(center, radius, material.NewEmissive(emission)),
		Emission: emission,
		Samples:  max(1, samples),
	}
}

func (sl *SphereLight) ShadowType() hair.ShadowType { return hair.ShadowArea }
func (sl *SphereLight) ShadowSamples() int          { return sl.Samples }

// ShadowRay samples a direction uniformly inside the cone the sphere subtends
// and returns the distance to its near surface
func (sl *SphereLight) ShadowRay(point core.Vec3, sample core.Vec2) (core.Vec3, float64) {
	axis, cosMax, distance := sl.VisibleCone(point)
	if cosMax <= -1 {
		// Inside the light
		return core.SampleOnUnitSphere(sample), 0
	}

	direction := core.SampleCone(axis, cosMax, sample)
	if hit, ok := sl.Sphere.Hit(core.NewRay(point, direction), 0, math.Inf(1)); ok {
		return direction, hit.T
	}
	// Grazing the silhouette
	return direction, math.Max(0, distance-sl.Radius)
}

// SampleDirection is the shadow ray direction
func (sl *SphereLight) SampleDirection(point, shadowDirection core.Vec3) core.Vec3 {
	return shadowDirection
}

// Color is the radiance times the solid angle the light covers from point
func (sl *SphereLight) Color(point core.Vec3) core.Vec3 {
	_, cosMax, _ := sl.VisibleCone(point)
	return sl.Emission.Multiply(2 * math.Pi * (1 - cosMax))
}
