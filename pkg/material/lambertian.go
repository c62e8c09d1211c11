package material

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource
}

// NewLambertian creates a lambertian material with a solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a lambertian material with a color source
func NewTexturedLambertian(albedo ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// EvaluateBRDF returns albedo/π above the surface and zero below it
func (l *Lambertian) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *core.HitRecord) core.Vec3 {
	if incomingDir.Dot(hit.Normal) <= 0 || outgoingDir.Dot(hit.Normal) <= 0 {
		return core.Vec3{}
	}
	return l.Albedo.Evaluate(hit.Point).Multiply(1.0 / math.Pi)
}

// Emitted is always black
func (l *Lambertian) Emitted(hit *core.HitRecord) core.Vec3 {
	return core.Vec3{}
}
