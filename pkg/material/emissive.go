package material

import (
	"github.com/df07/go-hair-raytracer/pkg/core"
)

// Emissive is the visible surface of a light; it does not reflect
type Emissive struct {
	Emission core.Vec3
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// EvaluateBRDF is zero: lights only emit
func (e *Emissive) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *core.HitRecord) core.Vec3 {
	return core.Vec3{}
}

// Emitted returns the emission on the side facing the viewer
func (e *Emissive) Emitted(hit *core.HitRecord) core.Vec3 {
	return e.Emission
}
