package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// OrthonormalBasis builds two unit vectors perpendicular to w and to each other
func OrthonormalBasis(w Vec3) (u, v Vec3) {
	var nt Vec3
	if math.Abs(w.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	u = nt.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	a := 2.0 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	tangent, bitangent := OrthonormalBasis(normal)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// SampleCone samples a direction uniformly within a cone
func SampleCone(direction Vec3, cosTotalWidth float64, sample Vec2) Vec3 {
	u, v := OrthonormalBasis(direction)

	cosTheta := 1.0 - sample.X*(1.0-cosTotalWidth)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	x := sinTheta * math.Cos(phi)
	y := sinTheta * math.Sin(phi)
	z := cosTheta

	return u.Multiply(x).Add(v.Multiply(y)).Add(direction.Multiply(z))
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}

// SampleDiskAround returns a point within radius of center, on the disk perpendicular to axis
func SampleDiskAround(center, axis Vec3, radius float64, sample Vec2) Vec3 {
	if radius <= 0 {
		return center
	}
	u, v := OrthonormalBasis(axis.Normalize())
	p := SamplePointInUnitDisk(sample)
	return center.Add(u.Multiply(p.X * radius)).Add(v.Multiply(p.Y * radius))
}
