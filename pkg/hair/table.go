package hair

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// TableSize is the number of buckets spanning [-π/2, π/2]
const TableSize = 32

// BucketWidth is the angular width of one bucket
const BucketWidth = math.Pi / TableSize

// Table maps a longitudinal angle to a color, one entry per bucket
type Table [TableSize]core.Vec3

// BucketCenter returns the angle at the center of bucket i
func BucketCenter(i int) float64 {
	return (float64(i)+0.5)/TableSize*math.Pi - math.Pi/2
}

// Lookup linearly interpolates between the two bucket centers around theta.
// Angles outside the outermost centers return the edge bucket unchanged.
func (t *Table) Lookup(theta float64) core.Vec3 {
	if !(theta > BucketCenter(0)) {
		return t[0]
	}
	if theta >= BucketCenter(TableSize-1) {
		return t[TableSize-1]
	}

	i := int(math.Floor((theta+math.Pi/2)/BucketWidth - 0.5))
	i = max(0, min(TableSize-2, i))
	// Rounding can land one bucket off, settle on the center at or below theta
	for i > 0 && theta < BucketCenter(i) {
		i--
	}
	for i < TableSize-2 && theta >= BucketCenter(i+1) {
		i++
	}

	lo, hi := BucketCenter(i), BucketCenter(i+1)
	w := (theta - lo) / (hi - lo)
	return t[i].Multiply(1 - w).Add(t[i+1].Multiply(w))
}

// fill evaluates f at every bucket center
func (t *Table) fill(f func(i int, theta float64) core.Vec3) {
	for i := range t {
		t[i] = f(i, BucketCenter(i))
	}
}

// Tables is the precomputed set for one material. It is read-only once built.
type Tables struct {
	Norm             Table // ∫ f dω over the sphere
	ForwardScatter   Table // a_f
	BackwardScatter  Table // a_b
	ForwardShift     Table // α_f
	BackwardShift    Table // α_b
	ForwardVariance  Table // β_f²
	BackwardVariance Table // β_b²
	DualShift        Table // Δ_b
	DualVariance     Table // σ_b²
	DualAmplitude    Table // A_b

	// Azimuthal tables are indexed by φ-π/2 for φ in [0, π]
	AzimuthR   Table
	AzimuthTT  Table
	AzimuthTRT Table
}

// NormFactor returns a scalar brightness floor derived from the normalization table.
// The result is never below 1.
func (t *Tables) NormFactor(theta float64) float64 {
	x := t.Norm.Lookup(theta).MaxComponent()
	if x > 0.8 {
		x = 0.8 + (x-0.8)*1.1
	}
	return math.Max(x, 1.0)
}

// azimuthKey maps an azimuth in [0, π] onto the table domain
func azimuthKey(phi float64) float64 {
	return phi - math.Pi/2
}
