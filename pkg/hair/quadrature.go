package hair

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// QuadraturePoint is one direction of a spherical quadrature rule
type QuadraturePoint struct {
	Direction core.Vec3
	Weight    float64
}

// lebedevOrbit is a generator of the octahedral symmetry group.
// kind 1..3 are the fixed orbits (0,0,1), (0,a,a), (a,a,a); kind 4 is (a,a,b);
// kind 6 is (a,b,c).
type lebedevOrbit struct {
	kind   int
	a, b   float64
	weight float64
}

// Degree 19 Lebedev rule, 146 points
var lebedev146Orbits = []lebedevOrbit{
	{kind: 1, weight: 0.5996313688621381e-3},
	{kind: 2, weight: 0.7372999718620756e-2},
	{kind: 3, weight: 0.7210515360144488e-2},
	{kind: 4, a: 0.6764410400114264, weight: 0.7116355493117555e-2},
	{kind: 4, a: 0.4174961227965453, weight: 0.6753829486314477e-2},
	{kind: 4, a: 0.1574676672039082, weight: 0.7574394159054034e-2},
	{kind: 6, a: 0.1403553811713183, b: 0.4493328323269557, weight: 0.6991087353303262e-2},
}

// SphereQuadrature is the 146-direction rule used to integrate over the sphere.
// Weights sum to 1, so 4π·Σ wᵢ f(dᵢ) approximates ∫ f dω.
var SphereQuadrature = expandOrbits(lebedev146Orbits)

func expandOrbits(orbits []lebedevOrbit) []QuadraturePoint {
	var points []QuadraturePoint
	for _, o := range orbits {
		var bases [][3]float64
		switch o.kind {
		case 1:
			bases = [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
		case 2:
			r := 1 / math.Sqrt2
			bases = [][3]float64{{0, r, r}, {r, 0, r}, {r, r, 0}}
		case 3:
			r := 1 / math.Sqrt(3)
			bases = [][3]float64{{r, r, r}}
		case 4:
			b := math.Sqrt(1 - 2*o.a*o.a)
			bases = [][3]float64{{o.a, o.a, b}, {o.a, b, o.a}, {b, o.a, o.a}}
		case 6:
			c := math.Sqrt(1 - o.a*o.a - o.b*o.b)
			bases = [][3]float64{
				{o.a, o.b, c}, {o.a, c, o.b}, {o.b, o.a, c},
				{o.b, c, o.a}, {c, o.a, o.b}, {c, o.b, o.a},
			}
		}
		for _, base := range bases {
			for _, d := range signVariants(base) {
				points = append(points, QuadraturePoint{Direction: core.NewVec3(d[0], d[1], d[2]), Weight: o.weight})
			}
		}
	}
	return points
}

// signVariants returns every distinct sign flip of the non-zero components
func signVariants(base [3]float64) [][3]float64 {
	variants := [][3]float64{base}
	for axis := 0; axis < 3; axis++ {
		if base[axis] == 0 {
			continue
		}
		n := len(variants)
		for i := 0; i < n; i++ {
			flipped := variants[i]
			flipped[axis] = -flipped[axis]
			variants = append(variants, flipped)
		}
	}
	return variants
}
