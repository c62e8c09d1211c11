package hair

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// Integration grid for the hemisphere passes: midpoint rule in θ and φ
const (
	thetaSteps = TableSize
	phiSteps   = 32
	dTheta     = math.Pi / thetaSteps
	dPhi       = math.Pi / phiSteps
)

// dualSpreadFactor widens the backward spread for each forward scattering event
const dualSpreadFactor = 0.7

type precomputePass struct {
	name string
	run  func(p *Params, t *Tables)
}

// precomputePasses are listed in dependency order; every pass fills all buckets of one table
var precomputePasses = []precomputePass{
	{"norm", normPass},
	{"forward scatter", forwardScatterPass},
	{"backward scatter", backwardScatterPass},
	{"forward shift", forwardShiftPass},
	{"backward shift", backwardShiftPass},
	{"forward variance", forwardVariancePass},
	{"backward variance", backwardVariancePass},
	{"dual shift", dualShiftPass},
	{"dual variance", dualVariancePass},
	{"dual amplitude", dualAmplitudePass},
	{"azimuth R", azimuthRPass},
	{"azimuth TT", azimuthTTPass},
	{"azimuth TRT", azimuthTRTPass},
}

// Precompute builds every lookup table for p. It is deterministic and side-effect free.
func Precompute(p Params) *Tables {
	t := &Tables{}
	for _, pass := range precomputePasses {
		pass.run(&p, t)
	}
	return t
}

// normPass integrates the BCSDF over the full sphere with the fixed quadrature.
// The fiber axis is +Z; incoming azimuth is 0.
func normPass(p *Params, t *Tables) {
	t.Norm.fill(func(_ int, thetaIn float64) core.Vec3 {
		var sum core.Vec3
		for _, q := range SphereQuadrature {
			d := q.Direction
			thetaOut := math.Asin(max(-1, min(1, d.Z)))
			phiOut := math.Atan2(d.Y, d.X)
			sum = sum.Add(EvaluateNoGlint(p, thetaIn, thetaOut, 0, phiOut).Multiply(q.Weight))
		}
		return sum.Multiply(4 * math.Pi)
	})
}

// hemisphereLobes integrates each lobe's f·cosθ over the forward (φ ≥ π/2) or
// backward (φ < π/2) half of the sphere
func hemisphereLobes(p *Params, thetaIn float64, forward bool) LobeColors {
	var acc LobeColors
	for a := 0; a < thetaSteps; a++ {
		thetaOut := BucketCenter(a)
		c := math.Cos(thetaOut)
		// dω = cosθ dθ dφ; the factor 2 accounts for the mirrored azimuth range
		weight := c * c * dTheta * dPhi * 2
		for b := 0; b < phiSteps; b++ {
			phi := (float64(b) + 0.5) * dPhi
			if (phi >= math.Pi/2) != forward {
				continue
			}
			lobes := EvaluateLobes(p, thetaIn, thetaOut, 0, phi)
			for l := range acc {
				acc[l] = acc[l].Add(lobes[l].Multiply(weight))
			}
		}
	}
	return acc
}

func divideVec(a, b core.Vec3) core.Vec3 {
	return core.Vec3{X: safeDiv(a.X, b.X), Y: safeDiv(a.Y, b.Y), Z: safeDiv(a.Z, b.Z)}
}

func scatterPass(p *Params, t *Tables, out *Table, forward bool) {
	out.fill(func(i int, theta float64) core.Vec3 {
		return divideVec(hemisphereLobes(p, theta, forward).Sum(), t.Norm[i])
	})
}

func forwardScatterPass(p *Params, t *Tables)  { scatterPass(p, t, &t.ForwardScatter, true) }
func backwardScatterPass(p *Params, t *Tables) { scatterPass(p, t, &t.BackwardScatter, false) }

// lobeAverage weights a per-lobe scalar by each lobe's hemispherical response
func lobeAverage(p *Params, out *Table, forward bool, value [numLobes]float64) {
	out.fill(func(_ int, theta float64) core.Vec3 {
		lobes := hemisphereLobes(p, theta, forward)
		var num core.Vec3
		for l := range lobes {
			num = num.Add(lobes[l].Multiply(value[l]))
		}
		return divideVec(num, lobes.Sum())
	})
}

func lobeShifts(p *Params) [numLobes]float64 {
	return [numLobes]float64{LobeR: p.Primary.Shift, LobeTT: p.Rim.Shift, LobeTRT: p.Secondary.Shift}
}

func lobeVariances(p *Params) [numLobes]float64 {
	return [numLobes]float64{LobeR: p.Primary.Variance, LobeTT: p.Rim.Variance, LobeTRT: p.Secondary.Variance}
}

func forwardShiftPass(p *Params, t *Tables)  { lobeAverage(p, &t.ForwardShift, true, lobeShifts(p)) }
func backwardShiftPass(p *Params, t *Tables) { lobeAverage(p, &t.BackwardShift, false, lobeShifts(p)) }
func forwardVariancePass(p *Params, t *Tables) {
	lobeAverage(p, &t.ForwardVariance, true, lobeVariances(p))
}
func backwardVariancePass(p *Params, t *Tables) {
	lobeAverage(p, &t.BackwardVariance, false, lobeVariances(p))
}

// dualChannel applies f to each color channel of the scatter, shift and variance tables at bucket i
func dualChannel(t *Tables, i int, f func(af, ab, alphaF, alphaB, betaF2, betaB2 float64) float64) core.Vec3 {
	channel := func(get func(core.Vec3) float64) float64 {
		return f(get(t.ForwardScatter[i]), get(t.BackwardScatter[i]),
			get(t.ForwardShift[i]), get(t.BackwardShift[i]),
			get(t.ForwardVariance[i]), get(t.BackwardVariance[i]))
	}
	return core.Vec3{
		X: channel(func(v core.Vec3) float64 { return v.X }),
		Y: channel(func(v core.Vec3) float64 { return v.Y }),
		Z: channel(func(v core.Vec3) float64 { return v.Z }),
	}
}

// dualShiftPass derives the average backward shift Δ_b after multiple scattering
func dualShiftPass(p *Params, t *Tables) {
	t.DualShift.fill(func(i int, _ float64) core.Vec3 {
		return dualChannel(t, i, func(af, ab, alphaF, alphaB, _, _ float64) float64 {
			d := 1 - af*af
			if d <= 0 {
				return p.Backward.Shift
			}
			back := alphaB * (1 - safeDiv(2*ab*ab, d*d))
			fwd := alphaF * safeDiv(2*d*d+4*af*af*ab*ab, d*d*d)
			return back + fwd + p.Backward.Shift
		})
	})
}

// dualVariancePass derives the average backward variance σ_b²
func dualVariancePass(p *Params, t *Tables) {
	t.DualVariance.fill(func(i int, _ float64) core.Vec3 {
		return dualChannel(t, i, func(af, ab, _, _, betaF2, betaB2 float64) float64 {
			ab3 := ab * ab * ab
			num := ab*math.Sqrt(max(0, 2*betaF2+betaB2)) + ab3*math.Sqrt(max(0, 2*betaF2+3*betaB2))
			den := ab + ab3*(2*math.Sqrt(max(0, betaF2))+3*math.Sqrt(max(0, betaB2)))
			sigma := (1 + dualSpreadFactor*af*af) * safeDiv(num, den)
			return sigma*sigma + p.Backward.Variance
		})
	})
}

// dualAmplitudePass derives the backscattering amplitude A_b from single and triple back bounces
func dualAmplitudePass(_ *Params, t *Tables) {
	t.DualAmplitude.fill(func(i int, _ float64) core.Vec3 {
		return dualChannel(t, i, func(af, ab, _, _, _, _ float64) float64 {
			af2 := af * af
			d := 1 - af2
			if d <= 0 {
				return 0
			}
			a1 := ab * af2 / d
			a3 := ab * ab * ab * af2 / (d * d * d)
			return a1 + a3
		})
	})
}

// azimuthAverage averages an azimuthal term over incoming directions spread across the forward range [π/2, 3π/2]
func azimuthAverage(out *Table, n func(phi float64) float64) {
	const samples = 32
	out.fill(func(_ int, key float64) core.Vec3 {
		phi := key + math.Pi/2
		var sum float64
		for s := 0; s < samples; s++ {
			incoming := math.Pi/2 + (float64(s)+0.5)*math.Pi/samples
			sum += n(foldAzimuth(phi - incoming))
		}
		return core.Gray(sum / samples)
	})
}

func azimuthRPass(_ *Params, t *Tables)   { azimuthAverage(&t.AzimuthR, azimuthalR) }
func azimuthTRTPass(_ *Params, t *Tables) { azimuthAverage(&t.AzimuthTRT, azimuthalR) }
func azimuthTTPass(p *Params, t *Tables) {
	azimuthAverage(&t.AzimuthTT, func(phi float64) float64 { return azimuthalTT(p.AzimuthalVariance, phi) })
}
