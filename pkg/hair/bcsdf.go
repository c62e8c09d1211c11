package hair

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// Lobe indices into a LobeColors value
const (
	LobeR = iota
	LobeTT
	LobeTRT
	numLobes
)

// LobeColors holds one contribution per scattering lobe, indexed by LobeR, LobeTT, LobeTRT
type LobeColors [numLobes]core.Vec3

// Sum adds up all lobes
func (l LobeColors) Sum() core.Vec3 {
	return l[LobeR].Add(l[LobeTT]).Add(l[LobeTRT])
}

// minCosSquared keeps 1/cos²θd finite at grazing half angles
const minCosSquared = 1e-4

// longitudinal is the M term. Shifts are stored negated, so the lobe peaks at θh = -Shift.
func (l Lobe) longitudinal(thetaH float64) float64 {
	return UnitHeightGaussian(l.Variance, thetaH+l.Shift)
}

// azimuthalR is the N term shared by the R and TRT lobes
func azimuthalR(phi float64) float64 {
	return math.Max(0, math.Cos(phi/2))
}

// azimuthalTT is the N term of the TT lobe: a Gaussian around π with a cosine falloff
func azimuthalTT(azimuthalVariance, phi float64) float64 {
	return UnitHeightGaussian(azimuthalVariance, phi-math.Pi) * 0.5 * (1 - math.Cos(phi))
}

// halfAngles returns θd, θh and the folded azimuth difference
func halfAngles(thetaIn, thetaOut, phiIn, phiOut float64) (thetaD, thetaH, phi float64) {
	return (thetaOut - thetaIn) / 2, (thetaOut + thetaIn) / 2, foldAzimuth(phiOut - phiIn)
}

func invCosSquared(thetaD float64) float64 {
	c := math.Cos(thetaD)
	return 1 / math.Max(c*c, minCosSquared)
}

// lobes evaluates the three lobes for given half angle and azimuth, without 1/cos²θd
func (p *Params) lobes(thetaH, phi float64) LobeColors {
	nR := azimuthalR(phi)
	var out LobeColors
	out[LobeR] = p.Primary.Color.Multiply(nR * p.Primary.longitudinal(thetaH) * p.Primary.Intensity)
	out[LobeTT] = p.Rim.Color.Multiply(azimuthalTT(p.AzimuthalVariance, phi) * p.Rim.longitudinal(thetaH) * p.Rim.Intensity)
	out[LobeTRT] = p.Secondary.Color.Multiply(nR * p.Secondary.longitudinal(thetaH) * p.Secondary.Intensity)
	return out
}

// EvaluateLobes returns the per-lobe BCSDF for the given longitudinal and azimuthal angles
func EvaluateLobes(p *Params, thetaIn, thetaOut, phiIn, phiOut float64) LobeColors {
	thetaD, thetaH, phi := halfAngles(thetaIn, thetaOut, phiIn, phiOut)
	out := p.lobes(thetaH, phi)
	scale := invCosSquared(thetaD)
	for i := range out {
		out[i] = out[i].Multiply(scale)
	}
	return out
}

// EvaluateNoGlint returns the single scattering BCSDF without the glint lobe
func EvaluateNoGlint(p *Params, thetaIn, thetaOut, phiIn, phiOut float64) core.Vec3 {
	return EvaluateLobes(p, thetaIn, thetaOut, phiIn, phiOut).Sum()
}

// Evaluate returns the single scattering BCSDF including a glint centered on glintAngle
func Evaluate(p *Params, thetaIn, thetaOut, phiIn, phiOut, glintAngle float64) core.Vec3 {
	thetaD, thetaH, phi := halfAngles(thetaIn, thetaOut, phiIn, phiOut)
	sum := p.lobes(thetaH, phi).Sum()

	glint := UnitHeightGaussian(p.Glint.Frequency, phi-glintAngle) * p.Secondary.longitudinal(thetaH) * p.Glint.Intensity
	sum = sum.Add(p.Glint.Color.Multiply(glint))

	return sum.Multiply(invCosSquared(thetaD))
}
