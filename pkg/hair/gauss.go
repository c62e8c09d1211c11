package hair

import "math"

// UnitHeightGaussian evaluates a Gaussian with peak 1 and the given variance.
// A non-positive variance yields 0.
func UnitHeightGaussian(variance, x float64) float64 {
	if variance <= 0 {
		return 0
	}
	return math.Exp(-x * x / (2 * variance))
}

// UnitAreaGaussian evaluates a normalized Gaussian with the given variance.
// A non-positive variance yields 0.
func UnitAreaGaussian(variance, x float64) float64 {
	if variance <= 0 {
		return 0
	}
	return math.Exp(-x*x/(2*variance)) / math.Sqrt(2*math.Pi*variance)
}

// foldAzimuth maps an azimuth difference into [0, π]
func foldAzimuth(phi float64) float64 {
	phi = math.Mod(math.Abs(phi), 2*math.Pi)
	if phi > math.Pi {
		phi = 2*math.Pi - phi
	}
	return phi
}

// safeDiv returns a/b, or 0 when b is not positive
func safeDiv(a, b float64) float64 {
	if b > 0 {
		return a / b
	}
	return 0
}
