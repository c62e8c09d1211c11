package hair

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// Components splits hair shading into the channels the host composes separately
type Components struct {
	Specular   core.Vec3 // single scattering highlights
	Subsurface core.Vec3 // backward and multiple scattering
}

// Add returns the channel-wise sum
func (c Components) Add(other Components) Components {
	return Components{Specular: c.Specular.Add(other.Specular), Subsurface: c.Subsurface.Add(other.Subsurface)}
}

// Scale multiplies both channels by s
func (c Components) Scale(s float64) Components {
	return Components{Specular: c.Specular.Multiply(s), Subsurface: c.Subsurface.Multiply(s)}
}

// Tint multiplies both channels by a color
func (c Components) Tint(color core.Vec3) Components {
	return Components{Specular: c.Specular.MultiplyVec(color), Subsurface: c.Subsurface.MultiplyVec(color)}
}

// Total is the composed color
func (c Components) Total() core.Vec3 {
	return c.Specular.Add(c.Subsurface)
}

// longitudinalAngle is the signed angle between w and the plane normal to the fiber
func longitudinalAngle(w, tangent core.Vec3) float64 {
	return math.Asin(max(-1, min(1, w.Dot(tangent))))
}

// relativeAzimuth is the angle in [0, π] between wi and wo projected onto the normal plane.
// Degenerate projections give π/2.
func relativeAzimuth(wi, wo, tangent core.Vec3) float64 {
	pi := wi.Subtract(tangent.Multiply(wi.Dot(tangent)))
	po := wo.Subtract(tangent.Multiply(wo.Dot(tangent)))
	return math.Acos(max(-1, min(1, core.CosAngle(pi, po))))
}

// channelGaussian evaluates a unit-area Gaussian per color channel
func channelGaussian(variance, x core.Vec3) core.Vec3 {
	return core.Vec3{
		X: UnitAreaGaussian(variance.X, x.X),
		Y: UnitAreaGaussian(variance.Y, x.Y),
		Z: UnitAreaGaussian(variance.Z, x.Z),
	}
}

// backScatter is the dual scattering backward lobe 2·A_b·g(σ², θh+Δ_b)/π
func backScatter(t *Tables, thetaD, thetaH float64, extraVariance core.Vec3) core.Vec3 {
	ab := t.DualAmplitude.Lookup(thetaD)
	shift := t.DualShift.Lookup(thetaD)
	variance := t.DualVariance.Lookup(thetaD).Add(extraVariance)
	g := channelGaussian(variance, core.Gray(thetaH).Add(shift))
	return ab.MultiplyVec(g).Multiply(2 / math.Pi)
}

// forwardScatter is the BCSDF with every longitudinal lobe widened by the
// accumulated forward spread and the azimuthal terms averaged over the forward range
func forwardScatter(p *Params, t *Tables, thetaH, phi float64, spread core.Vec3) core.Vec3 {
	key := azimuthKey(phi)
	lobe := func(l Lobe, azimuth core.Vec3) core.Vec3 {
		m := core.Vec3{
			X: UnitHeightGaussian(l.Variance+spread.X, thetaH+l.Shift),
			Y: UnitHeightGaussian(l.Variance+spread.Y, thetaH+l.Shift),
			Z: UnitHeightGaussian(l.Variance+spread.Z, thetaH+l.Shift),
		}
		return l.Color.Multiply(l.Intensity).MultiplyVec(m).MultiplyVec(azimuth)
	}
	return lobe(p.Primary, t.AzimuthR.Lookup(key)).
		Add(lobe(p.Rim, t.AzimuthTT.Lookup(key))).
		Add(lobe(p.Secondary, t.AzimuthTRT.Lookup(key)))
}

// ShadeRay turns one traced light path into shading components. wi points
// toward the light, wo toward the viewer, tangent along the strand.
func ShadeRay(prep *Prepared, tr TraceResult, wi, wo, tangent core.Vec3, glintAngle float64) Components {
	p := &prep.Params
	t := prep.Tables

	thetaI := longitudinalAngle(wi, tangent)
	thetaO := longitudinalAngle(wo, tangent)
	thetaD := (thetaO - thetaI) / 2
	thetaH := (thetaO + thetaI) / 2
	phi := relativeAzimuth(wi, wo, tangent)
	cosI := math.Cos(thetaI)
	inv := invCosSquared(thetaD)

	if tr.DirectFraction <= 0 {
		back := backScatter(t, thetaD, thetaH, tr.Variance).Multiply(inv).
			MultiplyVec(p.Backward.Tint()).Saturate(p.Backward.Saturation)
		fwd := forwardScatter(p, t, thetaH, phi, tr.Variance).Multiply(inv).
			MultiplyVec(p.Forward.Tint()).Saturate(p.Forward.Saturation)
		multiple := fwd.Add(back.Multiply(math.Pi * p.Density)).MultiplyVec(tr.Transmittance)
		return Components{Subsurface: multiple.Multiply(cosI)}
	}

	var out Components
	if p.SingleScattering {
		out.Specular = Evaluate(p, thetaI, thetaO, 0, phi, glintAngle).Multiply(cosI * tr.DirectFraction)
	}
	back := backScatter(t, thetaD, thetaH, core.Vec3{}).Multiply(inv).
		MultiplyVec(p.Backward.Tint()).Saturate(p.Backward.Saturation)
	out.Subsurface = back.Multiply(math.Pi * p.Density * cosI * tr.DirectFraction)
	return out
}
