package hair

import (
	"math"
)

// giBounceFalloff halves the indirect ray budget per bounce
const giBounceFalloff = 0.5

// integrateDirect sums shadow-ray contributions from every light with traced shadows.
// It returns the shading and the number of shadow rays sent.
func integrateDirect(host Host, prep *Prepared, ctx *ShadeContext, importance, glintAngle float64) (Components, int) {
	var total Components
	rays := 0
	for _, light := range host.Lights() {
		if !light.ShadowType().Traced() {
			continue
		}
		n := max(1, int(float64(light.ShadowSamples())*importance))

		var acc Components
		for s := 0; s < n; s++ {
			dir, dist := light.ShadowRay(ctx.Point, ctx.Sampler.Get2D())
			rays++
			tr := Trace(host, prep, TraceRequest{
				Origin:     ctx.Point,
				Direction:  dir,
				Distance:   dist,
				Importance: importance,
				Mode:       TraceShadow,
				StrandID:   ctx.StrandID,
				Sampler:    ctx.Sampler,
			})
			if tr.Blocked() {
				continue
			}
			wi := light.SampleDirection(ctx.Point, dir)
			c := ShadeRay(prep, tr, wi, ctx.View, ctx.Tangent, glintAngle)
			acc = acc.Add(c.Tint(light.Color(ctx.Point)))
		}
		total = total.Add(acc.Scale(1 / float64(n)))
	}
	return total, rays
}

// indirectRayCount is the gathering budget at this depth; 0 means fall back to ambient
func indirectRayCount(p *Params, host Host, depth int, importance float64) int {
	if !p.Indirect.Has(IndirectReceive) || !host.IndirectEnabled() || p.IndirectRays <= 0 {
		return 0
	}
	if depth >= host.MaxIndirectDepth() {
		return 0
	}
	n := int(float64(p.IndirectRays) * importance * math.Pow(giBounceFalloff, float64(depth)))
	return max(1, n)
}

// integrateIndirect gathers scene radiance through the hair. Without a ray
// budget it returns the ambient fallback instead.
func integrateIndirect(host Host, prep *Prepared, ctx *ShadeContext, importance, glintAngle float64) (Components, int) {
	n := indirectRayCount(&prep.Params, host, ctx.Depth, importance)
	if n == 0 {
		return ambientFallback(host, prep, ctx), 0
	}

	var acc Components
	for s := 0; s < n; s++ {
		dir := host.IndirectDirection(ctx.Point, ctx.Tangent, ctx.Sampler)
		tr := Trace(host, prep, TraceRequest{
			Origin:     ctx.Point,
			Direction:  dir,
			Importance: importance,
			Mode:       TraceIndirect,
			StrandID:   ctx.StrandID,
			Sampler:    ctx.Sampler,
		})
		if tr.Blocked() || tr.Radiance.IsZero() {
			continue
		}
		c := ShadeRay(prep, tr, dir, ctx.View, ctx.Tangent, glintAngle)
		acc = acc.Add(c.Tint(tr.Radiance))
	}
	return acc.Scale(4 * math.Pi / float64(n)), n
}

// ambientFallback lights the hair with the host ambient, shaped by the
// normalization table's color and never dimmer than its norm factor
func ambientFallback(host Host, prep *Prepared, ctx *ShadeContext) Components {
	ambient := host.Ambient()
	if ambient.IsZero() {
		return Components{}
	}
	thetaO := longitudinalAngle(ctx.View, ctx.Tangent)
	norm := prep.Tables.Norm.Lookup(thetaO)
	peak := norm.MaxComponent()
	if peak <= 0 {
		return Components{}
	}
	color := norm.Multiply(prep.Tables.NormFactor(thetaO) / peak)
	return Components{Subsurface: color.MultiplyVec(ambient)}
}
