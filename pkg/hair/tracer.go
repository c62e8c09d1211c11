package hair

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

const (
	// maxFiberHits bounds a walk through dense hair; longer walks count as fully occluded
	maxFiberHits = 256
	// rayEpsilon steps past a fiber hit before continuing the walk
	rayEpsilon = 1e-4
)

// TraceRequest describes one global scattering walk
type TraceRequest struct {
	Origin     core.Vec3
	Direction  core.Vec3 // unit
	Distance   float64   // distance to the light in shadow mode, ignored otherwise
	Importance float64
	Mode       TraceMode
	StrandID   int // strand the walk starts on; its own hits are skipped
	Sampler    core.Sampler
}

// TraceResult is the outcome of a walk. DirectFraction is 1 when no other
// strand was crossed and 0 otherwise.
type TraceResult struct {
	Transmittance  core.Vec3
	Variance       core.Vec3 // accumulated forward spread σ_f²
	DirectFraction float64
	Radiance       core.Vec3 // scene radiance at the end of an indirect walk
	FiberHits      int
}

// Blocked reports whether nothing reached the shading point
func (r TraceResult) Blocked() bool {
	return r.DirectFraction == 0 && r.Transmittance.IsZero()
}

// Trace walks from the shading point toward a light or into the scene,
// accumulating forward scattering through every other strand it crosses.
func Trace(host Host, prep *Prepared, req TraceRequest) TraceResult {
	tMax := req.Distance
	if req.Mode == TraceIndirect {
		tMax = math.Inf(1)
	}

	hit, found := host.TraceScene(core.NewRay(req.Origin, req.Direction), tMax, req.Mode)
	var radiance core.Vec3
	switch req.Mode {
	case TraceShadow:
		if found {
			return TraceResult{}
		}
	case TraceIndirect:
		if !found {
			return TraceResult{}
		}
		tMax = hit.Distance
		radiance = hit.Radiance
	}

	p := &prep.Params
	tint := p.Forward.Tint()
	transmittance := core.Gray(1)
	var variance core.Vec3
	hits := 0

	pos := req.Origin
	if req.Sampler != nil {
		pos = core.SampleDiskAround(req.Origin, req.Direction, p.FilterRadius, req.Sampler.Get2D())
	}
	remaining := tMax
	strand := req.StrandID

	for remaining > 0 {
		fh, ok := host.TraceFibers(core.NewRay(pos, req.Direction), remaining)
		if !ok {
			break
		}
		pos = fh.Point.Add(req.Direction.Multiply(rayEpsilon))
		remaining -= fh.Distance + rayEpsilon

		// Neighboring segments of one strand report the same crossing twice
		if fh.StrandID == strand {
			continue
		}
		strand = fh.StrandID

		hits++
		if hits > maxFiberHits {
			return TraceResult{FiberHits: hits}
		}

		theta := math.Asin(max(-1, min(1, req.Direction.Dot(fh.Tangent))))
		transmittance = transmittance.MultiplyVec(prep.Tables.ForwardScatter.Lookup(theta).MultiplyVec(tint))
		variance = variance.Add(prep.Tables.ForwardVariance.Lookup(theta))

		// transmittance carries earlier compensation, so this is the running importance
		importance := req.Importance * transmittance.Luminance()
		if req.Mode == TraceIndirect {
			importance *= radiance.Luminance()
		}
		survived := host.RussianRoulette(importance, req.Sampler)
		if survived == 0 {
			return TraceResult{FiberHits: hits}
		}
		if importance > 0 {
			transmittance = transmittance.Multiply(survived / importance)
		}
	}

	result := TraceResult{
		Transmittance: transmittance.Saturate(p.GlobalSaturation).Multiply(p.Density),
		Variance:      variance,
		Radiance:      radiance,
		FiberHits:     hits,
	}
	if hits == 0 {
		result.DirectFraction = 1
	}
	return result
}
