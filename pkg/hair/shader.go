package hair

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// Glint azimuths are spread per strand over this range
const (
	glintMinAngle = math.Pi / 6
	glintMaxAngle = math.Pi / 3
)

// ShadeContext is the host's description of one fiber shading point
type ShadeContext struct {
	Point      core.Vec3
	Tangent    core.Vec3 // unit strand direction
	View       core.Vec3 // unit direction toward the viewer
	StrandID   int       // core.NoStrand for non-fiber surfaces
	Depth      int       // indirect bounce depth, 0 for camera rays
	Importance float64
	Sampler    core.Sampler
}

// Result is the output of one Shade call
type Result struct {
	Components
	Color           core.Vec3
	DirectSamples   int
	IndirectSamples int
}

// Shader is a hair material bound to its table cache. It is safe for concurrent use.
type Shader struct {
	cache *TableCache
}

// NewShader creates a shader for p. Tables are built on first use.
func NewShader(p Params, logger core.Logger) *Shader {
	return &Shader{cache: NewTableCache(p, logger)}
}

// SetParams resolves raw settings and hands them to the cache.
// It reports whether the tables were invalidated.
func (s *Shader) SetParams(raw RawParams) (bool, error) {
	p, err := raw.Resolve()
	if err != nil {
		return false, err
	}
	return s.cache.SetParams(p), nil
}

// Cache exposes the table cache
func (s *Shader) Cache() *TableCache {
	return s.cache
}

// Shade computes the hair response at a fiber point. Non-fiber points and
// scenes without any light source shade to zero.
func (s *Shader) Shade(host Host, ctx ShadeContext) Result {
	if ctx.StrandID == core.NoStrand || ctx.Importance <= 0 {
		return Result{}
	}

	p := s.cache.Params()
	indirect := host.IndirectEnabled() && p.Indirect.Has(IndirectReceive)
	if len(host.Lights()) == 0 && !indirect && host.Ambient().IsZero() {
		return Result{}
	}

	importance := host.RussianRoulette(ctx.Importance, ctx.Sampler)
	if importance == 0 {
		return Result{}
	}
	compensation := importance / ctx.Importance

	prep := s.cache.EnsureReady()
	if ctx.Depth > 0 && host.IndirectEnabled() && !prep.Params.Indirect.Has(IndirectReceive) {
		return Result{}
	}

	glint := glintAngle(ctx.StrandID)
	direct, nd := integrateDirect(host, prep, &ctx, importance, glint)
	gathered, ni := integrateIndirect(host, prep, &ctx, importance, glint)

	comps := direct.Add(gathered).Scale(compensation)
	return Result{Components: comps, Color: comps.Total(), DirectSamples: nd, IndirectSamples: ni}
}

// glintAngle hashes a strand id into the glint azimuth range
func glintAngle(strandID int) float64 {
	h := uint32(strandID) * 2654435761
	h ^= h >> 16
	return glintMinAngle + (glintMaxAngle-glintMinAngle)*float64(h)/math.MaxUint32
}
