package scene

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
	"github.com/df07/go-hair-raytracer/pkg/hair"
)

// rayEpsilon offsets secondary rays from the surface they leave
const rayEpsilon = 1e-4

// TraceScene intersects the non-fiber geometry. Shadow rays stop just short
// of tMax so an area light's own surface does not block it. Indirect rays
// that escape report the sky at infinity.
func (s *Scene) TraceScene(ray core.Ray, tMax float64, mode hair.TraceMode) (hair.SceneHit, bool) {
	if mode == hair.TraceShadow {
		limit := tMax * (1 - rayEpsilon)
		hit, ok := s.surfaces.Hit(ray, rayEpsilon, limit)
		if !ok {
			return hair.SceneHit{}, false
		}
		return hair.SceneHit{Distance: hit.T}, true
	}

	hit, ok := s.surfaces.Hit(ray, rayEpsilon, tMax)
	if !ok {
		return hair.SceneHit{Distance: math.Inf(1), Radiance: s.sky.Radiance(ray.Direction)}, true
	}
	view := ray.Direction.Negate()
	radiance := hit.Material.Emitted(hit).Add(s.directSurface(hit, view, centerSampler{}))
	return hair.SceneHit{Distance: hit.T, Radiance: radiance}, true
}

// TraceFibers returns the nearest strand crossing in (0, tMax)
func (s *Scene) TraceFibers(ray core.Ray, tMax float64) (hair.FiberHit, bool) {
	hit, ok := s.Fibers.Hit(ray, rayEpsilon, tMax)
	if !ok {
		return hair.FiberHit{}, false
	}
	return hair.FiberHit{Distance: hit.T, Point: hit.Point, Tangent: hit.Tangent, StrandID: hit.StrandID}, true
}

// RussianRoulette keeps paths above the threshold. Below it a path survives
// with probability importance/threshold and continues at the threshold.
func (s *Scene) RussianRoulette(importance float64, sampler core.Sampler) float64 {
	if importance <= 0 {
		return 0
	}
	if importance >= s.threshold {
		return importance
	}
	if sampler == nil || sampler.Get1D()*s.threshold >= importance {
		return 0
	}
	return s.threshold
}

func (s *Scene) Lights() []hair.Light  { return s.lights }
func (s *Scene) Ambient() core.Vec3    { return s.ambient }
func (s *Scene) IndirectEnabled() bool { return s.indirect.Enabled }
func (s *Scene) MaxIndirectDepth() int { return s.indirect.MaxDepth }

// IndirectDirection samples the full sphere: hair scatters both ways
func (s *Scene) IndirectDirection(point, tangent core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.SampleOnUnitSphere(sampler.Get2D())
}

// Radiance returns the light arriving along a camera ray
func (s *Scene) Radiance(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return s.radiance(ray, sampler, 0, 1)
}

// radiance finds the nearest surface or strand. Strands are skipped by
// indirect rays unless the hair material casts indirect light.
func (s *Scene) radiance(ray core.Ray, sampler core.Sampler, depth int, importance float64) core.Vec3 {
	tMax := math.Inf(1)
	surface, hitSurface := s.surfaces.Hit(ray, rayEpsilon, tMax)
	if hitSurface {
		tMax = surface.T
	}

	if depth == 0 || s.Shader.Cache().Params().Indirect.Has(hair.IndirectCast) {
		if fh, ok := s.Fibers.Hit(ray, rayEpsilon, tMax); ok {
			res := s.Shader.Shade(s, hair.ShadeContext{
				Point:      fh.Point,
				Tangent:    fh.Tangent,
				View:       ray.Direction.Negate(),
				StrandID:   fh.StrandID,
				Depth:      depth,
				Importance: importance,
				Sampler:    sampler,
			})
			return res.Color
		}
	}

	if !hitSurface {
		return s.sky.Radiance(ray.Direction)
	}
	return s.shadeSurface(surface, ray.Direction.Negate(), sampler, depth, importance)
}

// shadeSurface lights a non-fiber hit: emission, direct light and either a
// cosine-weighted gather or the ambient term
func (s *Scene) shadeSurface(hit *core.HitRecord, view core.Vec3, sampler core.Sampler, depth int, importance float64) core.Vec3 {
	color := hit.Material.Emitted(hit).Add(s.directSurface(hit, view, sampler))

	if !s.indirect.Enabled || s.indirect.SurfaceRays <= 0 || depth >= s.indirect.MaxDepth {
		// Lambertian reflectance times π is the albedo
		albedo := hit.Material.EvaluateBRDF(hit.Normal, view, hit).Multiply(math.Pi)
		return color.Add(albedo.MultiplyVec(s.ambient))
	}

	n := s.indirect.SurfaceRays
	var gathered core.Vec3
	for i := 0; i < n; i++ {
		dir := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
		brdf := hit.Material.EvaluateBRDF(dir, view, hit)
		if brdf.IsZero() {
			continue
		}
		next := importance * brdf.Luminance() * math.Pi
		if next = s.RussianRoulette(next, sampler); next == 0 {
			continue
		}
		// The cosine pdf cancels the cosine term, leaving brdf·π
		li := s.radiance(core.NewRay(hit.Point, dir), sampler, depth+1, next)
		gathered = gathered.Add(brdf.Multiply(math.Pi).MultiplyVec(li))
	}
	return color.Add(gathered.Multiply(1 / float64(n)))
}

// directSurface samples every light with shadow rays through surfaces and strands
func (s *Scene) directSurface(hit *core.HitRecord, view core.Vec3, sampler core.Sampler) core.Vec3 {
	var total core.Vec3
	for _, light := range s.lights {
		n := light.ShadowSamples()
		var acc core.Vec3
		for i := 0; i < n; i++ {
			dir, dist := light.ShadowRay(hit.Point, sampler.Get2D())
			cosine := dir.Dot(hit.Normal)
			if cosine <= 0 {
				continue
			}
			if light.ShadowType() != hair.ShadowNone && s.occluded(core.NewRay(hit.Point, dir), dist) {
				continue
			}
			brdf := hit.Material.EvaluateBRDF(dir, view, hit)
			acc = acc.Add(brdf.MultiplyVec(light.Color(hit.Point)).Multiply(cosine))
		}
		total = total.Add(acc.Multiply(1 / float64(n)))
	}
	return total
}

func (s *Scene) occluded(ray core.Ray, dist float64) bool {
	limit := dist * (1 - rayEpsilon)
	return s.surfaces.Occluded(ray, rayEpsilon, limit) || s.Fibers.Occluded(ray, rayEpsilon, limit)
}

// centerSampler always returns the middle of the sample domain. Indirect
// radiance lookups use it since they carry no sampler of their own.
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
