package hair

import (
	"github.com/df07/go-hair-raytracer/pkg/core"
)

// fixedSampler returns the same value for every dimension
type fixedSampler struct{ v float64 }

func (s fixedSampler) Get1D() float64   { return s.v }
func (s fixedSampler) Get2D() core.Vec2 { return core.NewVec2(s.v, s.v) }

type testLight struct {
	position core.Vec3
	color    core.Vec3
	shadow   ShadowType
	samples  int
}

func (l *testLight) ShadowType() ShadowType { return l.shadow }
func (l *testLight) ShadowSamples() int     { return l.samples }
func (l *testLight) ShadowRay(point core.Vec3, _ core.Vec2) (core.Vec3, float64) {
	d := l.position.Subtract(point)
	return d.Normalize(), d.Length()
}
func (l *testLight) SampleDirection(_, shadowDirection core.Vec3) core.Vec3 { return shadowDirection }
func (l *testLight) Color(core.Vec3) core.Vec3                              { return l.color }

// testHost is a scripted host. fibers is called with the running call index.
type testHost struct {
	lights   []Light
	ambient  core.Vec3
	indirect bool
	maxDepth int

	scene    *SceneHit
	fibers   func(call int, ray core.Ray) (FiberHit, bool)
	roulette func(importance float64) float64

	fiberCalls    int
	indirectCalls int
}

func (h *testHost) TraceScene(ray core.Ray, tMax float64, mode TraceMode) (SceneHit, bool) {
	if h.scene == nil || (mode == TraceShadow && h.scene.Distance >= tMax) {
		return SceneHit{}, false
	}
	return *h.scene, true
}

func (h *testHost) TraceFibers(ray core.Ray, tMax float64) (FiberHit, bool) {
	if h.fibers == nil {
		return FiberHit{}, false
	}
	call := h.fiberCalls
	h.fiberCalls++
	hit, ok := h.fibers(call, ray)
	if !ok || hit.Distance >= tMax {
		return FiberHit{}, false
	}
	return hit, true
}

func (h *testHost) RussianRoulette(importance float64, _ core.Sampler) float64 {
	if h.roulette != nil {
		return h.roulette(importance)
	}
	return importance
}

func (h *testHost) Lights() []Light       { return h.lights }
func (h *testHost) Ambient() core.Vec3    { return h.ambient }
func (h *testHost) IndirectEnabled() bool { return h.indirect }
func (h *testHost) MaxIndirectDepth() int { return h.maxDepth }

func (h *testHost) IndirectDirection(_, _ core.Vec3, _ core.Sampler) core.Vec3 {
	h.indirectCalls++
	return core.NewVec3(0, 1, 0)
}

// crossingFibers returns n hits on alternating strands, each 0.1 further along the ray
func crossingFibers(n int, tangent core.Vec3) func(int, core.Ray) (FiberHit, bool) {
	return func(call int, ray core.Ray) (FiberHit, bool) {
		if call >= n {
			return FiberHit{}, false
		}
		return FiberHit{Distance: 0.1, Point: ray.At(0.1), Tangent: tangent, StrandID: 100 + call}, true
	}
}

func preparedDefault() *Prepared {
	p := DefaultParams()
	return &Prepared{Params: p, Tables: Precompute(p)}
}

// fiberContext is a shading point on a strand along +Z, viewed from +X
func fiberContext() ShadeContext {
	return ShadeContext{
		Point:      core.Vec3{},
		Tangent:    core.NewVec3(0, 0, 1),
		View:       core.NewVec3(1, 0, 0),
		StrandID:   1,
		Importance: 1,
		Sampler:    fixedSampler{0.5},
	}
}
