package hair

import "github.com/df07/go-hair-raytracer/pkg/core"

// ShadowType is how a light casts shadows
type ShadowType int

const (
	ShadowNone ShadowType = iota
	ShadowMap
	ShadowRayTraced
	ShadowArea
	ShadowPortalGI
)

// Traced reports whether the hair integrator sends shadow rays for this type.
// Lights without traced shadows are ignored by hair.
func (s ShadowType) Traced() bool {
	return s == ShadowRayTraced || s == ShadowArea || s == ShadowPortalGI
}

func (s ShadowType) String() string {
	switch s {
	case ShadowNone:
		return "none"
	case ShadowMap:
		return "map"
	case ShadowRayTraced:
		return "raytraced"
	case ShadowArea:
		return "area"
	case ShadowPortalGI:
		return "portal"
	}
	return "unknown"
}

// Light is a light source as seen by the hair integrator
type Light interface {
	ShadowType() ShadowType
	// ShadowSamples is the number of shadow rays per shading point at full importance
	ShadowSamples() int
	// ShadowRay picks a point on the light and returns the unit direction and distance to it
	ShadowRay(point core.Vec3, sample core.Vec2) (direction core.Vec3, distance float64)
	// SampleDirection returns the unit incident direction used for shading a shadow ray
	SampleDirection(point, shadowDirection core.Vec3) core.Vec3
	// Color is the light's radiance arriving at point, before occlusion
	Color(point core.Vec3) core.Vec3
}

// TraceMode selects what a scattering walk is looking for
type TraceMode int

const (
	// TraceShadow walks toward a light; any scene hit before it blocks the ray
	TraceShadow TraceMode = iota
	// TraceIndirect walks until the nearest scene hit, which supplies radiance
	TraceIndirect
)

// SceneHit is the nearest non-fiber intersection along a ray
type SceneHit struct {
	Distance float64
	// Radiance leaving the hit toward the ray origin, filled in TraceIndirect mode
	Radiance core.Vec3
}

// FiberHit is an intersection with hair geometry
type FiberHit struct {
	Distance float64
	Point    core.Vec3
	Tangent  core.Vec3
	StrandID int
}

// Host is the renderer that owns the scene. The hair integrator calls back
// into it for visibility, lights and sampling policy.
type Host interface {
	// TraceScene intersects everything except fibers in (0, tMax). In indirect
	// mode a miss may still report a hit at infinity carrying environment radiance.
	TraceScene(ray core.Ray, tMax float64, mode TraceMode) (SceneHit, bool)
	// TraceFibers returns the nearest fiber intersection in (0, tMax)
	TraceFibers(ray core.Ray, tMax float64) (FiberHit, bool)
	// RussianRoulette returns 0 to terminate a path, otherwise the compensated importance
	RussianRoulette(importance float64, sampler core.Sampler) float64
	Lights() []Light
	Ambient() core.Vec3
	IndirectEnabled() bool
	MaxIndirectDepth() int
	// IndirectDirection samples a unit direction for a gathering ray at a fiber point
	IndirectDirection(point, tangent core.Vec3, sampler core.Sampler) core.Vec3
}
