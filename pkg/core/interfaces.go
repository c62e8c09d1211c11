package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Material describes how a non-fiber surface reflects and emits light
type Material interface {
	// EvaluateBRDF returns the reflectance for light arriving from incomingDir
	// and leaving toward outgoingDir. Both directions point away from the surface.
	EvaluateBRDF(incomingDir, outgoingDir Vec3, hit *HitRecord) Vec3
	// Emitted is the radiance the surface gives off by itself
	Emitted(hit *HitRecord) Vec3
}

// NoStrand marks hits on geometry that is not part of a fiber strand
const NoStrand = -1

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    Vec3     // Point of intersection
	Normal   Vec3     // Surface normal (faces the incoming ray)
	Tangent  Vec3     // Unit strand direction, fiber hits only
	T        float64  // Parameter t along the ray
	StrandID int      // Strand the hit belongs to, NoStrand for surfaces
	Material Material // Surface material, nil for fibers
}

// IsFiber reports whether the hit lies on fiber geometry
func (h *HitRecord) IsFiber() bool {
	return h.StrandID != NoStrand
}

// SetFaceNormal sets the normal vector so it faces against the ray
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	if ray.Direction.Dot(outwardNormal) < 0 {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() AABB
}
