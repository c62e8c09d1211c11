package geometry

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// Sphere is a solid sphere; in hair scenes it is usually the scalp or a light
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// Hit returns the nearer intersection in [tMin, tMax]
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hit := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		StrandID: core.NoStrand,
		Material: s.Material,
	}
	hit.SetFaceNormal(ray, hit.Point.Subtract(s.Center).Multiply(1.0/s.Radius))
	return hit, true
}

// BoundingBox returns the axis-aligned box around the sphere
func (s *Sphere) BoundingBox() core.AABB {
	return core.NewAABB(s.Center, s.Center).Expand(s.Radius)
}

// VisibleCone returns the cone of directions from point that see the sphere:
// the unit axis toward the center, the cosine of the half angle and the
// distance to the center. Points inside the sphere get cosMax -1.
func (s *Sphere) VisibleCone(point core.Vec3) (axis core.Vec3, cosMax, distance float64) {
	toCenter := s.Center.Subtract(point)
	distance = toCenter.Length()
	if distance <= s.Radius {
		return toCenter.Normalize(), -1, distance
	}
	sinMax := s.Radius / distance
	return toCenter.Multiply(1 / distance), math.Sqrt(max(0, 1-sinMax*sinMax)), distance
}
