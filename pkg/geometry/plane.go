package geometry

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// planeExtent bounds an infinite plane for the BVH
const planeExtent = 1e6

// Plane is an infinite plane through Point with unit Normal
type Plane struct {
	Point    core.Vec3
	Normal   core.Vec3
	Material core.Material
}

// NewPlane creates a new plane; the normal is normalized
func NewPlane(point, normal core.Vec3, material core.Material) *Plane {
	return &Plane{Point: point, Normal: normal.Normalize(), Material: material}
}

// Hit intersects the plane from either side
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hit := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		StrandID: core.NoStrand,
		Material: p.Material,
	}
	hit.SetFaceNormal(ray, p.Normal)
	return hit, true
}

// BoundingBox is a thin slab for axis-aligned planes and a large cube otherwise
func (p *Plane) BoundingBox() core.AABB {
	const thickness = 0.001

	box := core.NewAABB(core.Gray(-planeExtent), core.Gray(planeExtent))
	const aligned = 0.999
	switch {
	case math.Abs(p.Normal.X) > aligned:
		box.Min.X, box.Max.X = p.Point.X-thickness, p.Point.X+thickness
	case math.Abs(p.Normal.Y) > aligned:
		box.Min.Y, box.Max.Y = p.Point.Y-thickness, p.Point.Y+thickness
	case math.Abs(p.Normal.Z) > aligned:
		box.Min.Z, box.Max.Z = p.Point.Z-thickness, p.Point.Z+thickness
	}
	return box
}
