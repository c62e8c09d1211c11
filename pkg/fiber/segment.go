package fiber

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// Segment is one open cylinder of a strand. Rays crossing a joint may hit
// both neighbours; the hits carry the same strand id.
type Segment struct {
	Start    core.Vec3
	End      core.Vec3
	Radius   float64
	StrandID int

	// Cached derived values
	axis   core.Vec3 // unit vector from start to end
	length float64
}

// NewSegment creates a segment of strand id between two control points
func NewSegment(start, end core.Vec3, radius float64, strandID int) *Segment {
	axisVector := end.Subtract(start)
	return &Segment{
		Start:    start,
		End:      end,
		Radius:   radius,
		StrandID: strandID,
		axis:     axisVector.Normalize(),
		length:   axisVector.Length(),
	}
}

// Tangent returns the unit strand direction
func (s *Segment) Tangent() core.Vec3 {
	return s.axis
}

// BoundingBox returns the endpoints' box grown by the radius
func (s *Segment) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(s.Start, s.End).Expand(s.Radius)
}

// Hit intersects the ray with the cylinder wall. Caps are not tested.
func (s *Segment) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	delta := ray.Origin.Subtract(s.Start)
	dv := ray.Direction.Dot(s.axis)
	deltaV := delta.Dot(s.axis)

	// a·t² + b·t + c = 0 for the distance to the axis equal to the radius
	a := ray.Direction.LengthSquared() - dv*dv
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*dv)
	c := delta.LengthSquared() - deltaV*deltaV - s.Radius*s.Radius

	// Parallel to the axis
	const epsilon = 1e-12
	if math.Abs(a) < epsilon {
		return nil, false
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	for _, t := range [2]float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)} {
		if t < tMin || t > tMax {
			continue
		}
		point := ray.At(t)
		h := point.Subtract(s.Start).Dot(s.axis)
		if h < 0 || h > s.length {
			continue
		}

		axisPoint := s.Start.Add(s.axis.Multiply(h))
		hit := &core.HitRecord{
			T:        t,
			Point:    point,
			Tangent:  s.axis,
			StrandID: s.StrandID,
		}
		hit.SetFaceNormal(ray, point.Subtract(axisPoint).Normalize())
		return hit, true
	}
	return nil, false
}
