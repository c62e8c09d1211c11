package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box = box.Union(AABB{Min: point, Max: point})
	}
	return box
}

// axis returns the component of v along axis 0, 1 or 2
func (v Vec3) axis(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		lo, hi := aabb.Min.axis(axis), aabb.Max.axis(axis)
		origin, direction := ray.Origin.axis(axis), ray.Direction.axis(axis)

		// Parallel to the slab: inside or never
		if math.Abs(direction) < 1e-8 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (lo - origin) * invDirection
		t2 := (hi - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, other.Min.X),
			Y: math.Min(aabb.Min.Y, other.Min.Y),
			Z: math.Min(aabb.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, other.Max.X),
			Y: math.Max(aabb.Max.Y, other.Max.Y),
			Z: math.Max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := Gray(amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
