package fiber

import (
	"github.com/df07/go-hair-raytracer/pkg/core"
	"github.com/soypat/geometry/ms3"
)

// Collection is a set of strands behind one BVH. It is read-only once built.
type Collection struct {
	Strands  []Strand
	bvh      *core.BVH
	segments int
	bounds   ms3.Box
}

// NewCollection builds the acceleration structure for strands
func NewCollection(strands []Strand) *Collection {
	var shapes []core.Shape
	var bounds ms3.Box
	found := false
	for i := range strands {
		for _, seg := range strands[i].Segments() {
			shapes = append(shapes, seg)
		}
		if len(strands[i].Points) == 0 {
			continue
		}
		// Union drops degenerate boxes, so grow by corners
		b := strands[i].Bounds()
		if !found {
			bounds, found = b, true
		} else {
			bounds = bounds.IncludePoint(b.Min).IncludePoint(b.Max)
		}
	}
	return &Collection{
		Strands:  strands,
		bvh:      core.NewBVH(shapes),
		segments: len(shapes),
		bounds:   bounds,
	}
}

// Hit returns the nearest fiber intersection in (tMin, tMax)
func (c *Collection) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return c.bvh.Hit(ray, tMin, tMax)
}

// Bounds is the box around every strand
func (c *Collection) Bounds() ms3.Box {
	return c.bounds
}

// SegmentCount is the number of cylinders in the BVH
func (c *Collection) SegmentCount() int {
	return c.segments
}

// Occluded reports whether any strand crosses the ray in (tMin, tMax)
func (c *Collection) Occluded(ray core.Ray, tMin, tMax float64) bool {
	return c.bvh.Occluded(ray, tMin, tMax)
}
