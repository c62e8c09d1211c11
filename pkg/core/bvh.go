package core

import (
	"sort"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Multiple shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// A built BVH is read-only and safe to query from many goroutines.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}

	// Sorting during the build reorders the slice, keep the caller's order intact
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{
		Root: buildBVH(shapesCopy),
	}
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH with a median split along the longest axis
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for i := 1; i < len(shapes); i++ {
		boundingBox = boundingBox.Union(shapes[i].BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes,
		}
	}

	axis := boundingBox.LongestAxis()
	sort.Slice(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().Center().axis(axis) < shapes[j].BoundingBox().Center().axis(axis)
	})

	mid := len(shapes) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(shapes[:mid]),
		Right:       buildBVH(shapes[mid:]),
	}
}

// Hit returns the closest intersection in (tMin, tMax)
func (bvh *BVH) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax)
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	var closestHit *HitRecord
	hitAnything := false
	closestSoFar := tMax

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
				hitAnything = true
				closestSoFar = hit.T
				closestHit = hit
			}
		}
		return closestHit, hitAnything
	}

	for _, child := range [2]*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if hit, isHit := bvh.hitNode(child, ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// Occluded reports whether anything blocks the ray in (tMin, tMax).
// It stops at the first intersection found.
func (bvh *BVH) Occluded(ray Ray, tMin, tMax float64) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.occludedNode(bvh.Root, ray, tMin, tMax)
}

func (bvh *BVH) occludedNode(node *BVHNode, ray Ray, tMin, tMax float64) bool {
	if node == nil || !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}
	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if _, isHit := shape.Hit(ray, tMin, tMax); isHit {
				return true
			}
		}
		return false
	}
	return bvh.occludedNode(node.Left, ray, tMin, tMax) || bvh.occludedNode(node.Right, ray, tMin, tMax)
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	if bvh.Root == nil {
		return bvhStats{}
	}

	stats := bvhStats{}
	bvh.collectStats(bvh.Root, 0, &stats)
	return stats
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	totalShapes int
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	if node.Shapes != nil {
		stats.leafNodes++
		stats.totalShapes += len(node.Shapes)
		return
	}
	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
