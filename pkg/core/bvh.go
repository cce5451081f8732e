package core

import "sort"

// BVHNode is a node in a bounding-volume hierarchy built over element indices.
// Internal nodes always have exactly two children; leaves hold up to five
// indices (see leafMedianThreshold below).
type BVHNode struct {
	Box     AABB
	Left    *BVHNode
	Right   *BVHNode
	Indices []int // non-nil only on leaves
	empty   bool
}

// leafMedianThreshold keeps up to 5 elements per leaf: the build stops
// splitting once count/2 <= 2 (integer division). Do not tighten this to 1 without re-tuning
// traversal cost - it's a deliberate tree-depth-vs-leaf-cost tradeoff.
const leafMedianThreshold = 2

// BuildBVH builds a BVH over element indices 0..len(boxes)-1. centroids[i] is
// the point used to sort index i along the split axis (an AABB midpoint for
// convex shapes, or the sum of a mesh triangle's vertices). Build is
// deterministic: the same input order always produces the same tree.
func BuildBVH(boxes []AABB, centroids []Vec3) *BVHNode {
	if len(boxes) == 0 {
		return &BVHNode{empty: true}
	}
	indices := make([]int, len(boxes))
	for i := range indices {
		indices[i] = i
	}
	return buildBVHNode(indices, boxes, centroids)
}

func buildBVHNode(indices []int, boxes []AABB, centroids []Vec3) *BVHNode {
	box := boxes[indices[0]]
	for _, i := range indices[1:] {
		box = box.Union(boxes[i])
	}

	mid := len(indices) / 2
	if mid <= leafMedianThreshold {
		return &BVHNode{Box: box, Indices: indices}
	}

	axis := box.LongestAxis()
	sort.Slice(indices, func(a, b int) bool {
		return axisComponent(centroids[indices[a]], axis) < axisComponent(centroids[indices[b]], axis)
	})

	left := buildBVHNode(indices[:mid], boxes, centroids)
	right := buildBVHNode(indices[mid:], boxes, centroids)
	return &BVHNode{Box: box, Left: left, Right: right}
}

func axisComponent(v Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// IsLeaf reports whether this node stores element indices directly.
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// LeafTest is called once per element stored in a visited leaf. It reports
// the (possibly unchanged) tMax cutoff and whether this element improved the
// nearest hit so far. Further traversal is pruned against the returned tMax -
// the same mutable-nearest contract the intersection layer uses, expressed as
// a callback so one traversal implementation serves both BVH flavors.
type LeafTest func(index int, tMax float64) (newTMax float64, hit bool)

// Traverse walks the tree depth-first, visiting both children of every
// internal node unconditionally (no front-to-back ordering) and pruning leaf
// tests against the running tMax. Returns true iff any leaf test reported a
// hit. Mesh-level callers only care about the bool; scene-level callers close
// over the winning index inside test to recover which element hit.
func (n *BVHNode) Traverse(ray Ray, tMin, tMax float64, test LeafTest) bool {
	if n == nil || n.empty {
		return false
	}
	if !n.Box.Hit(ray, tMin, tMax) {
		return false
	}

	if n.IsLeaf() {
		hitAny := false
		for _, idx := range n.Indices {
			if newTMax, ok := test(idx, tMax); ok {
				tMax = newTMax
				hitAny = true
			}
		}
		return hitAny
	}

	hitLeft := n.Left.traverseTracking(ray, tMin, &tMax, test)
	hitRight := n.Right.traverseTracking(ray, tMin, &tMax, test)
	return hitLeft || hitRight
}

func (n *BVHNode) traverseTracking(ray Ray, tMin float64, tMax *float64, test LeafTest) bool {
	if n == nil || n.empty {
		return false
	}
	if !n.Box.Hit(ray, tMin, *tMax) {
		return false
	}

	if n.IsLeaf() {
		hitAny := false
		for _, idx := range n.Indices {
			if newTMax, ok := test(idx, *tMax); ok {
				*tMax = newTMax
				hitAny = true
			}
		}
		return hitAny
	}

	hitLeft := n.Left.traverseTracking(ray, tMin, tMax, test)
	hitRight := n.Right.traverseTracking(ray, tMin, tMax, test)
	return hitLeft || hitRight
}

// Stats summarizes a built BVH, useful for logging at scene construction.
type Stats struct {
	NodeCount int
	LeafCount int
	MaxDepth  int
	ElemCount int
}

// CollectStats walks the tree once to gather diagnostics.
func (n *BVHNode) CollectStats() Stats {
	var s Stats
	n.collect(0, &s)
	return s
}

func (n *BVHNode) collect(depth int, s *Stats) {
	if n == nil || n.empty {
		return
	}
	s.NodeCount++
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	if n.IsLeaf() {
		s.LeafCount++
		s.ElemCount += len(n.Indices)
		return
	}
	n.Left.collect(depth+1, s)
	n.Right.collect(depth+1, s)
}
