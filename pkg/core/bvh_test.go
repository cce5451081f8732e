package core

import (
	"math"
	"math/rand/v2"
	"testing"
)

func boxAt(center Vec3, half float64) AABB {
	return NewAABB(center.Subtract(NewVec3(half, half, half)), center.Add(NewVec3(half, half, half)))
}

func TestBuildBVH_LeafThreshold(t *testing.T) {
	// 4 elements: mid = 2 <= leafMedianThreshold(2), must be a single leaf.
	boxes := make([]AABB, 4)
	centroids := make([]Vec3, 4)
	for i := range boxes {
		c := NewVec3(float64(i), 0, 0)
		boxes[i] = boxAt(c, 0.4)
		centroids[i] = c
	}
	root := BuildBVH(boxes, centroids)
	if !root.IsLeaf() {
		t.Fatalf("expected a single leaf for 4 elements, got internal node")
	}
	if len(root.Indices) != 4 {
		t.Fatalf("expected 4 indices in leaf, got %d", len(root.Indices))
	}

	// 5 elements: mid = 2, still <= threshold -> still a leaf per spec (mid<=2).
	boxes5 := append(append([]AABB{}, boxes...), boxAt(NewVec3(4, 0, 0), 0.4))
	centroids5 := append(append([]Vec3{}, centroids...), NewVec3(4, 0, 0))
	root5 := BuildBVH(boxes5, centroids5)
	if !root5.IsLeaf() {
		t.Fatalf("expected leaf for 5 elements (mid=2), got internal node")
	}

	// 6 elements: mid = 3 > threshold, must split.
	boxes6 := append(append([]AABB{}, boxes5...), boxAt(NewVec3(5, 0, 0), 0.4))
	centroids6 := append(append([]Vec3{}, centroids5...), NewVec3(5, 0, 0))
	root6 := BuildBVH(boxes6, centroids6)
	if root6.IsLeaf() {
		t.Fatalf("expected internal node for 6 elements (mid=3)")
	}
}

func TestBVH_TraverseMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	n := 50
	boxes := make([]AABB, n)
	centroids := make([]Vec3, n)
	for i := 0; i < n; i++ {
		c := NewVec3(rng.Float64()*10-5, rng.Float64()*10-5, rng.Float64()*10-5)
		boxes[i] = boxAt(c, 0.3)
		centroids[i] = c
	}
	root := BuildBVH(boxes, centroids)

	for trial := 0; trial < 200; trial++ {
		ray := NewRay(
			NewVec3(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10),
			NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1).Normalize(),
		)

		// Linear scan: nearest box hit by t.
		bestLinear := -1
		bestT := math.Inf(1)
		for i, b := range boxes {
			if b.Hit(ray, 0.001, bestT) {
				// approximate the hit distance via slab tMin for comparison purposes
				t0 := slabTMin(b, ray)
				if t0 < bestT && t0 > 0.001 {
					bestT = t0
					bestLinear = i
				}
			}
		}

		bestBVH := -1
		bvhT := math.Inf(1)
		root.Traverse(ray, 0.001, math.Inf(1), func(idx int, tMax float64) (float64, bool) {
			t0 := slabTMin(boxes[idx], ray)
			if t0 > 0.001 && t0 < tMax {
				bvhT = t0
				bestBVH = idx
				return t0, true
			}
			return tMax, false
		})

		if (bestLinear == -1) != (bestBVH == -1) {
			t.Fatalf("trial %d: linear found=%v bvh found=%v", trial, bestLinear != -1, bestBVH != -1)
		}
		if bestLinear != -1 && math.Abs(bestT-bvhT) > 1e-9 {
			t.Fatalf("trial %d: linear t=%v bvh t=%v", trial, bestT, bvhT)
		}
	}
}

// slabTMin returns the entry distance of ray into box (may be negative if
// origin is inside), used only to compare BVH vs. linear-scan nearest hit in
// tests.
func slabTMin(box AABB, ray Ray) float64 {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		var lo, hi, o, d float64
		switch axis {
		case 0:
			lo, hi, o, d = box.Min.X, box.Max.X, ray.Origin.X, ray.Direction.X
		case 1:
			lo, hi, o, d = box.Min.Y, box.Max.Y, ray.Origin.Y, ray.Direction.Y
		default:
			lo, hi, o, d = box.Min.Z, box.Max.Z, ray.Origin.Z, ray.Direction.Z
		}
		if math.Abs(d) < 1e-12 {
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	}
	if tMin > tMax {
		return math.Inf(1)
	}
	if tMin > 0 {
		return tMin
	}
	return tMax
}
