// Package scene holds the primitive list, scene-level BVH, and skybox that
// together answer "what does this ray hit" for the renderer.
package scene

import (
	"math/rand/v2"

	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/geometry"
	"github.com/df07/pathtracer/pkg/material"
)

// Intersection materializes a geometry.HitRecord's material at the hit UV. On
// a scene miss, Emission carries the skybox sample and every other field is
// the zero value.
type Intersection struct {
	Hit      bool
	Point    core.Vec3
	Normal   core.Vec3
	Distance float64
	UV       core.Vec2
	Material material.PointMaterial
}

// Scene is the immutable (post-construction) set of primitives, skybox, and
// derived acceleration structures used by the renderer.
type Scene struct {
	Primitives []geometry.Primitive
	Skybox     *Skybox

	bvh       *core.BVHNode
	emissive  []int // indices into Primitives that are NEE-eligible emitters
}

// NewScene builds the scene-level BVH and the emissive enumeration cache.
// Primitives must not be mutated after this call.
func NewScene(primitives []geometry.Primitive, skybox *Skybox) *Scene {
	s := &Scene{Primitives: primitives, Skybox: skybox}
	s.build()
	return s
}

func (s *Scene) build() {
	boxes := make([]core.AABB, len(s.Primitives))
	centroids := make([]core.Vec3, len(s.Primitives))
	s.emissive = s.emissive[:0]

	for i := range s.Primitives {
		p := &s.Primitives[i]
		boxes[i] = p.AABB()
		centroids[i] = boxes[i].Center()
		if p.NEEEligible() && p.IsEmissive() {
			s.emissive = append(s.emissive, i)
		}
	}

	s.bvh = core.BuildBVH(boxes, centroids)
}

// EmissiveCount returns how many primitives are enumerated as NEE light
// sources.
func (s *Scene) EmissiveCount() int {
	return len(s.emissive)
}

// EmissivePrimitive returns the i'th enumerated emissive primitive, 0 <= i <
// EmissiveCount().
func (s *Scene) EmissivePrimitive(i int) *geometry.Primitive {
	return &s.Primitives[s.emissive[i]]
}

// Intersect walks the scene-level BVH for the nearest hit, returning the
// materialized PointMaterial at that hit. On a miss, Emission is set from the
// skybox sample along ray.Direction and Hit is false.
func (s *Scene) Intersect(ray core.Ray, tMin, tMax float64) Intersection {
	bestIdx := -1
	bestT := tMax

	s.bvh.Traverse(ray, tMin, tMax, func(idx int, cutoff float64) (float64, bool) {
		hit, ok := s.Primitives[idx].Hit(ray, tMin, cutoff)
		if !ok {
			return cutoff, false
		}
		bestIdx = idx
		bestT = hit.T
		return hit.T, true
	})

	if bestIdx < 0 {
		skyColor := core.Vec3{}
		if s.Skybox != nil {
			skyColor = s.Skybox.Sample(ray.Direction)
		}
		return Intersection{Material: material.PointMaterial{Emission: skyColor}}
	}

	// Re-run the winning primitive's Hit to recover its full record (the BVH
	// leaf test above only tracks which index won, not the record itself).
	hit, _ := s.Primitives[bestIdx].Hit(ray, tMin, bestT+1e-9)
	pointMat := s.Primitives[bestIdx].Material.At(hit.UV, hit.Point)

	return Intersection{
		Hit:      true,
		Point:    hit.Point,
		Normal:   hit.Normal,
		Distance: hit.T,
		UV:       hit.UV,
		Material: pointMat,
	}
}

// AddWithCheckCollisions appends primitive to the scene only if its AABB does
// not overlap any already-present primitive's AABB, returning whether it was
// inserted. Callers should call Rebuild after a batch of insertions.
func (s *Scene) AddWithCheckCollisions(p geometry.Primitive) bool {
	box := p.AABB()
	for i := range s.Primitives {
		if s.Primitives[i].AABB().Overlaps(box) {
			return false
		}
	}
	s.Primitives = append(s.Primitives, p)
	return true
}

// Rebuild reconstructs the scene-level BVH and emissive cache; call after any
// batch of AddWithCheckCollisions calls.
func (s *Scene) Rebuild() {
	s.build()
}

// SampleEmissive draws a uniform point on the surface of the which'th
// enumerated emissive primitive (0 <= which < EmissiveCount()), returning its
// position, outward normal, and area pdf.
func (s *Scene) SampleEmissive(which int, rng *rand.Rand) (point, normal core.Vec3, pdfArea float64) {
	return s.EmissivePrimitive(which).SampleOnSurface(rng)
}
