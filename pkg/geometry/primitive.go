// Package geometry implements the closed set of intersectable primitives.
// Primitives are a tagged union rather than boxed interface values: the
// physical model only ever needs sphere/cuboid/plane/triangle/mesh, and a
// flat tagged struct lets a BVH store plain indices into a contiguous slice
// instead of interface pointers, avoiding a virtual call in the hot
// intersection loop.
package geometry

import (
	"math"
	"math/rand/v2"

	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/material"
)

// Kind identifies which fields of a Primitive are meaningful.
type Kind int

const (
	SphereKind Kind = iota
	CuboidKind
	PlaneKind
	TriangleKind
	MeshKind
)

// Primitive is a tagged-union shape plus its owned material.
type Primitive struct {
	Kind     Kind
	Material *material.Material

	// Sphere
	Center core.Vec3
	Radius float64

	// Cuboid (axis-aligned, slab test)
	Min, Max core.Vec3

	// Plane (Y-up only, per spec)
	PlanePoint core.Vec3

	// Triangle
	V0, V1, V2    core.Vec3
	UV0, UV1, UV2 core.Vec2

	// Mesh
	Mesh *TriangleMesh
}

// HitRecord carries everything the scene needs to materialize a PointMaterial
// and shade the hit: position, distance, oriented normal, UV, and the
// authored material. distance is monotonically non-increasing across
// successive Hit calls sharing the same tMax cutoff.
type HitRecord struct {
	Point     core.Vec3
	Normal    core.Vec3
	T         float64
	FrontFace bool
	UV        core.Vec2
	Material  *material.Material
}

// SetFaceNormal orients Normal against the incoming ray and records which
// face was hit.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// NewSphere creates a sphere primitive.
func NewSphere(center core.Vec3, radius float64, mat *material.Material) Primitive {
	return Primitive{Kind: SphereKind, Material: mat, Center: center, Radius: radius}
}

// NewCuboid creates an axis-aligned box primitive from its min/max corners.
func NewCuboid(min, max core.Vec3, mat *material.Material) Primitive {
	return Primitive{Kind: CuboidKind, Material: mat, Min: min, Max: max}
}

// NewPlane creates an infinite Y-up plane through point.
func NewPlane(point core.Vec3, mat *material.Material) Primitive {
	return Primitive{Kind: PlaneKind, Material: mat, PlanePoint: point}
}

// NewTriangle creates a triangle primitive with per-vertex UVs.
func NewTriangle(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2, mat *material.Material) Primitive {
	return Primitive{Kind: TriangleKind, Material: mat, V0: v0, V1: v1, V2: v2, UV0: uv0, UV1: uv1, UV2: uv2}
}

// NewMeshPrimitive wraps a TriangleMesh as a scene-level primitive.
func NewMeshPrimitive(mesh *TriangleMesh) Primitive {
	return Primitive{Kind: MeshKind, Material: mesh.Material, Mesh: mesh}
}

// Hit dispatches to the variant's intersection routine.
func (p *Primitive) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	switch p.Kind {
	case SphereKind:
		return hitSphere(p, ray, tMin, tMax)
	case CuboidKind:
		return hitCuboid(p, ray, tMin, tMax)
	case PlaneKind:
		return hitPlane(p, ray, tMin, tMax)
	case TriangleKind:
		return hitTriangle(p.V0, p.V1, p.V2, p.UV0, p.UV1, p.UV2, p.Material, ray, tMin, tMax)
	case MeshKind:
		return p.Mesh.Hit(ray, tMin, tMax)
	}
	return HitRecord{}, false
}

// AABB returns a tight world-space bounding box for the primitive.
func (p *Primitive) AABB() core.AABB {
	switch p.Kind {
	case SphereKind:
		r := core.NewVec3(p.Radius, p.Radius, p.Radius)
		return core.NewAABB(p.Center.Subtract(r), p.Center.Add(r))
	case CuboidKind:
		return core.NewAABB(p.Min, p.Max)
	case PlaneKind:
		const big = 1e5
		return core.NewAABB(
			core.NewVec3(p.PlanePoint.X-big, p.PlanePoint.Y-1e-4, p.PlanePoint.Z-big),
			core.NewVec3(p.PlanePoint.X+big, p.PlanePoint.Y+1e-4, p.PlanePoint.Z+big),
		)
	case TriangleKind:
		return core.NewAABBFromPoints(p.V0, p.V1, p.V2)
	case MeshKind:
		return p.Mesh.BVH.Box
	}
	return core.AABB{}
}

// NEEEligible reports whether this primitive can be a next-event-estimation
// target: only spheres implement sample-on-surface today.
func (p *Primitive) NEEEligible() bool {
	return p.Kind == SphereKind
}

// IsEmissive reports whether the primitive's authored emission texture has a
// nonzero constant color, evaluated at the origin UV (emissive surfaces in
// this renderer are always constant-emission).
func (p *Primitive) IsEmissive() bool {
	if p.Material == nil || p.Material.Emission == nil {
		return false
	}
	return !p.Material.Emission.Evaluate(core.Vec2{}, core.Vec3{}).IsZero()
}

// SampleOnSurface draws a uniformly distributed point on the primitive's
// surface for NEE, returning its position, outward normal, and the
// solid-angle-independent area pdf (1/area). Only spheres are NEE-eligible.
func (p *Primitive) SampleOnSurface(rng *rand.Rand) (point, normal core.Vec3, pdf float64) {
	xi0, xi1 := rng.Float64(), rng.Float64()
	phi := 2 * math.Pi * xi0
	z := 1 - 2*xi1
	r := math.Sqrt(max(0, 1-z*z))
	localNormal := core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
	normal = localNormal
	point = p.Center.Add(normal.Multiply(p.Radius))
	const selfIntersectOffset = 1e-4
	point = point.Add(normal.Multiply(selfIntersectOffset))
	pdf = core.SphereUniformPDF(p.Radius)
	return point, normal, pdf
}
