package geometry

import (
	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/material"
)

// TriangleMesh is a collection of triangles sharing one material, accelerated
// by its own BVH (the mesh-level flavor from spec 4.2: traversal only needs
// to report whether anything was hit, since the triangle itself carries the
// data once found).
type TriangleMesh struct {
	Vertices []core.Vec3
	UVs      []core.Vec2 // per-vertex; nil means "use triangle-local (0,0)/(1,0)/(0,1)"
	Faces    [][3]int    // vertex indices per triangle
	Material *material.Material
	BVH      *core.BVHNode
}

// NewTriangleMesh builds a mesh and its triangle BVH. transform is applied to
// every vertex once at construction (supports instancing a shared OBJ/glTF
// mesh at multiple scene placements).
func NewTriangleMesh(vertices []core.Vec3, uvs []core.Vec2, faces [][3]int, mat *material.Material, transform core.Mat4) *TriangleMesh {
	transformed := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		transformed[i] = transform.MulPoint(v)
	}

	boxes := make([]core.AABB, len(faces))
	centroids := make([]core.Vec3, len(faces))
	for i, f := range faces {
		v0, v1, v2 := transformed[f[0]], transformed[f[1]], transformed[f[2]]
		boxes[i] = core.NewAABBFromPoints(v0, v1, v2)
		centroids[i] = v0.Add(v1).Add(v2)
	}

	return &TriangleMesh{
		Vertices: transformed,
		UVs:      uvs,
		Faces:    faces,
		Material: mat,
		BVH:      core.BuildBVH(boxes, centroids),
	}
}

func (m *TriangleMesh) vertexUV(index int) core.Vec2 {
	if m.UVs == nil || index >= len(m.UVs) {
		return core.Vec2{}
	}
	return m.UVs[index]
}

func defaultTriangleUVs() (core.Vec2, core.Vec2, core.Vec2) {
	return core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1)
}

// Hit traverses the mesh's BVH, testing every triangle stored in a visited
// leaf and keeping the nearest. Returns false ("did something hit") when no
// triangle is closer than tMax.
func (m *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	var best HitRecord
	found := false

	m.BVH.Traverse(ray, tMin, tMax, func(idx int, cutoff float64) (float64, bool) {
		f := m.Faces[idx]
		v0, v1, v2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]

		var uv0, uv1, uv2 core.Vec2
		if m.UVs != nil {
			uv0, uv1, uv2 = m.vertexUV(f[0]), m.vertexUV(f[1]), m.vertexUV(f[2])
		} else {
			uv0, uv1, uv2 = defaultTriangleUVs()
		}

		hit, ok := hitTriangle(v0, v1, v2, uv0, uv1, uv2, m.Material, ray, tMin, cutoff)
		if !ok {
			return cutoff, false
		}
		best = hit
		found = true
		return hit.T, true
	})

	return best, found
}

// TriangleCount returns the number of triangles in the mesh.
func (m *TriangleMesh) TriangleCount() int {
	return len(m.Faces)
}
