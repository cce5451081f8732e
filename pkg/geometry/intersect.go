package geometry

import (
	"math"

	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/material"
)

const selfIntersectEpsilon = 1e-8

func hitSphere(p *Primitive, ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	oc := ray.Origin.Subtract(p.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - p.Radius*p.Radius
	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return HitRecord{}, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(p.Center).Multiply(1.0 / p.Radius)

	// v = 1 - acos(n.y)/pi ; u = 0.5 - sign(n.z)*acos(n.x/len(n.xz))/(2*pi)
	v := 1 - math.Acos(clamp(outwardNormal.Y, -1, 1))/math.Pi
	xz := math.Sqrt(outwardNormal.X*outwardNormal.X + outwardNormal.Z*outwardNormal.Z)
	u := 0.5
	if xz > 1e-12 {
		sign := 1.0
		if outwardNormal.Z < 0 {
			sign = -1.0
		}
		u = 0.5 - sign*math.Acos(clamp(outwardNormal.X/xz, -1, 1))/(2*math.Pi)
	}

	hit := HitRecord{T: root, Point: point, UV: core.NewVec2(u, v), Material: p.Material}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit, true
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// hitCuboid performs the slab test; reported distance is tMin if positive,
// else tMax (handles rays starting inside the box).
func hitCuboid(p *Primitive, ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	slabMin, slabMax := tMin, tMax
	for axis := 0; axis < 3; axis++ {
		var lo, hi, o, d float64
		switch axis {
		case 0:
			lo, hi, o, d = p.Min.X, p.Max.X, ray.Origin.X, ray.Direction.X
		case 1:
			lo, hi, o, d = p.Min.Y, p.Max.Y, ray.Origin.Y, ray.Direction.Y
		default:
			lo, hi, o, d = p.Min.Z, p.Max.Z, ray.Origin.Z, ray.Direction.Z
		}
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return HitRecord{}, false
			}
			continue
		}
		invD := 1.0 / d
		t1, t2 := (lo-o)*invD, (hi-o)*invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		slabMin = math.Max(slabMin, t1)
		slabMax = math.Min(slabMax, t2)
		if slabMin > slabMax {
			return HitRecord{}, false
		}
	}
	if slabMax < 0 {
		return HitRecord{}, false
	}

	dist := slabMin
	if dist <= 0 {
		dist = slabMax
	}
	if dist <= tMin || dist >= tMax {
		return HitRecord{}, false
	}

	point := ray.At(dist)
	outwardNormal, uv := cuboidFaceNormalUV(p, point)

	hit := HitRecord{T: dist, Point: point, UV: uv, Material: p.Material}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit, true
}

// cuboidFaceNormalUV finds the face the point lies on (epsilon compare
// against each face plane) and derives UV from the two non-normal axes of the
// normalized (p-min)/(max-min).
func cuboidFaceNormalUV(p *Primitive, point core.Vec3) (core.Vec3, core.Vec2) {
	const eps = 1e-6
	size := p.Max.Subtract(p.Min)
	local := point.Subtract(p.Min)
	frac := core.NewVec3(local.X/size.X, local.Y/size.Y, local.Z/size.Z)

	switch {
	case math.Abs(point.X-p.Min.X) < eps:
		return core.NewVec3(-1, 0, 0), core.NewVec2(frac.Z, frac.Y)
	case math.Abs(point.X-p.Max.X) < eps:
		return core.NewVec3(1, 0, 0), core.NewVec2(1-frac.Z, frac.Y)
	case math.Abs(point.Y-p.Min.Y) < eps:
		return core.NewVec3(0, -1, 0), core.NewVec2(frac.X, frac.Z)
	case math.Abs(point.Y-p.Max.Y) < eps:
		return core.NewVec3(0, 1, 0), core.NewVec2(frac.X, 1-frac.Z)
	case math.Abs(point.Z-p.Min.Z) < eps:
		return core.NewVec3(0, 0, -1), core.NewVec2(1-frac.X, frac.Y)
	default:
		return core.NewVec3(0, 0, 1), core.NewVec2(frac.X, frac.Y)
	}
}

// hitPlane intersects an infinite Y-up plane; UV is the fractional (x,z).
func hitPlane(p *Primitive, ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	if math.Abs(ray.Direction.Y) < 1e-12 {
		return HitRecord{}, false
	}
	t := (p.PlanePoint.Y - ray.Origin.Y) / ray.Direction.Y
	if t <= tMin || t >= tMax {
		return HitRecord{}, false
	}
	point := ray.At(t)
	u := point.X - math.Floor(point.X)
	v := point.Z - math.Floor(point.Z)

	hit := HitRecord{T: t, Point: point, UV: core.NewVec2(u, v), Material: p.Material}
	hit.SetFaceNormal(ray, core.NewVec3(0, 1, 0))
	return hit, true
}

// hitTriangle uses Moeller-Trumbore via the 3x3 determinant with columns
// (edge1, edge2, -dir); shared by standalone triangle primitives and mesh
// triangles. Normal comes from cross(edge1,edge2) with its sign resolved by
// the determinant, so orientation is preserved regardless of winding.
func hitTriangle(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2, mat *material.Material, ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	// det(edge1, edge2, -dir) via the scalar triple product.
	negDir := ray.Direction.Negate()
	det := edge1.Dot(edge2.Cross(negDir))
	if math.Abs(det) < selfIntersectEpsilon {
		return HitRecord{}, false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Subtract(v0)

	// Cramer's rule for (t, u, v) solving edge1*u + edge2*v - dir*t = tvec.
	u := tvec.Dot(edge2.Cross(negDir)) * invDet
	if u < 0 || u > 1 {
		return HitRecord{}, false
	}
	v := edge1.Dot(tvec.Cross(negDir)) * invDet
	if v < 0 || u+v > 1 {
		return HitRecord{}, false
	}
	t := edge1.Dot(edge2.Cross(tvec)) * invDet
	if t <= tMin || t >= tMax {
		return HitRecord{}, false
	}

	outwardNormal := edge1.Cross(edge2).Normalize()
	if det < 0 {
		outwardNormal = outwardNormal.Negate()
	}

	uv := uv0.Multiply(1 - u - v).Add(uv1.Multiply(u)).Add(uv2.Multiply(v))

	hit := HitRecord{T: t, Point: ray.At(t), UV: uv, Material: mat}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit, true
}
