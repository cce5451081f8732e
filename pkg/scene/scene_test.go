package scene

import (
	"math/rand/v2"
	"testing"

	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/geometry"
	"github.com/df07/pathtracer/pkg/material"
)

func TestSceneIntersect_HitsNearestSphere(t *testing.T) {
	near := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDiffuse(core.NewVec3(1, 1, 1)))
	far := geometry.NewSphere(core.NewVec3(0, 0, -10), 1, material.NewDiffuse(core.NewVec3(1, 1, 1)))
	s := NewScene([]geometry.Primitive{near, far}, NewSolidSkybox(core.Vec3{}))

	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))
	isect := s.Intersect(ray, 0.001, 1e9)

	if !isect.Hit {
		t.Fatal("expected a hit")
	}
	if isect.Point.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-6 {
		t.Errorf("hit point %v, expected (0,0,1)", isect.Point)
	}
	if isect.Distance < 1.9 || isect.Distance > 2.1 {
		t.Errorf("distance %v, expected ~2", isect.Distance)
	}
}

func TestSceneIntersect_MissSamplesSkybox(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(10, 10, 10), 1, material.NewDiffuse(core.NewVec3(1, 1, 1)))
	s := NewScene([]geometry.Primitive{sphere}, NewSolidSkybox(core.NewVec3(0.5, 0.6, 0.7)))

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	isect := s.Intersect(ray, 0.001, 1e9)

	if isect.Hit {
		t.Fatal("expected a miss")
	}
	if isect.Material.Emission.Subtract(core.NewVec3(0.5, 0.6, 0.7)).Length() > 1e-9 {
		t.Errorf("miss emission %v, expected skybox color", isect.Material.Emission)
	}
}

func TestSceneEmissiveEnumeration_OnlyNEEEligibleEmitters(t *testing.T) {
	light := geometry.NewSphere(core.NewVec3(0, 5, 0), 1, material.NewEmissive(core.NewVec3(5, 5, 5)))
	nonEmissive := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDiffuse(core.NewVec3(1, 1, 1)))
	emissiveTriangle := geometry.NewTriangle(
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.Vec2{}, core.NewVec2(1, 0), core.NewVec2(0, 1),
		material.NewEmissive(core.NewVec3(5, 5, 5)),
	)
	s := NewScene([]geometry.Primitive{light, nonEmissive, emissiveTriangle}, NewSolidSkybox(core.Vec3{}))

	if s.EmissiveCount() != 1 {
		t.Fatalf("expected exactly 1 emissive primitive (sphere only, triangle isn't NEE-eligible), got %d", s.EmissiveCount())
	}
	if s.EmissivePrimitive(0).Kind != geometry.SphereKind {
		t.Errorf("expected the emissive sphere to be enumerated")
	}
}

func TestAddWithCheckCollisions_RejectsOverlap(t *testing.T) {
	s := NewScene([]geometry.Primitive{
		geometry.NewSphere(core.Vec3{}, 1, material.NewDiffuse(core.NewVec3(1, 1, 1))),
	}, NewSolidSkybox(core.Vec3{}))

	overlapping := geometry.NewSphere(core.NewVec3(0.5, 0, 0), 1, material.NewDiffuse(core.NewVec3(1, 1, 1)))
	if s.AddWithCheckCollisions(overlapping) {
		t.Error("expected overlapping sphere to be rejected")
	}

	clear := geometry.NewSphere(core.NewVec3(10, 0, 0), 1, material.NewDiffuse(core.NewVec3(1, 1, 1)))
	if !s.AddWithCheckCollisions(clear) {
		t.Error("expected non-overlapping sphere to be accepted")
	}
	if len(s.Primitives) != 2 {
		t.Errorf("expected 2 primitives after one accepted insertion, got %d", len(s.Primitives))
	}
}

func TestSceneSampleEmissive_ReturnsPositivePDF(t *testing.T) {
	light := geometry.NewSphere(core.NewVec3(0, 5, 0), 2, material.NewEmissive(core.NewVec3(5, 5, 5)))
	s := NewScene([]geometry.Primitive{light}, NewSolidSkybox(core.Vec3{}))
	rng := rand.New(rand.NewPCG(4, 4))

	_, _, pdf := s.SampleEmissive(0, rng)
	if pdf <= 0 {
		t.Errorf("expected positive area pdf, got %f", pdf)
	}
}
