package camera

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/df07/pathtracer/pkg/core"
)

func TestNewCamera_OrthonormalFrame(t *testing.T) {
	c := NewCamera(core.NewVec3(0, 0, 5), core.Vec3{}, core.NewVec3(0, 1, 0), math.Pi/2, 1.0, 0, 5, SquareLens)

	if math.Abs(c.Forward.Length()-1) > 1e-9 || math.Abs(c.Right.Length()-1) > 1e-9 || math.Abs(c.Up.Length()-1) > 1e-9 {
		t.Fatalf("frame vectors not unit length: %v %v %v", c.Forward, c.Right, c.Up)
	}
	if math.Abs(c.Forward.Dot(c.Right)) > 1e-9 || math.Abs(c.Forward.Dot(c.Up)) > 1e-9 || math.Abs(c.Right.Dot(c.Up)) > 1e-9 {
		t.Fatalf("frame vectors not orthogonal")
	}
}

func TestCameraRay_CenterScreenPointsAtTarget(t *testing.T) {
	eye := core.NewVec3(0, 0, 5)
	target := core.Vec3{}
	c := NewCamera(eye, target, core.NewVec3(0, 1, 0), math.Pi/2, 1.0, 0, 5, SquareLens)

	ray := c.Ray(0, 0)
	expected := target.Subtract(eye).Normalize()
	if ray.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("center ray direction %v, expected %v", ray.Direction, expected)
	}
}

func TestRayWithDOF_ZeroApertureMatchesPinhole(t *testing.T) {
	c := NewCamera(core.NewVec3(0, 0, 5), core.Vec3{}, core.NewVec3(0, 1, 0), math.Pi/2, 1.0, 0, 5, SquareLens)
	rng := rand.New(rand.NewPCG(1, 1))

	pinhole := c.Ray(0.3, -0.2)
	dof := c.RayWithDOF(0.3, -0.2, rng)
	if dof.Direction.Subtract(pinhole.Direction).Length() > 1e-9 {
		t.Errorf("zero-aperture DOF ray should match pinhole ray")
	}
}

func TestRayWithDOF_OriginStaysWithinAperture(t *testing.T) {
	c := NewCamera(core.NewVec3(0, 0, 5), core.Vec3{}, core.NewVec3(0, 1, 0), math.Pi/2, 1.0, 0.5, 5, CircularLens)
	rng := rand.New(rand.NewPCG(2, 2))

	for i := 0; i < 200; i++ {
		ray := c.RayWithDOF(0, 0, rng)
		offset := ray.Origin.Subtract(c.Eye)
		if offset.Length() > c.ApertureRadius+1e-9 {
			t.Fatalf("lens offset %v exceeds aperture radius %f", offset, c.ApertureRadius)
		}
	}
}
