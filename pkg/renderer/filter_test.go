package renderer

import (
	"testing"

	"github.com/df07/pathtracer/pkg/core"
)

func TestBilateralFilter_ConstantImageIsUnchanged(t *testing.T) {
	width, height := 8, 8
	buf := make([]core.Vec3, width*height)
	for i := range buf {
		buf[i] = core.NewVec3(0.5, 0.5, 0.5)
	}

	out := BilateralFilter(buf, width, height, 5, 2.0, 0.1)
	for i, c := range out {
		if c.Subtract(core.NewVec3(0.5, 0.5, 0.5)).Length() > 1e-9 {
			t.Fatalf("pixel %d changed on constant input: %v", i, c)
		}
	}
}

func TestBilateralFilter_PreservesStrongEdge(t *testing.T) {
	width, height := 10, 10
	buf := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				buf[y*width+x] = core.NewVec3(0, 0, 0)
			} else {
				buf[y*width+x] = core.NewVec3(10, 10, 10)
			}
		}
	}

	out := BilateralFilter(buf, width, height, 5, 2.0, 0.05)
	left := out[5*width+2]
	right := out[5*width+7]
	if left.X > 1.0 {
		t.Errorf("left side of edge bled too much: %v", left)
	}
	if right.X < 9.0 {
		t.Errorf("right side of edge bled too much: %v", right)
	}
}

func TestApplyBilateralPasses_ZeroIsNoOp(t *testing.T) {
	buf := []core.Vec3{core.NewVec3(1, 2, 3)}
	out := ApplyBilateralPasses(buf, 1, 1, 0, 5, 2.0, 0.1)
	if out[0].Subtract(buf[0]).Length() > 1e-12 {
		t.Errorf("zero passes should be a no-op, got %v", out[0])
	}
}
