package material

import (
	"testing"

	"github.com/df07/pathtracer/pkg/core"
)

func TestImageTextureEvaluate_Corners(t *testing.T) {
	// 2x2 checkerboard: row 0 (top) = white,black ; row 1 (bottom) = black,white
	pixels := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1),
	}
	texture := NewImageTexture(2, 2, pixels)

	white := core.NewVec3(1, 1, 1)
	result := texture.Evaluate(core.NewVec2(0.01, 0.99), core.Vec3{})
	if !result.Equals(white) {
		t.Errorf("near UV(0,1): expected %v, got %v", white, result)
	}
}

func TestImageTextureEvaluate_ClampsOutOfRangeUV(t *testing.T) {
	pixels := []core.Vec3{core.NewVec3(1, 0, 0)}
	texture := NewImageTexture(1, 1, pixels)
	red := core.NewVec3(1, 0, 0)

	for _, uv := range []core.Vec2{
		core.NewVec2(0.5, 0.5),
		core.NewVec2(1.5, 0.5),
		core.NewVec2(-0.5, -0.5),
		core.NewVec2(2.3, 3.7),
	} {
		result := texture.Evaluate(uv, core.Vec3{})
		if !result.Equals(red) {
			t.Errorf("UV%v: expected %v, got %v (single-pixel texture should clamp)", uv, red, result)
		}
	}
}

func TestImageTextureEvaluate_BilinearBlend(t *testing.T) {
	// 2x1 image: black then white. Sampling halfway should blend.
	pixels := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)}
	texture := NewImageTexture(2, 1, pixels)

	result := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{})
	if result.X <= 0.01 || result.X >= 0.99 {
		t.Errorf("expected a blended mid-gray value at the texel boundary, got %v", result)
	}
}

func TestSolidColor(t *testing.T) {
	color := core.NewVec3(0.7, 0.3, 0.1)
	solid := NewSolidColor(color)

	for _, tc := range []struct {
		uv    core.Vec2
		point core.Vec3
	}{
		{core.NewVec2(0, 0), core.NewVec3(0, 0, 0)},
		{core.NewVec2(1, 1), core.NewVec3(5, 3, -2)},
	} {
		result := solid.Evaluate(tc.uv, tc.point)
		if !result.Equals(color) {
			t.Errorf("SolidColor at UV%v: expected %v, got %v", tc.uv, color, result)
		}
	}
}
