package material

import (
	"math"

	"github.com/df07/pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image, bilinear-sampled with edge
// clamping (no wrap) to avoid seams at skybox face boundaries.
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // row-major: Pixels[y*Width+x]
}

// NewImageTexture creates a new image texture.
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

func (t *ImageTexture) at(x, y int) core.Vec3 {
	if x < 0 {
		x = 0
	}
	if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}

// Evaluate bilinear-samples the texture at UV coordinates, clamping outside
// [0,1] rather than wrapping. V=0 is the bottom of the image, V=1 the top.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	u := math.Min(1, math.Max(0, uv.X))
	v := math.Min(1, math.Max(0, uv.Y))

	fx := u*float64(t.Width) - 0.5
	fy := (1.0-v)*float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := t.at(x0, y0)
	c10 := t.at(x0+1, y0)
	c01 := t.at(x0, y0+1)
	c11 := t.at(x0+1, y0+1)

	top := c00.Multiply(1 - tx).Add(c10.Multiply(tx))
	bottom := c01.Multiply(1 - tx).Add(c11.Multiply(tx))
	return top.Multiply(1 - ty).Add(bottom.Multiply(ty))
}
