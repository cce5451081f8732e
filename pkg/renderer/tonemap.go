package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/pathtracer/pkg/core"
)

// ToneMap applies the configured tone curve to a linear HDR color,
// saturating Reinhard's result to [0,1]; None is the identity.
func ToneMap(c core.Vec3, mode ToneMapMode, exposure, whitePoint float64) core.Vec3 {
	if mode == ToneMapNone {
		return c
	}
	return reinhard(c, exposure, whitePoint)
}

func reinhard(c core.Vec3, exposure, whitePoint float64) core.Vec3 {
	w2 := whitePoint * whitePoint
	apply := func(x float64) float64 {
		x *= exposure
		y := x * (1 + x/w2) / (1 + x)
		return math.Min(1, math.Max(0, y))
	}
	return core.NewVec3(apply(c.X), apply(c.Y), apply(c.Z))
}

// GammaEncode raises each channel to 1/gamma, the linear-to-display transform.
func GammaEncode(c core.Vec3, gamma float64) core.Vec3 {
	return c.Clamp(0, 1).GammaCorrect(gamma)
}

// GammaDecode raises each channel to gamma, the display-to-linear transform.
func GammaDecode(c core.Vec3, gamma float64) core.Vec3 {
	return core.NewVec3(math.Pow(c.X, gamma), math.Pow(c.Y, gamma), math.Pow(c.Z, gamma))
}

// QuantizeToImage converts a linear HDR buffer to an 8-bit sRGB image by
// applying tone mapping, gamma encoding, and rounding, per pixel.
func QuantizeToImage(buffer []core.Vec3, width, height int, cfg Config) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := buffer[y*width+x]
			c = ToneMap(c, cfg.ToneMap, cfg.Exposure, cfg.WhitePoint)
			c = GammaEncode(c, cfg.Gamma)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(math.Round(c.X * 255)),
				G: uint8(math.Round(c.Y * 255)),
				B: uint8(math.Round(c.Z * 255)),
				A: 255,
			})
		}
	}
	return img
}
