package material

import (
	"math"

	"github.com/df07/pathtracer/pkg/core"
)

// HSVToRGB converts a hue/saturation/value color (h in degrees, s and v in
// [0,1]) to linear RGB, for procedural textures that vary color by hue
// (e.g. NewRainbowGradientTexture) rather than interpolating RGB directly.
func HSVToRGB(h, s, v float64) core.Vec3 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return core.NewVec3(r+m, g+m, b+m)
}

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Determine which check we're in
			checkX := x / checkSize
			checkY := y / checkSize

			// Alternate colors based on check position
			var color core.Vec3
			if (checkX+checkY)%2 == 0 {
				color = color1
			} else {
				color = color2
			}

			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewUVDebugTexture creates a texture showing UV coordinates as colors
// U maps to red channel, V maps to green channel
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(width-1)
			v := 1 - float64(y)/float64(height-1) // row 0 is the top (V=1)
			pixels[y*width+x] = core.NewVec3(u, v, 0.0)
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewRainbowGradientTexture creates a vertical gradient sweeping hue from 0
// to 360 degrees at fixed saturation/value, top to bottom.
func NewRainbowGradientTexture(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		color := HSVToRGB(t*360, 0.8, 0.9)

		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewGradientTexture creates a vertical gradient from color1 (top) to color2 (bottom)
func NewGradientTexture(width, height int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		// Interpolate from top to bottom
		t := float64(y) / float64(height-1)
		color := color1.Multiply(1.0 - t).Add(color2.Multiply(t))

		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}
