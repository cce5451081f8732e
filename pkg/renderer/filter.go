package renderer

import (
	"math"

	"github.com/df07/pathtracer/pkg/core"
)

func gaussianWeight(x, sigma float64) float64 {
	return math.Exp(-x*x/(2*sigma*sigma)) / (2 * math.Pi * sigma * sigma)
}

// BilateralFilter smooths buffer (row-major, width x height) while preserving
// edges: neighbors are weighted by both spatial distance and intensity
// difference, so high-contrast boundaries (geometry silhouettes, light
// edges) aren't blurred across.
func BilateralFilter(buffer []core.Vec3, width, height, diameter int, spatialSigma, colorSigma float64) []core.Vec3 {
	radius := diameter / 2
	out := make([]core.Vec3, len(buffer))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			center := buffer[y*width+x]
			centerSum := (center.X + center.Y + center.Z) / 3

			var weightedSum core.Vec3
			var weightTotal float64

			for dy := -radius; dy <= radius; dy++ {
				ny := clampInt(y+dy, 0, height-1)
				for dx := -radius; dx <= radius; dx++ {
					nx := clampInt(x+dx, 0, width-1)
					neighbor := buffer[ny*width+nx]
					neighborSum := (neighbor.X + neighbor.Y + neighbor.Z) / 3

					spatialDist := math.Sqrt(float64(dx*dx + dy*dy))
					w := gaussianWeight(spatialDist, spatialSigma) * gaussianWeight(neighborSum-centerSum, colorSigma)

					weightedSum = weightedSum.Add(neighbor.Multiply(w))
					weightTotal += w
				}
			}

			if weightTotal <= 0 {
				out[y*width+x] = center
				continue
			}
			out[y*width+x] = weightedSum.Multiply(1.0 / weightTotal)
		}
	}

	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApplyBilateralPasses runs BilateralFilter n times in sequence (n == 0 is a
// no-op, returning buffer unchanged).
func ApplyBilateralPasses(buffer []core.Vec3, width, height, n, diameter int, spatialSigma, colorSigma float64) []core.Vec3 {
	for i := 0; i < n; i++ {
		buffer = BilateralFilter(buffer, width, height, diameter, spatialSigma, colorSigma)
	}
	return buffer
}
