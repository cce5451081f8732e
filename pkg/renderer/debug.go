package renderer

import (
	"image"
	"math"

	"github.com/df07/pathtracer/pkg/camera"
	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/scene"
)

// debugMaxDepth bounds the depth visualization's normalization range: near
// hits render white, hits at or beyond it clamp to black, misses render black.
const debugMaxDepth = 2000.0

// debugLightDir is the fixed overhead light direction used by shading mode.
var debugLightDir = core.NewVec3(0.3, 0.8, -0.5).Normalize()

// RenderDebug renders one non-Monte-Carlo pass: a single primary ray per
// pixel, no accumulation, no supersampling. Used by --debug to inspect a
// scene instantly instead of waiting on convergence.
func RenderDebug(sc *scene.Scene, cam *camera.Camera, cfg Config, mode DebugMode) *image.RGBA {
	width, height := cfg.Width, cfg.Height
	buffer := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := 2*(float64(x)+0.5)/float64(width) - 1
			v := 1 - 2*(float64(y)+0.5)/float64(height)
			ray := cam.Ray(u, v)
			isect := sc.Intersect(ray, 1e-4, math.MaxFloat64)
			buffer[y*width+x] = shadeDebugPixel(isect, mode)
		}
	}

	noToneCfg := cfg
	noToneCfg.ToneMap = ToneMapNone
	return QuantizeToImage(buffer, width, height, noToneCfg)
}

func shadeDebugPixel(isect scene.Intersection, mode DebugMode) core.Vec3 {
	if !isect.Hit {
		return core.Vec3{}
	}
	switch mode {
	case DebugDepth:
		t := math.Min(1, isect.Distance/debugMaxDepth)
		g := 1 - t
		return core.NewVec3(g, g, g)
	case DebugShading:
		cos := math.Max(0, isect.Normal.Dot(debugLightDir))
		return isect.Material.Albedo.Multiply(cos)
	default: // DebugNormal
		n := isect.Normal
		return core.NewVec3((n.X+1)*0.5, (n.Y+1)*0.5, (n.Z+1)*0.5)
	}
}
