package scene

import (
	"github.com/df07/pathtracer/pkg/camera"
	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/geometry"
	"github.com/df07/pathtracer/pkg/material"
)

// BuildCornellBox constructs a Cornell-box-style demo scene: five diffuse
// walls, an area light in the ceiling, a GGX metal sphere, a dielectric
// sphere, a rainbow-textured sphere, and a procedurally textured cuboid,
// exercising the Diffuse, GGX and Refraction surfaces (no Specular or
// GGXRefraction) without requiring an external scene description.
func BuildCornellBox() (*Scene, *camera.Camera) {
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmissive(core.NewVec3(15, 15, 15))
	metal := material.NewGGX(core.NewVec3(0.9, 0.8, 0.6), 0.2)
	glass := material.NewRefraction(core.NewVec3(1, 1, 1), 1.5)

	checker := material.NewCheckerboardTexture(256, 256, 16, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.2))
	checkerMat := &material.Material{Surface: material.Diffuse, Albedo: checker, Emission: material.NewSolidColor(core.Vec3{})}

	backWallGradient := material.NewGradientTexture(64, 256, core.NewVec3(0.9, 0.9, 0.95), core.NewVec3(0.4, 0.4, 0.5))
	backWallMat := &material.Material{Surface: material.Diffuse, Albedo: backWallGradient, Emission: material.NewSolidColor(core.Vec3{})}

	rainbow := material.NewRainbowGradientTexture(32, 256)
	rainbowMat := &material.Material{Surface: material.Diffuse, Albedo: rainbow, Emission: material.NewSolidColor(core.Vec3{})}

	// Only spheres support SampleOnSurface, so the area light is a sphere
	// set into the ceiling rather than a thin emissive panel.
	const size = 555.0
	primitives := []geometry.Primitive{
		geometry.NewCuboid(core.NewVec3(0, 0, 0), core.NewVec3(1, size, size), red),                 // left wall (thin slab)
		geometry.NewCuboid(core.NewVec3(size-1, 0, 0), core.NewVec3(size, size, size), green),        // right wall
		geometry.NewPlane(core.NewVec3(0, 0, 0), white),                                             // floor
		geometry.NewCuboid(core.NewVec3(0, size-1, 0), core.NewVec3(size, size, size), white),        // ceiling
		geometry.NewCuboid(core.NewVec3(0, 0, size-1), core.NewVec3(size, size, size), backWallMat),  // back wall
		geometry.NewSphere(core.NewVec3(278, size-80, 280), 80, light),                               // ceiling light
		geometry.NewSphere(core.NewVec3(370, 100, 350), 100, metal),
		geometry.NewSphere(core.NewVec3(180, 90, 170), 90, glass),
		geometry.NewSphere(core.NewVec3(120, 60, 420), 60, rainbowMat),
		geometry.NewCuboid(core.NewVec3(60, 0, 60), core.NewVec3(260, 10, 260), checkerMat),
	}

	sb := NewSolidSkybox(core.Vec3{})
	sc := NewScene(primitives, sb)

	eye := core.NewVec3(278, 278, -800)
	target := core.NewVec3(278, 278, 0)
	cam := camera.NewCamera(eye, target, core.NewVec3(0, 1, 0), 0.69, 1.0, 0, 800, camera.SquareLens)

	return sc, cam
}
