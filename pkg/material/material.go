package material

import (
	"github.com/df07/pathtracer/pkg/core"
)

// Surface identifies one of the five closed BSDF variants. Materials are a
// tagged union rather than an interface: the set of surfaces is fixed by the
// physical model, so a switch over Surface avoids a virtual call per bounce.
type Surface int

const (
	Diffuse Surface = iota
	Specular
	Refraction
	GGX
	GGXRefraction
)

// Material is the authored, texture-backed description of a primitive's
// surface, owned by the primitive.
type Material struct {
	Surface Surface

	Albedo   ColorSource // base color / specular tint
	Emission ColorSource // nonzero only for emitters

	Roughness float64   // GGX / GGXRefraction: perceptual roughness in [0,1]
	Eta       float64   // Refraction / GGXRefraction: relative index of refraction
	F0        core.Vec3 // GGX: Schlick base reflectance at normal incidence
}

// NewDiffuse creates a Lambertian material with the given albedo.
func NewDiffuse(albedo core.Vec3) *Material {
	return &Material{Surface: Diffuse, Albedo: NewSolidColor(albedo), Emission: NewSolidColor(core.Vec3{})}
}

// NewSpecular creates a perfect mirror material.
func NewSpecular(albedo core.Vec3) *Material {
	return &Material{Surface: Specular, Albedo: NewSolidColor(albedo), Emission: NewSolidColor(core.Vec3{})}
}

// NewRefraction creates a dielectric material with relative index eta.
func NewRefraction(albedo core.Vec3, eta float64) *Material {
	return &Material{Surface: Refraction, Albedo: NewSolidColor(albedo), Emission: NewSolidColor(core.Vec3{}), Eta: eta}
}

// NewGGX creates a rough metallic material with base reflectance f0.
func NewGGX(f0 core.Vec3, roughness float64) *Material {
	return &Material{Surface: GGX, Albedo: NewSolidColor(core.NewVec3(1, 1, 1)), Emission: NewSolidColor(core.Vec3{}), F0: f0, Roughness: roughness}
}

// NewGGXRefraction creates a rough dielectric material.
func NewGGXRefraction(albedo core.Vec3, eta, roughness float64) *Material {
	return &Material{Surface: GGXRefraction, Albedo: NewSolidColor(albedo), Emission: NewSolidColor(core.Vec3{}), Eta: eta, Roughness: roughness}
}

// NewEmissive creates a diffuse-shaped material whose only role is emission
// (NEE treats it as a light, never samples its BSDF for direct lighting).
func NewEmissive(emission core.Vec3) *Material {
	return &Material{Surface: Diffuse, Albedo: NewSolidColor(core.Vec3{}), Emission: NewSolidColor(emission)}
}

// PointMaterial is the per-hit snapshot of a Material with all textures
// evaluated at the hit UV/point.
type PointMaterial struct {
	Surface   Surface
	Albedo    core.Vec3
	Emission  core.Vec3
	Roughness float64
	Eta       float64
	F0        core.Vec3
}

// At evaluates every texture of m at the given surface UV and world point.
func (m *Material) At(uv core.Vec2, point core.Vec3) PointMaterial {
	pm := PointMaterial{Surface: m.Surface, Roughness: m.Roughness, Eta: m.Eta, F0: m.F0}
	if m.Albedo != nil {
		pm.Albedo = m.Albedo.Evaluate(uv, point)
	}
	if m.Emission != nil {
		pm.Emission = m.Emission.Evaluate(uv, point)
	}
	return pm
}

// IsEmissive reports whether this point has nonzero authored emission.
func (pm PointMaterial) IsEmissive() bool {
	return !pm.Emission.IsZero()
}

// NEEEligible reports whether this point material accepts next-event
// estimation: only Diffuse and GGX scatter light predictably enough for a
// light-sampling pdf to make sense. Specular/Refraction/GGXRefraction only
// ever contribute emission through BSDF sampling.
func (pm PointMaterial) NEEEligible() bool {
	return pm.Surface == Diffuse || pm.Surface == GGX
}
