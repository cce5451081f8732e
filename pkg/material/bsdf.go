package material

import (
	"math"
	"math/rand/v2"

	"github.com/df07/pathtracer/pkg/core"
)

// offset pushes a new ray origin off the surface along the oriented normal to
// avoid immediate self-intersection from floating point error.
const offset = 1e-4

// ScatterSample is the result of importance-sampling a BSDF at a hit point.
type ScatterSample struct {
	Direction   core.Vec3 // sampled outgoing direction, in world space
	Origin      core.Vec3 // offset ray origin
	Reflectance core.Vec3 // cos(theta)*bsdf/pdf throughput multiplier (albedo applied by the caller)
	Specular    bool       // true for delta-distribution surfaces (no NEE, no MIS)
}

func reflect(view, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * view.Dot(n)).Subtract(view)
}

// Sample importance-samples the BSDF at a point with oriented shading normal n
// and outgoing-to-viewer direction view (= -ray.Direction). Returns false if
// no sample exists (a GGX reflection that lands below the horizon, or a
// GGXRefraction transmission that ends up on the viewer's side).
func Sample(pm PointMaterial, n, point, view core.Vec3, rng *rand.Rand) (ScatterSample, bool) {
	switch pm.Surface {
	case Diffuse:
		return sampleDiffuse(pm, n, point, rng), true
	case Specular:
		return sampleSpecular(n, point, view), true
	case Refraction:
		return sampleRefraction(pm, n, point, view, rng), true
	case GGX:
		return sampleGGX(pm, n, point, view, rng)
	case GGXRefraction:
		return sampleGGXRefraction(pm, n, point, view, rng)
	default:
		return ScatterSample{}, false
	}
}

func offsetOrigin(point, n core.Vec3, alongNormal bool) core.Vec3 {
	if alongNormal {
		return point.Add(n.Multiply(offset))
	}
	return point.Subtract(n.Multiply(offset))
}

func sampleDiffuse(pm PointMaterial, n, point core.Vec3, rng *rand.Rand) ScatterSample {
	onb := core.NewONB(n)
	xi0, xi1 := rng.Float64(), rng.Float64()
	phi := 2 * math.Pi * xi0
	r := math.Sqrt(xi1)
	local := core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), math.Sqrt(max(0, 1-xi1)))
	dir := onb.ToWorld(local)
	return ScatterSample{
		Direction:   dir,
		Origin:      offsetOrigin(point, n, true),
		Reflectance: core.NewVec3(1, 1, 1),
	}
}

func sampleSpecular(n, point, view core.Vec3) ScatterSample {
	dir := reflect(view, n)
	return ScatterSample{
		Direction:   dir,
		Origin:      offsetOrigin(point, n, true),
		Reflectance: core.NewVec3(1, 1, 1),
		Specular:    true,
	}
}

// orient flips n to the side of view (so it faces the incoming ray) and
// reports whether the ray is entering (view and geometric n on the same side).
func orient(n, view core.Vec3) (oriented core.Vec3, entering bool) {
	if n.Dot(view) > 0 {
		return n, true
	}
	return n.Negate(), false
}

// fresnelDielectric computes reflectance as the mean of the s- and
// p-polarized Fresnel terms (not Schlick's approximation), used specifically
// by the Refraction variant.
func fresnelDielectric(cosI, cosT, etaRatio float64) float64 {
	rs := (etaRatio*cosI - cosT) / (etaRatio*cosI + cosT)
	rp := (cosI - etaRatio*cosT) / (cosI + etaRatio*cosT)
	return 0.5 * (rs*rs + rp*rp)
}

func sampleRefraction(pm PointMaterial, n, point, view core.Vec3, rng *rand.Rand) ScatterSample {
	in := view.Negate()
	orientedNormal, entering := orient(n, view)
	etaRatio := pm.Eta
	if entering {
		etaRatio = 1.0 / pm.Eta
	}

	refracted, ok := in.Refract(orientedNormal, etaRatio)
	if !ok {
		// Total internal reflection: deterministically reflect.
		dir := reflect(view, orientedNormal)
		return ScatterSample{Direction: dir, Origin: offsetOrigin(point, orientedNormal, true), Reflectance: core.NewVec3(1, 1, 1), Specular: true}
	}

	cosI := math.Min(orientedNormal.Negate().Dot(in), 1.0)
	cosT := -refracted.Dot(orientedNormal)
	fr := fresnelDielectric(cosI, cosT, etaRatio)

	// xi0 doubles as the reflect/refract Russian-roulette draw; deliberately
	// not re-drawn for the refracted branch (mild correlation, left as-is).
	xi0 := rng.Float64()
	if xi0 < fr {
		dir := reflect(view, orientedNormal)
		return ScatterSample{Direction: dir, Origin: offsetOrigin(point, orientedNormal, true), Reflectance: core.NewVec3(1, 1, 1), Specular: true}
	}

	reflectance := core.NewVec3(1, 1, 1).Multiply(etaRatio * etaRatio)
	return ScatterSample{Direction: refracted, Origin: offsetOrigin(point, orientedNormal, false), Reflectance: reflectance, Specular: true}
}

// ggxAlpha maps perceptual roughness to the GGX NDF width parameter.
func ggxAlpha(roughness float64) float64 {
	return roughness * roughness
}

func sampleGGXHalfVector(n core.Vec3, alpha float64, rng *rand.Rand) core.Vec3 {
	xi0, xi1 := rng.Float64(), rng.Float64()
	phi := 2 * math.Pi * xi0
	cosTheta := math.Sqrt(max(0, (1-xi1)/(1+(alpha*alpha-1)*xi1)))
	sinTheta := math.Sqrt(max(0, 1-cosTheta*cosTheta))
	local := core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
	return core.NewONB(n).ToWorld(local)
}

func smithLambda(cosTheta, alpha float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	a2 := alpha * alpha
	return 0.5 * (math.Sqrt(1+a2*(1/(cosTheta*cosTheta)-1)) - 1)
}

func smithG(nDotL, nDotV, alpha float64) float64 {
	return 1.0 / (1.0 + smithLambda(nDotL, alpha) + smithLambda(nDotV, alpha))
}

func schlickFresnel(f0 core.Vec3, cosTheta float64) core.Vec3 {
	t := math.Pow(1-cosTheta, 5)
	return f0.Add(core.NewVec3(1, 1, 1).Subtract(f0).Multiply(t))
}

func sampleGGX(pm PointMaterial, n, point, view core.Vec3, rng *rand.Rand) (ScatterSample, bool) {
	alpha := ggxAlpha(pm.Roughness)
	h := sampleGGXHalfVector(n, alpha, rng)
	l := reflect(view, h)

	if l.Dot(n) < 0 {
		return ScatterSample{}, false // below the geometric horizon: drop the sample
	}

	vDotH := view.Dot(h)
	nDotV := n.Dot(view)
	nDotL := n.Dot(l)
	hDotN := h.Dot(n)

	f := schlickFresnel(pm.F0, vDotH)
	g := smithG(nDotL, nDotV, alpha)

	scale := g * vDotH / (hDotN * nDotV)
	reflectance := f.Multiply(scale).Clamp(0, 1)

	return ScatterSample{
		Direction:   l,
		Origin:      offsetOrigin(point, n, true),
		Reflectance: reflectance,
	}, true
}

func sampleGGXRefraction(pm PointMaterial, n, point, view core.Vec3, rng *rand.Rand) (ScatterSample, bool) {
	alpha := ggxAlpha(pm.Roughness)
	h := sampleGGXHalfVector(n, alpha, rng)

	in := view.Negate()
	orientedH, entering := orient(h, view)
	etaRatio := pm.Eta
	if entering {
		etaRatio = 1.0 / pm.Eta
	}

	refracted, ok := in.Refract(orientedH, etaRatio)
	if !ok {
		dir := reflect(view, orientedH)
		return ScatterSample{Direction: dir, Origin: offsetOrigin(point, n, true), Reflectance: core.NewVec3(1, 1, 1), Specular: true}, true
	}

	cosI := math.Min(orientedH.Negate().Dot(in), 1.0)
	cosT := -refracted.Dot(orientedH)
	fr := fresnelDielectric(cosI, cosT, etaRatio)

	xi0 := rng.Float64()
	if xi0 < fr {
		dir := reflect(view, orientedH)
		return ScatterSample{Direction: dir, Origin: offsetOrigin(point, n, true), Reflectance: core.NewVec3(1, 1, 1), Specular: true}, true
	}

	if refracted.Dot(n) > 0 {
		return ScatterSample{}, false // transmitted sample ended up on the wrong side: drop it
	}

	reflectance := core.NewVec3(1, 1, 1).Multiply(etaRatio * etaRatio)
	return ScatterSample{Direction: refracted, Origin: offsetOrigin(point, n, false), Reflectance: reflectance, Specular: true}, true
}

// Eval evaluates the BSDF (not including albedo) for a known incoming/outgoing
// direction pair, used by NEE/MIS. Only meaningful for NEE-eligible surfaces.
func Eval(pm PointMaterial, n, view, light core.Vec3) core.Vec3 {
	switch pm.Surface {
	case Diffuse:
		return core.NewVec3(1, 1, 1).Multiply(1 / math.Pi)
	case GGX:
		return evalGGX(pm, n, view, light)
	default:
		return core.Vec3{}
	}
}

func evalGGX(pm PointMaterial, n, view, light core.Vec3) core.Vec3 {
	h := view.Add(light).Normalize()
	nDotL := n.Dot(light)
	nDotV := n.Dot(view)
	if nDotL <= 0 || nDotV <= 0 {
		return core.Vec3{}
	}
	alpha := ggxAlpha(pm.Roughness)
	hDotN := h.Dot(n)
	denom := 1 - (1-alpha*alpha)*hDotN*hDotN
	d := (alpha * alpha) / (math.Pi * denom * denom)
	g := smithG(nDotL, nDotV, alpha)
	f := schlickFresnel(pm.F0, view.Dot(h))
	return f.Multiply(d * g / (4 * nDotL * nDotV))
}

// PDF returns the solid-angle probability density of the BSDF sampling
// process choosing direction `light` given shading normal n and view
// direction, used to build the MIS weight alongside a light's area pdf.
func PDF(pm PointMaterial, n, view, light core.Vec3) float64 {
	switch pm.Surface {
	case Diffuse:
		return max(0, light.Dot(n)) / math.Pi
	case GGX:
		h := view.Add(light).Normalize()
		alpha := ggxAlpha(pm.Roughness)
		hDotN := h.Dot(n)
		vDotH := view.Dot(h)
		if vDotH <= 0 {
			return 0
		}
		denom := 1 - (1-alpha*alpha)*hDotN*hDotN
		d := (alpha * alpha) / (math.Pi * denom * denom)
		return d * hDotN / (4 * vDotH)
	default:
		return 0
	}
}
