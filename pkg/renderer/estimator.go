package renderer

import (
	"math"
	"math/rand/v2"

	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/material"
	"github.com/df07/pathtracer/pkg/scene"
)

const shadowEpsilon = 1e-4

// seedPixelSample derives a deterministic PRNG stream from the global seed,
// sample index, and pixel coordinates, per the per-pixel-per-sample
// reproducibility requirement: the same (seed, scene, camera) always
// produces the same accumulation buffer regardless of goroutine scheduling.
func seedPixelSample(globalSeed uint64, sampleIndex, px, py int) *rand.Rand {
	mix := func(x uint64) uint64 {
		x ^= x >> 30
		x *= 0xbf58476d1ce4e5b9
		x ^= x >> 27
		x *= 0x94d049bb133111eb
		x ^= x >> 31
		return x
	}
	s1 := mix(globalSeed ^ uint64(sampleIndex)*0x9e3779b97f4a7c15)
	s2 := mix(uint64(px)*0xff51afd7ed558ccd ^ uint64(py)*0xc4ceb9fe1a85ec53 ^ s1)
	return rand.New(rand.NewPCG(s1, s2))
}

// EstimateRadiance traces one path from ray through the scene, returning the
// Monte Carlo radiance estimate combining BSDF sampling and next-event
// estimation with balance-heuristic MIS.
func EstimateRadiance(sc *scene.Scene, ray core.Ray, rng *rand.Rand) core.Vec3 {
	accumulation := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	// bsdfMisWeightSum carries the previous vertex's NEE-derived weight
	// forward: it discounts the emission found at the *next* hit so NEE and
	// BSDF sampling don't double-count the same light.
	bsdfMisWeightSum := 1.0

	for bounce := 0; bounce < PathBounceLimit; bounce++ {
		isect := sc.Intersect(ray, shadowEpsilon, math.MaxFloat64)
		if !isect.Hit {
			accumulation = accumulation.Add(throughput.MultiplyVec(isect.Material.Emission))
			break
		}

		pm := isect.Material
		view := ray.Direction.Negate()

		sample, ok := material.Sample(pm, isect.Normal, isect.Point, view, rng)
		if !ok {
			break
		}

		nextWeight := 1.0
		if pm.NEEEligible() && !pm.IsEmissive() {
			contribution, wSum := estimateNEE(sc, isect.Point, isect.Normal, view, pm, rng)
			accumulation = accumulation.Add(throughput.MultiplyVec(contribution))
			nextWeight = wSum
		}

		accumulation = accumulation.Add(throughput.Multiply(bsdfMisWeightSum).MultiplyVec(pm.Emission))
		bsdfMisWeightSum = nextWeight

		throughput = throughput.MultiplyVec(pm.Albedo).MultiplyVec(sample.Reflectance)
		if throughput.IsZero() {
			break
		}
		ray = core.NewRay(sample.Origin, sample.Direction)
	}

	return accumulation
}

// estimateNEE samples every enumerated emissive primitive once, summing the
// light-sampling contribution and the w_bsdf MIS weights that discount the
// next BSDF-sampled emission hit.
func estimateNEE(sc *scene.Scene, point, n, view core.Vec3, pm material.PointMaterial, rng *rand.Rand) (core.Vec3, float64) {
	contribution := core.Vec3{}
	wBsdfSum := 0.0

	for i := 0; i < sc.EmissiveCount(); i++ {
		light := sc.EmissivePrimitive(i)
		lightPoint, lightNormal, pdfArea := sc.SampleEmissive(i, rng)
		if pdfArea <= 0 {
			continue
		}

		toLight := lightPoint.Subtract(point)
		dist := toLight.Length()
		if dist < shadowEpsilon {
			continue
		}
		l := toLight.Multiply(1.0 / dist)

		cosShade := n.Dot(l)
		cosLight := lightNormal.Dot(l.Negate())
		if cosShade <= 0 || cosLight <= 0 {
			continue
		}

		shadowRay := core.NewRay(point.Add(n.Multiply(shadowEpsilon)), l)
		shadowIsect := sc.Intersect(shadowRay, shadowEpsilon, math.MaxFloat64)
		if !shadowIsect.Hit || shadowIsect.Point.Subtract(lightPoint).Length() > 1e-3 {
			continue // occluded, or the nearest hit isn't the sampled light point
		}

		g := math.Abs(cosShade) * math.Abs(cosLight) / (dist * dist)
		fs := material.Eval(pm, n, view, l)
		pdfBsdfSolid := material.PDF(pm, n, view, l)
		pdfBsdf := pdfBsdfSolid * cosLight / (dist * dist)

		wLight := core.BalanceHeuristic(1, pdfArea, 1, pdfBsdf)
		wBsdf := core.BalanceHeuristic(1, pdfBsdf, 1, pdfArea)
		wBsdfSum += wBsdf

		lightEmission := light.Material.Emission.Evaluate(core.Vec2{}, lightPoint)
		contribution = contribution.Add(lightEmission.MultiplyVec(fs).Multiply(g / pdfArea * wLight))
	}

	return contribution.MultiplyVec(pm.Albedo), wBsdfSum
}
