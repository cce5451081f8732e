package material

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/df07/pathtracer/pkg/core"
)

func TestSampleDiffuse_StaysInHemisphere(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	n := core.NewVec3(0, 1, 0)
	pm := PointMaterial{Surface: Diffuse, Albedo: core.NewVec3(1, 1, 1)}

	for i := 0; i < 1000; i++ {
		sample, ok := Sample(pm, n, core.Vec3{}, core.NewVec3(0, 1, 0), rng)
		if !ok {
			t.Fatalf("diffuse sample should never be rejected")
		}
		if sample.Direction.Dot(n) < -1e-9 {
			t.Fatalf("diffuse direction %v below hemisphere of normal %v", sample.Direction, n)
		}
	}
}

func TestSampleRefraction_TotalInternalReflectionAlwaysReflects(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	n := core.NewVec3(0, 1, 0)
	theta := 50.0 * math.Pi / 180.0
	// view = -ray direction; ray travels at 50 degrees from normal, from inside glass.
	view := core.NewVec3(-math.Sin(theta), math.Cos(theta), 0)
	pm := PointMaterial{Surface: Refraction, Eta: 1.5, Albedo: core.NewVec3(1, 1, 1)}

	for i := 0; i < 20; i++ {
		sample, ok := Sample(pm, n.Negate(), core.Vec3{}, view, rng)
		if !ok {
			t.Fatalf("refraction sample should never be rejected")
		}
		if !sample.Specular {
			t.Fatalf("TIR sample must be a delta (specular) bounce")
		}
		if sample.Direction.Dot(n) <= 0 {
			t.Fatalf("TIR sample must reflect back to the viewer's side, got %v", sample.Direction)
		}
	}
}

func TestSampleGGX_DropsBelowHorizonSamples(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 11))
	n := core.NewVec3(0, 1, 0)
	view := core.NewVec3(0, 1, 0)
	pm := PointMaterial{Surface: GGX, Roughness: 0.9, F0: core.NewVec3(0.9, 0.9, 0.9)}

	total, dropped := 0, 0
	for i := 0; i < 2000; i++ {
		total++
		sample, ok := Sample(pm, n, core.Vec3{}, view, rng)
		if !ok {
			dropped++
			continue
		}
		if sample.Direction.Dot(n) < 0 {
			t.Fatalf("accepted GGX sample below horizon: %v", sample.Direction)
		}
	}
	// A wide rough lobe viewed head-on should drop some fraction of samples.
	if dropped == 0 {
		t.Errorf("expected at least some below-horizon GGX samples to be dropped")
	}
}

func TestEvalDiffuse_IsOneOverPi(t *testing.T) {
	pm := PointMaterial{Surface: Diffuse}
	fs := Eval(pm, core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	expected := 1.0 / math.Pi
	if math.Abs(fs.X-expected) > 1e-9 {
		t.Errorf("diffuse eval: got %v, expected %f", fs, expected)
	}
}

func TestPDFDiffuse_MatchesCosineWeighting(t *testing.T) {
	pm := PointMaterial{Surface: Diffuse}
	n := core.NewVec3(0, 1, 0)
	l := core.NewVec3(0, 1, 0)
	pdf := PDF(pm, n, core.Vec3{}, l)
	if math.Abs(pdf-1/math.Pi) > 1e-9 {
		t.Errorf("diffuse pdf at normal incidence: got %f, expected %f", pdf, 1/math.Pi)
	}
}
