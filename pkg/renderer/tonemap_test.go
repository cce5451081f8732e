package renderer

import (
	"math"
	"testing"

	"github.com/df07/pathtracer/pkg/core"
)

func TestToneMapReinhard_MapsZeroToZero(t *testing.T) {
	c := ToneMap(core.Vec3{}, ToneMapReinhard, 1.0, 2.0)
	if !c.IsZero() {
		t.Errorf("expected 0 -> 0, got %v", c)
	}
}

func TestToneMapReinhard_Monotone(t *testing.T) {
	prev := 0.0
	for x := 0.0; x <= 10; x += 0.25 {
		c := ToneMap(core.NewVec3(x, 0, 0), ToneMapReinhard, 1.0, 2.0)
		if c.X < prev-1e-12 {
			t.Fatalf("tone map not monotone at x=%f: %f < %f", x, c.X, prev)
		}
		prev = c.X
	}
}

func TestToneMapNone_IsIdentity(t *testing.T) {
	c := core.NewVec3(0.3, 5.0, 1.2)
	out := ToneMap(c, ToneMapNone, 1.0, 2.0)
	if out.Subtract(c).Length() > 1e-12 {
		t.Errorf("ToneMapNone should be identity, got %v for input %v", out, c)
	}
}

func TestGammaRoundTrip(t *testing.T) {
	gamma := 2.2
	for _, x := range []float64{0.0, 0.1, 0.25, 0.5, 0.75, 1.0} {
		encoded := GammaEncode(core.NewVec3(x, x, x), gamma)
		decoded := GammaDecode(encoded, gamma)
		if math.Abs(decoded.X-x) > 1e-9 {
			t.Errorf("gamma round trip for %f: got %f", x, decoded.X)
		}
	}
}
