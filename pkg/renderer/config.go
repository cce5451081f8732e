package renderer

import "time"

// ToneMapMode selects the post-processing tone curve.
type ToneMapMode int

const (
	ToneMapNone ToneMapMode = iota
	ToneMapReinhard
)

// DebugMode selects a non-Monte-Carlo visualization renderer in place of the
// path tracer, for fast scene inspection.
type DebugMode int

const (
	DebugOff DebugMode = iota
	DebugNormal
	DebugDepth
	DebugShading
)

// PathBounceLimit caps the estimator's bounce loop; a fixed constant rather
// than Russian-roulette termination, matching the closed bounce budget the
// estimator's spec describes.
const PathBounceLimit = 50

// Config is the immutable set of parameters a render is constructed with, an
// immutable record built once by the CLI instead of package-level constants.
type Config struct {
	Width, Height int

	MaxSamplesPerPixel int
	Supersampling      int // SS: the per-pixel supersample grid is SS x SS
	TimeLimit          time.Duration
	SnapshotInterval   time.Duration

	Seed uint64 // global_seed mixed into the per-pixel-per-sample PRNG stream

	ToneMap               ToneMapMode
	Exposure              float64
	WhitePoint            float64
	BilateralPasses       int
	BilateralDiameter     int
	BilateralSpatialSigma float64
	BilateralColorSigma   float64
	Gamma                 float64

	Debug DebugMode
}

// DefaultConfig mirrors the CLI's documented defaults.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:                 width,
		Height:                height,
		MaxSamplesPerPixel:    1000,
		Supersampling:         2,
		TimeLimit:             123 * time.Second,
		SnapshotInterval:      15 * time.Second,
		Seed:                  1,
		ToneMap:               ToneMapReinhard,
		Exposure:              1.0,
		WhitePoint:            2.0,
		BilateralPasses:       0,
		BilateralDiameter:     5,
		BilateralSpatialSigma: 2.0,
		BilateralColorSigma:   0.1,
		Gamma:                 2.2,
		Debug:                 DebugOff,
	}
}
