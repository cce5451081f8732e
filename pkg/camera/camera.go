// Package camera implements the thin-lens camera model: an orthonormal
// eye/target/up frame, a focal plane sized by vertical FOV and focus
// distance, and optional depth-of-field via a sampled lens offset.
package camera

import (
	"math"
	"math/rand/v2"

	"github.com/df07/pathtracer/pkg/core"
)

// LensShape selects how depth-of-field offsets are distributed over the lens.
type LensShape int

const (
	SquareLens LensShape = iota
	CircularLens
)

// Camera is an immutable thin-lens camera built once at scene construction.
type Camera struct {
	Eye               core.Vec3
	Forward, Right, Up core.Vec3 // orthonormal, right-handed
	PlaneHalfRight    float64
	PlaneHalfUp       float64
	FocusDistance     float64
	ApertureRadius    float64
	Lens              LensShape
}

// NewCamera builds the orthonormal frame and focal-plane half-extents from
// eye/target/up, vertical field of view (radians), aspect ratio (width/height),
// aperture radius, focus distance, and lens shape.
func NewCamera(eye, target, up core.Vec3, vFov, aspect, aperture, focusDistance float64, lens LensShape) *Camera {
	forward := target.Subtract(eye).Normalize()
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward).Normalize()

	halfUp := math.Tan(vFov/2) * focusDistance
	halfRight := halfUp * aspect

	return &Camera{
		Eye:            eye,
		Forward:        forward,
		Right:          right,
		Up:             trueUp,
		PlaneHalfRight: halfRight,
		PlaneHalfUp:    halfUp,
		FocusDistance:  focusDistance,
		ApertureRadius: aperture,
		Lens:           lens,
	}
}

// focalPoint returns the point on the focal plane for normalized screen
// coordinate (u,v) in [-1,1]x[-1,1]; the aspect ratio is already baked into
// PlaneHalfRight.
func (c *Camera) focalPoint(u, v float64) core.Vec3 {
	return c.Eye.
		Add(c.Right.Multiply(u * c.PlaneHalfRight)).
		Add(c.Up.Multiply(v * c.PlaneHalfUp)).
		Add(c.Forward.Multiply(c.FocusDistance))
}

// Ray builds the pinhole ray for screen coordinate (u,v), ignoring aperture.
func (c *Camera) Ray(u, v float64) core.Ray {
	target := c.focalPoint(u, v)
	dir := target.Subtract(c.Eye).Normalize()
	return core.NewRay(c.Eye, dir)
}

// sampleLensOffset draws a 2D point on the lens, scaled by aperture radius.
func (c *Camera) sampleLensOffset(rng *rand.Rand) (float64, float64) {
	switch c.Lens {
	case CircularLens:
		for {
			x := 2*rng.Float64() - 1
			y := 2*rng.Float64() - 1
			if x*x+y*y <= 1 {
				return x * c.ApertureRadius, y * c.ApertureRadius
			}
		}
	default: // SquareLens
		x := 2*rng.Float64() - 1
		y := 2*rng.Float64() - 1
		return x * c.ApertureRadius, y * c.ApertureRadius
	}
}

// RayWithDOF builds a thin-lens ray for screen coordinate (u,v): the origin is
// offset on the lens, and the ray is aimed at the same focal-plane point a
// pinhole ray would hit.
func (c *Camera) RayWithDOF(u, v float64, rng *rand.Rand) core.Ray {
	if c.ApertureRadius <= 0 {
		return c.Ray(u, v)
	}

	lensU, lensV := c.sampleLensOffset(rng)
	origin := c.Eye.Add(c.Right.Multiply(lensU)).Add(c.Up.Multiply(lensV))
	target := c.focalPoint(u, v)
	dir := target.Subtract(origin).Normalize()
	return core.NewRay(origin, dir)
}
