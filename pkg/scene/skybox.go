package scene

import (
	"math"

	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/material"
)

// cubeFace identifies one of the six skybox faces.
type cubeFace int

const (
	facePosX cubeFace = iota
	faceNegX
	facePosY
	faceNegY
	facePosZ
	faceNegZ
)

// Skybox is a cube-map environment sampled by a direction's dominant axis.
// A nil face texture is treated as solid black.
type Skybox struct {
	Faces     [6]material.ColorSource
	Intensity float64
}

// NewSolidSkybox builds a skybox that returns a constant color in every
// direction (used for scenarios 5/6 and tests needing a uniform environment).
func NewSolidSkybox(color core.Vec3) *Skybox {
	solid := material.NewSolidColor(color)
	return &Skybox{Faces: [6]material.ColorSource{solid, solid, solid, solid, solid, solid}, Intensity: 1.0}
}

// NewSkybox builds a skybox from six face textures, ordered +X,-X,+Y,-Y,+Z,-Z.
func NewSkybox(faces [6]material.ColorSource, intensity float64) *Skybox {
	return &Skybox{Faces: faces, Intensity: intensity}
}

// Sample returns the emitted color along a world-space direction. Face
// selection and UV derivation follow the dominant-axis table: the two
// non-dominant components are divided by the dominant one to land in
// [-1,1], then remapped to [0,1] before bilinear sampling.
func (s *Skybox) Sample(dir core.Vec3) core.Vec3 {
	ax, ay, az := math.Abs(dir.X), math.Abs(dir.Y), math.Abs(dir.Z)

	var face cubeFace
	var u, v float64

	switch {
	case ax >= ay && ax >= az:
		if dir.X > 0 {
			face, u, v = facePosX, -dir.Z/dir.X, dir.Y/dir.X
		} else {
			face, u, v = faceNegX, -dir.Z/dir.X, -dir.Y/dir.X
		}
	case ay >= ax && ay >= az:
		if dir.Y > 0 {
			face, u, v = facePosY, dir.X/dir.Y, -dir.Z/dir.Y
		} else {
			face, u, v = faceNegY, -dir.X/dir.Y, -dir.Z/dir.Y
		}
	default:
		if dir.Z > 0 {
			face, u, v = facePosZ, dir.X/dir.Z, dir.Y/dir.Z
		} else {
			face, u, v = faceNegZ, dir.X/dir.Z, -dir.Y/dir.Z
		}
	}

	tex := s.Faces[face]
	if tex == nil {
		return core.Vec3{}
	}

	uv01 := core.NewVec2((u+1)*0.5, (v+1)*0.5)
	return tex.Evaluate(uv01, core.Vec3{}).Multiply(s.Intensity)
}
