package renderer

import (
	"fmt"
	"time"
)

// RenderStats summarizes a render for the result.txt sidecar and progress
// logging.
type RenderStats struct {
	Width, Height int
	SamplesDone   int
	MaxSamples    int
	Supersampling int
	Elapsed       time.Duration
}

// String formats stats as the result.txt sidecar body.
func (rs RenderStats) String() string {
	return fmt.Sprintf(
		"resolution: %dx%d\nsupersampling: %dx%d\nsamples per pixel: %d/%d\nelapsed: %v\n",
		rs.Width, rs.Height, rs.Supersampling, rs.Supersampling, rs.SamplesDone, rs.MaxSamples, rs.Elapsed,
	)
}
