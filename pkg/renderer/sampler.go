package renderer

import (
	"context"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/pathtracer/pkg/camera"
	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/scene"
)

// Sampler drives progressive rendering: an HDR accumulation buffer of linear
// radiance sums, one full-image pass per sample index, each pass fanned out
// over pixel rows as one errgroup goroutine per row, joined at the pass
// barrier.
type Sampler struct {
	Scene  *scene.Scene
	Camera *camera.Camera
	Config Config
	Logger core.Logger

	buffer      []core.Vec3 // row-major width*height radiance sums
	samplesDone int
	startTime   time.Time
}

// NewSampler allocates the accumulation buffer for cfg.Width x cfg.Height.
func NewSampler(sc *scene.Scene, cam *camera.Camera, cfg Config, logger core.Logger) *Sampler {
	return &Sampler{
		Scene:  sc,
		Camera: cam,
		Config: cfg,
		Logger: logger,
		buffer: make([]core.Vec3, cfg.Width*cfg.Height),
	}
}

// SnapshotFunc is called at the end of a pass, either as a periodic progress
// snapshot or the final result (isFinal true).
type SnapshotFunc func(sampleIndex int, img *image.RGBA, stats RenderStats, isFinal bool)

// subpixelOffset returns the (dx,dy) offset in [-0.5,0.5) for supersample
// cell (sx,sy) of an SS x SS grid: (sx/SS - 0.5, sy/SS - 0.5).
func subpixelOffset(sx, sy, ss int) (float64, float64) {
	return float64(sx)/float64(ss) - 0.5, float64(sy)/float64(ss) - 0.5
}

// runPass computes one full-image sample pass in parallel over rows and adds
// each pixel's averaged supersample radiance into the accumulation buffer.
func (s *Sampler) runPass(ctx context.Context, sampleIndex int) error {
	g, ctx := errgroup.WithContext(ctx)
	width, height := s.Config.Width, s.Config.Height
	ss := s.Config.Supersampling
	if ss < 1 {
		ss = 1
	}

	for y := 0; y < height; y++ {
		y := y
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			for x := 0; x < width; x++ {
				var sum core.Vec3
				for sy := 0; sy < ss; sy++ {
					for sx := 0; sx < ss; sx++ {
						offX, offY := subpixelOffset(sx, sy, ss)
						u := 2*(float64(x)+0.5+offX)/float64(width) - 1
						v := 1 - 2*(float64(y)+0.5+offY)/float64(height)

						cellIndex := sampleIndex*ss*ss + sy*ss + sx
						rng := seedPixelSample(s.Config.Seed, cellIndex, x, y)

						ray := s.Camera.RayWithDOF(u, v, rng)
						sum = sum.Add(EstimateRadiance(s.Scene, ray, rng))
					}
				}
				s.buffer[y*width+x] = s.buffer[y*width+x].Add(sum.Multiply(1.0 / float64(ss*ss)))
			}
			return nil
		})
	}

	return g.Wait()
}

// Run executes sample passes until the time budget is predicted to be
// exceeded or MaxSamplesPerPixel is reached, invoking snapshot at the
// configured interval and once more at the end.
func (s *Sampler) Run(ctx context.Context, snapshot SnapshotFunc) (RenderStats, error) {
	start := time.Now()
	s.startTime = start
	lastSnapshot := start
	var lastPassDuration time.Duration

	for sampleIndex := 1; sampleIndex <= s.Config.MaxSamplesPerPixel; sampleIndex++ {
		passStart := time.Now()
		if err := s.runPass(ctx, sampleIndex); err != nil {
			return s.stats(), err
		}
		s.samplesDone = sampleIndex
		lastPassDuration = time.Since(passStart)

		elapsed := time.Since(start)
		predictedNext := time.Duration(1.1 * float64(lastPassDuration))
		now := time.Now()

		switch {
		case elapsed+predictedNext > s.Config.TimeLimit:
			s.Logger.Printf("time budget exhausted after %d samples (%v elapsed), finalizing\n", sampleIndex, elapsed)
			if snapshot != nil {
				snapshot(sampleIndex, s.FinalImage(), s.stats(), true)
			}
			return s.stats(), nil

		case sampleIndex == s.Config.MaxSamplesPerPixel:
			s.Logger.Printf("reached max samples per pixel (%d)\n", sampleIndex)
			if snapshot != nil {
				snapshot(sampleIndex, s.FinalImage(), s.stats(), true)
			}
			return s.stats(), nil

		case now.Sub(lastSnapshot) >= s.Config.SnapshotInterval:
			lastSnapshot = now
			if snapshot != nil {
				snapshot(sampleIndex, s.FinalImage(), s.stats(), false)
			}
		}
	}

	return s.stats(), nil
}

// FinalImage divides the accumulation buffer by total sample count, applies
// bilateral filtering, tone mapping, and gamma, and quantizes to 8-bit sRGB.
func (s *Sampler) FinalImage() *image.RGBA {
	width, height := s.Config.Width, s.Config.Height
	n := float64(s.samplesDone)
	if n <= 0 {
		n = 1
	}

	averaged := make([]core.Vec3, len(s.buffer))
	for i, c := range s.buffer {
		averaged[i] = c.Multiply(1.0 / n)
	}

	filtered := ApplyBilateralPasses(averaged, width, height, s.Config.BilateralPasses,
		s.Config.BilateralDiameter, s.Config.BilateralSpatialSigma, s.Config.BilateralColorSigma)

	return QuantizeToImage(filtered, width, height, s.Config)
}

func (s *Sampler) stats() RenderStats {
	return RenderStats{
		Width:         s.Config.Width,
		Height:        s.Config.Height,
		SamplesDone:   s.samplesDone,
		MaxSamples:    s.Config.MaxSamplesPerPixel,
		Supersampling: s.Config.Supersampling,
		Elapsed:       time.Since(s.startTime),
	}
}
