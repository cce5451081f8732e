package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/pathtracer/pkg/camera"
	"github.com/df07/pathtracer/pkg/core"
	"github.com/df07/pathtracer/pkg/renderer"
	"github.com/df07/pathtracer/pkg/scene"
)

// cliConfig holds the external CLI surface, kept separate from
// renderer.Config so flag parsing never leaks into the render pipeline.
type cliConfig struct {
	Width, Height int
	Sampling      int
	TimeSeconds   int
	IntervalSecs  int
	Debug         bool
	DebugMode     string
	OutputDir     string
	Help          bool
}

func parseFlags() cliConfig {
	cfg := cliConfig{}
	flag.IntVar(&cfg.Width, "width", 1920, "output image width")
	flag.IntVar(&cfg.Height, "height", 1080, "output image height")
	flag.IntVar(&cfg.Sampling, "sampling", 1000, "max samples per pixel")
	flag.IntVar(&cfg.TimeSeconds, "time", 123, "wall-clock time budget in seconds")
	flag.IntVar(&cfg.IntervalSecs, "interval", 15, "snapshot cadence in seconds")
	flag.BoolVar(&cfg.Debug, "debug", false, "switch to a non-Monte-Carlo debug renderer")
	flag.StringVar(&cfg.DebugMode, "debug-mode", "normal", "debug visualization: normal, depth, or shading")
	flag.StringVar(&cfg.OutputDir, "output", "output", "directory to write snapshots and result.txt into")
	flag.BoolVar(&cfg.Help, "help", false, "show help information")
	flag.Parse()
	return cfg
}

func showHelp() {
	fmt.Println("pathtracer: offline Monte Carlo path-tracing renderer")
	fmt.Println()
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	flag.PrintDefaults()
}

func main() {
	cli := parseFlags()
	if cli.Help {
		showHelp()
		return
	}

	logger, sync, err := renderer.NewLogger()
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer sync()

	if err := os.MkdirAll(cli.OutputDir, 0755); err != nil {
		fmt.Printf("failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	cfg := renderer.DefaultConfig(cli.Width, cli.Height)
	cfg.MaxSamplesPerPixel = cli.Sampling
	cfg.TimeLimit = time.Duration(cli.TimeSeconds) * time.Second
	cfg.SnapshotInterval = time.Duration(cli.IntervalSecs) * time.Second

	sc, cam := scene.BuildCornellBox()

	if cli.Debug {
		cfg.Debug = parseDebugMode(cli.DebugMode)
		runDebug(sc, cam, cfg, cli.OutputDir, logger)
		return
	}

	runPathTrace(sc, cam, cfg, cli.OutputDir, logger)
}

func parseDebugMode(mode string) renderer.DebugMode {
	switch mode {
	case "depth":
		return renderer.DebugDepth
	case "shading":
		return renderer.DebugShading
	default:
		return renderer.DebugNormal
	}
}

// runDebug renders a single non-Monte-Carlo pass and exits immediately;
// there is no progressive convergence to wait on.
func runDebug(sc *scene.Scene, cam *camera.Camera, cfg renderer.Config, outputDir string, logger core.Logger) {
	logger.Printf("debug render: mode=%v %dx%d", cfg.Debug, cfg.Width, cfg.Height)
	img := renderer.RenderDebug(sc, cam, cfg, cfg.Debug)
	if err := saveImage(img, filepath.Join(outputDir, "result.png")); err != nil {
		logger.Printf("warning: failed to save debug image: %v", err)
	}
}

// runPathTrace drives the progressive Monte Carlo sampler to completion,
// writing zero-padded intermediate snapshots and a final result.png plus
// result.txt sidecar.
func runPathTrace(sc *scene.Scene, cam *camera.Camera, cfg renderer.Config, outputDir string, logger core.Logger) {
	logger.Printf("starting render: %dx%d, max %d samples/px, %v budget", cfg.Width, cfg.Height, cfg.MaxSamplesPerPixel, cfg.TimeLimit)

	sampler := renderer.NewSampler(sc, cam, cfg, logger)
	snapshotIndex := 0

	snapshot := func(sampleIndex int, img *image.RGBA, stats renderer.RenderStats, isFinal bool) {
		name := fmt.Sprintf("%03d.png", snapshotIndex)
		if isFinal {
			name = "result.png"
		}
		if err := saveImage(img, filepath.Join(outputDir, name)); err != nil {
			logger.Printf("warning: failed to save snapshot %s: %v", name, err)
		} else {
			logger.Printf("wrote snapshot %s (%d/%d samples)", name, sampleIndex, cfg.MaxSamplesPerPixel)
		}
		snapshotIndex++

		if isFinal {
			if err := os.WriteFile(filepath.Join(outputDir, "result.txt"), []byte(stats.String()), 0644); err != nil {
				logger.Printf("warning: failed to write result.txt: %v", err)
			}
		}
	}

	if _, err := sampler.Run(context.Background(), snapshot); err != nil {
		logger.Printf("render aborted: %v", err)
		os.Exit(1)
	}
}

func saveImage(img *image.RGBA, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	return png.Encode(file, img)
}
