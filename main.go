package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-hair-raytracer/pkg/loaders"
	"github.com/df07/go-hair-raytracer/pkg/renderer"
	"github.com/df07/go-hair-raytracer/pkg/scene"
)

// options are the command line settings
type options struct {
	scene      string
	configPath string
	width      int
	height     int
	samples    int
	passes     int
	workers    int
	tileSize   int
	output     string
	format     string
	exportHair string
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "default", "Built-in scene name (see -list)")
	flag.StringVar(&opts.configPath, "config", "", "JSON scene file; overrides -scene")
	flag.IntVar(&opts.width, "width", 0, "Image width (0 keeps the scene's)")
	flag.IntVar(&opts.height, "height", 0, "Image height (0 keeps the scene's)")
	flag.IntVar(&opts.samples, "spp", 0, "Maximum samples per pixel (0 keeps the scene's)")
	flag.IntVar(&opts.passes, "passes", renderer.DefaultProgressiveConfig().MaxPasses, "Number of progressive passes")
	flag.IntVar(&opts.workers, "workers", 0, "Number of render workers (0 = CPU count)")
	flag.IntVar(&opts.tileSize, "tile", renderer.DefaultProgressiveConfig().TileSize, "Tile size in pixels")
	flag.StringVar(&opts.output, "output", "", "Output file; defaults to output/<scene>/render_<timestamp>.<format>")
	flag.StringVar(&opts.format, "format", renderer.FormatPNG, "Image format when -output is not set: png, bmp or tiff")
	flag.StringVar(&opts.exportHair, "export-hair", "", "Also write the scene's strands to this cyHair file")
	list := flag.Bool("list", false, "List built-in scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Hair Raytracer")
		fmt.Println("Usage: hair-raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}
	if *list {
		printScenes()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printScenes() {
	fmt.Println("Available scenes:")
	for _, info := range scene.ListPresets() {
		fmt.Printf("  %-10s %s\n", info.Name, info.Description)
	}
}

// loadSceneConfig reads the JSON file when given, otherwise the named preset
func loadSceneConfig(opts options) (scene.Config, string, error) {
	if opts.configPath != "" {
		cfg, err := scene.LoadConfig(opts.configPath)
		name := strings.TrimSuffix(filepath.Base(opts.configPath), filepath.Ext(opts.configPath))
		return cfg, name, err
	}
	cfg, err := scene.Preset(opts.scene)
	return cfg, opts.scene, err
}

// applyOverrides copies non-zero command line settings into the scene config
func applyOverrides(cfg *scene.Config, opts options) {
	if opts.width > 0 {
		cfg.Sampling.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Sampling.Height = opts.height
	}
	if opts.samples > 0 {
		cfg.Sampling.SamplesPerPixel = opts.samples
	}
}

// outputPath picks the file the final image is written to
func outputPath(opts options, sceneName string, now time.Time) string {
	if opts.output != "" {
		return opts.output
	}
	ext := opts.format
	if ext == renderer.FormatTIFF {
		ext = "tif"
	}
	filename := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), ext)
	return filepath.Join("output", sceneName, filename)
}

func run(ctx context.Context, opts options) error {
	cfg, sceneName, err := loadSceneConfig(opts)
	if err != nil {
		return err
	}
	applyOverrides(&cfg, opts)

	path := outputPath(opts, sceneName, time.Now())
	if _, err := renderer.FormatFromPath(path); err != nil {
		return err
	}

	fmt.Printf("Building scene %q...\n", sceneName)
	logger := renderer.NewDefaultLogger()
	s, err := scene.Build(cfg, logger)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	if opts.exportHair != "" {
		if err := loaders.SaveHair(opts.exportHair, s.Fibers.Strands); err != nil {
			return err
		}
		fmt.Printf("Exported %d strands to %s\n", len(s.Fibers.Strands), opts.exportHair)
	}

	progressive := renderer.DefaultProgressiveConfig()
	progressive.MaxPasses = opts.passes
	progressive.NumWorkers = opts.workers
	progressive.TileSize = opts.tileSize

	pr, err := renderer.NewProgressiveRaytracer(s, cfg.Sampling, progressive, logger)
	if err != nil {
		return err
	}

	startTime := time.Now()
	passes, errs := pr.RenderProgressive(ctx)
	var last *renderer.PassResult
	for result := range passes {
		last = &result
	}
	renderErr := <-errs

	if last == nil {
		if renderErr != nil {
			return renderErr
		}
		return fmt.Errorf("render produced no image")
	}
	if renderErr != nil {
		fmt.Printf("Rendering stopped after pass %d: %v\n", last.PassNumber, renderErr)
	}

	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Samples per pixel: %.1f (range %d - %d), hair tables built %d time(s)\n",
		last.Stats.AverageSamples, last.Stats.MinSamples, last.Stats.MaxSamplesUsed, s.Shader.Cache().Builds())

	if err := renderer.SaveImage(path, last.Image); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", path)
	return nil
}
