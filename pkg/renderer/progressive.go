package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize       int // Size of each tile (32x32 recommended)
	InitialSamples int // Samples for the first, preview pass
	MaxPasses      int // Maximum number of passes
	NumWorkers     int // Number of parallel workers (0 = use CPU count)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:       32,
		InitialSamples: 1,
		MaxPasses:      5,
		NumWorkers:     0,
	}
}

// ProgressiveRaytracer refines an image over several passes of increasing sample counts
type ProgressiveRaytracer struct {
	width, height int
	config        ProgressiveConfig
	sampling      SamplingConfig
	tiles         []*Tile
	pixelStats    [][]PixelStats // Shared pixel statistics array (global image coordinates)
	workerPool    *WorkerPool
	logger        core.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(scene Scene, sampling SamplingConfig, config ProgressiveConfig, logger core.Logger) (*ProgressiveRaytracer, error) {
	if sampling.Width <= 0 || sampling.Height <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", sampling.Width, sampling.Height)
	}
	if config.TileSize <= 0 || config.MaxPasses <= 0 {
		return nil, errors.New("tile size and pass count must be positive")
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	tiles := NewTileGrid(sampling.Width, sampling.Height, config.TileSize)
	pixelStats := make([][]PixelStats, sampling.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, sampling.Width)
	}

	return &ProgressiveRaytracer{
		width:      sampling.Width,
		height:     sampling.Height,
		config:     config,
		sampling:   sampling,
		tiles:      tiles,
		pixelStats: pixelStats,
		workerPool: NewWorkerPool(scene, sampling, len(tiles), config.NumWorkers),
		logger:     logger,
	}, nil
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	maxSamples := pr.sampling.SamplesPerPixel
	if pr.config.MaxPasses == 1 || passNumber >= pr.config.MaxPasses {
		return maxSamples
	}
	if passNumber == 1 {
		return min(pr.config.InitialSamples, maxSamples)
	}

	// Divide the remaining samples evenly across the remaining passes
	samplesPerPass := (maxSamples - pr.config.InitialSamples) / (pr.config.MaxPasses - 1)
	return min(maxSamples, pr.config.InitialSamples+(passNumber-1)*samplesPerPass)
}

// RenderPass renders a single progressive pass using the worker pool.
// The pool must have been started.
func (pr *ProgressiveRaytracer) RenderPass(passNumber int) (*image.RGBA, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)
	pr.logger.Printf("Pass %d: Target %d samples per pixel (using %d workers)...\n",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	for id, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        id,
			PixelStats:    pr.pixelStats,
		})
	}

	for range pr.tiles {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, errors.New("worker pool closed unexpectedly")
		}
		pr.tiles[result.TaskID].PassesCompleted++
	}

	img, stats := pr.assembleCurrentImage(targetSamples)
	return img, stats, nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	Duration   time.Duration
	IsLast     bool
}

// RenderProgressive renders every pass in the background, sending each
// finished image on the pass channel. Both channels are closed when rendering
// stops; cancellation is reported as ctx.Err() on the error channel.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)
		pr.workerPool.Start()
		defer pr.workerPool.Stop()

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()
			img, stats, err := pr.RenderPass(pass)
			if err != nil {
				errChan <- err
				return
			}
			passTime := time.Since(startTime)

			pr.logger.Printf("Pass %d completed in %v (average %.1f samples/pixel)\n",
				pass, passTime, stats.AverageSamples)

			isLast := pass == pr.config.MaxPasses || stats.MinSamples >= pr.sampling.SamplesPerPixel
			select {
			case passChan <- PassResult{PassNumber: pass, Image: img, Stats: stats, Duration: passTime, IsLast: isLast}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
			if isLast {
				return
			}
		}
	}()

	return passChan, errChan
}

// assembleCurrentImage creates an image from the shared pixel stats and
// calculates render statistics in a single pass
func (pr *ProgressiveRaytracer) assembleCurrentImage(targetSamples int) (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, pr.width, pr.height))
	stats := RenderStats{
		TotalPixels: pr.width * pr.height,
		MaxSamples:  targetSamples,
		MinSamples:  pr.sampling.SamplesPerPixel, // reduced below
	}

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			img.SetRGBA(x, y, vec3ToColor(pixel.GetColor()))

			stats.TotalSamples += pixel.SampleCount
			stats.MinSamples = min(stats.MinSamples, pixel.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, pixel.SampleCount)
		}
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return img, stats
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Sampler         core.Sampler    // Tile-specific sampler for deterministic results
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	random := rand.New(rand.NewSource(int64(id + 42))) // +42 to avoid seed 0
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewRandomSampler(random),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			bounds := image.Rect(x0, y0, min(x0+tileSize, width), min(y0+tileSize, height))
			tiles = append(tiles, NewTile(len(tiles), bounds))
		}
	}
	return tiles
}
