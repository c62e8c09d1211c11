package renderer

import (
	"image"
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// TileRenderer handles the actual rendering of individual tiles
type TileRenderer struct {
	scene  Scene
	config SamplingConfig
}

// NewTileRenderer creates a new tile renderer for the given scene
func NewTileRenderer(scene Scene, config SamplingConfig) *TileRenderer {
	return &TileRenderer{scene: scene, config: config}
}

// RenderTileBounds renders pixels within the specified bounds until each has
// targetSamples or has converged
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	camera := tr.scene.GetCamera()
	stats := tr.initRenderStatsForBounds(bounds, targetSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			samplesUsed := tr.adaptiveSamplePixel(camera, i, j, &pixelStats[j][i], sampler, targetSamples)
			tr.updateStats(&stats, samplesUsed)
		}
	}

	tr.finalizeStats(&stats)
	return stats
}

// adaptiveSamplePixel takes jittered samples for pixel (i, j), row 0 at the top
func (tr *TileRenderer) adaptiveSamplePixel(camera *Camera, i, j int, ps *PixelStats, sampler core.Sampler, maxSamples int) int {
	initialSampleCount := ps.SampleCount
	width, height := float64(tr.config.Width), float64(tr.config.Height)

	for ps.SampleCount < maxSamples && !tr.shouldStopSampling(ps, maxSamples) {
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / width
		t := 1 - (float64(j)+jitter.Y)/height
		ray := camera.GetRay(s, t, sampler.Get2D())

		color := tr.scene.Radiance(ray, sampler)
		if !finite(color) {
			color = core.Vec3{}
		}
		ps.AddSample(color)
	}

	return ps.SampleCount - initialSampleCount
}

// shouldStopSampling determines if adaptive sampling should stop based on perceptual relative error
func (tr *TileRenderer) shouldStopSampling(ps *PixelStats, maxSamples int) bool {
	minSamples := max(1, int(float64(maxSamples)*tr.config.AdaptiveMinSamples))
	if ps.SampleCount < minSamples {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := math.Max(0, meanSq-mean*mean)

	// Dark pixels have no meaningful relative error
	if mean <= 1e-8 {
		return variance < 1e-6
	}

	relativeError := math.Sqrt(variance/float64(ps.SampleCount)) / mean
	return relativeError < tr.config.AdaptiveThreshold
}

// initRenderStatsForBounds initializes the render statistics tracking for specific bounds
func (tr *TileRenderer) initRenderStatsForBounds(bounds image.Rectangle, maxSamples int) RenderStats {
	return RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  maxSamples,
		MinSamples:  maxSamples, // reduced as pixels report
	}
}

// updateStats updates the render statistics with data from a single pixel
func (tr *TileRenderer) updateStats(stats *RenderStats, samplesUsed int) {
	stats.TotalSamples += samplesUsed
	stats.MinSamples = min(stats.MinSamples, samplesUsed)
	stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
}

// finalizeStats calculates final statistics after all pixels are rendered
func (tr *TileRenderer) finalizeStats(stats *RenderStats) {
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
}

func finite(c core.Vec3) bool {
	for _, v := range []float64{c.X, c.Y, c.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
