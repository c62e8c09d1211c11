package renderer

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

func newPixelStats(width, height int) [][]PixelStats {
	stats := make([][]PixelStats, height)
	for y := range stats {
		stats[y] = make([]PixelStats, width)
	}
	return stats
}

func testSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

func TestTileRenderer_ImageOrientation(t *testing.T) {
	// White above the horizon, black below
	scene := newMockScene(func(ray core.Ray) core.Vec3 {
		if ray.Direction.Y > 0 {
			return core.NewVec3(1, 1, 1)
		}
		return core.Vec3{}
	})
	config := SamplingConfig{Width: 8, Height: 8, SamplesPerPixel: 4, AdaptiveMinSamples: 1}
	tr := NewTileRenderer(scene, config)
	stats := newPixelStats(8, 8)

	tr.RenderTileBounds(image.Rect(0, 0, 8, 8), stats, testSampler(), 4)

	if got := stats[0][4].GetColor(); got.X != 1 {
		t.Errorf("Expected the top row to see the sky, got %v", got)
	}
	if got := stats[7][4].GetColor(); !got.IsZero() {
		t.Errorf("Expected the bottom row to be black, got %v", got)
	}
}

func TestTileRenderer_AdaptiveStopsOnConstantPixels(t *testing.T) {
	scene := newMockScene(constantRadiance(core.NewVec3(0.5, 0.5, 0.5)))
	config := SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 100, AdaptiveMinSamples: 0.1, AdaptiveThreshold: 0.01}
	tr := NewTileRenderer(scene, config)
	stats := newPixelStats(4, 4)

	result := tr.RenderTileBounds(image.Rect(0, 0, 4, 4), stats, testSampler(), 100)

	if result.TotalPixels != 16 {
		t.Errorf("Expected 16 pixels, got %d", result.TotalPixels)
	}
	// Zero variance converges as soon as the minimum is reached
	if result.MaxSamplesUsed != 10 || result.MinSamples != 10 {
		t.Errorf("Expected exactly 10 samples per pixel, got min %d max %d", result.MinSamples, result.MaxSamplesUsed)
	}
	if math.Abs(result.AverageSamples-10) > 1e-9 {
		t.Errorf("Expected average 10, got %f", result.AverageSamples)
	}
}

func TestTileRenderer_ContinuesAcrossPasses(t *testing.T) {
	scene := newMockScene(constantRadiance(core.NewVec3(1, 0, 0)))
	config := SamplingConfig{Width: 2, Height: 2, SamplesPerPixel: 6, AdaptiveMinSamples: 1}
	tr := NewTileRenderer(scene, config)
	stats := newPixelStats(2, 2)
	bounds := image.Rect(0, 0, 2, 2)

	first := tr.RenderTileBounds(bounds, stats, testSampler(), 2)
	second := tr.RenderTileBounds(bounds, stats, testSampler(), 6)

	if first.TotalSamples != 8 || second.TotalSamples != 16 {
		t.Errorf("Expected 8 then 16 new samples, got %d and %d", first.TotalSamples, second.TotalSamples)
	}
	if stats[1][1].SampleCount != 6 {
		t.Errorf("Expected 6 accumulated samples, got %d", stats[1][1].SampleCount)
	}
}

func TestTileRenderer_DropsNonFiniteSamples(t *testing.T) {
	scene := newMockScene(constantRadiance(core.NewVec3(math.NaN(), 1, math.Inf(1))))
	config := SamplingConfig{Width: 1, Height: 1, SamplesPerPixel: 2, AdaptiveMinSamples: 1}
	stats := newPixelStats(1, 1)

	NewTileRenderer(scene, config).RenderTileBounds(image.Rect(0, 0, 1, 1), stats, testSampler(), 2)

	if got := stats[0][0].GetColor(); !got.IsZero() {
		t.Errorf("Expected non-finite samples to count as black, got %v", got)
	}
}
