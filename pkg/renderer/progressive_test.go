package renderer

import (
	"context"
	"image"
	"testing"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// mockScene returns a fixed radiance for every camera ray
type mockScene struct {
	camera   *Camera
	radiance func(ray core.Ray) core.Vec3
}

func newMockScene(radiance func(ray core.Ray) core.Vec3) *mockScene {
	return &mockScene{camera: NewCamera(testCameraConfig(), 1.0), radiance: radiance}
}

func (m *mockScene) GetCamera() *Camera { return m.camera }
func (m *mockScene) Radiance(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return m.radiance(ray)
}

func constantRadiance(c core.Vec3) func(core.Ray) core.Vec3 {
	return func(core.Ray) core.Vec3 { return c }
}

func TestProgressiveSampleCalculation(t *testing.T) {
	pr := &ProgressiveRaytracer{
		config:   ProgressiveConfig{InitialSamples: 1, MaxPasses: 7},
		sampling: SamplingConfig{SamplesPerPixel: 50},
	}

	// First pass previews, the last pass always reaches the maximum
	expectedTotalSamples := []int{1, 9, 17, 25, 33, 41, 50}
	for pass := 1; pass <= 7; pass++ {
		if got := pr.getSamplesForPass(pass); got != expectedTotalSamples[pass-1] {
			t.Errorf("Pass %d: expected %d total samples, got %d", pass, expectedTotalSamples[pass-1], got)
		}
	}

	pr.config.MaxPasses = 1
	if got := pr.getSamplesForPass(1); got != 50 {
		t.Errorf("Single pass: expected 50 samples, got %d", got)
	}
}

func TestNewTileGrid(t *testing.T) {
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	if len(tiles) != 7*4 {
		t.Errorf("Expected %d tiles, got %d", 7*4, len(tiles))
	}

	// Tiles cover the image without gaps or overlaps
	covered := make([][]int, height)
	for y := range covered {
		covered[y] = make([]int, width)
	}
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile id %d, got %d", i, tile.ID)
		}
		if tile.Sampler == nil {
			t.Fatalf("Tile %d has no sampler", i)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[y][x]++
			}
		}
	}
	for y := range covered {
		for x := range covered[y] {
			if covered[y][x] != 1 {
				t.Fatalf("Pixel (%d, %d) covered %d times", x, y, covered[y][x])
			}
		}
	}

	last := tiles[len(tiles)-1].Bounds
	if last != image.Rect(384, 192, 400, 225) {
		t.Errorf("Expected the last tile clipped to the image, got %v", last)
	}
}

func TestNewProgressiveRaytracer_Rejects(t *testing.T) {
	scene := newMockScene(constantRadiance(core.Vec3{}))
	if _, err := NewProgressiveRaytracer(scene, SamplingConfig{Width: 0, Height: 10, SamplesPerPixel: 1}, DefaultProgressiveConfig(), nil); err == nil {
		t.Error("Expected an error for an empty image")
	}
	config := DefaultProgressiveConfig()
	config.TileSize = 0
	if _, err := NewProgressiveRaytracer(scene, SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 1}, config, nil); err == nil {
		t.Error("Expected an error for a zero tile size")
	}
}

func TestRenderProgressive(t *testing.T) {
	scene := newMockScene(constantRadiance(core.NewVec3(1, 1, 1)))
	sampling := SamplingConfig{Width: 20, Height: 12, SamplesPerPixel: 8, AdaptiveMinSamples: 1}
	config := ProgressiveConfig{TileSize: 8, InitialSamples: 1, MaxPasses: 3, NumWorkers: 3}

	pr, err := NewProgressiveRaytracer(scene, sampling, config, &recordingLogger{})
	if err != nil {
		t.Fatalf("NewProgressiveRaytracer: %v", err)
	}

	passes, errs := pr.RenderProgressive(context.Background())
	var results []PassResult
	for result := range passes {
		results = append(results, result)
	}
	if err := <-errs; err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 passes, got %d", len(results))
	}
	final := results[len(results)-1]
	if !final.IsLast {
		t.Error("Expected the final pass to be marked last")
	}
	if final.Stats.MinSamples != 8 || final.Stats.MaxSamplesUsed != 8 {
		t.Errorf("Expected every pixel at 8 samples, got min %d max %d", final.Stats.MinSamples, final.Stats.MaxSamplesUsed)
	}
	if final.Image.Bounds() != image.Rect(0, 0, 20, 12) {
		t.Errorf("Unexpected image bounds %v", final.Image.Bounds())
	}
	if lum := CalculateAverageLuminance(final.Image); lum < 0.99 {
		t.Errorf("Expected a white image, got average luminance %f", lum)
	}
	for _, tile := range pr.tiles {
		if tile.PassesCompleted != 3 {
			t.Errorf("Tile %d completed %d passes, want 3", tile.ID, tile.PassesCompleted)
		}
	}
}

func TestRenderProgressive_Cancelled(t *testing.T) {
	scene := newMockScene(constantRadiance(core.Vec3{}))
	sampling := SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 4}
	pr, err := NewProgressiveRaytracer(scene, sampling, DefaultProgressiveConfig(), &recordingLogger{})
	if err != nil {
		t.Fatalf("NewProgressiveRaytracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	passes, errs := pr.RenderProgressive(ctx)
	for range passes {
		t.Error("Expected no passes after cancellation")
	}
	if err := <-errs; err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}
