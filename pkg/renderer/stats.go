package renderer

import (
	"image"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Maximum samples allowed per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean luminance of an 8-bit image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r), float64(g), float64(b)).Multiply(1.0 / 0xffff)
			total += c.Luminance()
		}
	}
	return total / float64(pixels)
}
