package renderer

import (
	"image/color"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width              int     `json:"width"`
	Height             int     `json:"height"`
	SamplesPerPixel    int     `json:"samplesPerPixel"`    // Maximum rays per pixel
	AdaptiveMinSamples float64 `json:"adaptiveMinSamples"` // Minimum samples as a fraction of the maximum (0.0-1.0)
	AdaptiveThreshold  float64 `json:"adaptiveThreshold"`  // Relative error at which a pixel has converged (0.01 = 1%)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:              400,
		Height:             300,
		SamplesPerPixel:    64,
		AdaptiveMinSamples: 0.15,
		AdaptiveThreshold:  0.02,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	// Radiance returns the light arriving along a camera ray
	Radiance(ray core.Ray, sampler core.Sampler) core.Vec3
}

// vec3ToColor converts a linear color to RGBA with gamma 2 and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
