package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-hair-raytracer/pkg/core"
	"github.com/df07/go-hair-raytracer/pkg/fiber"
	"github.com/df07/go-hair-raytracer/pkg/hair"
	"github.com/df07/go-hair-raytracer/pkg/renderer"
)

// Light types accepted in LightConfig.Type
const (
	LightPoint       = "point"
	LightSphere      = "sphere"
	LightDirectional = "directional"
)

// HeadConfig is the scalp sphere the hair grows from
type HeadConfig struct {
	Center core.Vec3 `json:"center"`
	Radius float64   `json:"radius"`
	Color  core.Vec3 `json:"color"`
}

// HairConfig combines strand generation with the hair material. When File
// names a cyHair file its strands replace the grown ones, scaled by Scale
// (0 means 1) and moved by Offset.
type HairConfig struct {
	Grow     fiber.GrowConfig `json:"grow"`
	Material hair.RawParams   `json:"material"`
	File     string           `json:"file,omitempty"`
	Scale    float32          `json:"scale,omitempty"`
	Offset   core.Vec3        `json:"offset"`
}

// GroundConfig is a horizontal plane, checkered unless Texture names an
// image tiled every TextureScale units
type GroundConfig struct {
	Height       float64   `json:"height"`
	CheckerSize  float64   `json:"checkerSize"`
	Even         core.Vec3 `json:"even"`
	Odd          core.Vec3 `json:"odd"`
	Texture      string    `json:"texture,omitempty"`
	TextureScale float64   `json:"textureScale,omitempty"`
}

// LightConfig describes one light. Position is used by point and sphere
// lights, Direction (toward the light) by directional lights.
type LightConfig struct {
	Type      string    `json:"type"`
	Position  core.Vec3 `json:"position"`
	Direction core.Vec3 `json:"direction"`
	Color     core.Vec3 `json:"color"`
	Intensity float64   `json:"intensity"`
	Radius    float64   `json:"radius,omitempty"`   // sphere lights
	AngleDeg  float64   `json:"angleDeg,omitempty"` // angular radius of directional lights
	Samples   int       `json:"samples,omitempty"`
	Shadow    string    `json:"shadow,omitempty"` // point and directional lights; defaults to "raytraced"
}

// SkyConfig is the gradient environment seen by camera and indirect rays
type SkyConfig struct {
	Top    core.Vec3 `json:"top"`
	Bottom core.Vec3 `json:"bottom"`
}

// IndirectConfig is the host's global illumination switch
type IndirectConfig struct {
	Enabled     bool `json:"enabled"`
	MaxDepth    int  `json:"maxDepth"`
	SurfaceRays int  `json:"surfaceRays"` // gathering rays per non-fiber hit
}

// Config is a complete scene description
type Config struct {
	Sampling          renderer.SamplingConfig `json:"sampling"`
	Camera            renderer.CameraConfig   `json:"camera"`
	Head              HeadConfig              `json:"head"`
	Hair              HairConfig              `json:"hair"`
	Ground            *GroundConfig           `json:"ground,omitempty"`
	Lights            []LightConfig           `json:"lights"`
	Sky               SkyConfig               `json:"sky"`
	Ambient           core.Vec3               `json:"ambient"`
	Indirect          IndirectConfig          `json:"indirect"`
	RouletteThreshold float64                 `json:"rouletteThreshold"`
}

// DefaultConfig returns a lit head of hair over a checkered floor
func DefaultConfig() Config {
	return Config{
		Sampling: renderer.DefaultSamplingConfig(),
		Camera: renderer.CameraConfig{
			Center: core.NewVec3(0, 1.2, 4.5),
			LookAt: core.NewVec3(0, 0.4, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   40,
		},
		Head: HeadConfig{
			Center: core.NewVec3(0, 1, 0),
			Radius: 0.5,
			Color:  core.NewVec3(0.8, 0.6, 0.5),
		},
		Hair: HairConfig{
			Grow:     fiber.DefaultGrowConfig(),
			Material: hair.DefaultRawParams(),
		},
		Ground: &GroundConfig{
			Height:      -0.8,
			CheckerSize: 0.5,
			Even:        core.NewVec3(0.7, 0.7, 0.7),
			Odd:         core.NewVec3(0.3, 0.3, 0.3),
		},
		Lights: []LightConfig{
			{Type: LightSphere, Position: core.NewVec3(3, 4, 3), Color: core.NewVec3(1, 0.95, 0.9), Intensity: 15, Radius: 0.5, Samples: 4},
			{Type: LightPoint, Position: core.NewVec3(-3, 2, -2), Color: core.NewVec3(0.6, 0.7, 1), Intensity: 8},
		},
		Sky: SkyConfig{
			Top:    core.NewVec3(0.5, 0.7, 1.0),
			Bottom: core.NewVec3(1, 1, 1),
		},
		Ambient: core.NewVec3(0.05, 0.05, 0.05),
		Indirect: IndirectConfig{
			Enabled:     true,
			MaxDepth:    2,
			SurfaceRays: 1,
		},
		RouletteThreshold: 0.05,
	}
}

// LoadConfig reads a JSON scene file. Fields missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scene config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scene config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid scene config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks everything Build relies on
func (c *Config) Validate() error {
	if c.Sampling.Width <= 0 || c.Sampling.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Sampling.Width, c.Sampling.Height)
	}
	if c.Sampling.SamplesPerPixel <= 0 {
		return errors.New("samplesPerPixel must be positive")
	}
	if c.Camera.VFov <= 0 || c.Camera.VFov >= 180 {
		return fmt.Errorf("camera vfov must be within (0, 180), got %g", c.Camera.VFov)
	}
	if c.Camera.Center.Equals(c.Camera.LookAt) {
		return errors.New("camera center and lookAt coincide")
	}
	if c.Head.Radius <= 0 {
		return fmt.Errorf("head radius must be positive, got %g", c.Head.Radius)
	}
	if c.Hair.File == "" {
		if err := c.Hair.Grow.Validate(); err != nil {
			return fmt.Errorf("hair: %w", err)
		}
	} else if c.Hair.Scale < 0 {
		return fmt.Errorf("hair scale must be non-negative, got %g", c.Hair.Scale)
	}
	if _, err := c.Hair.Material.Resolve(); err != nil {
		return fmt.Errorf("hair material: %w", err)
	}
	if g := c.Ground; g != nil {
		if g.CheckerSize < 0 {
			return errors.New("ground checkerSize must be non-negative")
		}
		if g.Texture != "" && g.TextureScale <= 0 {
			return fmt.Errorf("ground textureScale must be positive, got %g", g.TextureScale)
		}
	}
	for i, l := range c.Lights {
		if err := l.validate(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	if c.Indirect.MaxDepth < 0 || c.Indirect.SurfaceRays < 0 {
		return errors.New("indirect maxDepth and surfaceRays must be non-negative")
	}
	if c.RouletteThreshold < 0 || c.RouletteThreshold > 1 {
		return fmt.Errorf("rouletteThreshold must be within [0, 1], got %g", c.RouletteThreshold)
	}
	return nil
}

func (l LightConfig) validate() error {
	if l.Intensity < 0 {
		return fmt.Errorf("intensity must be non-negative, got %g", l.Intensity)
	}
	switch l.Type {
	case LightPoint:
	case LightSphere:
		if l.Radius <= 0 {
			return fmt.Errorf("sphere light radius must be positive, got %g", l.Radius)
		}
	case LightDirectional:
		if l.Direction.IsZero() {
			return errors.New("directional light needs a direction")
		}
		if l.AngleDeg < 0 || l.AngleDeg >= 90 {
			return fmt.Errorf("angleDeg must be within [0, 90), got %g", l.AngleDeg)
		}
	default:
		return fmt.Errorf("unknown light type %q", l.Type)
	}
	return nil
}
