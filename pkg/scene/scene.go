package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
	"github.com/df07/go-hair-raytracer/pkg/fiber"
	"github.com/df07/go-hair-raytracer/pkg/geometry"
	"github.com/df07/go-hair-raytracer/pkg/hair"
	"github.com/df07/go-hair-raytracer/pkg/lights"
	"github.com/df07/go-hair-raytracer/pkg/loaders"
	"github.com/df07/go-hair-raytracer/pkg/material"
	"github.com/df07/go-hair-raytracer/pkg/renderer"
	"github.com/soypat/geometry/ms3"
)

// Scene contains all the elements needed for rendering. It implements
// hair.Host for the hair shader and renderer.Scene for the tile renderer.
// Everything but the shader's parameters is immutable after Build.
type Scene struct {
	Camera   *renderer.Camera
	Sampling renderer.SamplingConfig
	Shader   *hair.Shader
	Fibers   *fiber.Collection
	Shapes   []core.Shape // non-fiber geometry

	surfaces  *core.BVH
	lights    []hair.Light
	sky       *lights.GradientSky
	ambient   core.Vec3
	indirect  IndirectConfig
	threshold float64
	logger    core.Logger
}

var (
	_ hair.Host      = (*Scene)(nil)
	_ renderer.Scene = (*Scene)(nil)
)

// Build assembles a scene from a validated configuration
func Build(cfg Config, logger core.Logger) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params, err := cfg.Hair.Material.Resolve()
	if err != nil {
		return nil, fmt.Errorf("hair material: %w", err)
	}

	s := &Scene{
		Camera:    renderer.NewCamera(cfg.Camera, float64(cfg.Sampling.Width)/float64(cfg.Sampling.Height)),
		Sampling:  cfg.Sampling,
		Shader:    hair.NewShader(params, logger),
		sky:       lights.NewGradientSky(cfg.Sky.Top, cfg.Sky.Bottom),
		ambient:   cfg.Ambient,
		indirect:  cfg.Indirect,
		threshold: cfg.RouletteThreshold,
		logger:    logger,
	}

	head := geometry.NewSphere(cfg.Head.Center, cfg.Head.Radius, material.NewLambertian(cfg.Head.Color))
	s.Shapes = append(s.Shapes, head)
	if g := cfg.Ground; g != nil {
		texture, err := groundTexture(g)
		if err != nil {
			return nil, err
		}
		ground := geometry.NewPlane(core.NewVec3(0, g.Height, 0), core.NewVec3(0, 1, 0), material.NewTexturedLambertian(texture))
		s.Shapes = append(s.Shapes, ground)
	}

	for i, lc := range cfg.Lights {
		light, shape, err := buildLight(lc)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.lights = append(s.lights, light)
		if shape != nil {
			s.Shapes = append(s.Shapes, shape)
		}
	}
	s.surfaces = core.NewBVH(s.Shapes)

	strands, err := buildStrands(cfg)
	if err != nil {
		return nil, err
	}
	s.Fibers = fiber.NewCollection(strands)

	if logger != nil {
		b := s.Fibers.Bounds()
		logger.Printf("Scene: %d shapes, %d lights, %d strands (%d segments) within %v..%v\n",
			len(s.Shapes), len(s.lights), len(strands), s.Fibers.SegmentCount(), b.Min, b.Max)
	}
	return s, nil
}

// buildStrands grows hair on the head or loads it from a cyHair file
func buildStrands(cfg Config) ([]fiber.Strand, error) {
	if cfg.Hair.File == "" {
		// Strands root slightly inside the scalp so their first segment never floats
		center := toMs3(cfg.Head.Center)
		strands, err := fiber.Grow(center, float32(cfg.Head.Radius)*0.99, 0, cfg.Hair.Grow)
		if err != nil {
			return nil, fmt.Errorf("grow hair: %w", err)
		}
		return strands, nil
	}

	strands, err := loaders.LoadHair(cfg.Hair.File)
	if err != nil {
		return nil, fmt.Errorf("load hair %s: %w", cfg.Hair.File, err)
	}
	scale := cfg.Hair.Scale
	if scale == 0 {
		scale = 1
	}
	offset := toMs3(cfg.Hair.Offset)
	for i := range strands {
		strands[i].Transform(scale, offset)
	}
	return strands, nil
}

// groundTexture returns the ground's image texture or its checkerboard
func groundTexture(g *GroundConfig) (material.ColorSource, error) {
	if g.Texture == "" {
		return material.NewChecker(g.CheckerSize, g.Even, g.Odd), nil
	}
	img, err := loaders.LoadImage(g.Texture)
	if err != nil {
		return nil, fmt.Errorf("ground texture: %w", err)
	}
	return material.NewImageTexture(img.Width, img.Height, img.Pixels, g.TextureScale), nil
}

func toMs3(v core.Vec3) ms3.Vec {
	return ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// buildLight creates the light and, for area lights, the geometry camera rays see
func buildLight(lc LightConfig) (hair.Light, core.Shape, error) {
	color := lc.Color.Multiply(lc.Intensity)
	switch lc.Type {
	case LightPoint:
		shadow, err := shadowType(lc.Shadow)
		if err != nil {
			return nil, nil, err
		}
		pl := lights.NewPointLight(lc.Position, color)
		pl.Shadow = shadow
		return pl, nil, nil
	case LightSphere:
		sl := lights.NewSphereLight(lc.Position, lc.Radius, color, lc.Samples)
		return sl, sl.Sphere, nil
	case LightDirectional:
		shadow, err := shadowType(lc.Shadow)
		if err != nil {
			return nil, nil, err
		}
		dl := lights.NewDirectionalLight(lc.Direction, color, lc.AngleDeg*math.Pi/180, lc.Samples)
		dl.Shadow = shadow
		return dl, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown light type %q", lc.Type)
}

func shadowType(name string) (hair.ShadowType, error) {
	if name == "" {
		return hair.ShadowRayTraced, nil
	}
	return lights.ParseShadowType(name)
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// SetHairParams swaps the hair material. Tables are rebuilt lazily by the
// next shading call when anything changed.
func (s *Scene) SetHairParams(raw hair.RawParams) error {
	changed, err := s.Shader.SetParams(raw)
	if err != nil {
		return err
	}
	if changed && s.logger != nil {
		s.logger.Printf("Hair parameters changed, tables invalidated\n")
	}
	return nil
}
