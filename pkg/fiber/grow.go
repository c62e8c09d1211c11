package fiber

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// GrowConfig controls procedural strand generation on a spherical scalp
type GrowConfig struct {
	Count      int     `json:"count"`
	Segments   int     `json:"segments"`
	Length     float32 `json:"length"`
	Radius     float32 `json:"radius"`
	Curl       float32 `json:"curl"`       // twist per segment in radians
	CurlRadius float32 `json:"curlRadius"` // amplitude of the twist
	Gravity    float32 `json:"gravity"`    // downward pull per segment, relative to the step
	Coverage   float32 `json:"coverage"`   // lowest root height as a fraction of the scalp radius, -1..1
	Seed       int64   `json:"seed"`
}

// DefaultGrowConfig returns a head of moderately wavy hair
func DefaultGrowConfig() GrowConfig {
	return GrowConfig{
		Count:      1500,
		Segments:   16,
		Length:     1.6,
		Radius:     0.004,
		Curl:       0.6,
		CurlRadius: 0.02,
		Gravity:    0.25,
		Coverage:   0.1,
		Seed:       7,
	}
}

// Validate checks the configuration
func (c GrowConfig) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("strand count must be non-negative, got %d", c.Count)
	}
	if c.Segments < 1 {
		return fmt.Errorf("strands need at least one segment, got %d", c.Segments)
	}
	if c.Length <= 0 || c.Radius <= 0 {
		return errors.New("strand length and radius must be positive")
	}
	if c.Coverage < -1 || c.Coverage > 1 {
		return fmt.Errorf("coverage must be within [-1, 1], got %g", c.Coverage)
	}
	return nil
}

// Grow plants cfg.Count strands on the sphere at center and grows them
// outward, curling around their direction and drooping under gravity.
// Strand ids run from firstID upward. Output is deterministic for a seed.
func Grow(center ms3.Vec, scalpRadius float32, firstID int, cfg GrowConfig) ([]Strand, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scalpRadius <= 0 {
		return nil, fmt.Errorf("scalp radius must be positive, got %g", scalpRadius)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	step := cfg.Length / float32(cfg.Segments)
	down := ms3.Vec{Y: -1}

	strands := make([]Strand, cfg.Count)
	for i := range strands {
		normal := scalpDirection(rng, cfg.Coverage)
		root := ms3.Add(center, ms3.Scale(scalpRadius, normal))
		phase := rng.Float32() * 2 * math32.Pi
		u, v := perpendicular(normal)

		points := make([]ms3.Vec, 0, cfg.Segments+1)
		points = append(points, root)
		dir := normal
		spine := root
		for s := 1; s <= cfg.Segments; s++ {
			dir = ms3.Unit(ms3.Add(dir, ms3.Scale(cfg.Gravity, down)))
			spine = ms3.Add(spine, ms3.Scale(step, dir))

			// Keep the spine outside the scalp
			if offset := ms3.Sub(spine, center); ms3.Norm(offset) < scalpRadius {
				spine = ms3.Add(center, ms3.Scale(scalpRadius*1.001, ms3.Unit(offset)))
			}

			sin, cos := math32.Sincos(phase + cfg.Curl*float32(s))
			// Curl grows from zero at the root
			amplitude := cfg.CurlRadius * float32(s) / float32(cfg.Segments)
			wave := ms3.Add(ms3.Scale(cos*amplitude, u), ms3.Scale(sin*amplitude, v))
			points = append(points, ms3.Add(spine, wave))
		}
		strands[i] = Strand{ID: firstID + i, Points: points, Radius: cfg.Radius}
	}
	return strands, nil
}

// scalpDirection picks a uniform direction on the sphere above height coverage
func scalpDirection(rng *rand.Rand, coverage float32) ms3.Vec {
	y := coverage + (1-coverage)*rng.Float32()
	r := math32.Sqrt(max(0, 1-y*y))
	sin, cos := math32.Sincos(2 * math32.Pi * rng.Float32())
	return ms3.Vec{X: r * cos, Y: y, Z: r * sin}
}

// perpendicular returns two unit vectors orthogonal to unit n and to each other
func perpendicular(n ms3.Vec) (ms3.Vec, ms3.Vec) {
	helper := ms3.Vec{X: 1}
	if math32.Abs(n.X) > 0.9 {
		helper = ms3.Vec{Y: 1}
	}
	u := ms3.Unit(cross(n, helper))
	return u, cross(n, u)
}

func cross(a, b ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
