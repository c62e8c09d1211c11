package material

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// ColorSource provides spatially varying colors for materials
type ColorSource interface {
	// Evaluate returns the color at a world space point
	Evaluate(point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of position
func (s *SolidColor) Evaluate(point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates two colors on a 3D grid of cubes
type Checker struct {
	Size float64
	Even core.Vec3
	Odd  core.Vec3
}

// NewChecker creates a checker pattern with cubes of the given edge size
func NewChecker(size float64, even, odd core.Vec3) *Checker {
	return &Checker{Size: size, Even: even, Odd: odd}
}

// Evaluate picks the color of the cube containing point
func (c *Checker) Evaluate(point core.Vec3) core.Vec3 {
	if c.Size <= 0 {
		return c.Even
	}
	x := int(math.Floor(point.X / c.Size))
	y := int(math.Floor(point.Y / c.Size))
	z := int(math.Floor(point.Z / c.Size))
	if (x+y+z)%2 == 0 {
		return c.Even
	}
	return c.Odd
}
