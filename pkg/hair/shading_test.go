package hair

import (
	"math"
	"testing"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

func TestAngles(t *testing.T) {
	tangent := core.NewVec3(0, 0, 1)
	tests := []struct {
		name    string
		wi, wo  core.Vec3
		theta   float64 // longitudinal angle of wi
		azimuth float64
	}{
		{"perpendicular same side", core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0), 0, 0},
		{"perpendicular opposite", core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0), 0, math.Pi},
		{"quarter turn", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), 0, math.Pi / 2},
		{"tilted toward root", core.NewVec3(1, 0, 1).Normalize(), core.NewVec3(1, 0, 0), math.Pi / 4, 0},
		{"along the fiber", core.NewVec3(0, 0, -1), core.NewVec3(1, 0, 0), -math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := longitudinalAngle(tt.wi, tangent); math.Abs(got-tt.theta) > 1e-9 {
				t.Errorf("longitudinalAngle = %v, expected %v", got, tt.theta)
			}
			if got := relativeAzimuth(tt.wi, tt.wo, tangent); math.Abs(got-tt.azimuth) > 1e-9 {
				t.Errorf("relativeAzimuth = %v, expected %v", got, tt.azimuth)
			}
		})
	}
}

func TestComponents(t *testing.T) {
	a := Components{Specular: core.Gray(1), Subsurface: core.NewVec3(0, 2, 0)}
	b := Components{Specular: core.NewVec3(1, 0, 0), Subsurface: core.Gray(1)}

	sum := a.Add(b)
	if !sum.Specular.Equals(core.NewVec3(2, 1, 1)) || !sum.Subsurface.Equals(core.NewVec3(1, 3, 1)) {
		t.Errorf("Unexpected sum %+v", sum)
	}
	if got := a.Scale(0.5).Total(); !got.Equals(core.NewVec3(0.5, 1.5, 0.5)) {
		t.Errorf("Unexpected scaled total %v", got)
	}
	if got := a.Tint(core.NewVec3(1, 0, 0)); !got.Specular.Equals(core.NewVec3(1, 0, 0)) || !got.Subsurface.IsZero() {
		t.Errorf("Unexpected tint %+v", got)
	}
}

func TestShadeRay_Unoccluded(t *testing.T) {
	prep := preparedDefault()
	tangent := core.NewVec3(0, 0, 1)
	wi := core.NewVec3(1, 0, 0.1).Normalize()
	wo := core.NewVec3(1, 0, 0)
	full := TraceResult{Transmittance: core.Gray(1), DirectFraction: 1}

	c := ShadeRay(prep, full, wi, wo, tangent, math.Pi/4)
	if c.Specular.IsZero() {
		t.Error("Expected a highlight for a near-mirror configuration")
	}
	if !nonNegative(c.Specular) || !nonNegative(c.Subsurface) {
		t.Errorf("Expected non-negative components, got %+v", c)
	}

	half := ShadeRay(prep, TraceResult{Transmittance: core.Gray(1), DirectFraction: 0.5}, wi, wo, tangent, math.Pi/4)
	if !half.Total().Equals(c.Total().Multiply(0.5)) {
		t.Errorf("Expected shading to scale with the direct fraction: %v vs %v", half.Total(), c.Total())
	}

	single := preparedDefault()
	single.Params.SingleScattering = false
	if got := ShadeRay(single, full, wi, wo, tangent, math.Pi/4); !got.Specular.IsZero() {
		t.Errorf("Expected no specular without single scattering, got %v", got.Specular)
	}
}

func TestShadeRay_MultipleScattering(t *testing.T) {
	prep := preparedDefault()
	tangent := core.NewVec3(0, 0, 1)
	wi := core.NewVec3(-1, 0, 0.2).Normalize()
	wo := core.NewVec3(1, 0, 0)

	tr := TraceResult{Transmittance: core.Gray(0.5), Variance: core.Gray(0.01)}
	c := ShadeRay(prep, tr, wi, wo, tangent, math.Pi/4)
	if !c.Specular.IsZero() {
		t.Errorf("Expected no specular through other strands, got %v", c.Specular)
	}
	if !nonNegative(c.Subsurface) || c.Subsurface.IsZero() {
		t.Errorf("Expected positive scattering, got %v", c.Subsurface)
	}

	tr.Transmittance = core.Vec3{}
	if got := ShadeRay(prep, tr, wi, wo, tangent, math.Pi/4); !got.Total().IsZero() {
		t.Errorf("Expected an opaque path to shade black, got %v", got.Total())
	}
}
