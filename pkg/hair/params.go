package hair

import (
	"fmt"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// IndirectMode selects how a hair material takes part in indirect lighting
type IndirectMode int

const (
	// IndirectReceive lets the material gather indirect light
	IndirectReceive IndirectMode = 1 << iota
	// IndirectCast lets the material be seen by other materials' indirect rays
	IndirectCast

	// IndirectNone disables indirect lighting for the material
	IndirectNone IndirectMode = 0
	// IndirectAll receives and casts
	IndirectAll = IndirectReceive | IndirectCast
)

// Has reports whether all bits of flag are set
func (m IndirectMode) Has(flag IndirectMode) bool {
	return m&flag == flag
}

func (m IndirectMode) String() string {
	switch m {
	case IndirectNone:
		return "none"
	case IndirectReceive:
		return "receive"
	case IndirectCast:
		return "cast"
	case IndirectAll:
		return "all"
	}
	return fmt.Sprintf("IndirectMode(%d)", int(m))
}

// ParseIndirectMode maps a configuration name to an IndirectMode
func ParseIndirectMode(name string) (IndirectMode, error) {
	switch name {
	case "none":
		return IndirectNone, nil
	case "receive":
		return IndirectReceive, nil
	case "cast":
		return IndirectCast, nil
	case "all", "":
		return IndirectAll, nil
	}
	return IndirectNone, fmt.Errorf("unknown indirect mode %q", name)
}

// RawLobe is the artist-facing description of a highlight lobe
type RawLobe struct {
	Color     core.Vec3 `json:"color"`
	Intensity float64   `json:"intensity"`
	Width     float64   `json:"width"`
	Shift     float64   `json:"shift"`
}

// RawGlint is the artist-facing description of the glint lobe
type RawGlint struct {
	Color     core.Vec3 `json:"color"`
	Intensity float64   `json:"intensity"`
	Frequency float64   `json:"frequency"`
}

// RawAdjust tints, scales and (de)saturates forward or backward scattering.
// Width and Shift are only consumed for backward scattering.
type RawAdjust struct {
	Color      core.Vec3 `json:"color"`
	Intensity  float64   `json:"intensity"`
	Saturation float64   `json:"saturation"`
	Width      float64   `json:"width,omitempty"`
	Shift      float64   `json:"shift,omitempty"`
}

// RawParams holds hair material settings the way an artist enters them
type RawParams struct {
	Primary          RawLobe   `json:"primary"`
	Secondary        RawLobe   `json:"secondary"`
	Rim              RawLobe   `json:"rim"`
	RimAzimuthWidth  float64   `json:"rimAzimuthWidth"`
	Glint            RawGlint  `json:"glint"`
	Forward          RawAdjust `json:"forward"`
	Backward         RawAdjust `json:"backward"`
	GlobalSaturation float64   `json:"globalSaturation"`
	Density          float64   `json:"density"`
	FilterDistance   float64   `json:"filterDistance"`
	IndirectMode     string    `json:"indirectMode"`
	IndirectRays     int       `json:"indirectRays"`
	SingleScattering bool      `json:"singleScattering"`
}

// DefaultRawParams returns the documented default hair material
func DefaultRawParams() RawParams {
	white := core.NewVec3(1, 1, 1)
	return RawParams{
		Primary:          RawLobe{Color: core.NewVec3(0.98, 0.92, 0.85), Intensity: 0.6, Width: 0.03, Shift: -0.025},
		Secondary:        RawLobe{Color: core.NewVec3(0.53, 0.35, 0.17), Intensity: 0.2, Width: 0.2, Shift: -0.1},
		Rim:              RawLobe{Color: core.NewVec3(0.86, 0.54, 0.34), Intensity: 0.35, Width: 0.5, Shift: -0.05},
		RimAzimuthWidth:  0.5,
		Glint:            RawGlint{Color: core.NewVec3(0.99, 0.75, 0.5), Intensity: 1.0, Frequency: 0.001},
		Forward:          RawAdjust{Color: white, Intensity: 1.0, Saturation: 1.0},
		Backward:         RawAdjust{Color: white, Intensity: 1.0, Saturation: 1.0},
		GlobalSaturation: 1.0,
		Density:          0.7,
		FilterDistance:   0.01,
		IndirectMode:     "all",
		IndirectRays:     8,
		SingleScattering: true,
	}
}

// Lobe is a resolved highlight lobe. Variance is the squared artist width,
// Shift is the negated artist shift.
type Lobe struct {
	Color     core.Vec3
	Intensity float64
	Variance  float64
	Shift     float64
}

// Glint is a resolved glint lobe. Frequency is the variance of its azimuthal Gaussian.
type Glint struct {
	Color     core.Vec3
	Intensity float64
	Frequency float64
}

// Adjust is a resolved scattering adjustment
type Adjust struct {
	Color      core.Vec3
	Intensity  float64
	Saturation float64
	Variance   float64
	Shift      float64 // negated like Lobe.Shift
}

// Tint returns the adjustment color scaled by its intensity
func (a Adjust) Tint() core.Vec3 {
	return a.Color.Multiply(a.Intensity)
}

// Params is the immutable shading parameter set consumed by precomputation and shading.
// It is comparable: two sets are the same material iff they are ==.
type Params struct {
	Primary           Lobe // R
	Secondary         Lobe // TRT
	Rim               Lobe // TT
	AzimuthalVariance float64
	Glint             Glint
	Forward           Adjust
	Backward          Adjust
	GlobalSaturation  float64
	Density           float64
	FilterRadius      float64
	Indirect          IndirectMode
	IndirectRays      int
	SingleScattering  bool
}

// Resolve validates raw settings and converts them to shading parameters.
// Widths become variances and lobe shifts are negated.
func (r RawParams) Resolve() (Params, error) {
	mode, err := ParseIndirectMode(r.IndirectMode)
	if err != nil {
		return Params{}, err
	}
	if r.IndirectRays < 0 {
		return Params{}, fmt.Errorf("indirectRays must be non-negative, got %d", r.IndirectRays)
	}
	if r.Density < 0 {
		return Params{}, fmt.Errorf("density must be non-negative, got %g", r.Density)
	}
	if r.FilterDistance < 0 {
		return Params{}, fmt.Errorf("filterDistance must be non-negative, got %g", r.FilterDistance)
	}

	lobe := func(l RawLobe) Lobe {
		return Lobe{Color: l.Color, Intensity: l.Intensity, Variance: l.Width * l.Width, Shift: -l.Shift}
	}
	adjust := func(a RawAdjust) Adjust {
		return Adjust{Color: a.Color, Intensity: a.Intensity, Saturation: a.Saturation, Variance: a.Width * a.Width, Shift: -a.Shift}
	}

	return Params{
		Primary:           lobe(r.Primary),
		Secondary:         lobe(r.Secondary),
		Rim:               lobe(r.Rim),
		AzimuthalVariance: r.RimAzimuthWidth * r.RimAzimuthWidth,
		Glint:             Glint{Color: r.Glint.Color, Intensity: r.Glint.Intensity, Frequency: r.Glint.Frequency},
		Forward:           adjust(r.Forward),
		Backward:          adjust(r.Backward),
		GlobalSaturation:  r.GlobalSaturation,
		Density:           r.Density,
		FilterRadius:      r.FilterDistance,
		Indirect:          mode,
		IndirectRays:      r.IndirectRays,
		SingleScattering:  r.SingleScattering,
	}, nil
}

// DefaultParams returns the resolved default hair material
func DefaultParams() Params {
	p, err := DefaultRawParams().Resolve()
	if err != nil {
		panic(fmt.Sprintf("default hair parameters do not resolve: %v", err))
	}
	return p
}
