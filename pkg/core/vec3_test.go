package core

import (
	"math"
	"testing"
)

func TestVec3_Saturate(t *testing.T) {
	color := NewVec3(0.8, 0.4, 0.2)
	lum := color.Luminance()

	tests := []struct {
		name       string
		saturation float64
		expected   Vec3
	}{
		{"identity", 1.0, color},
		{"gray", 0.0, Gray(lum)},
		{"halfway", 0.5, Gray(lum).Add(color.Subtract(Gray(lum)).Multiply(0.5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := color.Saturate(tt.saturation)
			if !got.Equals(tt.expected) {
				t.Errorf("Saturate(%v) = %v, expected %v", tt.saturation, got, tt.expected)
			}
		})
	}

	// Oversaturation keeps channels non-negative
	over := NewVec3(1, 0, 0).Saturate(5)
	if over.X < 0 || over.Y < 0 || over.Z < 0 {
		t.Errorf("Expected non-negative channels, got %v", over)
	}
	if over.X <= 1 {
		t.Errorf("Expected red channel to grow when resaturating, got %v", over.X)
	}
}

func TestVec3_Saturate_PreservesGray(t *testing.T) {
	gray := Gray(0.3)
	for _, s := range []float64{0, 0.5, 1, 2} {
		if got := gray.Saturate(s); !got.Equals(gray) {
			t.Errorf("Saturate(%v) of gray = %v, expected unchanged", s, got)
		}
	}
}

func TestCosAngle(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected float64
	}{
		{"parallel", NewVec3(2, 0, 0), NewVec3(5, 0, 0), 1},
		{"opposite", NewVec3(1, 0, 0), NewVec3(-3, 0, 0), -1},
		{"perpendicular", NewVec3(1, 0, 0), NewVec3(0, 4, 0), 0},
		{"zero length", NewVec3(0, 0, 0), NewVec3(0, 1, 0), 0},
		{"tiny length", NewVec3(1e-12, 0, 0), NewVec3(0, 1, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosAngle(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-12 || math.IsNaN(got) {
				t.Errorf("CosAngle(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	if got := x.Cross(y); !got.Equals(NewVec3(0, 0, 1)) {
		t.Errorf("Expected x cross y = z, got %v", got)
	}
}

func TestVec3_MaxComponent(t *testing.T) {
	if got := NewVec3(0.2, 0.9, 0.4).MaxComponent(); got != 0.9 {
		t.Errorf("Expected 0.9, got %v", got)
	}
}
