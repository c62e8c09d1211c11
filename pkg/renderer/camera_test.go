package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90.0,
	}
}

func TestCameraGetCameraForward(t *testing.T) {
	camera := NewCamera(testCameraConfig(), 1.0)

	forward := camera.GetCameraForward()
	expected := core.NewVec3(0, 0, -1)
	if !forward.Equals(expected) {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCameraGetRay(t *testing.T) {
	camera := NewCamera(testCameraConfig(), 1.0)
	center := core.NewVec2(0.5, 0.5)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"right edge", 1, 0.5, core.NewVec3(1, 0, -1).Normalize()},
		{"top edge", 0.5, 1, core.NewVec3(0, 1, -1).Normalize()},
		{"bottom left", 0, 0, core.NewVec3(-1, -1, -1).Normalize()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, center)
			if !ray.Origin.Equals(core.Vec3{}) {
				t.Errorf("pinhole ray origin = %v, want origin", ray.Origin)
			}
			if d := ray.Direction.Subtract(tt.expected).Length(); d > 1e-9 {
				t.Errorf("direction = %v, want %v", ray.Direction, tt.expected)
			}
		})
	}
}

func TestCameraAperture(t *testing.T) {
	config := testCameraConfig()
	config.Aperture = 0.2
	config.FocusDistance = 2
	camera := NewCamera(config, 1.0)

	// Every lens sample converges on the same point of the focal plane
	focal := core.NewVec3(0, 0, -2)
	for _, lens := range []core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0.5}, {X: 0.3, Y: 0.9}} {
		ray := camera.GetRay(0.5, 0.5, lens)
		if r := math.Hypot(ray.Origin.X, ray.Origin.Y); r > 0.1+1e-9 {
			t.Errorf("lens offset %g exceeds the lens radius", r)
		}
		tFocal := (focal.Z - ray.Origin.Z) / ray.Direction.Z
		if p := ray.At(tFocal); p.Subtract(focal).Length() > 1e-9 {
			t.Errorf("lens sample %v focuses at %v, want %v", lens, p, focal)
		}
	}
}
