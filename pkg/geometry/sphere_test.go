package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-hair-raytracer/pkg/core"
	"github.com/df07/go-hair-raytracer/pkg/material"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, isHit := sphere.Hit(ray, 0.001, 1000.0); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	mat := material.NewLambertian(core.Gray(0.5))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{"outside", core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1), 1.0, core.NewVec3(0, 0, 1)},
		{"inside", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 1.0, core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(core.NewRay(tt.rayOrigin, tt.rayDirection), 0.001, 1000.0)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if !hit.Normal.Equals(tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.IsFiber() {
				t.Error("Expected a surface hit, not a fiber")
			}
			if hit.Material != mat {
				t.Error("Expected the sphere material on the hit")
			}
		})
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Hit(ray, 0.001, 0.5); isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}
	if hit, isHit := sphere.Hit(ray, 3.5, 1000.0); isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}
	// Near side excluded by tMin, far side still reachable
	hit, isHit := sphere.Hit(ray, 1.5, 1000.0)
	if !isHit || math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected far hit at t=3, got %v %v", hit, isHit)
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	box := NewSphere(core.NewVec3(1, 2, 3), 0.5, nil).BoundingBox()
	if !box.Min.Equals(core.NewVec3(0.5, 1.5, 2.5)) || !box.Max.Equals(core.NewVec3(1.5, 2.5, 3.5)) {
		t.Errorf("Unexpected bounding box %v..%v", box.Min, box.Max)
	}
}

func TestSphere_VisibleCone(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 4, 0), 2, nil)

	axis, cosMax, distance := sphere.VisibleCone(core.Vec3{})
	if !axis.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected axis +Y, got %v", axis)
	}
	if math.Abs(distance-4) > 1e-12 {
		t.Errorf("Expected distance 4, got %v", distance)
	}
	// sin = 1/2, so the half angle is 30 degrees
	if math.Abs(cosMax-math.Sqrt(3)/2) > 1e-12 {
		t.Errorf("Expected cosMax %v, got %v", math.Sqrt(3)/2, cosMax)
	}

	if _, cosMax, _ := sphere.VisibleCone(core.NewVec3(0, 4.5, 0)); cosMax != -1 {
		t.Errorf("Expected the full sphere of directions from inside, got %v", cosMax)
	}
}
