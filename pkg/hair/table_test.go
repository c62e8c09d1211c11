package hair

import (
	"math"
	"testing"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

func quadraticTable() *Table {
	var tbl Table
	tbl.fill(func(i int, _ float64) core.Vec3 {
		return core.NewVec3(float64(i*i), float64(i), 1)
	})
	return &tbl
}

func TestTable_LookupAtCenters(t *testing.T) {
	tbl := quadraticTable()
	for i := 0; i < TableSize; i++ {
		got := tbl.Lookup(BucketCenter(i))
		if got != tbl[i] {
			t.Errorf("Lookup at center %d = %v, expected %v", i, got, tbl[i])
		}
	}
}

func TestTable_LookupInterpolates(t *testing.T) {
	tbl := quadraticTable()
	for i := 0; i < TableSize-1; i++ {
		for _, w := range []float64{0.25, 0.5, 0.9} {
			theta := BucketCenter(i) + w*BucketWidth
			expected := tbl[i].Multiply(1 - w).Add(tbl[i+1].Multiply(w))
			got := tbl.Lookup(theta)
			if got.Subtract(expected).Length() > 1e-9 {
				t.Errorf("Lookup(%v) = %v, expected %v", theta, got, expected)
			}
		}
	}
}

func TestTable_LookupEdges(t *testing.T) {
	tbl := quadraticTable()
	tests := []struct {
		name     string
		theta    float64
		expected core.Vec3
	}{
		{"below range", -math.Pi / 2, tbl[0]},
		{"far below", -10, tbl[0]},
		{"above range", math.Pi / 2, tbl[TableSize-1]},
		{"NaN", math.NaN(), tbl[0]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.Lookup(tt.theta); got != tt.expected {
				t.Errorf("Lookup(%v) = %v, expected %v", tt.theta, got, tt.expected)
			}
		})
	}
}

func TestTables_NormFactorFloor(t *testing.T) {
	empty := &Tables{}
	if got := empty.NormFactor(0); got != 1 {
		t.Errorf("Expected floor of 1 for empty tables, got %v", got)
	}

	tables := Precompute(DefaultParams())
	for i := 0; i < 64; i++ {
		theta := -math.Pi/2 + float64(i)*math.Pi/63
		if got := tables.NormFactor(theta); got < 1 {
			t.Errorf("NormFactor(%v) = %v, expected >= 1", theta, got)
		}
	}
}

func TestTables_NormFactorKnee(t *testing.T) {
	var tables Tables
	tables.Norm.fill(func(int, float64) core.Vec3 { return core.NewVec3(0.2, 2, 0.5) })
	expected := 0.8 + (2-0.8)*1.1
	if got := tables.NormFactor(0.1); math.Abs(got-expected) > 1e-12 {
		t.Errorf("NormFactor = %v, expected %v", got, expected)
	}
}
