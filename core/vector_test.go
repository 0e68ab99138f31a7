package core

import (
	"math"
	"testing"
)

func TestNormalizeVector(t *testing.T) {
	t.Run("unit length result", func(t *testing.T) {
		v := NormalizeVector([]float32{3, 4})
		var mag float64
		for _, x := range v {
			mag += float64(x) * float64(x)
		}
		if math.Abs(math.Sqrt(mag)-1.0) > 1e-6 {
			t.Errorf("expected unit vector, got magnitude %v", math.Sqrt(mag))
		}
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := NormalizeVector([]float32{0, 0, 0})
		for i, x := range v {
			if x != 0 {
				t.Errorf("component %d: expected 0, got %v", i, x)
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := NormalizeVector(nil); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"mismatched lengths", []float32{1, 2}, []float32{1}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEuclideanDistance(t *testing.T) {
	if got := EuclideanDistance([]float32{0, 0}, []float32{3, 4}); math.Abs(got-5.0) > 1e-6 {
		t.Errorf("expected 5.0, got %v", got)
	}
	if got := EuclideanDistance([]float32{1}, []float32{1, 2}); !math.IsInf(got, 1) {
		t.Errorf("expected +Inf for mismatched lengths, got %v", got)
	}
}
