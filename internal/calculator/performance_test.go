package calculator

import (
	"math"
	"testing"
)

func TestCalculateSharpeRatio(t *testing.T) {
	// mean 0.02, sample std 0.01 -> 2 * sqrt(252)
	got := CalculateSharpeRatio([]float64{0.01, 0.02, 0.03})
	want := 2 * math.Sqrt(252)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCalculateSharpeRatio_Undefined(t *testing.T) {
	cases := map[string][]float64{
		"empty":         nil,
		"single value":  {0.01},
		"zero variance": {0.02, 0.02, 0.02},
		"all zero":      {0, 0, 0, 0},
	}
	for name, pnl := range cases {
		if got := CalculateSharpeRatio(pnl); !math.IsNaN(got) {
			t.Errorf("%s: expected NaN, got %v", name, got)
		}
	}
}
