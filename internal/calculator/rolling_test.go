package calculator

import (
	"math"
	"testing"
)

func TestCalculateRollingMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got, err := CalculateRollingMean(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("entry %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestCalculateRollingMean_Errors(t *testing.T) {
	if _, err := CalculateRollingMean([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero window")
	}
	if _, err := CalculateRollingMean([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for window larger than data")
	}
}

func TestCalculateRollingStdDev(t *testing.T) {
	// Sample std of three consecutive integers is always 1.
	values := []float64{1, 2, 3, 4}
	got, err := CalculateRollingStdDev(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	for i, v := range got {
		if math.Abs(v-1) > 1e-12 {
			t.Errorf("entry %d: expected 1, got %v", i, v)
		}
	}
}

func TestCalculateRollingStdDev_Flat(t *testing.T) {
	got, err := CalculateRollingStdDev([]float64{5, 5, 5, 5}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range got {
		if v != 0 {
			t.Errorf("entry %d: expected zero std on flat data, got %v", i, v)
		}
	}
}

func TestCalculateRollingStdDev_WindowOfOne(t *testing.T) {
	got, err := CalculateRollingStdDev([]float64{1, 7, 3}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range got {
		if v != 0 {
			t.Errorf("entry %d: one-element window must have zero std, got %v", i, v)
		}
	}
}
