package forecast

import (
	"math"
	"testing"
)

// Shared generators and assertion helpers for the forecast tests.

// generatePeriodicSeries repeats one seasonal block verbatim: 10, 15, 10, 5
// for period 4. A series with no trend and no noise, reproduced exactly by
// the multiplicative recurrence.
func generatePeriodicSeries(n, period int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = 10 + 5*math.Sin(2*math.Pi*float64(i%period)/float64(period))
	}
	return out
}

// generateSeasonalTrendSeries adds a linear ramp on top of a sine cycle,
// shifted well away from zero so the multiplicative seeds stay valid.
func generateSeasonalTrendSeries(n, period int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = 50 + 0.5*float64(i) + 10*math.Sin(2*math.Pi*float64(i%period)/float64(period))
	}
	return out
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func assertAlmostEqual(t *testing.T, got, want, tol float64, label string) {
	t.Helper()
	if !almostEqual(got, want, tol) {
		t.Errorf("%s: got %v, want %v (tolerance %v)", label, got, want, tol)
	}
}

func assertSameValues(t *testing.T, got, want []float64, label string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length mismatch: got %d, want %d", label, len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: got %v, want %v", label, i, got[i], want[i])
		}
	}
}
