package forecast

import (
	"errors"
	"testing"
)

// A perfectly periodic series is a fixed point of the multiplicative
// recurrence: the seeds already describe it exactly, so every update leaves
// the state unchanged and the forecast keeps repeating the cycle.
func TestMultiplicative_PeriodicFixedPoint(t *testing.T) {
	x := exactPeriodic4(16)
	p := &MultiplicativeParams{Alpha: 0.5, Beta: 0.5, Gamma: 0.5}

	result, err := Multiplicative(x, 4, 4, p)
	if err != nil {
		t.Fatalf("Multiplicative failed: %v", err)
	}

	const tol = 1e-9
	for i, want := range x {
		assertAlmostEqual(t, result.Fitted[i], want, tol, "fitted")
	}
	for i, want := range []float64{10, 15, 10, 5} {
		assertAlmostEqual(t, result.Forecast[i], want, tol, "forecast")
	}
}

// With alpha=1, beta=0, gamma=0 the seasonal array and trend stay frozen at
// their seeds and the level tracks the deseasonalized observation directly:
// fitted[i+1] = (Y_i/s_seed[i%m] + b0) * s_seed[(i+1)%m].
func TestMultiplicative_NoSmoothingTracksLevel(t *testing.T) {
	x := generateSeasonalTrendSeries(24, 4)

	st, err := newMultiplicativeState(x, 4, 4, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	st.reset()
	seedS := append([]float64(nil), st.s[:4]...)
	b0 := st.trend
	if b0 == 0 {
		t.Fatal("trending series must seed a nonzero trend")
	}

	result, err := Multiplicative(x, 4, 4, &MultiplicativeParams{Alpha: 1})
	if err != nil {
		t.Fatalf("Multiplicative failed: %v", err)
	}
	for i := 0; i+1 < len(x); i++ {
		want := (x[i]/seedS[i%4] + b0) * seedS[(i+1)%4]
		assertAlmostEqual(t, result.Fitted[i+1], want, 1e-9, "fitted")
	}
}

func TestMultiplicative_OutputLengths(t *testing.T) {
	x := generateSeasonalTrendSeries(24, 4)
	p := &MultiplicativeParams{Alpha: 0.4, Beta: 0.2, Gamma: 0.3}

	result, err := Multiplicative(x, 4, 6, p)
	if err != nil {
		t.Fatalf("Multiplicative failed: %v", err)
	}
	if len(result.Forecast) != 6 {
		t.Errorf("expected 6 forecast values, got %d", len(result.Forecast))
	}
	if len(result.Fitted) != len(x) {
		t.Errorf("expected %d fitted values, got %d", len(x), len(result.Fitted))
	}
	if result.Search != nil {
		t.Error("explicit parameters must not trigger a search")
	}
}

// All-zero parameters freeze the update, so the level+trend line walks
// straight down from the seeds and crosses zero mid-run. The run must abort
// at the exact step the divisor vanishes rather than emit infinities.
func TestMultiplicative_DegenerateMidRun(t *testing.T) {
	// a0 = 4, b0 = -1: level+trend hits zero at step 3.
	x := []float64{5, 3, 3, 1}

	_, err := Multiplicative(x, 2, 2, &MultiplicativeParams{})
	var degErr *DegenerateModelError
	if !errors.As(err, &degErr) {
		t.Fatalf("expected DegenerateModelError, got %v", err)
	}
	if degErr.Step != 3 {
		t.Errorf("expected failure at step 3, got %d", degErr.Step)
	}
	if degErr.Model != "multiplicative" {
		t.Errorf("unexpected model name %q", degErr.Model)
	}
}

func TestMultiplicative_RejectsOutOfRangeParams(t *testing.T) {
	x := generateSeasonalTrendSeries(24, 4)

	for _, p := range []MultiplicativeParams{
		{Alpha: -0.1},
		{Alpha: 0.5, Beta: 1.5},
		{Alpha: 0.5, Gamma: -2},
	} {
		params := p
		_, err := Multiplicative(x, 4, 4, &params)
		var cfgErr *InvalidConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("params %+v: expected InvalidConfigurationError, got %v", p, err)
		}
	}
}

func TestMultiplicative_DeterministicAcrossCalls(t *testing.T) {
	x := generateSeasonalTrendSeries(24, 4)
	p := &MultiplicativeParams{Alpha: 0.4, Beta: 0.1, Gamma: 0.3}

	first, err := Multiplicative(x, 4, 4, p)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := Multiplicative(x, 4, 4, p)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	assertSameValues(t, second.Forecast, first.Forecast, "forecast")
	assertSameValues(t, second.Fitted, first.Fitted, "fitted")
}
