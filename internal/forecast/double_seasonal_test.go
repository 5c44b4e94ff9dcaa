package forecast

import (
	"errors"
	"testing"
)

// exactPeriodic4 is a period-4 block repeated verbatim, used where hand
// computed expectations need exact inputs.
func exactPeriodic4(n int) []float64 {
	block := []float64{10, 15, 10, 5}
	out := make([]float64, n)
	for i := range out {
		out[i] = block[i%4]
	}
	return out
}

// Hand-computed first two recurrence steps for m=4, m2=8 over the exact
// periodic series, alpha=0.3, gamma=0.3, delta=0.3, autocorrelation=0.1.
//
// Seeds: a=10, s=[1, 1.5, 1, 0.5], s2=[1, 1], fitted[0]=12.
//
// Step 0 (Y=10, s_0=1, s2_0=1):
//
//	a'    = 0.3*(10-1-1) + 0.7*10          = 9.4
//	s[4]  = 0.3*(10-10-1) + 0.7*1          = 0.4
//	s2[2] = 0.3*(10-10-1) + 0.7*1          = 0.4
//	corr  = 0.1*(10-12)                    = -0.2
//	fitted[1] = 9.4 + 1.5 + 1 - 0.2        = 11.7
//
// Step 1 (Y=15, s_1=1.5, s2_1=1, a=9.4):
//
//	a'    = 0.3*(15-1-1.5) + 0.7*9.4       = 10.33
//	s[5]  = 0.3*(15-9.4-1) + 0.7*1.5       = 2.43
//	s2[3] = 0.3*(15-9.4-1.5) + 0.7*1       = 1.93
//	corr  = 0.1*(15-11.9)                  = 0.31
//	fitted[2] = 10.33 + 1 + 0.4 + 0.31     = 12.04
func TestDoubleSeasonalRecurrence_HandComputed(t *testing.T) {
	x := exactPeriodic4(16)
	p := DoubleSeasonalParams{Alpha: 0.3, Gamma: 0.3, Delta: 0.3, Autocorrelation: 0.1}

	st, err := newDoubleSeasonalState(x, 4, 8, 4, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	st.run(p)

	const tol = 1e-9
	assertAlmostEqual(t, st.fitted[0], 12, tol, "fitted[0]")
	assertAlmostEqual(t, st.fitted[1], 11.7, tol, "fitted[1]")
	assertAlmostEqual(t, st.fitted[2], 12.04, tol, "fitted[2]")
	assertAlmostEqual(t, st.s[4], 0.4, tol, "s[4]")
	assertAlmostEqual(t, st.s[5], 2.43, tol, "s[5]")
	assertAlmostEqual(t, st.s2[2], 0.4, tol, "s2[2]")
	assertAlmostEqual(t, st.s2[3], 1.93, tol, "s2[3]")
}

func TestDoubleSeasonal_OutputLengths(t *testing.T) {
	x := generateSeasonalTrendSeries(32, 4)
	p := &DoubleSeasonalParams{Alpha: 0.3, Gamma: 0.3, Delta: 0.3, Autocorrelation: 0.1}

	result, err := DoubleSeasonal(x, 4, 8, 6, p)
	if err != nil {
		t.Fatalf("DoubleSeasonal failed: %v", err)
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
	if result.DataPoints != len(x) {
		t.Errorf("expected %d data points, got %d", len(x), result.DataPoints)
	}
}

// With alpha=1 and all other parameters at zero the seasonal arrays stay
// frozen at their seeds and the level tracks raw observations with no
// smoothing lag: a' = Y_i - s2_i - s_i, fitted[i+1] = a' + s[i+1] + s2[i+1].
func TestDoubleSeasonal_NoSmoothingTracksLevel(t *testing.T) {
	x := generateSeasonalTrendSeries(24, 4)
	p := &DoubleSeasonalParams{Alpha: 1}

	st, err := newDoubleSeasonalState(x, 4, 8, 4, nil)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	st.reset()
	seedS := append([]float64(nil), st.s[:4]...)
	seedS2 := append([]float64(nil), st.s2[:2]...)

	result, err := DoubleSeasonal(x, 4, 8, 4, p)
	if err != nil {
		t.Fatalf("DoubleSeasonal failed: %v", err)
	}

	for i := 0; i+1 < len(x); i++ {
		level := x[i] - seedS2[i%2] - seedS[i%4]
		want := level + seedS[(i+1)%4] + seedS2[(i+1)%2]
		assertAlmostEqual(t, result.Fitted[i+1], want, 1e-9, "fitted")
	}
}

func TestDoubleSeasonal_RejectsOutOfRangeParams(t *testing.T) {
	x := generateSeasonalTrendSeries(24, 4)

	for _, p := range []DoubleSeasonalParams{
		{Alpha: 1.2},
		{Alpha: 0.5, Gamma: -0.1},
		{Alpha: 0.5, Autocorrelation: 2},
	} {
		params := p
		_, err := DoubleSeasonal(x, 4, 8, 4, &params)
		var cfgErr *InvalidConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("params %+v: expected InvalidConfigurationError, got %v", p, err)
		}
	}
}

func TestDoubleSeasonal_DeterministicAcrossCalls(t *testing.T) {
	x := generateSeasonalTrendSeries(32, 4)
	p := &DoubleSeasonalParams{Alpha: 0.4, Gamma: 0.2, Delta: 0.3, Autocorrelation: 0.05}

	first, err := DoubleSeasonal(x, 4, 8, 4, p)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := DoubleSeasonal(x, 4, 8, 4, p)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	assertSameValues(t, second.Forecast, first.Forecast, "forecast")
	assertSameValues(t, second.Fitted, first.Fitted, "fitted")
}

func TestDoubleSeasonal_ReturnedBetaIsZero(t *testing.T) {
	x := generateSeasonalTrendSeries(32, 4)

	result, err := DoubleSeasonalWithOptimizer(x, 4, 8, 4, nil, OptimizerConfig{
		GridResolution: 3,
		MaxEvaluations: 60,
	})
	if err != nil {
		t.Fatalf("optimized fit failed: %v", err)
	}
	if result.Params["beta"] != 0 {
		t.Errorf("trend parameter must stay pinned at zero, got %v", result.Params["beta"])
	}
	if result.Search == nil {
		t.Fatal("optimized fit must include a search report")
	}
	if result.Search.GridEvaluations != 3*3*3*3 {
		t.Errorf("expected 81 grid evaluations, got %d", result.Search.GridEvaluations)
	}
	for name, v := range result.Params {
		if v < 0 || v > 1 {
			t.Errorf("parameter %s out of bounds: %v", name, v)
		}
	}
}
