package forecast

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// doubleSeasonalState owns the buffers for one double-seasonal engine
// instance. All buffers are sized at construction; a run never reallocates.
// The observed segment y[:n] is read-only after construction, y[n:] is the
// feedback segment the recurrence fills once history is exhausted.
type doubleSeasonalState struct {
	n      int // observed history length
	m      int // first seasonal period
	m2     int // second seasonal period, multiple of m
	fc     int // forecast horizon
	stride int // m2 / m: seed length and write offset of the second cycle

	y      []float64 // observed history + forecast feedback, len n+fc
	s      []float64 // first seasonal cycle, len n+fc+m
	s2     []float64 // second seasonal cycle, len n+fc+stride
	fitted []float64 // one-step-ahead reconstruction, len n+fc+1
	test   []float64 // holdout aligned with the horizon, len fc, zero if absent

	level float64
}

func newDoubleSeasonalState(x []float64, m, m2, fc int, holdout []float64) (*doubleSeasonalState, error) {
	if m < 2 {
		return nil, &InvalidConfigurationError{Field: "period", Reason: "must be at least 2"}
	}
	if m2 <= m || m2%m != 0 {
		return nil, &InvalidConfigurationError{Field: "second_period", Reason: "must be a larger multiple of the first period"}
	}
	if fc < 1 {
		return nil, &InvalidConfigurationError{Field: "horizon", Reason: "must be at least 1"}
	}
	if len(x) < m2 {
		return nil, &InvalidConfigurationError{Field: "series", Reason: "must cover at least one full second seasonal cycle"}
	}
	if holdout != nil && len(holdout) != fc {
		return nil, &InvalidConfigurationError{Field: "holdout", Reason: "length must equal the horizon"}
	}

	if nearZero(stat.Mean(x[:m], nil)) {
		return nil, &DegenerateModelError{Model: "double_seasonal", Step: -1, Reason: "seed level is zero, seasonal ratios undefined"}
	}

	n := len(x)
	steps := n + fc
	stride := m2 / m
	st := &doubleSeasonalState{
		n:      n,
		m:      m,
		m2:     m2,
		fc:     fc,
		stride: stride,
		y:      make([]float64, steps),
		s:      make([]float64, steps+m),
		s2:     make([]float64, steps+stride),
		fitted: make([]float64, steps+1),
		test:   make([]float64, fc),
	}
	copy(st.y, x)
	copy(st.test, holdout)
	return st, nil
}

// reset reseeds the level and the seasonal seed slots. Together with the
// recurrence, which writes every remaining slot before reading it, this makes
// repeated runs on one state independent of each other.
func (st *doubleSeasonalState) reset() {
	a := stat.Mean(st.y[:st.m], nil)
	st.level = a
	for i := 0; i < st.m; i++ {
		st.s[i] = st.y[i] / a
	}
	for j := 0; j < st.stride; j++ {
		st.s2[j] = st.y[j*st.m] / a
	}
	st.fitted[0] = a + st.s[0] + st.s2[0]
}

// forecastValues copies out the feedback segment: the model's projections
// beyond observed history.
func (st *doubleSeasonalState) forecastValues() []float64 {
	out := make([]float64, st.fc)
	copy(out, st.y[st.n:])
	return out
}

// fittedValues copies out the one-step-ahead reconstruction of the observed
// range, dropping the forecast-horizon tail.
func (st *doubleSeasonalState) fittedValues() []float64 {
	out := make([]float64, st.n)
	copy(out, st.fitted[:st.n])
	return out
}

// multiplicativeState owns the buffers for one multiplicative engine
// instance. Layout mirrors doubleSeasonalState with a single seasonal cycle
// plus a trend scalar.
type multiplicativeState struct {
	n  int
	m  int
	fc int

	y      []float64 // observed history + forecast feedback, len n+fc
	s      []float64 // seasonal cycle, len n+fc+m
	fitted []float64 // one-step-ahead reconstruction, len n+fc+1
	test   []float64 // holdout aligned with the horizon, len fc, zero if absent

	level float64
	trend float64
}

func newMultiplicativeState(x []float64, m, fc int, holdout []float64) (*multiplicativeState, error) {
	if m < 2 {
		return nil, &InvalidConfigurationError{Field: "period", Reason: "must be at least 2"}
	}
	if fc < 1 {
		return nil, &InvalidConfigurationError{Field: "horizon", Reason: "must be at least 1"}
	}
	if len(x) < 2*m {
		return nil, &InvalidConfigurationError{Field: "series", Reason: "must cover at least two full seasonal cycles"}
	}
	if holdout != nil && len(holdout) != fc {
		return nil, &InvalidConfigurationError{Field: "holdout", Reason: "length must equal the horizon"}
	}

	// The model divides by the level and by every seeded seasonal ratio, so
	// a zero anywhere in the first cycle makes the recurrence undefined.
	if nearZero(stat.Mean(x[:m], nil)) {
		return nil, &DegenerateModelError{Model: "multiplicative", Step: -1, Reason: "seed level is zero"}
	}
	for i := 0; i < m; i++ {
		if nearZero(x[i]) {
			return nil, &DegenerateModelError{Model: "multiplicative", Step: -1, Reason: "zero observation inside the first seasonal cycle"}
		}
	}

	n := len(x)
	steps := n + fc
	st := &multiplicativeState{
		n:      n,
		m:      m,
		fc:     fc,
		y:      make([]float64, steps),
		s:      make([]float64, steps+m),
		fitted: make([]float64, steps+1),
		test:   make([]float64, fc),
	}
	copy(st.y, x)
	copy(st.test, holdout)
	return st, nil
}

// reset reseeds level, trend and the seasonal seed slots. The trend seed is
// the average per-step change between the first two seasonal blocks.
func (st *multiplicativeState) reset() {
	a := stat.Mean(st.y[:st.m], nil)
	st.level = a
	st.trend = (floats.Sum(st.y[st.m:2*st.m]) - floats.Sum(st.y[:st.m])) / float64(st.m*st.m)
	for i := 0; i < st.m; i++ {
		st.s[i] = st.y[i] / a
	}
	st.fitted[0] = (st.level + st.trend) * st.s[0]
}

func (st *multiplicativeState) forecastValues() []float64 {
	out := make([]float64, st.fc)
	copy(out, st.y[st.n:])
	return out
}

func (st *multiplicativeState) fittedValues() []float64 {
	out := make([]float64, st.n)
	copy(out, st.fitted[:st.n])
	return out
}
