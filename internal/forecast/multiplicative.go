package forecast

// run advances the multiplicative trend+seasonal recurrence over the full
// history+horizon range. Unlike the additive family it can fail mid-run: the
// level and seasonal values are divisors, and a parameter combination that
// drives either to zero aborts the run with a DegenerateModelError.
//
// Per step i:
//
//	a'     = alpha*(Y_i / s_i)  + (1-alpha)*(a + b)
//	b'     = beta*(a' - a)      + (1-beta)*b
//	s[i+m] = gamma*(Y_i/(a+b))  + (1-gamma)*s_i
//	y[i+1] = (a' + b') * s[i+1]
//
// Beyond observed history Y_i is the previous step's level+trend scaled by
// the seasonal value at the current phase.
func (st *multiplicativeState) run(p MultiplicativeParams) error {
	st.reset()
	a, b := st.level, st.trend
	steps := st.n + st.fc

	for i := 0; i < steps; i++ {
		if i >= st.n {
			st.y[i] = st.feedback(i, a, b)
		}
		yi := st.y[i]
		si := st.s[i]
		ab := a + b

		if nearZero(si) {
			return &DegenerateModelError{Model: "multiplicative", Step: i, Reason: "seasonal value reached zero"}
		}
		if nearZero(ab) {
			return &DegenerateModelError{Model: "multiplicative", Step: i, Reason: "level plus trend reached zero"}
		}

		next := p.Alpha*(yi/si) + (1-p.Alpha)*ab
		bNext := p.Beta*(next-a) + (1-p.Beta)*b
		st.s[i+st.m] = p.Gamma*(yi/ab) + (1-p.Gamma)*si
		st.fitted[i+1] = (next + bNext) * st.s[i+1]

		a, b = next, bNext
	}
	st.level, st.trend = a, b
	return nil
}

// feedback builds the pseudo-observation beyond observed history: the last
// full seasonal cycle scaled by the level and trend carried out of the
// previous step.
func (st *multiplicativeState) feedback(i int, level, trend float64) float64 {
	return (level + trend) * st.s[i]
}

func (p MultiplicativeParams) validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"alpha", p.Alpha},
		{"beta", p.Beta},
		{"gamma", p.Gamma},
	} {
		if v.val < 0 || v.val > 1 {
			return &InvalidConfigurationError{Field: v.name, Reason: "must lie in [0,1]"}
		}
	}
	return nil
}

func (p MultiplicativeParams) asMap() map[string]float64 {
	return map[string]float64{
		"alpha": p.Alpha,
		"beta":  p.Beta,
		"gamma": p.Gamma,
	}
}

// Multiplicative fits and runs the multiplicative trend+seasonal model.
// When params is nil all smoothing parameters are obtained from the
// two-stage optimizer with default settings, holding out the last horizon
// observations; the final run always covers the full series.
func Multiplicative(x []float64, m, horizon int, params *MultiplicativeParams) (*Result, error) {
	return MultiplicativeWithOptimizer(x, m, horizon, params, OptimizerConfig{})
}

// MultiplicativeWithOptimizer is Multiplicative with explicit optimizer
// settings. Zero fields in opt fall back to defaults.
func MultiplicativeWithOptimizer(x []float64, m, horizon int, params *MultiplicativeParams, opt OptimizerConfig) (*Result, error) {
	var report *SearchReport

	if params == nil {
		fitted, rep, err := optimizeMultiplicative(x, m, horizon, opt)
		if err != nil {
			return nil, err
		}
		params = &fitted
		report = rep
	} else if err := params.validate(); err != nil {
		return nil, err
	}

	st, err := newMultiplicativeState(x, m, horizon, nil)
	if err != nil {
		return nil, err
	}
	if err := st.run(*params); err != nil {
		return nil, err
	}

	result := &Result{
		Forecast: st.forecastValues(),
		Fitted:   st.fittedValues(),
		Params:   params.asMap(),
		Search:   report,
	}
	result.diagnose(x)
	return result, nil
}

// multiplicativeModel adapts the facade to the registry interface.
type multiplicativeModel struct{}

func init() {
	RegisterModel("multiplicative", &multiplicativeModel{})
}

func (m *multiplicativeModel) Name() string {
	return "multiplicative"
}

func (m *multiplicativeModel) Forecast(x []float64, cfg Config) (*Result, error) {
	return MultiplicativeWithOptimizer(x, cfg.Period, cfg.Horizon, cfg.Multiplicative, cfg.Optimizer)
}
