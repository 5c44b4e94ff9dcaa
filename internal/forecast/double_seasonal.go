package forecast

// run advances the double-seasonal additive recurrence over the full
// history+horizon range, mutating the state buffers in place.
//
// Per step i the update equations are
//
//	a'      = alpha*(Y_i - s2_i - s_i)   + (1-alpha)*a
//	s[i+m]  = delta*(Y_i - a - s2_i)     + (1-delta)*s_i
//	s2[i+k] = gamma*(Y_i - a - s_i)      + (1-gamma)*s2_i    (k = m2/m)
//	corr    = autocorrelation*(Y_i - (a + s_i + s2_i))
//	y[i+1]  = a' + s[i+1] + s2[i+1] + corr
//
// Once i passes the observed history, Y_i is the model's own projection from
// the state as it stood at the end of the previous step, without the
// autocorrelation term. Beta (trend) is fixed at zero for this family and
// does not appear in the recurrence.
func (st *doubleSeasonalState) run(p DoubleSeasonalParams) {
	st.reset()
	a := st.level
	steps := st.n + st.fc

	for i := 0; i < steps; i++ {
		if i >= st.n {
			st.y[i] = st.feedback(i, a)
		}
		yi := st.y[i]
		si := st.s[i]
		s2i := st.s2[i]

		next := p.Alpha*(yi-s2i-si) + (1-p.Alpha)*a
		st.s[i+st.m] = p.Delta*(yi-a-s2i) + (1-p.Delta)*si
		st.s2[i+st.stride] = p.Gamma*(yi-a-si) + (1-p.Gamma)*s2i

		corr := p.Autocorrelation * (yi - (a + si + s2i))
		st.fitted[i+1] = next + st.s[i+1] + st.s2[i+1] + corr

		a = next
	}
	st.level = a
}

// feedback builds the pseudo-observation for a step beyond observed history:
// the carried level plus the seasonal values one full cycle back. The short
// cycle reads its current phase slot, the long cycle reads one m2 span behind
// its next write position.
func (st *doubleSeasonalState) feedback(i int, level float64) float64 {
	return level + st.s[i] + st.s2[i+st.stride-st.m2]
}

// validate rejects parameters outside the unit interval. The recurrence
// itself never checks bounds; values outside [0,1] diverge numerically.
func (p DoubleSeasonalParams) validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"alpha", p.Alpha},
		{"beta", p.Beta},
		{"gamma", p.Gamma},
		{"delta", p.Delta},
		{"autocorrelation", p.Autocorrelation},
	} {
		if v.val < 0 || v.val > 1 {
			return &InvalidConfigurationError{Field: v.name, Reason: "must lie in [0,1]"}
		}
	}
	return nil
}

func (p DoubleSeasonalParams) asMap() map[string]float64 {
	return map[string]float64{
		"alpha":           p.Alpha,
		"beta":            p.Beta,
		"gamma":           p.Gamma,
		"delta":           p.Delta,
		"autocorrelation": p.Autocorrelation,
	}
}

// DoubleSeasonal fits and runs the double-seasonal additive model.
// When params is nil all smoothing parameters are obtained from the
// two-stage optimizer with default settings, holding out the last horizon
// observations; the final run always covers the full series.
func DoubleSeasonal(x []float64, m, m2, horizon int, params *DoubleSeasonalParams) (*Result, error) {
	return DoubleSeasonalWithOptimizer(x, m, m2, horizon, params, OptimizerConfig{})
}

// DoubleSeasonalWithOptimizer is DoubleSeasonal with explicit optimizer
// settings. Zero fields in opt fall back to defaults.
func DoubleSeasonalWithOptimizer(x []float64, m, m2, horizon int, params *DoubleSeasonalParams, opt OptimizerConfig) (*Result, error) {
	var report *SearchReport

	if params == nil {
		fitted, rep, err := optimizeDoubleSeasonal(x, m, m2, horizon, opt)
		if err != nil {
			return nil, err
		}
		params = &fitted
		report = rep
	} else if err := params.validate(); err != nil {
		return nil, err
	}

	st, err := newDoubleSeasonalState(x, m, m2, horizon, nil)
	if err != nil {
		return nil, err
	}
	st.run(*params)

	result := &Result{
		Forecast: st.forecastValues(),
		Fitted:   st.fittedValues(),
		Params:   params.asMap(),
		Search:   report,
	}
	result.diagnose(x)
	return result, nil
}

// doubleSeasonalModel adapts the facade to the registry interface.
type doubleSeasonalModel struct{}

func init() {
	RegisterModel("double_seasonal", &doubleSeasonalModel{})
}

func (m *doubleSeasonalModel) Name() string {
	return "double_seasonal"
}

func (m *doubleSeasonalModel) Forecast(x []float64, cfg Config) (*Result, error) {
	return DoubleSeasonalWithOptimizer(x, cfg.Period, cfg.SecondPeriod, cfg.Horizon, cfg.DoubleSeasonal, cfg.Optimizer)
}
