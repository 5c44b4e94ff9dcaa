package forecast

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// Defaults for the two-stage parameter search.
const (
	defaultGridResolution = 9    // lattice points per axis over [0,1]
	defaultRefineBudget   = 2000 // objective-call budget for the local stage
	defaultInSampleWeight = 2
	defaultHoldoutWeight  = 3

	refineTolerance = 1e-10
	boundaryPenalty = 1e6
)

// OptimizerConfig tunes the two-stage parameter search. Zero values fall
// back to defaults.
//
// The grid stage is exhaustive: GridResolution^k engine runs (k = 4 for
// double-seasonal, 3 for multiplicative). The exponential growth with k is a
// property of the search, not an accident; GridResolution is the knob that
// trades accuracy against cost.
type OptimizerConfig struct {
	GridResolution int     // points per axis, default 9
	MaxEvaluations int     // refinement budget, default 2000
	Workers        int     // parallel grid workers, default GOMAXPROCS
	InSampleWeight float64 // weight of the in-sample MSE term, default 2
	HoldoutWeight  float64 // weight of the out-of-sample MSE term, default 3
}

func (c *OptimizerConfig) applyDefaults() {
	if c.GridResolution < 2 {
		c.GridResolution = defaultGridResolution
	}
	if c.MaxEvaluations <= 0 {
		c.MaxEvaluations = defaultRefineBudget
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.InSampleWeight <= 0 {
		c.InSampleWeight = defaultInSampleWeight
	}
	if c.HoldoutWeight <= 0 {
		c.HoldoutWeight = defaultHoldoutWeight
	}
}

// evalFactory builds an isolated objective evaluator over the unit
// hypercube. Every call returns an evaluator backed by its own engine state,
// so concurrent grid workers never share mutable buffers.
type evalFactory func() (func(v []float64) float64, error)

// optimizeDoubleSeasonal searches alpha, gamma, delta and autocorrelation
// over [0,1]^4; beta (trend) is pinned at zero and excluded from the search.
// The last fc observations are held out, so the series must cover one full
// second cycle plus the horizon.
func optimizeDoubleSeasonal(x []float64, m, m2, fc int, cfg OptimizerConfig) (DoubleSeasonalParams, *SearchReport, error) {
	cfg.applyDefaults()
	if len(x) < m2+fc {
		return DoubleSeasonalParams{}, nil, &InvalidConfigurationError{
			Field:  "series",
			Reason: "too short to hold out the horizon and still cover one second seasonal cycle",
		}
	}

	train, holdout := x[:len(x)-fc], x[len(x)-fc:]
	w := objectiveWeights{inSample: cfg.InSampleWeight, holdout: cfg.HoldoutWeight}
	factory := evalFactory(func() (func([]float64) float64, error) {
		st, err := newDoubleSeasonalState(train, m, m2, fc, holdout)
		if err != nil {
			return nil, err
		}
		return func(v []float64) float64 {
			p := DoubleSeasonalParams{Alpha: v[0], Gamma: v[1], Delta: v[2], Autocorrelation: v[3]}
			return st.objective(p, w)
		}, nil
	})

	point, report, err := search(factory, 4, cfg)
	if err != nil {
		return DoubleSeasonalParams{}, nil, err
	}
	p := DoubleSeasonalParams{Alpha: point[0], Gamma: point[1], Delta: point[2], Autocorrelation: point[3]}
	return p, report, nil
}

// optimizeMultiplicative searches alpha, beta and gamma over [0,1]^3, holding
// out the last fc observations.
func optimizeMultiplicative(x []float64, m, fc int, cfg OptimizerConfig) (MultiplicativeParams, *SearchReport, error) {
	cfg.applyDefaults()
	if len(x) < 2*m+fc {
		return MultiplicativeParams{}, nil, &InvalidConfigurationError{
			Field:  "series",
			Reason: "too short to hold out the horizon and still cover two seasonal cycles",
		}
	}

	train, holdout := x[:len(x)-fc], x[len(x)-fc:]
	w := objectiveWeights{inSample: cfg.InSampleWeight, holdout: cfg.HoldoutWeight}
	factory := evalFactory(func() (func([]float64) float64, error) {
		st, err := newMultiplicativeState(train, m, fc, holdout)
		if err != nil {
			return nil, err
		}
		return func(v []float64) float64 {
			p := MultiplicativeParams{Alpha: v[0], Beta: v[1], Gamma: v[2]}
			return st.objective(p, w)
		}, nil
	})

	point, report, err := search(factory, 3, cfg)
	if err != nil {
		return MultiplicativeParams{}, nil, err
	}
	p := MultiplicativeParams{Alpha: point[0], Beta: point[1], Gamma: point[2]}
	return p, report, nil
}

// search runs both stages. The refined point is adopted only when it scores
// strictly better than the grid optimum, so the two-stage result never
// regresses past stage one.
func search(factory evalFactory, dim int, cfg OptimizerConfig) ([]float64, *SearchReport, error) {
	gridPoint, gridValue, gridEvals, err := gridSearch(factory, dim, cfg)
	if err != nil {
		return nil, nil, err
	}

	eval, err := factory()
	if err != nil {
		return nil, nil, err
	}
	point, value, refineEvals, converged := refine(eval, gridPoint, gridValue, cfg)

	report := &SearchReport{
		GridEvaluations:   gridEvals,
		RefineEvaluations: refineEvals,
		Converged:         converged,
		Objective:         value,
	}
	return point, report, nil
}

// gridSearch evaluates the objective at every point of a uniform lattice
// over [0,1]^dim and returns the minimum. Workers partition the flat index
// space in order and each owns a private engine state; the reduction keeps
// the first minimum in index order, so the result does not depend on the
// worker count.
func gridSearch(factory evalFactory, dim int, cfg OptimizerConfig) ([]float64, float64, int, error) {
	axis := make([]float64, cfg.GridResolution)
	floats.Span(axis, 0, 1)

	total := 1
	for i := 0; i < dim; i++ {
		total *= len(axis)
	}

	workers := min(cfg.Workers, total)
	evals := make([]func([]float64) float64, workers)
	for i := range evals {
		eval, err := factory()
		if err != nil {
			return nil, 0, 0, err
		}
		evals[i] = eval
	}

	type stageBest struct {
		point []float64
		value float64
	}
	bests := make([]stageBest, workers)
	chunk := (total + workers - 1) / workers

	var wg sync.WaitGroup
	for wk := 0; wk < workers; wk++ {
		start := wk * chunk
		end := min(start+chunk, total)
		wg.Add(1)
		go func(wk, start, end int) {
			defer wg.Done()
			eval := evals[wk]
			point := make([]float64, dim)
			best := stageBest{value: math.Inf(1)}
			for idx := start; idx < end; idx++ {
				decodeGridIndex(idx, axis, point)
				if v := eval(point); v < best.value {
					best.value = v
					best.point = append(best.point[:0], point...)
				}
			}
			bests[wk] = best
		}(wk, start, end)
	}
	wg.Wait()

	best := bests[0]
	for _, b := range bests[1:] {
		if b.point != nil && (best.point == nil || b.value < best.value) {
			best = b
		}
	}
	if best.point == nil {
		// Every grid point scored +Inf; hand the refinement stage the origin.
		best.point = make([]float64, dim)
	}
	return best.point, best.value, total, nil
}

// decodeGridIndex maps a flat lattice index to coordinates, least
// significant axis first.
func decodeGridIndex(idx int, axis, point []float64) {
	for i := range point {
		point[i] = axis[idx%len(axis)]
		idx /= len(axis)
	}
}

// refine polishes the grid optimum with L-BFGS over numerically approximated
// gradients. The [0,1] box is enforced by evaluating at the clamped point
// plus a quadratic penalty on the violation, which pushes the line search
// back inside. Exhausting the evaluation budget is not an error: the best
// point found so far is returned with converged=false.
func refine(eval func([]float64) float64, start []float64, startValue float64, cfg OptimizerConfig) ([]float64, float64, int, bool) {
	calls := 0
	boxed := func(v []float64) float64 {
		calls++
		clamped := make([]float64, len(v))
		penalty := 0.0
		for i, val := range v {
			c := math.Min(1, math.Max(0, val))
			d := val - c
			penalty += d * d
			clamped[i] = c
		}
		return eval(clamped) + boundaryPenalty*penalty
	}

	problem := optimize.Problem{
		Func: boxed,
		Grad: func(grad, v []float64) {
			fd.Gradient(grad, boxed, v, nil)
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: cfg.MaxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   refineTolerance,
			Iterations: 20,
		},
	}

	initial := append([]float64(nil), start...)
	result, err := optimize.Minimize(problem, initial, settings, &optimize.LBFGS{})
	if err != nil || result == nil {
		// A line-search failure leaves the grid optimum standing.
		return append([]float64(nil), start...), startValue, calls, false
	}
	converged := result.Status != optimize.FunctionEvaluationLimit &&
		result.Status != optimize.IterationLimit

	point := make([]float64, len(result.X))
	for i, v := range result.X {
		point[i] = math.Min(1, math.Max(0, v))
	}
	calls++
	if value := eval(point); value < startValue {
		return point, value, calls, converged
	}
	return append([]float64(nil), start...), startValue, calls, converged
}
