package forecast

import "math"

// objectiveWeights combine the in-sample and out-of-sample mean squared
// errors. The defaults (2 and 3) deliberately bias parameter selection toward
// out-of-sample accuracy.
type objectiveWeights struct {
	inSample float64
	holdout  float64
}

func meanSquaredError(predicted, actual []float64) float64 {
	if len(predicted) == 0 {
		return 0
	}
	sum := 0.0
	for i := range predicted {
		d := predicted[i] - actual[i]
		sum += d * d
	}
	return sum / float64(len(predicted))
}

// score combines both error terms; NaN collapses to +Inf so a blown-up run
// loses to every finite candidate instead of poisoning comparisons.
func score(fitted, observed, forecast, holdout []float64, w objectiveWeights) float64 {
	v := w.inSample*meanSquaredError(fitted, observed) + w.holdout*meanSquaredError(forecast, holdout)
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

// objective runs the engine once with the given parameters and scores the
// result. The state's buffers are reused run to run; reset plus the
// write-before-read discipline of the recurrence keeps runs independent.
func (st *doubleSeasonalState) objective(p DoubleSeasonalParams, w objectiveWeights) float64 {
	st.run(p)
	return score(st.fitted[:st.n], st.y[:st.n], st.y[st.n:], st.test, w)
}

// objective for the multiplicative family; a degenerate run scores +Inf so
// the surrounding search continues past the bad parameter combination.
func (st *multiplicativeState) objective(p MultiplicativeParams, w objectiveWeights) float64 {
	if err := st.run(p); err != nil {
		return math.Inf(1)
	}
	return score(st.fitted[:st.n], st.y[:st.n], st.y[st.n:], st.test, w)
}
