// Package forecast fits and evaluates exponential-smoothing forecasting
// models for seasonal time series. Two model families are provided: a
// double-seasonal additive model with two nested seasonal cycles and an
// autocorrelation correction, and a multiplicative model with trend and a
// single seasonal cycle. When smoothing parameters are not supplied the
// package discovers them with a two-stage search: an exhaustive coarse grid
// over the unit hypercube followed by a bounded quasi-Newton refinement.
package forecast

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Model is the interface implemented by every forecasting model family.
type Model interface {
	// Name returns the model family name used for registry lookup.
	Name() string
	// Forecast fits (if needed) and runs the model over the series.
	Forecast(x []float64, cfg Config) (*Result, error)
}

// Config holds per-request settings shared by all model families.
type Config struct {
	Horizon      int // number of steps to forecast, >= 1
	Period       int // first seasonal period m
	SecondPeriod int // second seasonal period m2, double-seasonal only

	// Explicit smoothing parameters. When the family's parameter set is nil
	// the model obtains all parameters from the optimizer.
	DoubleSeasonal *DoubleSeasonalParams
	Multiplicative *MultiplicativeParams

	Optimizer OptimizerConfig
}

// DoubleSeasonalParams are the smoothing parameters of the double-seasonal
// additive model. Beta is the trend parameter, fixed at zero for this family;
// it is carried so returned parameter sets are complete.
type DoubleSeasonalParams struct {
	Alpha           float64 // level
	Beta            float64 // trend, always 0
	Gamma           float64 // second (long) seasonal cycle
	Delta           float64 // first (short) seasonal cycle
	Autocorrelation float64 // residual correction
}

// MultiplicativeParams are the smoothing parameters of the multiplicative
// trend + single-seasonal model.
type MultiplicativeParams struct {
	Alpha float64 // level
	Beta  float64 // trend
	Gamma float64 // seasonal cycle
}

// Result contains the forecast, the in-sample reconstruction and fit
// diagnostics for one model run.
type Result struct {
	Forecast []float64          `json:"forecast"`
	Fitted   []float64          `json:"fitted"`
	Params   map[string]float64 `json:"parameters"`
	Search   *SearchReport      `json:"search,omitempty"` // nil when parameters were supplied

	MAPE       float64 `json:"mape"`
	MAE        float64 `json:"mae"`
	RMSE       float64 `json:"rmse"`
	DataPoints int     `json:"data_points"`
}

// SearchReport describes one two-stage parameter search.
type SearchReport struct {
	GridEvaluations   int     `json:"grid_evaluations"`
	RefineEvaluations int     `json:"refine_evaluations"`
	Converged         bool    `json:"converged"` // refinement reached tolerance within budget
	Objective         float64 `json:"objective"`
}

// Registry of model families, keyed by name.
var modelRegistry = make(map[string]Model)

// RegisterModel adds a model family to the registry.
func RegisterModel(name string, model Model) {
	modelRegistry[name] = model
}

// GetModel returns a registered model family by name.
func GetModel(name string) (Model, error) {
	if model, ok := modelRegistry[name]; ok {
		return model, nil
	}
	return nil, fmt.Errorf("unknown model: %s", name)
}

// ListModels returns the names of all registered model families.
func ListModels() []string {
	names := make([]string, 0, len(modelRegistry))
	for name := range modelRegistry {
		names = append(names, name)
	}
	return names
}

// CalculateMAPE returns the mean absolute percentage error, skipping points
// where the actual value is zero.
func CalculateMAPE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	count := 0
	for i := range actual {
		if actual[i] != 0 {
			sum += math.Abs((actual[i] - predicted[i]) / actual[i])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return (sum / float64(count)) * 100
}

// CalculateMAE returns the mean absolute error.
func CalculateMAE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}
	return floats.Distance(actual, predicted, 1) / float64(len(actual))
}

// CalculateRMSE returns the root mean squared error.
func CalculateRMSE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}
	return floats.Distance(actual, predicted, 2) / math.Sqrt(float64(len(actual)))
}

// diagnose fills a Result's fit diagnostics against the observed series.
func (r *Result) diagnose(observed []float64) {
	r.MAPE = CalculateMAPE(observed, r.Fitted)
	r.MAE = CalculateMAE(observed, r.Fitted)
	r.RMSE = CalculateRMSE(observed, r.Fitted)
	r.DataPoints = len(observed)
}
