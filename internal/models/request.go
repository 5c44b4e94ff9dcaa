package models

// ForecastRequest represents the forecast request body.
//
// Smoothing parameters are optional pointers: a family runs with explicit
// parameters only when its complete set is supplied, otherwise the server
// searches for them. Supplying a partial set is a validation error.
type ForecastRequest struct {
	Values       []float64 `json:"values" validate:"required,min=4"`
	Period       int       `json:"period" validate:"required,min=2"`
	SecondPeriod int       `json:"second_period,omitempty"` // double_seasonal only, multiple of period
	Horizon      int       `json:"horizon" validate:"required,min=1"`

	Alpha           *float64 `json:"alpha,omitempty"`           // level
	Beta            *float64 `json:"beta,omitempty"`            // trend (multiplicative only)
	Gamma           *float64 `json:"gamma,omitempty"`           // seasonal
	Delta           *float64 `json:"delta,omitempty"`           // short seasonal (double_seasonal only)
	Autocorrelation *float64 `json:"autocorrelation,omitempty"` // residual correction (double_seasonal only)

	Optimizer *OptimizerOptions `json:"optimizer,omitempty"`
}

// OptimizerOptions overrides the server-side search defaults per request.
type OptimizerOptions struct {
	GridResolution int `json:"grid_resolution,omitempty"` // lattice points per axis
	MaxEvaluations int `json:"max_evaluations,omitempty"` // refinement budget
}
