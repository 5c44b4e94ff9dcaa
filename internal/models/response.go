package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ForecastResponse represents a completed forecast
type ForecastResponse struct {
	Model        string  `json:"model"`
	Period       int     `json:"period"`
	SecondPeriod int     `json:"second_period,omitempty"`
	Horizon      int     `json:"horizon"`

	Forecast   []float64          `json:"forecast"`
	Fitted     []float64          `json:"fitted"`
	Parameters map[string]float64 `json:"parameters"`
	Search     *SearchInfo        `json:"search,omitempty"` // present when parameters were fitted

	MAPE       float64 `json:"mape"`
	MAE        float64 `json:"mae"`
	RMSE       float64 `json:"rmse"`
	DataPoints int     `json:"data_points"`
}

// SearchInfo describes the parameter search that produced the fit
type SearchInfo struct {
	GridEvaluations   int     `json:"grid_evaluations"`
	RefineEvaluations int     `json:"refine_evaluations"`
	Converged         bool    `json:"converged"`
	Objective         float64 `json:"objective"`
}

// ModelListResponse represents list models response
type ModelListResponse struct {
	Models []string `json:"models"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
