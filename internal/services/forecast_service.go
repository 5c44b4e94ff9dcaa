package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/soltixdb/seasonal/internal/config"
	"github.com/soltixdb/seasonal/internal/forecast"
	"github.com/soltixdb/seasonal/internal/logging"
	"github.com/soltixdb/seasonal/internal/models"
)

// ForecastService handles forecasting business logic
type ForecastService struct {
	logger *logging.Logger
	cfg    config.ForecastConfig
}

// NewForecastService creates a new ForecastService
func NewForecastService(logger *logging.Logger, cfg config.ForecastConfig) *ForecastService {
	return &ForecastService{
		logger: logger,
		cfg:    cfg,
	}
}

// ListModels returns the registered model family names, sorted.
func (s *ForecastService) ListModels() []string {
	names := forecast.ListModels()
	sort.Strings(names)
	return names
}

// Execute validates the request, runs the named model family and shapes the
// response. Engine errors are translated into stable service error codes.
func (s *ForecastService) Execute(ctx context.Context, modelName string, req *models.ForecastRequest) (*models.ForecastResponse, error) {
	startExec := time.Now()

	model, err := forecast.GetModel(modelName)
	if err != nil {
		return nil, &ServiceError{
			Code:    CodeInvalidModel,
			Message: err.Error(),
			Details: map[string]interface{}{
				"available_models": s.ListModels(),
			},
		}
	}

	if err := s.validateSeries(req); err != nil {
		return nil, err
	}

	cfg, err := s.buildConfig(modelName, req)
	if err != nil {
		return nil, err
	}

	result, err := model.Forecast(req.Values, cfg)
	if err != nil {
		return nil, translateEngineError(err)
	}

	latency := time.Since(startExec)
	logging.InfoCtx(ctx, "Forecast completed",
		"model", modelName,
		"points", len(req.Values),
		"horizon", req.Horizon,
		"fitted_params", result.Search != nil,
		"latency_ms", latency.Milliseconds())

	resp := &models.ForecastResponse{
		Model:        modelName,
		Period:       req.Period,
		SecondPeriod: req.SecondPeriod,
		Horizon:      req.Horizon,
		Forecast:     result.Forecast,
		Fitted:       result.Fitted,
		Parameters:   result.Params,
		MAPE:         result.MAPE,
		MAE:          result.MAE,
		RMSE:         result.RMSE,
		DataPoints:   result.DataPoints,
	}
	if result.Search != nil {
		resp.Search = &models.SearchInfo{
			GridEvaluations:   result.Search.GridEvaluations,
			RefineEvaluations: result.Search.RefineEvaluations,
			Converged:         result.Search.Converged,
			Objective:         result.Search.Objective,
		}
	}
	return resp, nil
}

// validateSeries enforces the server-wide request bounds.
func (s *ForecastService) validateSeries(req *models.ForecastRequest) error {
	if len(req.Values) == 0 {
		return NewServiceError(CodeInvalidSeries, "values are required")
	}

	if len(req.Values) > s.cfg.MaxSeriesLength {
		return NewServiceErrorWithDetails(CodeInvalidSeries,
			fmt.Sprintf("series exceeds the maximum length of %d points", s.cfg.MaxSeriesLength),
			map[string]interface{}{"length": len(req.Values)})
	}

	if req.Horizon > s.cfg.MaxHorizon {
		return NewServiceErrorWithDetails(CodeInvalidConfiguration,
			fmt.Sprintf("horizon exceeds the maximum of %d", s.cfg.MaxHorizon),
			map[string]interface{}{"horizon": req.Horizon})
	}

	return nil
}

// buildConfig assembles the engine configuration. Explicit smoothing
// parameters are used only when the family's complete set is present;
// a partial set is rejected rather than silently mixed with fitted values.
func (s *ForecastService) buildConfig(modelName string, req *models.ForecastRequest) (forecast.Config, error) {
	cfg := forecast.Config{
		Horizon:      req.Horizon,
		Period:       req.Period,
		SecondPeriod: req.SecondPeriod,
		Optimizer: forecast.OptimizerConfig{
			GridResolution: s.cfg.Optimizer.GridResolution,
			MaxEvaluations: s.cfg.Optimizer.MaxEvaluations,
			Workers:        s.cfg.Optimizer.Workers,
			InSampleWeight: s.cfg.Optimizer.InSampleWeight,
			HoldoutWeight:  s.cfg.Optimizer.HoldoutWeight,
		},
	}

	if req.Optimizer != nil {
		if req.Optimizer.GridResolution > 0 {
			cfg.Optimizer.GridResolution = req.Optimizer.GridResolution
		}
		if req.Optimizer.MaxEvaluations > 0 {
			cfg.Optimizer.MaxEvaluations = req.Optimizer.MaxEvaluations
		}
	}

	switch modelName {
	case "double_seasonal":
		given, total := countGiven(req.Alpha, req.Gamma, req.Delta, req.Autocorrelation)
		if given == total {
			cfg.DoubleSeasonal = &forecast.DoubleSeasonalParams{
				Alpha:           *req.Alpha,
				Gamma:           *req.Gamma,
				Delta:           *req.Delta,
				Autocorrelation: *req.Autocorrelation,
			}
		} else if given != 0 {
			return cfg, NewServiceError(CodeInvalidConfiguration,
				"supply alpha, gamma, delta and autocorrelation together, or none of them")
		}
	case "multiplicative":
		given, total := countGiven(req.Alpha, req.Beta, req.Gamma)
		if given == total {
			cfg.Multiplicative = &forecast.MultiplicativeParams{
				Alpha: *req.Alpha,
				Beta:  *req.Beta,
				Gamma: *req.Gamma,
			}
		} else if given != 0 {
			return cfg, NewServiceError(CodeInvalidConfiguration,
				"supply alpha, beta and gamma together, or none of them")
		}
	}

	return cfg, nil
}

func countGiven(params ...*float64) (given, total int) {
	for _, p := range params {
		if p != nil {
			given++
		}
	}
	return given, len(params)
}

// translateEngineError maps engine error types onto stable service codes.
func translateEngineError(err error) *ServiceError {
	var cfgErr *forecast.InvalidConfigurationError
	if errors.As(err, &cfgErr) {
		return NewServiceErrorWithDetails(CodeInvalidConfiguration, cfgErr.Error(),
			map[string]interface{}{"field": cfgErr.Field})
	}

	var degErr *forecast.DegenerateModelError
	if errors.As(err, &degErr) {
		details := map[string]interface{}{"model": degErr.Model}
		if degErr.Step >= 0 {
			details["step"] = degErr.Step
		}
		return NewServiceErrorWithDetails(CodeDegenerateModel, degErr.Error(), details)
	}

	return NewServiceError(CodeForecastFailed, err.Error())
}
