package handlers

import (
	"github.com/soltixdb/seasonal/internal/config"
	"github.com/soltixdb/seasonal/internal/logging"
	"github.com/soltixdb/seasonal/internal/services"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

// Handler contains all HTTP handlers
type Handler struct {
	logger          *logging.Logger
	forecastService *services.ForecastService
}

// New creates a new handler instance
func New(logger *logging.Logger, cfg config.ForecastConfig) *Handler {
	return &Handler{
		logger:          logger,
		forecastService: services.NewForecastService(logger, cfg),
	}
}
