package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/seasonal/internal/models"
)

// ForecastPost handles forecast requests
// POST /v1/forecast/:model
func (h *Handler) ForecastPost(c *fiber.Ctx) error {
	modelName := c.Params("model")

	var body models.ForecastRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	// Service errors propagate to the app error handler, which maps their
	// stable codes to HTTP statuses.
	result, err := h.forecastService.Execute(c.UserContext(), modelName, &body)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ListModels handles model discovery requests
// GET /v1/models
func (h *Handler) ListModels(c *fiber.Ctx) error {
	return c.JSON(models.ModelListResponse{
		Models: h.forecastService.ListModels(),
	})
}
