package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/seasonal/internal/logging"
	"github.com/soltixdb/seasonal/internal/models"
	"github.com/soltixdb/seasonal/internal/services"
)

// StatusForServiceCode maps the forecast service's stable error codes to
// HTTP statuses. Unknown codes collapse to 500.
func StatusForServiceCode(code string) int {
	switch code {
	case services.CodeInvalidModel:
		return fiber.StatusNotFound
	case services.CodeInvalidSeries, services.CodeInvalidConfiguration:
		return fiber.StatusBadRequest
	case services.CodeDegenerateModel:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors that escape the handlers. Forecast service
// errors keep their code, message and details on the wire; fiber errors keep
// their status; anything else is reported as a failed forecast.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := models.ErrorDetail{
			Code:    services.CodeForecastFailed,
			Message: "Internal Server Error",
		}

		var svcErr *services.ServiceError
		var fibErr *fiber.Error
		switch {
		case errors.As(err, &svcErr):
			status = StatusForServiceCode(svcErr.Code)
			detail = models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Details: svcErr.Details,
			}
		case errors.As(err, &fibErr):
			status = fibErr.Code
			detail.Code = "ERROR"
			detail.Message = fibErr.Message
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"error", err,
		)

		return c.Status(status).JSON(models.ErrorResponse{Error: detail})
	}
}
