// Package services provides the business logic layer between handlers and
// the forecast engines. Services validate requests, translate engine errors
// into stable error codes and shape responses.
package services

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Stable error codes returned by the forecast service.
const (
	CodeInvalidModel         = "INVALID_MODEL"
	CodeInvalidSeries        = "INVALID_SERIES"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeDegenerateModel      = "DEGENERATE_MODEL"
	CodeForecastFailed       = "FORECAST_FAILED"
)
