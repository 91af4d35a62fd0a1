package server

import (
	"errors"
	"net/http"

	telemetrydomain "github.com/fleetlane/fleetlane/internal/telemetry/domain"
	vehicledomain "github.com/fleetlane/fleetlane/internal/vehicle/domain"
	"github.com/fleetlane/fleetlane/pkg/log/ctxlogger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Messages are part of the public API contract and must not drift.
const (
	msgValidationFailed = "Validation failed"
	msgVehicleNotFound  = "Vehicle not found"
	msgNoGPSLogFound    = "No GPS log found"
	msgUnexpectedError  = "Unexpected error"
)

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ErrorHandlingMiddleware maps errors recorded on the context into the
// API's response shapes. Unexpected errors are logged with full detail and
// surfaced generically.
func ErrorHandlingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, body := mapError(lastErr.Err)
		if status == http.StatusInternalServerError {
			ctxlogger.WithContext(c.Request.Context(), log).Error("request failed",
				zap.String("path", c.FullPath()),
				zap.Error(lastErr.Err),
			)
		}
		c.AbortWithStatusJSON(status, body)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, reason string) error {
	return telemetrydomain.ValidationErrors{field: reason}
}

func mapError(err error) (int, errorBody) {
	var verrs telemetrydomain.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, errorBody{
			Message: msgValidationFailed,
			Errors:  verrs,
		}
	}

	switch {
	case errors.Is(err, vehicledomain.ErrNotFound),
		errors.Is(err, vehicledomain.ErrInvalidID):
		return http.StatusNotFound, errorBody{Message: msgVehicleNotFound}
	case errors.Is(err, telemetrydomain.ErrNoTelemetry):
		return http.StatusNotFound, errorBody{Message: msgNoGPSLogFound}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorBody{Message: "Not found"}
	default:
		return http.StatusInternalServerError, errorBody{Message: msgUnexpectedError}
	}
}
