package server

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	telemetrydomain "github.com/fleetlane/fleetlane/internal/telemetry/domain"
	"github.com/gin-gonic/gin"
)

type submitGPSLogRequest struct {
	VehicleReference int64   `json:"vehicleReference"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Speed            float64 `json:"speed"`
	Timestamp        string  `json:"timestamp"`
}

// telemetryPayload is the wire form of a stored record. IDs stay numeric
// to match the ingestion request shape.
type telemetryPayload struct {
	ID               int64   `json:"id"`
	VehicleReference int64   `json:"vehicleReference"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Speed            float64 `json:"speed"`
	Timestamp        string  `json:"timestamp"`
	SpeedViolation   bool    `json:"speedViolation"`
}

func payloadFromRecord(record telemetrydomain.TelemetryRecord) telemetryPayload {
	return telemetryPayload{
		ID:               int64(record.ID),
		VehicleReference: int64(record.VehicleID),
		Latitude:         record.Latitude,
		Longitude:        record.Longitude,
		Speed:            record.Speed,
		Timestamp:        record.Timestamp.UTC().Format(time.RFC3339),
		SpeedViolation:   record.SpeedViolation,
	}
}

func (s *Server) SubmitGPSLog(c *gin.Context) {
	var req submitGPSLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "malformed request body"))
		return
	}

	record, err := s.telemetrySvc.Submit(c.Request.Context(), telemetrydomain.SubmitRequest{
		VehicleReference: snowflake.ID(req.VehicleReference),
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Speed:            req.Speed,
		Timestamp:        req.Timestamp,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "GPS log saved successfully",
		"data":    payloadFromRecord(record),
	})
}
