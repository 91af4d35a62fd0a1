package server

import (
	"net/http"

	telemetrydomain "github.com/fleetlane/fleetlane/internal/telemetry/domain"
	"github.com/fleetlane/fleetlane/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetLastLocation(c *gin.Context) {
	vehicleID, err := parseVehicleID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	record, err := s.telemetrySvc.LastLocation(c.Request.Context(), vehicleID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Last known location retrieved",
		"data":    payloadFromRecord(record),
	})
}

func (s *Server) GetHistory(c *gin.Context) {
	vehicleID, err := parseVehicleID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var query struct {
		pagination.Pagination
		From string `form:"from"`
		To   string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, newValidationError("request", "malformed query parameters"))
		return
	}

	window, verr := parseHistoryWindow(query.From, query.To)
	if verr != nil {
		AbortWithError(c, verr)
		return
	}

	resp, err := s.telemetrySvc.History(c.Request.Context(), telemetrydomain.HistoryRequest{
		VehicleID: vehicleID,
		From:      window.from,
		To:        window.to,
		Page:      query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	records := make([]telemetryPayload, 0, len(resp.Records))
	for _, record := range resp.Records {
		records = append(records, payloadFromRecord(record))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "GPS history retrieved",
		"data":        records,
		"currentPage": resp.CurrentPage,
		"totalItems":  resp.TotalItems,
		"totalPages":  resp.TotalPages,
	})
}
