package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetlane/fleetlane/pkg/db/pagination"
)

// timestampLayout is the zone-less layout the original mobile units send;
// it is interpreted as UTC.
const timestampLayout = "2006-01-02T15:04:05"

type SubmitRequest struct {
	VehicleReference snowflake.ID
	Latitude         float64
	Longitude        float64
	Speed            float64
	// Timestamp is the caller-supplied observation time, ISO-8601.
	Timestamp string
}

type HistoryRequest struct {
	VehicleID snowflake.ID
	From      time.Time
	To        time.Time
	Page      pagination.Pagination
}

type HistoryResponse struct {
	Records     []TelemetryRecord `json:"records"`
	CurrentPage int               `json:"currentPage"`
	TotalItems  int64             `json:"totalItems"`
	TotalPages  int               `json:"totalPages"`
}

type Service interface {
	// Submit validates and persists one GPS observation. Field violations
	// come back as ValidationErrors; a missing vehicle as the vehicle
	// directory's not-found error. Nothing is persisted on either.
	Submit(ctx context.Context, req SubmitRequest) (TelemetryRecord, error)

	// LastLocation returns the record with the greatest timestamp for the
	// vehicle, ties broken by greatest id.
	LastLocation(ctx context.Context, vehicleID snowflake.ID) (TelemetryRecord, error)

	// History returns the vehicle's records with from <= timestamp <= to,
	// ascending by timestamp, sliced into the requested page. An empty
	// window is a normal empty result, not an error.
	History(ctx context.Context, req HistoryRequest) (HistoryResponse, error)
}

var ErrNoTelemetry = errors.New("no_gps_log_found")

// ValidationErrors maps offending field names to human-readable reasons.
// Every violated field is reported, not just the first.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string { return "validation_failed" }

// ParseTimestamp accepts RFC 3339 or the zone-less device layout and
// returns the instant in UTC.
func ParseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, errors.New("empty_timestamp")
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse(timestampLayout, trimmed); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, errors.New("invalid_timestamp")
}
