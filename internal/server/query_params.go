package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	telemetrydomain "github.com/fleetlane/fleetlane/internal/telemetry/domain"
	vehicledomain "github.com/fleetlane/fleetlane/internal/vehicle/domain"
)

func parseVehicleID(raw string) (snowflake.ID, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, vehicledomain.ErrInvalidID
	}
	return snowflake.ID(parsed), nil
}

type historyWindow struct {
	from time.Time
	to   time.Time
}

// parseHistoryWindow validates the required from/to query parameters,
// reporting every violated field.
func parseHistoryWindow(rawFrom, rawTo string) (historyWindow, error) {
	errs := telemetrydomain.ValidationErrors{}

	from, err := telemetrydomain.ParseTimestamp(rawFrom)
	if err != nil {
		errs["from"] = timestampParamReason(rawFrom)
	}
	to, err := telemetrydomain.ParseTimestamp(rawTo)
	if err != nil {
		errs["to"] = timestampParamReason(rawTo)
	}

	if len(errs) > 0 {
		return historyWindow{}, errs
	}
	return historyWindow{from: from, to: to}, nil
}

func timestampParamReason(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "must not be blank"
	}
	return "not a valid ISO-8601 timestamp"
}
