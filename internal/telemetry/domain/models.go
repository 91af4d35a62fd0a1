// Package domain contains the telemetry record model, the service and
// storage ports, and the ingestion rules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SpeedViolationThresholdKmh is the speed above which a record is flagged.
// The flag is a snapshot of the rule at insertion time; stored records are
// never recomputed if the threshold changes.
const SpeedViolationThresholdKmh = 100.0

// TelemetryRecord is one GPS observation for a vehicle. Records are
// immutable after creation; only the retention sweeper removes them.
type TelemetryRecord struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	VehicleID      snowflake.ID `gorm:"column:vehicle_id;not null;index:idx_gps_logs_vehicle_ts,priority:1" json:"vehicleReference"`
	Latitude       float64      `gorm:"not null" json:"latitude"`
	Longitude      float64      `gorm:"not null" json:"longitude"`
	Speed          float64      `gorm:"not null" json:"speed"`
	Timestamp      time.Time    `gorm:"not null;index:idx_gps_logs_vehicle_ts,priority:2;index:idx_gps_logs_ts" json:"timestamp"`
	SpeedViolation bool         `gorm:"column:speed_violation;not null;default:false" json:"speedViolation"`
}

// TableName sets the database table name.
func (TelemetryRecord) TableName() string { return "gps_logs" }

// IsSpeedViolation reports whether a recorded speed breaks the threshold.
// The comparison is strict: exactly 100 km/h is not a violation.
func IsSpeedViolation(speed float64) bool {
	return speed > SpeedViolationThresholdKmh
}
