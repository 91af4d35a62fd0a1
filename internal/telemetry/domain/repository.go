package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetlane/fleetlane/pkg/db/pagination"
	"gorm.io/gorm"
)

// Repository is the storage port for telemetry records. Any gorm-backed
// store (postgres, mysql, sqlite in tests) satisfies it; atomicity of the
// individual operations is delegated to the store.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *TelemetryRecord) error
	FindLatestByVehicle(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID) (*TelemetryRecord, error)
	FindByVehicleAndRange(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID, from, to time.Time, page pagination.Pagination) ([]TelemetryRecord, int64, error)
	// DeleteOlderThan removes every record with timestamp strictly before
	// the threshold in a single statement and reports the count deleted.
	DeleteOlderThan(ctx context.Context, db *gorm.DB, threshold time.Time) (int64, error)
}
