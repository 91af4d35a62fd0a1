package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetlane/fleetlane/internal/telemetry/domain"
	"github.com/fleetlane/fleetlane/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.TelemetryRecord) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO gps_logs (id, vehicle_id, latitude, longitude, speed, timestamp, speed_violation)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.VehicleID,
		record.Latitude,
		record.Longitude,
		record.Speed,
		record.Timestamp,
		record.SpeedViolation,
	).Error
}

func (r *repo) FindLatestByVehicle(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID) (*domain.TelemetryRecord, error) {
	var record domain.TelemetryRecord
	// Secondary order on id makes equal timestamps resolve to the most
	// recently inserted record.
	err := db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("timestamp desc, id desc").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) FindByVehicleAndRange(ctx context.Context, db *gorm.DB, vehicleID snowflake.ID, from, to time.Time, page pagination.Pagination) ([]domain.TelemetryRecord, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.TelemetryRecord{}).
		Where("vehicle_id = ? AND timestamp >= ? AND timestamp <= ?", vehicleID, from, to)

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []domain.TelemetryRecord
	err := page.Apply(stmt).
		Order("timestamp asc, id asc").
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *repo) DeleteOlderThan(ctx context.Context, db *gorm.DB, threshold time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Where("timestamp < ?", threshold).
		Delete(&domain.TelemetryRecord{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
