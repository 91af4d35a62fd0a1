package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	telemetrydomain "github.com/fleetlane/fleetlane/internal/telemetry/domain"
	"github.com/fleetlane/fleetlane/internal/telemetry/repository"
	vehicledomain "github.com/fleetlane/fleetlane/internal/vehicle/domain"
	"github.com/fleetlane/fleetlane/pkg/db/pagination"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// staticVehicleService resolves exactly one vehicle.
type staticVehicleService struct {
	vehicle vehicledomain.Vehicle
}

func (s staticVehicleService) GetByID(_ context.Context, id snowflake.ID) (vehicledomain.Vehicle, error) {
	if id == s.vehicle.ID {
		return s.vehicle, nil
	}
	return vehicledomain.Vehicle{}, vehicledomain.ErrNotFound
}

type historyFixture struct {
	svc     telemetrydomain.Service
	db      *gorm.DB
	node    *snowflake.Node
	vehicle vehicledomain.Vehicle
}

func newHistoryFixture(t *testing.T) *historyFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&telemetrydomain.TelemetryRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	vehicle := vehicledomain.Vehicle{ID: 1, PlateNumber: "B1234XYZ", Name: "Truk 1", Type: "Truck"}
	svc := New(ServiceParam{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Repo:       repository.Provide(),
		VehicleSvc: staticVehicleService{vehicle: vehicle},
	})

	return &historyFixture{svc: svc, db: db, node: node, vehicle: vehicle}
}

func (f *historyFixture) insertRecord(t *testing.T, ts time.Time, speed float64) telemetrydomain.TelemetryRecord {
	t.Helper()
	record := telemetrydomain.TelemetryRecord{
		ID:             f.node.Generate(),
		VehicleID:      f.vehicle.ID,
		Latitude:       -6.2,
		Longitude:      106.8,
		Speed:          speed,
		Timestamp:      ts.UTC(),
		SpeedViolation: telemetrydomain.IsSpeedViolation(speed),
	}
	require.NoError(t, f.db.Create(&record).Error)
	return record
}

func TestHistory_OrderingAndPagination(t *testing.T) {
	f := newHistoryFixture(t)

	base := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	// Insert out of chronological order on purpose.
	for _, offset := range []int{5, 1, 9, 3, 7, 2, 8, 4, 6, 0, 10} {
		f.insertRecord(t, base.Add(time.Duration(offset)*time.Hour), 50)
	}

	from := base
	to := base.Add(24 * time.Hour)

	var collected []telemetrydomain.TelemetryRecord
	page := 1
	for {
		resp, err := f.svc.History(context.Background(), telemetrydomain.HistoryRequest{
			VehicleID: f.vehicle.ID,
			From:      from,
			To:        to,
			Page:      pagination.Pagination{Page: page, Size: 4},
		})
		require.NoError(t, err)

		assert.Equal(t, page, resp.CurrentPage)
		assert.Equal(t, int64(11), resp.TotalItems)
		assert.Equal(t, 3, resp.TotalPages)

		collected = append(collected, resp.Records...)
		if page >= resp.TotalPages {
			break
		}
		page++
	}

	// Concatenated pages reproduce the full ascending sequence with no
	// duplicates or gaps.
	require.Len(t, collected, 11)
	seen := map[snowflake.ID]bool{}
	for i, record := range collected {
		assert.False(t, seen[record.ID], "record %d duplicated across pages", record.ID)
		seen[record.ID] = true
		if i > 0 {
			assert.False(t, record.Timestamp.Before(collected[i-1].Timestamp))
		}
	}
}

func TestHistory_WindowBoundsAreInclusive(t *testing.T) {
	f := newHistoryFixture(t)

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 16, 23, 59, 59, 0, time.UTC)

	f.insertRecord(t, from.Add(-time.Second), 50) // just before the window
	atFrom := f.insertRecord(t, from, 50)
	atTo := f.insertRecord(t, to, 50)
	f.insertRecord(t, to.Add(time.Second), 50) // just after the window

	resp, err := f.svc.History(context.Background(), telemetrydomain.HistoryRequest{
		VehicleID: f.vehicle.ID,
		From:      from,
		To:        to,
		Page:      pagination.Pagination{Page: 1, Size: 10},
	})
	require.NoError(t, err)

	require.Equal(t, int64(2), resp.TotalItems)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, atFrom.ID, resp.Records[0].ID)
	assert.Equal(t, atTo.ID, resp.Records[1].ID)
}

func TestHistory_InvertedWindowIsEmptyNotError(t *testing.T) {
	f := newHistoryFixture(t)
	f.insertRecord(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC), 50)

	resp, err := f.svc.History(context.Background(), telemetrydomain.HistoryRequest{
		VehicleID: f.vehicle.ID,
		From:      time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Page:      pagination.Pagination{Page: 1, Size: 10},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Records)
	assert.Equal(t, int64(0), resp.TotalItems)
	assert.Equal(t, 0, resp.TotalPages)
	assert.Equal(t, 1, resp.CurrentPage)
}

func TestHistory_UnknownVehicle(t *testing.T) {
	f := newHistoryFixture(t)

	_, err := f.svc.History(context.Background(), telemetrydomain.HistoryRequest{
		VehicleID: 99,
		From:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC),
		Page:      pagination.Pagination{Page: 1, Size: 10},
	})
	assert.ErrorIs(t, err, vehicledomain.ErrNotFound)
}

func TestHistory_PageClamping(t *testing.T) {
	f := newHistoryFixture(t)
	f.insertRecord(t, time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC), 50)

	resp, err := f.svc.History(context.Background(), telemetrydomain.HistoryRequest{
		VehicleID: f.vehicle.ID,
		From:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC),
		Page:      pagination.Pagination{Page: 0, Size: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, int64(1), resp.TotalItems)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Len(t, resp.Records, 1)
}

func TestLastLocation(t *testing.T) {
	f := newHistoryFixture(t)

	t.Run("no telemetry yet", func(t *testing.T) {
		_, err := f.svc.LastLocation(context.Background(), f.vehicle.ID)
		assert.ErrorIs(t, err, telemetrydomain.ErrNoTelemetry)
	})

	earlier := f.insertRecord(t, time.Date(2025, 7, 16, 9, 0, 0, 0, time.UTC), 80)
	latest := f.insertRecord(t, time.Date(2025, 7, 16, 10, 0, 0, 0, time.UTC), 120)

	t.Run("latest timestamp wins", func(t *testing.T) {
		record, err := f.svc.LastLocation(context.Background(), f.vehicle.ID)
		require.NoError(t, err)
		assert.Equal(t, latest.ID, record.ID)
		assert.True(t, record.SpeedViolation)
		assert.NotEqual(t, earlier.ID, record.ID)
	})

	t.Run("timestamp tie resolves to most recently inserted", func(t *testing.T) {
		tied := f.insertRecord(t, latest.Timestamp, 60)
		record, err := f.svc.LastLocation(context.Background(), f.vehicle.ID)
		require.NoError(t, err)
		assert.Equal(t, tied.ID, record.ID)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		_, err := f.svc.LastLocation(context.Background(), 99)
		assert.ErrorIs(t, err, vehicledomain.ErrNotFound)
	})
}
