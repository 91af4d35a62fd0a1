package retention

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetlane/fleetlane/internal/clock"
	telemetrydomain "github.com/fleetlane/fleetlane/internal/telemetry/domain"
	"github.com/fleetlane/fleetlane/internal/telemetry/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sweeperFixture struct {
	sweeper *Sweeper
	db      *gorm.DB
	node    *snowflake.Node
	clock   *clock.FakeClock
}

func newSweeperFixture(t *testing.T, retentionDays int, now time.Time) *sweeperFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&telemetrydomain.TelemetryRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fakeClock := clock.NewFakeClock(now)
	sweeper, err := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		Repo:   repository.Provide(),
		Clock:  fakeClock,
		Config: Config{RetentionDays: retentionDays, Schedule: "0 15 * * *"},
	})
	require.NoError(t, err)

	return &sweeperFixture{sweeper: sweeper, db: db, node: node, clock: fakeClock}
}

func (f *sweeperFixture) insertRecordAt(t *testing.T, ts time.Time) {
	t.Helper()
	require.NoError(t, f.db.Create(&telemetrydomain.TelemetryRecord{
		ID:        f.node.Generate(),
		VehicleID: 1,
		Latitude:  -6.2,
		Longitude: 106.8,
		Speed:     50,
		Timestamp: ts.UTC(),
	}).Error)
}

func (f *sweeperFixture) count(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&telemetrydomain.TelemetryRecord{}).Count(&count).Error)
	return count
}

func TestSweep_DeletesOnlyRecordsOlderThanThreshold(t *testing.T) {
	now := time.Date(2025, 7, 31, 15, 0, 0, 0, time.UTC)
	f := newSweeperFixture(t, 30, now)
	threshold := now.AddDate(0, 0, -30)

	f.insertRecordAt(t, threshold.Add(-48*time.Hour))
	f.insertRecordAt(t, threshold.Add(-time.Second))
	f.insertRecordAt(t, threshold) // exactly at the threshold survives
	f.insertRecordAt(t, threshold.Add(time.Second))
	f.insertRecordAt(t, now)

	deleted, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), deleted)
	assert.Equal(t, int64(3), f.count(t))

	var remaining []telemetrydomain.TelemetryRecord
	require.NoError(t, f.db.Order("timestamp asc").Find(&remaining).Error)
	for _, record := range remaining {
		assert.False(t, record.Timestamp.Before(threshold))
	}
}

func TestSweep_SecondRunDeletesNothing(t *testing.T) {
	now := time.Date(2025, 7, 31, 15, 0, 0, 0, time.UTC)
	f := newSweeperFixture(t, 30, now)

	f.insertRecordAt(t, now.AddDate(0, 0, -31))
	f.insertRecordAt(t, now.AddDate(0, 0, -1))

	deleted, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.Equal(t, int64(1), f.count(t))
}

func TestSweep_RecordsAgeIntoEligibility(t *testing.T) {
	now := time.Date(2025, 7, 31, 15, 0, 0, 0, time.UTC)
	f := newSweeperFixture(t, 30, now)

	f.insertRecordAt(t, now.AddDate(0, 0, -29))

	deleted, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	f.clock.Advance(72 * time.Hour)

	deleted, err = f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, int64(0), f.count(t))
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Params{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, "0 15 * * *", cfg.Schedule)

	cfg = Config{RetentionDays: 7, Schedule: "*/30 * * * *"}.withDefaults()
	assert.Equal(t, 7, cfg.RetentionDays)
	assert.Equal(t, "*/30 * * * *", cfg.Schedule)
}
