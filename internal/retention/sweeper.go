// Package retention purges telemetry older than the configured window.
package retention

import (
	"context"
	"errors"

	"github.com/fleetlane/fleetlane/internal/clock"
	"github.com/fleetlane/fleetlane/internal/metrics"
	telemetrydomain "github.com/fleetlane/fleetlane/internal/telemetry/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("retention: invalid configuration")

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    telemetrydomain.Repository
	Clock   clock.Clock
	Config  Config
	Metrics *metrics.Metrics `optional:"true"`
}

type Sweeper struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    telemetrydomain.Repository
	clock   clock.Clock
	cfg     Config
	metrics *metrics.Metrics
}

func New(p Params) (*Sweeper, error) {
	if p.DB == nil || p.Log == nil || p.Repo == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	cfg := p.Config.withDefaults()
	return &Sweeper{
		db:      p.DB,
		log:     p.Log.Named("retention.sweeper"),
		repo:    p.Repo,
		clock:   p.Clock,
		cfg:     cfg,
		metrics: p.Metrics,
	}, nil
}

// Sweep deletes every record older than now - RetentionDays in one bulk
// statement. Records exactly at the threshold survive. Running twice with
// no new data deletes nothing the second time.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	threshold := s.clock.Now().UTC().AddDate(0, 0, -s.cfg.RetentionDays)

	deleted, err := s.repo.DeleteOlderThan(ctx, s.db, threshold)
	s.metrics.ObserveSweep(deleted, err)
	if err != nil {
		s.log.Error("retention sweep failed",
			zap.Time("threshold", threshold),
			zap.Error(err),
		)
		return 0, err
	}

	s.log.Info("deleted old gps logs",
		zap.Int64("deleted", deleted),
		zap.Int("retention_days", s.cfg.RetentionDays),
		zap.Time("threshold", threshold),
	)
	return deleted, nil
}
