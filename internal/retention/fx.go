package retention

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("retention",
	fx.Provide(ProvideConfig),
	fx.Provide(New),
	fx.Invoke(Schedule),
)

// Schedule runs the sweeper on the configured cron cadence for the
// lifetime of the application. A failed sweep is logged and left for the
// next scheduled run; there is no retry loop inside a run.
func Schedule(lc fx.Lifecycle, sweeper *Sweeper, cfg Config, log *zap.Logger) error {
	runner := cron.New()
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := runner.AddFunc(cfg.Schedule, func() {
		if _, err := sweeper.Sweep(ctx); err != nil {
			log.Warn("retention sweep will retry on next schedule", zap.Error(err))
		}
	}); err != nil {
		cancel()
		return fmt.Errorf("retention: schedule sweep: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runner.Start()
			log.Info("retention sweeper scheduled",
				zap.String("schedule", cfg.Schedule),
				zap.Int("retention_days", cfg.RetentionDays),
			)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			stopCtx := runner.Stop()
			<-stopCtx.Done()
			return nil
		},
	})
	return nil
}
