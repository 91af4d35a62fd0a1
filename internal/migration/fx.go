package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fleetlane/fleetlane/internal/config"
	"github.com/fleetlane/fleetlane/internal/seed"
	telemetrydomain "github.com/fleetlane/fleetlane/internal/telemetry/domain"
	vehicledomain "github.com/fleetlane/fleetlane/internal/vehicle/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite deployments get the schema from the models.
			if err := conn.AutoMigrate(&vehicledomain.Vehicle{}, &telemetrydomain.TelemetryRecord{}); err != nil {
				return err
			}
		}

		if cfg.BootstrapDemoVehicle {
			return seed.EnsureDemoVehicle(conn, genID)
		}
		return nil
	}),
)
