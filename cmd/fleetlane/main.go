package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fleetlane/fleetlane/internal/cache"
	"github.com/fleetlane/fleetlane/internal/clock"
	"github.com/fleetlane/fleetlane/internal/config"
	"github.com/fleetlane/fleetlane/internal/metrics"
	"github.com/fleetlane/fleetlane/internal/migration"
	"github.com/fleetlane/fleetlane/internal/retention"
	"github.com/fleetlane/fleetlane/internal/server"
	"github.com/fleetlane/fleetlane/internal/telemetry"
	"github.com/fleetlane/fleetlane/internal/vehicle"
	"github.com/fleetlane/fleetlane/pkg/db"
	"github.com/fleetlane/fleetlane/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,
		metrics.Module,
		cache.Module,
		migration.Module,

		// Functional domains
		vehicle.Module,
		telemetry.Module,
		retention.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
