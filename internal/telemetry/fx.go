package telemetry

import (
	"github.com/fleetlane/fleetlane/internal/telemetry/repository"
	"github.com/fleetlane/fleetlane/internal/telemetry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("telemetry.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
