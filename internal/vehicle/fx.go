package vehicle

import (
	"github.com/fleetlane/fleetlane/internal/vehicle/repository"
	"github.com/fleetlane/fleetlane/internal/vehicle/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vehicle.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
