package cache

import (
	"time"

	"github.com/bwmarrin/snowflake"
	vehicledomain "github.com/fleetlane/fleetlane/internal/vehicle/domain"
	"go.uber.org/fx"
)

// The directory is read-only from this service's perspective, so a short
// TTL only bounds how long a deleted vehicle keeps accepting telemetry.
const defaultVehicleTTL = 5 * time.Minute

// Module provides the vehicle resolver cache.
var Module = fx.Provide(NewVehicleResolverCache)

// VehicleResolverCache stores hot-path vehicle lookups for telemetry ingest.
type VehicleResolverCache interface {
	GetVehicle(id snowflake.ID) (vehicledomain.Vehicle, bool)
	SetVehicle(vehicle vehicledomain.Vehicle)
}

type vehicleResolverCache struct {
	vehicles Cache[snowflake.ID, vehicledomain.Vehicle]
	ttl      time.Duration
}

// NewVehicleResolverCache returns an in-memory cache tuned for telemetry ingest.
func NewVehicleResolverCache() VehicleResolverCache {
	return &vehicleResolverCache{
		vehicles: NewTTLCache[snowflake.ID, vehicledomain.Vehicle](),
		ttl:      defaultVehicleTTL,
	}
}

func (c *vehicleResolverCache) GetVehicle(id snowflake.ID) (vehicledomain.Vehicle, bool) {
	return c.vehicles.Get(id)
}

func (c *vehicleResolverCache) SetVehicle(vehicle vehicledomain.Vehicle) {
	if vehicle.ID == 0 {
		return
	}
	c.vehicles.Set(vehicle.ID, vehicle, c.ttl)
}
