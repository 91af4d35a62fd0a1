// Package seed bootstraps optional fixture rows for local development.
// Production vehicle records come from the external fleet-management
// process, never from here.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	vehicledomain "github.com/fleetlane/fleetlane/internal/vehicle/domain"
	pkgdb "github.com/fleetlane/fleetlane/pkg/db"
	"gorm.io/gorm"
)

const (
	demoPlateNumber = "B1234XYZ"
	demoVehicleName = "Truk 1"
	demoVehicleType = "Truck"
)

// EnsureDemoVehicle inserts the demo vehicle, keyed by the unique plate
// number. A duplicate key means a previous run or a concurrently starting
// instance seeded it already, which is not an error.
func EnsureDemoVehicle(db *gorm.DB, genID *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if genID == nil {
		return errors.New("seed id generator is required")
	}

	err := db.WithContext(context.Background()).Create(&vehicledomain.Vehicle{
		ID:          genID.Generate(),
		PlateNumber: demoPlateNumber,
		Name:        demoVehicleName,
		Type:        demoVehicleType,
	}).Error
	if pkgdb.IsDuplicateKeyErr(err) {
		return nil
	}
	return err
}
