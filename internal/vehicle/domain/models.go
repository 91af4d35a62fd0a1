// Package domain contains the vehicle directory model and ports.
package domain

import "github.com/bwmarrin/snowflake"

// Vehicle is the identity record for a tracked vehicle. Vehicles are
// created and destroyed by an external fleet-management process; this
// service only reads them.
type Vehicle struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	PlateNumber string       `gorm:"column:plate_number;not null;uniqueIndex" json:"plateNumber"`
	Name        string       `gorm:"not null" json:"name"`
	Type        string       `gorm:"column:type" json:"type"`
}

// TableName sets the database table name.
func (Vehicle) TableName() string { return "vehicles" }
