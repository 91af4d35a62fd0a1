package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// GetByID resolves a vehicle by its numeric id. A missing vehicle is
	// reported as ErrNotFound, never as a generic failure.
	GetByID(ctx context.Context, id snowflake.ID) (Vehicle, error)
}

var (
	ErrInvalidID = errors.New("invalid_vehicle_id")
	ErrNotFound  = errors.New("vehicle_not_found")
)
