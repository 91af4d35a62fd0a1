package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fleetlane/fleetlane/internal/cache"
	"github.com/fleetlane/fleetlane/internal/metrics"
	"github.com/fleetlane/fleetlane/internal/telemetry/domain"
	vehicledomain "github.com/fleetlane/fleetlane/internal/vehicle/domain"
	"github.com/fleetlane/fleetlane/pkg/db/pagination"
	"github.com/fleetlane/fleetlane/pkg/log"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Repo          domain.Repository
	VehicleSvc    vehicledomain.Service
	ResolverCache cache.VehicleResolverCache `optional:"true"`
	Metrics       *metrics.Metrics           `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	repo          domain.Repository
	vehicleSvc    vehicledomain.Service
	resolverCache cache.VehicleResolverCache
	metrics       *metrics.Metrics
}

func New(p ServiceParam) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("telemetry.service"),
		genID:         p.GenID,
		repo:          p.Repo,
		vehicleSvc:    p.VehicleSvc,
		resolverCache: p.ResolverCache,
		metrics:       p.Metrics,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (domain.TelemetryRecord, error) {
	timestamp, verr := validateSubmit(req)
	if verr != nil {
		s.metrics.IncIngest("validation_error")
		return domain.TelemetryRecord{}, verr
	}

	vehicle, err := s.resolveVehicle(ctx, req.VehicleReference)
	if err != nil {
		s.metrics.IncIngest("vehicle_not_found")
		return domain.TelemetryRecord{}, err
	}

	record := domain.TelemetryRecord{
		ID:             s.genID.Generate(),
		VehicleID:      vehicle.ID,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Speed:          req.Speed,
		Timestamp:      timestamp,
		SpeedViolation: domain.IsSpeedViolation(req.Speed),
	}

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		s.metrics.IncIngest("error")
		s.log.Error("insert gps log failed",
			zap.Int64("vehicle_id", int64(record.VehicleID)),
			zap.Error(err),
		)
		return domain.TelemetryRecord{}, err
	}

	s.metrics.IncIngest("ok")
	if record.SpeedViolation {
		s.metrics.IncSpeedViolation()
		log.L(ctx).Warn("speed violation recorded",
			zap.Int64("vehicle_id", int64(record.VehicleID)),
			zap.Float64("speed", record.Speed),
		)
	}

	return record, nil
}

func (s *Service) LastLocation(ctx context.Context, vehicleID snowflake.ID) (domain.TelemetryRecord, error) {
	vehicle, err := s.resolveVehicle(ctx, vehicleID)
	if err != nil {
		return domain.TelemetryRecord{}, err
	}

	record, err := s.repo.FindLatestByVehicle(ctx, s.db, vehicle.ID)
	if err != nil {
		return domain.TelemetryRecord{}, err
	}
	if record == nil {
		return domain.TelemetryRecord{}, domain.ErrNoTelemetry
	}
	return *record, nil
}

func (s *Service) History(ctx context.Context, req domain.HistoryRequest) (domain.HistoryResponse, error) {
	vehicle, err := s.resolveVehicle(ctx, req.VehicleID)
	if err != nil {
		return domain.HistoryResponse{}, err
	}

	page := req.Page.Normalize()

	// An inverted window is a normal empty result, not an error.
	if req.From.After(req.To) {
		return domain.HistoryResponse{
			Records:     []domain.TelemetryRecord{},
			CurrentPage: page.Page,
		}, nil
	}

	records, total, err := s.repo.FindByVehicleAndRange(ctx, s.db, vehicle.ID, req.From, req.To, page)
	if err != nil {
		return domain.HistoryResponse{}, err
	}
	if records == nil {
		records = []domain.TelemetryRecord{}
	}

	return domain.HistoryResponse{
		Records:     records,
		CurrentPage: page.Page,
		TotalItems:  total,
		TotalPages:  pagination.TotalPages(total, page.Size),
	}, nil
}

func (s *Service) resolveVehicle(ctx context.Context, id snowflake.ID) (vehicledomain.Vehicle, error) {
	if s.resolverCache != nil {
		if cached, ok := s.resolverCache.GetVehicle(id); ok {
			return cached, nil
		}
	}
	vehicle, err := s.vehicleSvc.GetByID(ctx, id)
	if err != nil {
		return vehicledomain.Vehicle{}, err
	}
	if s.resolverCache != nil {
		s.resolverCache.SetVehicle(vehicle)
	}
	return vehicle, nil
}

func validateSubmit(req domain.SubmitRequest) (time.Time, error) {
	errs := domain.ValidationErrors{}

	if req.VehicleReference == 0 {
		errs["vehicleReference"] = "must not be null"
	}
	if math.IsNaN(req.Latitude) || req.Latitude < -90 {
		errs["latitude"] = "must be greater than or equal to -90.0"
	} else if req.Latitude > 90 {
		errs["latitude"] = "must be less than or equal to 90.0"
	}
	if math.IsNaN(req.Longitude) || req.Longitude < -180 {
		errs["longitude"] = "must be greater than or equal to -180.0"
	} else if req.Longitude > 180 {
		errs["longitude"] = "must be less than or equal to 180.0"
	}
	if math.IsNaN(req.Speed) || req.Speed < 0 {
		errs["speed"] = "must be greater than or equal to 0"
	}

	timestamp, err := domain.ParseTimestamp(req.Timestamp)
	if err != nil {
		errs["timestamp"] = timestampReason(req.Timestamp)
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return timestamp, nil
}

func timestampReason(raw string) string {
	if raw == "" {
		return "must not be blank"
	}
	return fmt.Sprintf("not a valid ISO-8601 timestamp: %q", raw)
}
