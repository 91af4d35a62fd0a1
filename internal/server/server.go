package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fleetlane/fleetlane/internal/config"
	telemetrydomain "github.com/fleetlane/fleetlane/internal/telemetry/domain"
	vehicledomain "github.com/fleetlane/fleetlane/internal/vehicle/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLoggerMiddleware(log))
	r.Use(ErrorHandlingMiddleware(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type ServerParam struct {
	fx.In

	Engine       *gin.Engine
	Log          *zap.Logger
	Config       config.Config
	VehicleSvc   vehicledomain.Service
	TelemetrySvc telemetrydomain.Service
}

type Server struct {
	engine       *gin.Engine
	log          *zap.Logger
	cfg          config.Config
	vehicleSvc   vehicledomain.Service
	telemetrySvc telemetrydomain.Service
}

func NewServer(p ServerParam) *Server {
	return &Server{
		engine:       p.Engine,
		log:          p.Log.Named("http.server"),
		cfg:          p.Config,
		vehicleSvc:   p.VehicleSvc,
		telemetrySvc: p.TelemetrySvc,
	}
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")
	api.POST("/gps", s.SubmitGPSLog)
	api.GET("/vehicles/:id/last-location", s.GetLastLocation)
	api.GET("/vehicles/:id/history", s.GetHistory)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
