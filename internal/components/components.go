package components

import (
	"context"
	"fmt"
	"os"
	"time"

	"log/slog"

	"github.com/adityanb2025/Disaster-relief-app/internal/api"
	"github.com/adityanb2025/Disaster-relief-app/internal/config"
	"github.com/adityanb2025/Disaster-relief-app/internal/geo"
	"github.com/adityanb2025/Disaster-relief-app/internal/redis"
	"github.com/adityanb2025/Disaster-relief-app/internal/service"
	"github.com/adityanb2025/Disaster-relief-app/internal/storage"
	"github.com/adityanb2025/Disaster-relief-app/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Store      storage.RequestStore
	Redis      *redis.Redis
}

// InitComponents wires everything once per process: the backend
// selector runs here and nowhere else, and the resulting store handle
// is the only one in the program.
func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Selecting storage backend")

	store, err := storage.Select(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init storage backend",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init storage backend: %w", err)
	}

	resolver := geo.NewResolver(cfg, logger)

	// Redis only fronts the geocoder; without it every lookup goes
	// live.
	var (
		redisClient  *redis.Redis
		geocodeCache service.GeocodeCache
	)
	if !cfg.Redis.Disabled && cfg.Redis.Addr != "" {
		logger.Info("Initializing Redis")
		redisClient, err = redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		geocodeCache = redis.NewGeocodeCache(redisClient)
	} else {
		logger.Info("Redis disabled, geocode lookups are uncached")
	}

	intakeSvc := service.NewIntakeService(store, resolver, geocodeCache, logger)
	dispatchSvc := service.NewDispatchService(store, logger)
	statsSvc := service.NewStatsService(store)

	srv := service.NewService(intakeSvc, dispatchSvc, statsSvc)

	httpServer := api.NewServer(cfg, logger, srv, store.Backend())
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Store:      store,
		Redis:      redisClient,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
