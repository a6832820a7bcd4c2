package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/adityanb2025/Disaster-relief-app/internal/api/handlers/http/dispatch"
	"github.com/adityanb2025/Disaster-relief-app/internal/api/handlers/http/intake"
	"github.com/adityanb2025/Disaster-relief-app/internal/api/handlers/http/system"
	"github.com/adityanb2025/Disaster-relief-app/internal/config"
	"github.com/adityanb2025/Disaster-relief-app/internal/middleware"
	"github.com/adityanb2025/Disaster-relief-app/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, backend string) *Server {
	intakeHandler := intake.NewHandler(logger, svc.IntakeService)
	dispatchHandler := dispatch.NewHandler(logger, svc.DispatchService, svc.StatsService)
	systemHandler := system.NewHandler(logger, backend)

	r := InitRouter(cfg, intakeHandler, dispatchHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(cfg *config.Config, intakeHandler *intake.Handler, dispatchHandler *dispatch.Handler, systemHandler *system.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/requests", func(rr chi.Router) {
			// Victim submissions: open endpoint, keep abuse in check.
			rr.With(middleware.Limit(5, 10, 10*time.Minute, logger)).
				Post("/", intakeHandler.SubmitRequest)

			// Volunteer dashboard reads and transitions.
			rr.Get("/", dispatchHandler.RequestList)
			rr.Get("/nearby", dispatchHandler.RequestNearby)
			rr.Patch("/{id}/status", dispatchHandler.RequestStatusUpdate)
		})

		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Get("/stats", dispatchHandler.AdminStats)
		})

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
