package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/appointment"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/chart"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/patient"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/treatment"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/auth"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/db"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/middleware"
)

const version = "0.1.0"

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to data source")
		return err
	}
	defer a.Close()

	if cfg.IsDev() {
		logger.Warn().Msg("development mode: requests without a token run as admin")
	}

	e := newServer(a)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("data_source", cfg.DataSource).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer builds the echo instance with every route mounted.
func newServer(a *app) *echo.Echo {
	cfg, logger := a.cfg, a.logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.BodyLimit("1M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.RequestIDHeader},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":      "ok",
			"version":     version,
			"data_source": cfg.DataSource,
		})
	})
	if a.pool != nil {
		e.GET("/health/db", db.HealthHandler(a.pool))
	}

	jwtCfg := auth.JWTConfig{
		Issuer:     cfg.AuthIssuer,
		SigningKey: []byte(cfg.AuthSigningKey),
		Skipper:    auth.AuthSkipper,
	}
	api := e.Group("/api/v1", middleware.RequestTimeout(cfg.RequestTimeout))
	if cfg.IsDev() {
		api.Use(auth.DevAuthMiddleware(jwtCfg))
	} else {
		api.Use(auth.JWTMiddleware(jwtCfg))
	}

	registerRoutes(api, a, logger)
	return e
}

func registerRoutes(api *echo.Group, a *app, logger zerolog.Logger) {
	patient.NewHandler(a.patients, a.cfg.PatientPageSize).RegisterRoutes(api)
	appointment.NewHandler(a.appointments, a.cfg.AppointmentPageSize).RegisterRoutes(api)
	treatment.NewHandler(a.treatments).RegisterRoutes(api)
	chart.NewHandler(a.charts, a.cfg.HistoryPageSize).RegisterRoutes(api)
	logger.Debug().Msg("routes registered")
}
