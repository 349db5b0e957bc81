package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/backend"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/config"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/appointment"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/chart"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/patient"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/treatment"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/db"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

// newLogger builds the root logger: JSON in production, console output in
// development. An unknown LOG_LEVEL falls back to info.
func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.IsDev() {
		out = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// app holds the services of one process, wired to the configured data
// source.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	pool   *pgxpool.Pool

	patients     *patient.Service
	appointments *appointment.Service
	treatments   *treatment.Service
	charts       *chart.Service
}

type repositories struct {
	patients     patient.Repository
	appointments appointment.Repository
	treatments   treatment.Repository
}

func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := newLogger(cfg, os.Stdout)
	if err := cfg.Validate(); err != nil {
		return nil, logger, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, logger, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	var repos repositories
	switch cfg.DataSource {
	case config.SourcePostgres:
		pool, err := openPool(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		repos = repositories{
			patients:     patient.NewRepoPG(pool),
			appointments: appointment.NewRepoPG(pool),
			treatments:   treatment.NewRepoPG(pool),
		}
	default:
		client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, logger)
		repos = repositories{
			patients:     patient.NewRepoREST(client),
			appointments: appointment.NewRepoREST(client),
			treatments:   treatment.NewRepoREST(client),
		}
		logger.Info().Str("backend_url", cfg.BackendURL).Msg("using REST data source")
	}

	window := listview.WithWindowSize(cfg.PageWindow)
	a.patients = patient.NewService(repos.patients, logger, listview.WithPageSize(cfg.PatientPageSize), window)
	a.appointments = appointment.NewService(repos.appointments, a.patients, logger,
		listview.WithPageSize(cfg.AppointmentPageSize), window)
	a.treatments = treatment.NewService(repos.treatments, logger)
	a.charts = chart.NewService(a.patients, a.appointments, a.treatments, logger, cfg.PageWindow)
	return a, nil
}

func openPool(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, error) {
	return db.NewPool(ctx, db.Options{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
		Schema:   cfg.DBSchema,
	}, logger)
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
