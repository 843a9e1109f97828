// Package main is the entry point for the movies API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"github.com/aoideee/movies/internal/config"
	"github.com/aoideee/movies/internal/data"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

// appVersion is the current version of the API, shown in logs and the healthcheck.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config config.Config
	logger zerolog.Logger
	models data.Models
}

func main() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339

	bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Environment (and .env) first; flags override it.
	settings, err := config.Load()
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("could not load configuration")
	}

	flag.IntVar(&settings.Port, "port", settings.Port, "Server port")
	flag.StringVar(&settings.Env, "env", settings.Env, "Environment (development|staging|production)")
	flag.StringVar(&settings.DB.DSN, "db-dsn", settings.DB.DSN, "PostgreSQL DSN")
	flag.IntVar(&settings.DB.MaxOpenConns, "db-max-open-conns", settings.DB.MaxOpenConns, "PostgreSQL max open connections")
	flag.IntVar(&settings.DB.MaxIdleConns, "db-max-idle-conns", settings.DB.MaxIdleConns, "PostgreSQL max idle connections")
	flag.DurationVar(&settings.DB.MaxIdleTime, "db-max-idle-time", settings.DB.MaxIdleTime, "PostgreSQL max connection idle time")
	flag.BoolVar(&settings.DB.Migrate, "migrate", settings.DB.Migrate, "Apply database migrations before serving")
	flag.Float64Var(&settings.Limiter.RPS, "limiter-rps", settings.Limiter.RPS, "Rate limiter maximum requests per second")
	flag.IntVar(&settings.Limiter.Burst, "limiter-burst", settings.Limiter.Burst, "Rate limiter maximum burst")
	flag.BoolVar(&settings.Limiter.Enabled, "limiter-enabled", settings.Limiter.Enabled, "Enable rate limiter")

	flag.Parse()

	if err := settings.Validate(); err != nil {
		bootLogger.Fatal().Err(err).Msg("invalid flags")
	}

	logger := newLogger(settings.Env)

	if settings.DB.Migrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		from, to, err := data.Migrate(ctx, settings.DB.DSN)
		cancel()
		if err != nil {
			logger.Fatal().Stack().Err(err).Msg("database migration failed")
		}
		if from == to {
			logger.Info().Int32("version", to).Msg("database schema up to date")
		} else {
			logger.Info().Int32("from", from).Int32("to", to).Msg("migrated database schema")
		}
	}

	db, err := openDB(settings)
	if err != nil {
		logger.Fatal().Stack().Err(err).Msg("could not open database")
	}
	defer db.Close()

	logger.Info().Msg("database connection pool established")

	app := &applicationDependencies{
		config: settings,
		logger: logger,
		models: data.NewModels(db),
	}

	err = app.serve()
	if err != nil {
		logger.Error().Stack().Err(err).Msg("server stopped with error")
		db.Close()
		os.Exit(1)
	}
}

// newLogger writes human-readable lines in development and JSON elsewhere.
func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger().
			Level(zerolog.DebugLevel)
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// openDB opens a PostgreSQL connection pool using the DSN stored in settings,
// applies the pool limits, then pings the database with a 5-second timeout
// to confirm it is reachable.
func openDB(settings config.Config) (*sql.DB, error) {
	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open("postgres", settings.DB.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	db.SetMaxOpenConns(settings.DB.MaxOpenConns)
	db.SetMaxIdleConns(settings.DB.MaxIdleConns)
	db.SetConnMaxIdleTime(settings.DB.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	return db, nil
}
