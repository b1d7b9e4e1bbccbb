// Package bootstrap builds the app for the serverless entry point, which cannot import internal packages.
package bootstrap

import (
	"os"
	"time"

	"semdex-backend/internal/config"
	"semdex-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New loads config, sets up logging and creates the Fiber app.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	SetupLogger(cfg)
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}

// SetupLogger applies LOG_LEVEL and uses a console writer outside production.
func SetupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
