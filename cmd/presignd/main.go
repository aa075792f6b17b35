package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"

	"github.com/objstore/presign/internal/api"
)

type Config struct {
	Port        string `env:"PRESIGN_PORT" env-default:"8080"`
	Environment string `env:"PRESIGN_ENV" env-default:"development"`

	Bucket          string `env:"PRESIGN_BUCKET" env-required:"true"`
	Endpoint        string `env:"PRESIGN_ENDPOINT" env-required:"true"`
	Region          string `env:"PRESIGN_REGION" env-default:"auto"`
	AccessKeyID     string `env:"PRESIGN_ACCESS_KEY_ID" env-required:"true"`
	SecretAccessKey string `env:"PRESIGN_SECRET_ACCESS_KEY" env-required:"true"`
}

func main() {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fallbackLogger := zerolog.New(os.Stderr)
		fallbackLogger.Error().Err(err).Msg("Failed to read configuration")
		os.Exit(1)
	}

	logger := initLogger(cfg)
	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("endpoint", cfg.Endpoint).
		Str("region", cfg.Region).
		Str("port", cfg.Port).
		Msg("Starting presign server")

	handler := api.NewSignHandler(api.SignerConfig{
		Bucket:          cfg.Bucket,
		Endpoint:        cfg.Endpoint,
		Region:          cfg.Region,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
	}, logger)

	r := chi.NewRouter()
	r.Mount("/", handler.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		logger.Error().Err(err).Msg("Server stopped")
		os.Exit(1)
	}
}

// initLogger initializes and configures the zerolog logger
func initLogger(cfg Config) zerolog.Logger {
	if cfg.Environment == "development" {
		// Pretty console output in development
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel).
			With().
			Timestamp().
			Logger()
	}

	// Production: JSON output, info level
	return zerolog.New(os.Stdout).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("service", "presignd").
		Logger()
}
