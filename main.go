package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jsgroupfr/merge-videos-api/pkg/api/handlers"
	"github.com/jsgroupfr/merge-videos-api/pkg/api/routes"
	"github.com/jsgroupfr/merge-videos-api/pkg/auth"
	"github.com/jsgroupfr/merge-videos-api/pkg/config"
	"github.com/jsgroupfr/merge-videos-api/pkg/logger"
	"github.com/jsgroupfr/merge-videos-api/pkg/storage"
	_ "github.com/jsgroupfr/merge-videos-api/pkg/storage/local"
	_ "github.com/jsgroupfr/merge-videos-api/pkg/storage/s3"
	"github.com/jsgroupfr/merge-videos-api/pkg/upload"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger with default settings until config is loaded
	logger.Init("info", "json")
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log = logger.Get()

	client, err := storage.NewFactory().Create(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to create storage client")
	}
	defer client.Close()

	uploader := upload.New(cfg.Storage, client, *log)

	router := routes.New(routes.Deps{
		Authenticator: auth.New(cfg.Auth.APIKey),
		Video:         handlers.NewVideoHandler(uploader),
		Logger:        *log,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.Storage.Driver).Msg("starting merge-videos-api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
