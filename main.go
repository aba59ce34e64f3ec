package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"tvbridge/internal/clients/tvdb"
	"tvbridge/internal/config"
	"tvbridge/internal/core"
	"tvbridge/internal/handlers"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := newLogger(cfg.App.Debug)

	snap := config.NewSnapshot(cfg)
	stopWatch, err := config.Watch(*configPath, snap, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("config watcher unavailable, edits will need a restart")
	} else {
		defer stopWatch()
	}

	client := tvdb.NewClient(tvdb.Options{
		BaseURL:           cfg.TVDB.BaseURL,
		APIKey:            cfg.TVDB.APIKey,
		PIN:               cfg.TVDB.PIN,
		Language:          cfg.TVDB.Language,
		RequestsPerSecond: cfg.TVDB.RequestsPerSecond,
		Logger:            logger,
	})

	loginCtx, cancelLogin := context.WithTimeout(context.Background(), 30*time.Second)
	if err := client.Login(loginCtx); err != nil {
		cancelLogin()
		logger.Fatal().Err(err).Msg("upstream login failed")
	}
	cancelLogin()

	provider := core.NewProvider(client, cfg.Provider.Identifier, cfg.Provider.Country, logger)
	server := handlers.NewServer(snap, provider, logger)

	// Upstream tokens expire after about a month. A daily refresh keeps a
	// long-running process from ever hitting the cliff.
	scheduler := cron.New()
	scheduler.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := client.Refresh(ctx); err != nil {
			logger.Warn().Err(err).Msg("token refresh failed")
		}
	})
	scheduler.Start()

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	logger.Info().Int("port", cfg.App.Port).Msg("tvbridge started")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info().Msg("shutting down")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	var logger zerolog.Logger
	if debug {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
