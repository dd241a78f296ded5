package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "goodhouse/internal/adapters/http_server"
	"goodhouse/internal/adapters/observability"
	redisad "goodhouse/internal/adapters/redis"
	"goodhouse/internal/app"
	"goodhouse/internal/bootstrap"
	"goodhouse/internal/domain"
	"goodhouse/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	logger, logSink := bootstrap.Logger(cfg)
	log.Logger = logger
	defer logSink.Close()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	store, dbCloser, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer dbCloser.Close()
	if err := bootstrap.SeedAdminPassword(ctx, store, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed admin password failed")
	}

	// deps
	var cache domain.Cache
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := rc.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, serving without cache")
	} else {
		cache = rc
	}
	defer rc.Close()

	tokens, err := bootstrap.Tokens(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer init failed")
	}
	publisher, evCloser := bootstrap.Events(cfg)
	defer evCloser.Close()

	scrapeClient, err := bootstrap.ScrapeClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("scrape client init failed")
	}

	listings := app.NewListingService(store, cache, cfg.CacheTTL)
	handlers := &server.Handlers{
		Listings:   listings,
		Moderation: app.NewModerationService(store, tokens, publisher, listings, cfg.TokenTTL),
		Scraper:    app.NewScrapeService(scrapeClient, store, listings, cfg.ScrapeBase),
		Tokens:     tokens,
	}

	// http
	srv := server.New(server.Options{CORSOrigins: cfg.CORSOrigins})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
