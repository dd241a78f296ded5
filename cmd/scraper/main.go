package main

import (
	"context"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"goodhouse/internal/adapters/observability"
	redisad "goodhouse/internal/adapters/redis"
	"goodhouse/internal/app"
	"goodhouse/internal/bootstrap"
	"goodhouse/internal/domain"
	"goodhouse/internal/shared"
)

var (
	listingTypes  = []domain.ListingType{domain.ListingRent, domain.ListingSale}
	propertyTypes = []domain.PropertyType{domain.TypeHouse, domain.TypeApartment, domain.TypeLand, domain.TypeCommercial}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	logger, logSink := bootstrap.Logger(cfg)
	log.Logger = logger
	defer logSink.Close()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	log.Info().
		Str("base", cfg.ScrapeBase).
		Int("workers", cfg.Workers).
		Msg("scraper starting")

	store, dbCloser, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer dbCloser.Close()

	client, err := bootstrap.ScrapeClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize scrape client")
	}

	// Stored listings invalidate the API's cached listing set.
	var cache domain.Cache
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := rc.Ping(ctx); err == nil {
		cache = rc
	}
	defer rc.Close()

	svc := app.NewScrapeService(client, store, app.NewListingService(store, cache, cfg.CacheTTL), cfg.ScrapeBase)
	start := time.Now()
	stored, failed := runAll(ctx, cfg.Workers, combos(), svc.ScrapeAndStore)
	log.Info().
		Int64("stored", stored).
		Int64("failed", failed).
		Dur("took", time.Since(start)).
		Msg("scraping completed")
}

func combos() []domain.ScrapeRequest {
	reqs := make([]domain.ScrapeRequest, 0, len(listingTypes)*len(propertyTypes))
	for _, lt := range listingTypes {
		for _, pt := range propertyTypes {
			reqs = append(reqs, domain.ScrapeRequest{ListingType: string(lt), PropertyType: string(pt)})
		}
	}
	return reqs
}

type scrapeFunc func(context.Context, domain.ScrapeRequest) (domain.ScrapeResult, error)

// runAll scrapes reqs with at most workers in flight. Requests not yet
// started when ctx is cancelled are skipped.
func runAll(ctx context.Context, workers int, reqs []domain.ScrapeRequest, scrape scrapeFunc) (stored, failed int64) {
	sem := semaphore.NewWeighted(int64(max(workers, 1)))
	var (
		wg      sync.WaitGroup
		nStored atomic.Int64
		nFailed atomic.Int64
	)

	for _, req := range reqs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("scrape cancelled")
			break
		}

		wg.Add(1)
		go func(req domain.ScrapeRequest) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := scrape(ctx, req)
			if err != nil {
				nFailed.Add(1)
				log.Warn().Err(err).Str("listing_type", req.ListingType).Str("property_type", req.PropertyType).Msg("scrape failed")
				return
			}
			for _, p := range res.Properties {
				observability.ObserveScraped(string(p.Type), string(p.PropertyType))
			}
			nStored.Add(int64(len(res.Properties)))
			log.Info().Str("url", res.SourceURL).Int("found", res.TotalFound).Msg("scrape ok")
		}(req)
	}

	wg.Wait()
	return nStored.Load(), nFailed.Load()
}
