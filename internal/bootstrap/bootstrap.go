// Package bootstrap builds the adapters shared by the api and scraper
// commands from the loaded configuration.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"goodhouse/internal/adapters/auth"
	"goodhouse/internal/adapters/direct"
	"goodhouse/internal/adapters/events"
	"goodhouse/internal/adapters/firecrawl"
	"goodhouse/internal/adapters/observability"
	"goodhouse/internal/domain"
	"goodhouse/internal/shared"
	mysqlrepo "goodhouse/internal/storage/mysql"
	pgrepo "goodhouse/internal/storage/postgres"
)

// Store is a repository that can also write admin settings.
type Store interface {
	domain.Repository
	SetSetting(ctx context.Context, key, value string) error
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

// Logger builds the global logger. When FLUENT_HOST is set, events are also
// shipped to Fluent Bit; the returned closer flushes that sink.
func Logger(cfg shared.Config) (zerolog.Logger, io.Closer) {
	if cfg.FluentHost == "" {
		return observability.NewLogger(cfg.AppEnv), closeFunc(func() error { return nil })
	}
	fw, err := observability.NewFluentWriter(cfg.FluentHost, cfg.FluentPort, "goodhouse")
	if err != nil {
		l := observability.NewLogger(cfg.AppEnv)
		l.Warn().Err(err).Msg("fluent sink unavailable, logging to stdout only")
		return l, closeFunc(func() error { return nil })
	}
	return observability.NewLogger(cfg.AppEnv, fw), fw
}

// OpenStore connects the repository selected by DB_DRIVER.
func OpenStore(ctx context.Context, cfg shared.Config) (Store, io.Closer, error) {
	switch cfg.DBDriver {
	case "mysql":
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("driver", "mysql").Msg("database connection ok")
		return mysqlrepo.New(db), db, nil
	case "postgres", "postgresql":
		pool, err := pgrepo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("driver", "postgres").Msg("database connection ok")
		return pgrepo.New(pool), closeFunc(func() error { pool.Close(); return nil }), nil
	}
	return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}

// SeedAdminPassword stores a bcrypt hash of ADMIN_PASSWORD when one is
// configured. An empty password leaves the stored setting untouched.
func SeedAdminPassword(ctx context.Context, s Store, password string) error {
	if password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return s.SetSetting(ctx, "admin_password", string(hash))
}

// ScrapeClient prefers the Firecrawl API and falls back to fetching pages
// directly when no key is configured.
func ScrapeClient(cfg shared.Config) (domain.ScrapeClient, error) {
	if cfg.FirecrawlKey == "" {
		log.Info().Msg("scraping with the direct fetcher")
		return direct.New(), nil
	}
	return firecrawl.New(cfg.FirecrawlBase, cfg.FirecrawlKey, cfg.FirecrawlRPS)
}

// Tokens builds the admin token issuer. Without JWT_SECRET a random
// per-process secret is used.
func Tokens(cfg shared.Config) (*auth.Tokens, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
	}
	return auth.NewTokens(secret)
}

// Events dials RabbitMQ when AMQP_URL is set. A broker that cannot be
// reached degrades to a no-op publisher.
func Events(cfg shared.Config) (domain.EventPublisher, io.Closer) {
	nop := closeFunc(func() error { return nil })
	if cfg.AMQPURL == "" {
		return events.Noop{}, nop
	}
	p, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		log.Warn().Err(err).Msg("event publishing disabled")
		return events.Noop{}, nop
	}
	return p, p
}
