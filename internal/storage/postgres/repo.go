// Package postgres implements the repository on PostgreSQL through a pgx
// connection pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"goodhouse/internal/domain"
)

type Repo struct{ pool *pgxpool.Pool }

func New(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Open builds a pool from a postgres:// URL and checks connectivity.
func Open(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func period(p *domain.PricePeriod) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

// UpsertListings writes all rows in a single batch; one failing row fails
// the batch.
func (r *Repo) UpsertListings(ctx context.Context, source string, ps []domain.Property) error {
	if len(ps) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, p := range ps {
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode listing %s: %w", p.ID, err)
		}
		b.Queue(upsertListingSQL,
			source, p.ID, p.Title, string(p.Type), string(p.PropertyType), p.Price, period(p.PriceUnit),
			nonEmpty(p.Location.State), nonEmpty(p.Location.City), nonEmpty(p.Location.Area),
			p.Bedrooms, p.Bathrooms, p.Toilets, p.Size, string(p.SizeUnit),
			nonEmpty(p.SourceURL), string(raw), p.CreatedAt.UTC(),
		)
	}
	return r.pool.SendBatch(ctx, b).Close()
}

func (r *Repo) ListListings(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.pool.Query(ctx, listListingsSQL)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Property, error) {
		var raw []byte
		var p domain.Property
		if err := row.Scan(&raw); err != nil {
			return p, err
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return p, fmt.Errorf("decode stored listing: %w", err)
		}
		return p, nil
	})
}

func (r *Repo) CreateSubmission(ctx context.Context, s domain.Submission) error {
	features := s.Features
	if features == nil {
		features = []string{}
	}
	_, err := r.pool.Exec(ctx, insertSubmissionSQL,
		s.ID, s.Title, string(s.PropertyType), string(s.ListingType), s.Price, period(s.PricePeriod),
		s.State, s.City, s.Locality, nonEmpty(s.Address),
		s.Bedrooms, s.Bathrooms, s.Toilets, s.Size, s.Description, s.IsServiced, s.IsFurnished,
		features, s.AgentName, s.AgentPhone, s.AgentEmail, s.AgentCompany,
		string(s.Status), s.CreatedAt.UTC(),
	)
	return err
}

func (r *Repo) UpdateSubmissionStatus(ctx context.Context, id string, u domain.StatusUpdate) error {
	// Ids are uuids here; anything else cannot match a row.
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, updateSubmissionStatusSQL,
		string(u.Status), u.ReviewedAt.UTC(), u.RejectionReason, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) ListSubmissions(ctx context.Context, status *domain.SubmissionStatus) ([]domain.Submission, error) {
	var st *string
	if status != nil {
		v := string(*status)
		st = &v
	}
	rows, err := r.pool.Query(ctx, listSubmissionsSQL, st)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanSubmission)
}

func scanSubmission(row pgx.CollectableRow) (domain.Submission, error) {
	var (
		s                              domain.Submission
		propertyType, listingType, sts string
		pricePeriod, address           *string
	)
	err := row.Scan(
		&s.ID, &s.Title, &propertyType, &listingType, &s.Price, &pricePeriod,
		&s.State, &s.City, &s.Locality, &address,
		&s.Bedrooms, &s.Bathrooms, &s.Toilets, &s.Size, &s.Description,
		&s.IsServiced, &s.IsFurnished, &s.Features,
		&s.AgentName, &s.AgentPhone, &s.AgentEmail, &s.AgentCompany, &sts,
		&s.RejectionReason, &s.CreatedAt, &s.ReviewedAt,
	)
	if err != nil {
		return s, err
	}
	s.PropertyType = domain.PropertyType(propertyType)
	s.ListingType = domain.ListingType(listingType)
	s.Status = domain.SubmissionStatus(sts)
	if pricePeriod != nil {
		pp := domain.PricePeriod(*pricePeriod)
		s.PricePeriod = &pp
	}
	if address != nil {
		s.Address = *address
	}
	if s.Features == nil {
		s.Features = []string{}
	}
	return s, nil
}

func (r *Repo) GetSetting(ctx context.Context, key string) (string, error) {
	var v string
	err := r.pool.QueryRow(ctx, getSettingSQL, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	return v, err
}

// SetSetting stores an admin setting, replacing any previous value.
func (r *Repo) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx, setSettingSQL, key, value)
	return err
}
