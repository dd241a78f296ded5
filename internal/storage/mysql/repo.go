package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"goodhouse/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valNonEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func valPeriod(p *domain.PricePeriod) any {
	if p == nil {
		return nil
	}
	return string(*p)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Open connects with the DSN options the repository relies on (parsed
// DATETIME columns in UTC) and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	norm, err := normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", norm)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// normalizeDSN forces parseTime and UTC, whatever the configured DSN says.
func normalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

func (r *Repo) UpsertListings(ctx context.Context, source string, ps []domain.Property) error {
	if len(ps) == 0 {
		return nil
	}
	values := make([]string, 0, len(ps))
	args := make([]any, 0, len(ps)*listingColumns)
	for _, p := range ps {
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode listing %s: %w", p.ID, err)
		}
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			source,
			p.ID,
			p.Title,
			string(p.Type),
			string(p.PropertyType),
			p.Price,
			valPeriod(p.PriceUnit),
			valNonEmpty(p.Location.State),
			valNonEmpty(p.Location.City),
			valNonEmpty(p.Location.Area),
			valInt(p.Bedrooms),
			valInt(p.Bathrooms),
			valInt(p.Toilets),
			p.Size,
			string(p.SizeUnit),
			valNonEmpty(p.SourceURL),
			string(raw),
			p.CreatedAt.UTC(),
		)
	}
	sqlStr := upsertListingPrefix + strings.Join(values, ",") + upsertListingOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) ListListings(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, listListingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Property
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var p domain.Property
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode stored listing: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) CreateSubmission(ctx context.Context, s domain.Submission) error {
	features, err := json.Marshal(s.Features)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertSubmissionSQL,
		s.ID,
		s.Title,
		string(s.PropertyType),
		string(s.ListingType),
		s.Price,
		valPeriod(s.PricePeriod),
		s.State,
		s.City,
		s.Locality,
		valNonEmpty(s.Address),
		s.Bedrooms,
		s.Bathrooms,
		s.Toilets,
		s.Size,
		s.Description,
		s.IsServiced,
		s.IsFurnished,
		string(features),
		s.AgentName,
		s.AgentPhone,
		valStr(s.AgentEmail),
		valStr(s.AgentCompany),
		string(s.Status),
		s.CreatedAt.UTC(),
	)
	return err
}

func (r *Repo) UpdateSubmissionStatus(ctx context.Context, id string, u domain.StatusUpdate) error {
	res, err := r.db.ExecContext(ctx, updateSubmissionStatusSQL,
		string(u.Status),
		u.ReviewedAt.UTC(),
		valStr(u.RejectionReason),
		id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) ListSubmissions(ctx context.Context, status *domain.SubmissionStatus) ([]domain.Submission, error) {
	var st any
	if status != nil {
		st = string(*status)
	}
	rows, err := r.db.QueryContext(ctx, listSubmissionsSQL, st, st)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Submission
	for rows.Next() {
		var s domain.Submission
		var (
			period, address, email, company, reason sql.NullString
			features                                []byte
			reviewed                                sql.NullTime
		)
		if err := rows.Scan(
			&s.ID, &s.Title, &s.PropertyType, &s.ListingType, &s.Price, &period,
			&s.State, &s.City, &s.Locality, &address,
			&s.Bedrooms, &s.Bathrooms, &s.Toilets, &s.Size, &s.Description,
			&s.IsServiced, &s.IsFurnished, &features,
			&s.AgentName, &s.AgentPhone, &email, &company, &s.Status,
			&reason, &s.CreatedAt, &reviewed,
		); err != nil {
			return nil, err
		}
		if period.Valid {
			pp := domain.PricePeriod(period.String)
			s.PricePeriod = &pp
		}
		s.Address = address.String
		if email.Valid {
			e := email.String
			s.AgentEmail = &e
		}
		if company.Valid {
			c := company.String
			s.AgentCompany = &c
		}
		if reason.Valid {
			rr := reason.String
			s.RejectionReason = &rr
		}
		if reviewed.Valid {
			t := reviewed.Time
			s.ReviewedAt = &t
		}
		if err := json.Unmarshal(features, &s.Features); err != nil || s.Features == nil {
			s.Features = []string{}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) GetSetting(ctx context.Context, key string) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx, getSettingSQL, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	return v, err
}

// SetSetting stores an admin setting, replacing any previous value.
func (r *Repo) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO admin_settings (setting_key, setting_value) VALUES (?, ?)
ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value)`, key, value)
	return err
}
