package app

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"goodhouse/internal/catalog"
	"goodhouse/internal/domain"
)

const (
	adminPasswordKey = "admin_password"
	adminSubject     = "admin"
	minTitleLen      = 5

	EventSubmissionCreated  = "submission.created"
	EventSubmissionReviewed = "submission.reviewed"
)

// ModerationService owns the submission lifecycle: public submit, admin
// login, listing and status updates.
type ModerationService struct {
	repo     domain.Repository
	tokens   domain.TokenIssuer
	events   domain.EventPublisher
	listings *ListingService
	tokenTTL time.Duration

	now   func() time.Time
	newID func() string
}

func NewModerationService(r domain.Repository, t domain.TokenIssuer, ev domain.EventPublisher, ls *ListingService, tokenTTL time.Duration) *ModerationService {
	return &ModerationService{
		repo:     r,
		tokens:   t,
		events:   ev,
		listings: ls,
		tokenTTL: tokenTTL,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Login checks the password against the stored admin password and issues
// a session token.
func (s *ModerationService) Login(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", domain.ErrInvalidCredentials
	}
	stored, err := s.repo.GetSetting(ctx, adminPasswordKey)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn().Msg("admin password is not configured")
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("load admin password: %w", err)
	}
	if !passwordMatches(stored, password) {
		return "", domain.ErrInvalidCredentials
	}
	return s.tokens.Issue(ctx, adminSubject, s.tokenTTL)
}

func passwordMatches(stored, given string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

// Submit validates a raw submission body and stores it as pending.
func (s *ModerationService) Submit(ctx context.Context, body []byte) (domain.Submission, error) {
	if err := ValidateSubmission(body); err != nil {
		return domain.Submission{}, err
	}
	var sub domain.Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		return domain.Submission{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	// The schema counts surrounding whitespace; the stored title does not.
	sub.Title = strings.TrimSpace(sub.Title)
	if utf8.RuneCountInString(sub.Title) < minTitleLen {
		return domain.Submission{}, fmt.Errorf("%w: title: must be at least %d characters", domain.ErrValidation, minTitleLen)
	}
	if !catalog.ValidLocation(sub.State, sub.City, sub.Locality) {
		return domain.Submission{}, fmt.Errorf("%w: unknown location %s / %s / %s",
			domain.ErrValidation, sub.State, sub.City, sub.Locality)
	}

	sub.ID = s.newID()
	sub.Status = domain.StatusPending
	sub.RejectionReason = nil
	sub.ReviewedAt = nil
	sub.CreatedAt = s.now().UTC()
	switch {
	case sub.ListingType == domain.ListingSale:
		sub.PricePeriod = nil
	case sub.PricePeriod == nil:
		yearly := domain.PerYear
		sub.PricePeriod = &yearly
	}
	if sub.Features == nil {
		sub.Features = []string{}
	}

	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return domain.Submission{}, fmt.Errorf("create submission: %w", err)
	}
	s.publish(ctx, EventSubmissionCreated, map[string]any{
		"id":           sub.ID,
		"title":        sub.Title,
		"listingType":  sub.ListingType,
		"propertyType": sub.PropertyType,
		"state":        sub.State,
		"city":         sub.City,
		"createdAt":    sub.CreatedAt,
	})
	return sub, nil
}

// ListSubmissions returns submissions newest first. An empty status or
// "all" disables the status filter.
func (s *ModerationService) ListSubmissions(ctx context.Context, status string) ([]domain.Submission, error) {
	var filter *domain.SubmissionStatus
	if status != "" && status != "all" {
		st, ok := domain.ParseStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
		}
		filter = &st
	}
	subs, err := s.repo.ListSubmissions(ctx, filter)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []domain.Submission{}
	}
	return subs, nil
}

// UpdateStatus approves or rejects a submission. The reason is kept only
// for rejections.
func (s *ModerationService) UpdateStatus(ctx context.Context, id, status, reason string) error {
	st, ok := domain.ParseStatus(status)
	if !ok || st == domain.StatusPending {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	u := domain.StatusUpdate{Status: st, ReviewedAt: s.now().UTC()}
	if r := strings.TrimSpace(reason); st == domain.StatusRejected && r != "" {
		u.RejectionReason = &r
	}

	if err := s.repo.UpdateSubmissionStatus(ctx, id, u); err != nil {
		return err
	}
	if s.listings != nil {
		s.listings.Invalidate(ctx)
	}

	payload := map[string]any{"id": id, "status": st, "reviewedAt": u.ReviewedAt}
	if u.RejectionReason != nil {
		payload["rejectionReason"] = *u.RejectionReason
	}
	s.publish(ctx, EventSubmissionReviewed, payload)
	return nil
}

// publish logs failures instead of returning them.
func (s *ModerationService) publish(ctx context.Context, key string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("event", key).Msg("publish failed")
	}
}
