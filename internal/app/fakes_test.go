package app_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"goodhouse/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu        sync.Mutex
	listings  []domain.Property
	subs      []domain.Submission
	settings  map[string]string
	upserted  map[string][]domain.Property
	updates   map[string]domain.StatusUpdate
	listCalls int
	err       error
}

func (f *fakeRepo) UpsertListings(ctx context.Context, source string, ps []domain.Property) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upserted == nil {
		f.upserted = map[string][]domain.Property{}
	}
	f.upserted[source] = append(f.upserted[source], ps...)
	f.listings = append(f.listings, ps...)
	return f.err
}

func (f *fakeRepo) CreateSubmission(ctx context.Context, s domain.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.subs = append(f.subs, s)
	return nil
}

func (f *fakeRepo) UpdateSubmissionStatus(ctx context.Context, id string, u domain.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.subs {
		if f.subs[i].ID != id {
			continue
		}
		f.subs[i].Status = u.Status
		f.subs[i].RejectionReason = u.RejectionReason
		at := u.ReviewedAt
		f.subs[i].ReviewedAt = &at
		if f.updates == nil {
			f.updates = map[string]domain.StatusUpdate{}
		}
		f.updates[id] = u
		return nil
	}
	return domain.ErrNotFound
}

func (f *fakeRepo) ListListings(ctx context.Context) ([]domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]domain.Property(nil), f.listings...), f.err
}

func (f *fakeRepo) ListSubmissions(ctx context.Context, status *domain.SubmissionStatus) ([]domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Submission
	for i := len(f.subs) - 1; i >= 0; i-- {
		if status == nil || f.subs[i].Status == *status {
			out = append(out, f.subs[i])
		}
	}
	return out, f.err
}

func (f *fakeRepo) GetSetting(ctx context.Context, key string) (string, error) {
	v, ok := f.settings[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

// fakeCache round-trips values through JSON like the Redis adapter does.
type fakeCache struct {
	store map[string][]byte
	dels  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels++
	delete(c.store, key)
	return nil
}

type fakeTokens struct {
	issued []string
}

func (t *fakeTokens) Issue(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	tok := "tok-" + subject
	t.issued = append(t.issued, tok)
	return tok, nil
}

func (t *fakeTokens) Verify(ctx context.Context, token string) (domain.Claims, error) {
	return domain.Claims{Subject: "admin", Role: "admin"}, nil
}

type publishedEvent struct {
	key     string
	payload any
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, key string, payload any) error {
	p.events = append(p.events, publishedEvent{key, payload})
	return p.err
}

type fakeScraper struct {
	links    []string
	markdown string
	mapErr   error
	scrErr   error
	mapped   []string
	scraped  []string
	mu       sync.Mutex
}

func (s *fakeScraper) Map(ctx context.Context, url string, limit int) ([]string, error) {
	s.mu.Lock()
	s.mapped = append(s.mapped, url)
	s.mu.Unlock()
	return s.links, s.mapErr
}

func (s *fakeScraper) Scrape(ctx context.Context, url string) (domain.ScrapedPage, error) {
	s.mu.Lock()
	s.scraped = append(s.scraped, url)
	s.mu.Unlock()
	return domain.ScrapedPage{Markdown: s.markdown}, s.scrErr
}

func ptr[T any](v T) *T { return &v }

func ids(ps []domain.Property) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
