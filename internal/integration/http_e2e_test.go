//go:build integration

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"goodhouse/internal/adapters/auth"
	"goodhouse/internal/adapters/events"
	server "goodhouse/internal/adapters/http_server"
	redisad "goodhouse/internal/adapters/redis"
	"goodhouse/internal/app"
	"goodhouse/internal/bootstrap"
	"goodhouse/internal/domain"
	mysqlrepo "goodhouse/internal/storage/mysql"
)

// ---------- helpers ----------
func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations", "mysql")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

// ---------- the test ----------
func TestHTTP_EndToEnd_SubmitApproveBrowse(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=goodhouse",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", resource.GetPort("3306/tcp"), "goodhouse")
	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	applyMigrations(t, db)

	ctx := context.Background()
	repo := mysqlrepo.New(db)
	if err := bootstrap.SeedAdminPassword(ctx, repo, "correct horse"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	tokens, err := auth.NewTokens("e2e-secret-0123456789")
	if err != nil {
		t.Fatal(err)
	}
	listings := app.NewListingService(repo, cache, time.Minute)
	srv := server.New(server.Options{})
	srv.MountHandlers(&server.Handlers{
		Listings:   listings,
		Moderation: app.NewModerationService(repo, tokens, events.Noop{}, listings, time.Hour),
		Tokens:     tokens,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// Prime the cache with the catalog-only listing set.
	res, err := http.Get(ts.URL + "/v1/listings?locality=Ikoyi")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	res = postJSON(t, ts.URL+"/v1/submissions", "", map[string]any{
		"title":         "Penthouse in Ikoyi",
		"property_type": "apartment",
		"listing_type":  "sale",
		"price":         650000000,
		"state":         "Lagos",
		"city":          "Lagos Island",
		"locality":      "Ikoyi",
		"bedrooms":      4,
		"bathrooms":     5,
		"size":          380,
		"description":   "Top floor penthouse with lagoon views and private lift.",
		"agent_name":    "Kemi",
		"agent_phone":   "08034445555",
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("submit status %d", res.StatusCode)
	}
	var created struct {
		Submission domain.Submission `json:"submission"`
	}
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	res = postJSON(t, ts.URL+"/v1/admin/login", "", map[string]string{"password": "correct horse"})
	defer res.Body.Close()
	var login struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&login); err != nil || login.Token == "" {
		t.Fatalf("login failed: %v", err)
	}

	b, _ := json.Marshal(map[string]string{"status": "approved"})
	req, _ := http.NewRequest(http.MethodPatch, ts.URL+"/v1/admin/submissions/"+created.Submission.ID, bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+login.Token)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("approve status %d", res.StatusCode)
	}

	// Approval invalidated the cache; the submission is now listed.
	res, err = http.Get(ts.URL + "/v1/listings?locality=Ikoyi")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	var page domain.ListingsPage
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].ID != "sub-"+created.Submission.ID {
		t.Fatalf("unexpected page: %+v", page)
	}
}
