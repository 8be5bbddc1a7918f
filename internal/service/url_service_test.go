package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SANTHOSH-VJ/url-saas/internal/cache"
	"github.com/SANTHOSH-VJ/url-saas/internal/entities"
	"github.com/SANTHOSH-VJ/url-saas/internal/models"
	"github.com/SANTHOSH-VJ/url-saas/internal/repository"
	"github.com/SANTHOSH-VJ/url-saas/internal/repository/mocks"
	"github.com/SANTHOSH-VJ/url-saas/internal/shortcode"

	"go.uber.org/mock/gomock"
)

const testBaseURL = "http://localhost:8080"

func setupService(t *testing.T) (*urlService, repository.URLRepository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	svc := NewURLService(repo, nil, Options{}).(*urlService)
	return svc, repo
}

func TestShorten_GeneratedCode(t *testing.T) {
	svc, _ := setupService(t)

	resp, err := svc.Shorten(context.Background(), &models.CreateURLRequest{
		URL: "https://example.com/some/long/path",
	}, testBaseURL)
	if err != nil {
		t.Fatalf("Shorten failed: %v", err)
	}

	if len(resp.ShortCode) != shortcode.Length {
		t.Errorf("ShortCode = %q, want %d characters", resp.ShortCode, shortcode.Length)
	}
	if resp.LongURL != "https://example.com/some/long/path" {
		t.Errorf("LongURL = %q", resp.LongURL)
	}
	if resp.ShortURL != testBaseURL+"/"+resp.ShortCode {
		t.Errorf("ShortURL = %q", resp.ShortURL)
	}
	if resp.ExpiresAt != nil {
		t.Errorf("expected no expiration, got %v", resp.ExpiresAt)
	}
}

func TestShorten_InvalidURL(t *testing.T) {
	svc, _ := setupService(t)

	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "example.com"},
		{"ftp scheme", "ftp://example.com"},
		{"just text", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Shorten(context.Background(), &models.CreateURLRequest{URL: tt.url}, testBaseURL)
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("expected ErrInvalidURL for %q, got %v", tt.url, err)
			}
		})
	}
}

func TestShorten_CustomAlias(t *testing.T) {
	svc, _ := setupService(t)

	resp, err := svc.Shorten(context.Background(), &models.CreateURLRequest{
		URL:       "https://example.com",
		ShortCode: "my-link",
	}, testBaseURL)
	if err != nil {
		t.Fatalf("Shorten failed: %v", err)
	}
	if resp.ShortCode != "my-link" {
		t.Errorf("ShortCode = %q, want %q", resp.ShortCode, "my-link")
	}
}

func TestShorten_InvalidAlias(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Shorten(context.Background(), &models.CreateURLRequest{
		URL:       "https://example.com",
		ShortCode: "has spaces!",
	}, testBaseURL)
	if !errors.Is(err, ErrInvalidAlias) {
		t.Fatalf("expected ErrInvalidAlias, got %v", err)
	}
}

func TestShorten_AliasTaken(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.Shorten(ctx, &models.CreateURLRequest{
		URL:       "https://a.com",
		ShortCode: "blog",
	}, testBaseURL); err != nil {
		t.Fatalf("first Shorten failed: %v", err)
	}

	_, err := svc.Shorten(ctx, &models.CreateURLRequest{
		URL:       "https://b.com",
		ShortCode: "blog",
	}, testBaseURL)
	if !errors.Is(err, ErrAliasTaken) {
		t.Fatalf("expected ErrAliasTaken, got %v", err)
	}

	// The original mapping must be untouched.
	longURL, err := svc.Resolve(ctx, "blog")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if longURL != "https://a.com" {
		t.Errorf("alias was overwritten: resolves to %q", longURL)
	}
}

// The availability pre-check and the insert are not atomic; when another
// writer grabs the alias in between, the insert's unique-constraint error is
// what decides the outcome.
func TestShorten_AliasRaceLostOnInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockURLRepository(ctrl)
	svc := NewURLService(repo, nil, Options{})

	repo.EXPECT().FindByCode(gomock.Any(), "blog").Return(nil, repository.ErrNotFound)
	repo.EXPECT().Create(gomock.Any(), "https://a.com", "blog", gomock.Nil()).Return(nil, repository.ErrCodeTaken)

	_, err := svc.Shorten(context.Background(), &models.CreateURLRequest{
		URL:       "https://a.com",
		ShortCode: "blog",
	}, testBaseURL)
	if !errors.Is(err, ErrAliasTaken) {
		t.Fatalf("expected ErrAliasTaken, got %v", err)
	}
}

func TestShorten_CollisionRetriesWithNextSalt(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	// Stub generator: both URLs collide on the first salt, diverge after.
	svc.generate = func(longURL, salt string) string {
		if salt == "" {
			return "SAMEAA"
		}
		return shortcode.Generate(longURL, salt)
	}

	first, err := svc.Shorten(ctx, &models.CreateURLRequest{URL: "https://a.com"}, testBaseURL)
	if err != nil {
		t.Fatalf("first Shorten failed: %v", err)
	}
	if first.ShortCode != "SAMEAA" {
		t.Fatalf("first ShortCode = %q, want %q", first.ShortCode, "SAMEAA")
	}

	second, err := svc.Shorten(ctx, &models.CreateURLRequest{URL: "https://b.com"}, testBaseURL)
	if err != nil {
		t.Fatalf("second Shorten failed: %v", err)
	}
	if second.ShortCode == "SAMEAA" {
		t.Error("second Shorten reused the colliding code")
	}

	// First mapping not corrupted by the collision.
	mapping, err := repo.FindByCode(ctx, "SAMEAA")
	if err != nil {
		t.Fatalf("FindByCode failed: %v", err)
	}
	if mapping.LongURL != "https://a.com" {
		t.Errorf("first mapping corrupted: LongURL = %q", mapping.LongURL)
	}
}

func TestShorten_GenerationExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockURLRepository(ctrl)
	svc := NewURLService(repo, nil, Options{})

	// Every salt collides.
	repo.EXPECT().
		Create(gomock.Any(), "https://a.com", gomock.Any(), gomock.Nil()).
		Return(nil, repository.ErrCodeTaken).
		Times(len(shortcode.Salts()))

	_, err := svc.Shorten(context.Background(), &models.CreateURLRequest{URL: "https://a.com"}, testBaseURL)
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
}

func TestShorten_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockURLRepository(ctrl)
	svc := NewURLService(repo, nil, Options{})

	repo.EXPECT().
		Create(gomock.Any(), "https://a.com", gomock.Any(), gomock.Nil()).
		Return(nil, fmt.Errorf("create mapping: %w: connection refused", repository.ErrUnavailable))

	_, err := svc.Shorten(context.Background(), &models.CreateURLRequest{URL: "https://a.com"}, testBaseURL)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestResolve_RoundTrip(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	a, err := svc.Shorten(ctx, &models.CreateURLRequest{URL: "https://a.com"}, testBaseURL)
	if err != nil {
		t.Fatalf("Shorten failed: %v", err)
	}
	b, err := svc.Shorten(ctx, &models.CreateURLRequest{URL: "https://b.com"}, testBaseURL)
	if err != nil {
		t.Fatalf("Shorten failed: %v", err)
	}

	gotA, err := svc.Resolve(ctx, a.ShortCode)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	gotB, err := svc.Resolve(ctx, b.ShortCode)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if gotA != "https://a.com" || gotB != "https://b.com" {
		t.Errorf("round trip mismatch: got %q and %q", gotA, gotB)
	}
}

func TestResolve_InvalidCode(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Resolve(context.Background(), "not a valid code!")
	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestResolve_NotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Resolve(context.Background(), "nope42")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_ExpirationBoundary(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return created }

	resp, err := svc.Shorten(ctx, &models.CreateURLRequest{
		URL:        "https://example.com",
		Expiration: "1h",
	}, testBaseURL)
	if err != nil {
		t.Fatalf("Shorten failed: %v", err)
	}
	if resp.ExpiresAt == nil {
		t.Fatal("expected ExpiresAt to be set")
	}

	// One second before expiry: still active.
	svc.now = func() time.Time { return created.Add(time.Hour - time.Second) }
	longURL, err := svc.Resolve(ctx, resp.ShortCode)
	if err != nil {
		t.Fatalf("Resolve before expiry failed: %v", err)
	}
	if longURL != "https://example.com" {
		t.Errorf("Resolve = %q", longURL)
	}

	// One second after expiry: Expired, not NotFound.
	svc.now = func() time.Time { return created.Add(time.Hour + time.Second) }
	_, err = svc.Resolve(ctx, resp.ShortCode)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}

	// The row is still physically present: stats keep working.
	stats, err := svc.Stats(ctx, resp.ShortCode)
	if err != nil {
		t.Fatalf("Stats after expiry failed: %v", err)
	}
	if stats.Clicks != 1 {
		t.Errorf("Clicks = %d, want 1", stats.Clicks)
	}
}

func TestResolve_CountsClicks(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	resp, err := svc.Shorten(ctx, &models.CreateURLRequest{URL: "https://example.com"}, testBaseURL)
	if err != nil {
		t.Fatalf("Shorten failed: %v", err)
	}

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := svc.Resolve(ctx, resp.ShortCode); err != nil {
			t.Fatalf("Resolve %d failed: %v", i, err)
		}
	}

	stats, err := svc.Stats(ctx, resp.ShortCode)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Clicks != n {
		t.Errorf("Clicks = %d, want %d", stats.Clicks, n)
	}
}

// A failing click increment must not fail the redirect.
func TestResolve_ClickIncrementBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockURLRepository(ctrl)
	svc := NewURLService(repo, nil, Options{})

	repo.EXPECT().FindByCode(gomock.Any(), "abc123").Return(&entities.URLMapping{
		ID:        1,
		LongURL:   "https://example.com",
		ShortCode: "abc123",
		CreatedAt: time.Now(),
	}, nil)
	repo.EXPECT().IncrementClicks(gomock.Any(), "abc123").Return(errors.New("write failed"))

	longURL, err := svc.Resolve(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Resolve failed despite best-effort increment: %v", err)
	}
	if longURL != "https://example.com" {
		t.Errorf("Resolve = %q", longURL)
	}
}

func TestResolve_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockURLRepository(ctrl)
	svc := NewURLService(repo, nil, Options{})

	repo.EXPECT().
		FindByCode(gomock.Any(), "abc123").
		Return(nil, fmt.Errorf("find mapping: %w: connection refused", repository.ErrUnavailable))

	_, err := svc.Resolve(context.Background(), "abc123")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

// fakeCache is an in-memory cache.Cache with injectable failures.
type fakeCache struct {
	entries map[string][]byte
	setErr  error
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	if f.getErr != nil {
		return f.getErr
	}
	data, ok := f.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

// A cache hit must serve the resolve without touching the store's read path
// while still counting the click. The mock has no FindByCode expectation, so
// any store read fails the test.
func TestResolve_CacheHitSkipsStoreRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockURLRepository(ctrl)
	fc := newFakeCache()
	svc := NewURLService(repo, fc, Options{})

	entry, err := json.Marshal(cachedMapping{LongURL: "https://example.com"})
	if err != nil {
		t.Fatalf("marshal cache entry: %v", err)
	}
	fc.entries[cacheKey("abc123")] = entry

	repo.EXPECT().IncrementClicks(gomock.Any(), "abc123").Return(nil)

	longURL, err := svc.Resolve(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if longURL != "https://example.com" {
		t.Errorf("Resolve = %q", longURL)
	}
}

// An expired cached entry is a miss: it gets evicted and the store decides
// the outcome, so the caller sees Expired rather than a stale redirect.
func TestResolve_ExpiredCacheEntryEvicted(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockURLRepository(ctrl)
	fc := newFakeCache()
	svc := NewURLService(repo, fc, Options{})

	expired := time.Now().Add(-time.Hour)
	entry, err := json.Marshal(cachedMapping{LongURL: "https://example.com", ExpiresAt: &expired})
	if err != nil {
		t.Fatalf("marshal cache entry: %v", err)
	}
	fc.entries[cacheKey("abc123")] = entry

	repo.EXPECT().FindByCode(gomock.Any(), "abc123").Return(&entities.URLMapping{
		ID:        1,
		LongURL:   "https://example.com",
		ShortCode: "abc123",
		CreatedAt: expired.Add(-time.Hour),
		ExpiresAt: &expired,
	}, nil)

	_, err = svc.Resolve(context.Background(), "abc123")
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if _, ok := fc.entries[cacheKey("abc123")]; ok {
		t.Error("expected the expired cache entry to be evicted")
	}
}

// Cache failures never fail the request: Shorten and Resolve both succeed
// when every cache call errors, and the click is still counted.
func TestCacheFailuresAreBestEffort(t *testing.T) {
	repo := repository.NewMemoryRepository()
	fc := newFakeCache()
	fc.setErr = errors.New("redis down")
	fc.getErr = errors.New("redis down")
	svc := NewURLService(repo, fc, Options{})
	ctx := context.Background()

	resp, err := svc.Shorten(ctx, &models.CreateURLRequest{URL: "https://example.com"}, testBaseURL)
	if err != nil {
		t.Fatalf("Shorten failed despite best-effort caching: %v", err)
	}

	longURL, err := svc.Resolve(ctx, resp.ShortCode)
	if err != nil {
		t.Fatalf("Resolve failed despite best-effort caching: %v", err)
	}
	if longURL != "https://example.com" {
		t.Errorf("Resolve = %q", longURL)
	}

	stats, err := svc.Stats(ctx, resp.ShortCode)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Clicks != 1 {
		t.Errorf("Clicks = %d, want 1", stats.Clicks)
	}
}

// finderRepo gives the mock repository the optional lookup-by-URL capability.
type finderRepo struct {
	*mocks.MockURLRepository
	*mocks.MockURLFinder
}

func TestShorten_DedupeReturnsExistingCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := finderRepo{
		MockURLRepository: mocks.NewMockURLRepository(ctrl),
		MockURLFinder:     mocks.NewMockURLFinder(ctrl),
	}
	svc := NewURLService(repo, nil, Options{DedupeURLs: true})

	existing := &entities.URLMapping{
		ID:        7,
		LongURL:   "https://example.com",
		ShortCode: "abc123",
		CreatedAt: time.Now(),
	}
	repo.MockURLFinder.EXPECT().FindByURL(gomock.Any(), "https://example.com").Return(existing, nil)

	resp, err := svc.Shorten(context.Background(), &models.CreateURLRequest{URL: "https://example.com"}, testBaseURL)
	if err != nil {
		t.Fatalf("Shorten failed: %v", err)
	}
	if resp.ShortCode != "abc123" {
		t.Errorf("ShortCode = %q, want the existing code", resp.ShortCode)
	}
}

func TestShorten_DedupeIgnoredWithoutFinder(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewURLService(repo, nil, Options{DedupeURLs: true})
	ctx := context.Background()

	first, err := svc.Shorten(ctx, &models.CreateURLRequest{URL: "https://example.com"}, testBaseURL)
	if err != nil {
		t.Fatalf("first Shorten failed: %v", err)
	}
	second, err := svc.Shorten(ctx, &models.CreateURLRequest{URL: "https://example.com"}, testBaseURL)
	if err != nil {
		t.Fatalf("second Shorten failed: %v", err)
	}
	if first.ShortCode == second.ShortCode {
		t.Error("memory store has no URL lookup; expected a fresh code per call")
	}
}
