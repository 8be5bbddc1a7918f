package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/SANTHOSH-VJ/url-saas/internal/cache"
	"github.com/SANTHOSH-VJ/url-saas/internal/entities"
	"github.com/SANTHOSH-VJ/url-saas/internal/models"
	"github.com/SANTHOSH-VJ/url-saas/internal/repository"
	"github.com/SANTHOSH-VJ/url-saas/internal/shortcode"
	"github.com/SANTHOSH-VJ/url-saas/internal/validation"
)

// URLService defines the interface for URL shortening business logic
type URLService interface {
	Shorten(ctx context.Context, req *models.CreateURLRequest, baseURL string) (*models.CreateURLResponse, error)
	Resolve(ctx context.Context, shortCode string) (string, error)
	Stats(ctx context.Context, shortCode string) (*models.URLStatsResponse, error)
}

// Options tunes optional service behavior.
type Options struct {
	// DedupeURLs makes alias-less shortens idempotent per long URL: if
	// the URL was already shortened, the existing code is returned
	// instead of minting a new one. Requires a store that supports
	// lookup by long URL; ignored otherwise.
	DedupeURLs bool
}

type urlService struct {
	repo   repository.URLRepository
	cache  cache.Cache
	dedupe bool

	// Injection seams for tests; production uses the defaults.
	generate func(longURL, salt string) string
	now      func() time.Time
}

// NewURLService creates a new URL service. cacheClient may be nil, in which
// case every resolve goes straight to the store.
func NewURLService(repo repository.URLRepository, cacheClient cache.Cache, opts Options) URLService {
	return &urlService{
		repo:     repo,
		cache:    cacheClient,
		dedupe:   opts.DedupeURLs,
		generate: shortcode.Generate,
		now:      time.Now,
	}
}

// Shorten validates the request, picks a short code (custom alias or salted
// generation), and persists the mapping. The store's unique constraint is
// the source of truth for code uniqueness; any availability check before the
// insert is only an optimization.
func (s *urlService) Shorten(ctx context.Context, req *models.CreateURLRequest, baseURL string) (*models.CreateURLResponse, error) {
	if !validation.ValidateURL(req.URL) {
		return nil, ErrInvalidURL
	}

	expiresAt := ResolveExpiration(req.Expiration, s.now())

	var mapping *entities.URLMapping
	var err error
	if req.ShortCode != "" {
		mapping, err = s.createWithAlias(ctx, req.URL, req.ShortCode, expiresAt)
	} else {
		mapping, err = s.createGenerated(ctx, req.URL, expiresAt)
	}
	if err != nil {
		return nil, err
	}

	s.primeCache(ctx, mapping)

	return &models.CreateURLResponse{
		ShortCode: mapping.ShortCode,
		LongURL:   mapping.LongURL,
		ShortURL:  fmt.Sprintf("%s/%s", baseURL, mapping.ShortCode),
		ExpiresAt: mapping.ExpiresAt,
		CreatedAt: mapping.CreatedAt,
	}, nil
}

func (s *urlService) createWithAlias(ctx context.Context, longURL, alias string, expiresAt *time.Time) (*entities.URLMapping, error) {
	if !validation.ValidateAlias(alias) {
		return nil, ErrInvalidAlias
	}

	// Fast pre-check so most taken aliases fail without an insert attempt.
	_, err := s.repo.FindByCode(ctx, alias)
	if err == nil {
		return nil, ErrAliasTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, s.storeErr(err)
	}

	mapping, err := s.repo.Create(ctx, longURL, alias, expiresAt)
	if errors.Is(err, repository.ErrCodeTaken) {
		// Lost the race between the check and the insert.
		return nil, ErrAliasTaken
	}
	if err != nil {
		return nil, s.storeErr(err)
	}
	return mapping, nil
}

func (s *urlService) createGenerated(ctx context.Context, longURL string, expiresAt *time.Time) (*entities.URLMapping, error) {
	if s.dedupe {
		if existing, ok := s.findExisting(ctx, longURL); ok {
			return existing, nil
		}
	}

	for _, salt := range shortcode.Salts() {
		code := s.generate(longURL, salt)
		mapping, err := s.repo.Create(ctx, longURL, code, expiresAt)
		if err == nil {
			return mapping, nil
		}
		if errors.Is(err, repository.ErrCodeTaken) {
			// Collision with an existing mapping; try the next salt.
			continue
		}
		return nil, s.storeErr(err)
	}
	return nil, ErrGenerationExhausted
}

// findExisting looks up a prior mapping for the same long URL. Only the
// durable store supports this; the ephemeral store silently opts out.
func (s *urlService) findExisting(ctx context.Context, longURL string) (*entities.URLMapping, bool) {
	finder, ok := s.repo.(repository.URLFinder)
	if !ok {
		return nil, false
	}
	existing, err := finder.FindByURL(ctx, longURL)
	if err != nil {
		return nil, false
	}
	return existing, true
}

// Resolve maps a short code back to its long URL, honoring expiration and
// counting the click. The click increment is best-effort: the redirect must
// succeed even when the counter update fails.
func (s *urlService) Resolve(ctx context.Context, code string) (string, error) {
	if !validation.ValidateCode(code) {
		return "", ErrInvalidCode
	}

	if longURL, ok := s.resolveFromCache(ctx, code); ok {
		s.countClick(ctx, code)
		return longURL, nil
	}

	mapping, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", s.storeErr(err)
	}

	if mapping.IsExpired(s.now()) {
		return "", ErrExpired
	}

	s.primeCache(ctx, mapping)
	s.countClick(ctx, code)

	return mapping.LongURL, nil
}

// Stats returns the mapping's counters. Expired mappings still report stats;
// only resolution treats them as gone.
func (s *urlService) Stats(ctx context.Context, code string) (*models.URLStatsResponse, error) {
	if !validation.ValidateCode(code) {
		return nil, ErrInvalidCode
	}

	mapping, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, s.storeErr(err)
	}

	return &models.URLStatsResponse{
		ShortCode: mapping.ShortCode,
		LongURL:   mapping.LongURL,
		Clicks:    mapping.Clicks,
		CreatedAt: mapping.CreatedAt,
		ExpiresAt: mapping.ExpiresAt,
	}, nil
}

func (s *urlService) countClick(ctx context.Context, code string) {
	if err := s.repo.IncrementClicks(ctx, code); err != nil {
		log.Printf("Warning: failed to increment clicks for %s: %v", code, err)
	}
}

// cachedMapping is the shape stored in the cache for the resolve hot path.
type cachedMapping struct {
	LongURL   string     `json:"long_url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

const cacheTTL = time.Hour

func cacheKey(code string) string {
	return "url:" + code
}

func (s *urlService) primeCache(ctx context.Context, mapping *entities.URLMapping) {
	if s.cache == nil {
		return
	}
	entry := cachedMapping{LongURL: mapping.LongURL, ExpiresAt: mapping.ExpiresAt}
	if err := s.cache.SetJSON(ctx, cacheKey(mapping.ShortCode), entry, cacheTTL); err != nil {
		log.Printf("Warning: failed to cache %s: %v", mapping.ShortCode, err)
	}
}

// resolveFromCache serves a resolve from the cache if possible. Expired
// entries are evicted and treated as a miss so the store stays the source
// of truth for the expiry outcome.
func (s *urlService) resolveFromCache(ctx context.Context, code string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	var entry cachedMapping
	if err := s.cache.GetJSON(ctx, cacheKey(code), &entry); err != nil || entry.LongURL == "" {
		return "", false
	}
	if entry.ExpiresAt != nil && s.now().After(*entry.ExpiresAt) {
		if err := s.cache.Delete(ctx, cacheKey(code)); err != nil {
			log.Printf("Warning: failed to evict %s from cache: %v", code, err)
		}
		return "", false
	}
	return entry.LongURL, true
}

// storeErr maps repository infrastructure failures onto the service error
// while keeping the underlying cause in the chain.
func (s *urlService) storeErr(err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
