package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SANTHOSH-VJ/url-saas/internal/entities"

	"github.com/lib/pq"
)

// Sentinel errors shared by both store variants.
var (
	// ErrNotFound means no mapping exists for the given short code.
	ErrNotFound = errors.New("url mapping not found")
	// ErrCodeTaken means an insert hit the unique constraint on the short
	// code. The service layer decides whether to retry with another code
	// (auto-generated path) or fail fast (custom alias path).
	ErrCodeTaken = errors.New("short code already taken")
	// ErrUnavailable means the store could not be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// URLRepository is the persistence contract for URL mappings. The Postgres
// and in-memory implementations are interchangeable; selection happens once
// at startup.
type URLRepository interface {
	// Create inserts a new mapping. The unique constraint on the short
	// code is the source of truth for uniqueness: a violation is returned
	// as ErrCodeTaken, even when the caller checked availability first.
	Create(ctx context.Context, longURL, shortCode string, expiresAt *time.Time) (*entities.URLMapping, error)
	// FindByCode returns the mapping for a short code, expired or not.
	// Expiry is a service-level judgment, not a storage one.
	FindByCode(ctx context.Context, shortCode string) (*entities.URLMapping, error)
	// IncrementClicks bumps the click counter by one in a single atomic
	// update keyed by short code.
	IncrementClicks(ctx context.Context, shortCode string) error
}

// URLFinder is an optional capability for looking a mapping up by its long
// URL. Only the durable store implements it; the service uses it for the
// dedupe-by-URL mode.
type URLFinder interface {
	FindByURL(ctx context.Context, longURL string) (*entities.URLMapping, error)
}

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates the durable, Postgres-backed repository.
func NewPostgresRepository(db *sql.DB) URLRepository {
	return &postgresRepository{db: db}
}

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

func (r *postgresRepository) Create(ctx context.Context, longURL, shortCode string, expiresAt *time.Time) (*entities.URLMapping, error) {
	// Store expiry in UTC so comparisons are timezone-independent.
	var expiresAtValue interface{}
	if expiresAt != nil {
		expiresAtValue = expiresAt.UTC()
	}

	query := `
		INSERT INTO url_mappings (long_url, short_url, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, long_url, short_url, clicks, created_at, expires_at
	`

	var mapping entities.URLMapping
	err := r.db.QueryRowContext(ctx, query, longURL, shortCode, expiresAtValue).Scan(
		&mapping.ID,
		&mapping.LongURL,
		&mapping.ShortCode,
		&mapping.Clicks,
		&mapping.CreatedAt,
		&mapping.ExpiresAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrCodeTaken
		}
		return nil, storeError("create mapping", err)
	}

	return &mapping, nil
}

func (r *postgresRepository) FindByCode(ctx context.Context, shortCode string) (*entities.URLMapping, error) {
	query := `
		SELECT id, long_url, short_url, clicks, created_at, expires_at
		FROM url_mappings
		WHERE short_url = $1
	`
	return r.scanOne(ctx, query, shortCode)
}

func (r *postgresRepository) FindByURL(ctx context.Context, longURL string) (*entities.URLMapping, error) {
	// Multiple rows can share a long URL when dedupe mode is off; the
	// oldest one wins, matching the first code ever handed out.
	query := `
		SELECT id, long_url, short_url, clicks, created_at, expires_at
		FROM url_mappings
		WHERE long_url = $1
		ORDER BY id
		LIMIT 1
	`
	return r.scanOne(ctx, query, longURL)
}

func (r *postgresRepository) scanOne(ctx context.Context, query string, arg interface{}) (*entities.URLMapping, error) {
	var mapping entities.URLMapping
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&mapping.ID,
		&mapping.LongURL,
		&mapping.ShortCode,
		&mapping.Clicks,
		&mapping.CreatedAt,
		&mapping.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError("find mapping", err)
	}
	return &mapping, nil
}

func (r *postgresRepository) IncrementClicks(ctx context.Context, shortCode string) error {
	// Single atomic update; no read-then-write window.
	result, err := r.db.ExecContext(ctx, `
		UPDATE url_mappings
		SET clicks = clicks + 1
		WHERE short_url = $1
	`, shortCode)
	if err != nil {
		return storeError("increment clicks", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError("increment clicks", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// storeError wraps an infrastructure failure so callers can match both
// ErrUnavailable and the driver error with errors.Is.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
