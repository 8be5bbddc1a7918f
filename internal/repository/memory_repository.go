package repository

import (
	"context"
	"sync"
	"time"

	"github.com/SANTHOSH-VJ/url-saas/internal/entities"
)

// memoryRepository is the ephemeral store variant: the same contract as the
// Postgres repository, held in process memory and lost on restart. A single
// mutex keeps check-then-insert atomic; it is never held across I/O.
type memoryRepository struct {
	mu     sync.Mutex
	byCode map[string]*entities.URLMapping
	nextID int64
}

// NewMemoryRepository creates the in-memory repository. Used in development
// mode and as the fallback when the database is unreachable at startup.
func NewMemoryRepository() URLRepository {
	return &memoryRepository{
		byCode: make(map[string]*entities.URLMapping),
		nextID: 1,
	}
}

func (r *memoryRepository) Create(ctx context.Context, longURL, shortCode string, expiresAt *time.Time) (*entities.URLMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[shortCode]; exists {
		return nil, ErrCodeTaken
	}

	mapping := &entities.URLMapping{
		ID:        r.nextID,
		LongURL:   longURL,
		ShortCode: shortCode,
		CreatedAt: time.Now().UTC(),
	}
	if expiresAt != nil {
		utc := expiresAt.UTC()
		mapping.ExpiresAt = &utc
	}
	r.nextID++
	r.byCode[shortCode] = mapping

	copied := *mapping
	return &copied, nil
}

func (r *memoryRepository) FindByCode(ctx context.Context, shortCode string) (*entities.URLMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mapping, exists := r.byCode[shortCode]
	if !exists {
		return nil, ErrNotFound
	}

	// Return a copy so callers cannot bypass IncrementClicks.
	copied := *mapping
	return &copied, nil
}

func (r *memoryRepository) IncrementClicks(ctx context.Context, shortCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mapping, exists := r.byCode[shortCode]
	if !exists {
		return ErrNotFound
	}
	mapping.Clicks++
	return nil
}
