package entities

import "time"

// URLMapping represents a shortened URL record.
// Only Clicks ever changes after creation; everything else is write-once.
type URLMapping struct {
	ID        int64      `json:"id"`
	LongURL   string     `json:"long_url"`
	ShortCode string     `json:"short_code"`
	Clicks    int64      `json:"clicks"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // Pointer allows nil (no expiration)
}

// IsExpired reports whether the mapping has lapsed at the given instant.
// A mapping with no expiration never expires.
func (u *URLMapping) IsExpired(now time.Time) bool {
	if u.ExpiresAt == nil {
		return false
	}
	return now.After(*u.ExpiresAt)
}
