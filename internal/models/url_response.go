package models

import "time"

// CreateURLResponse represents the response after creating a short URL
type CreateURLResponse struct {
	ShortCode string     `json:"short_code"`
	LongURL   string     `json:"long_url"`
	ShortURL  string     `json:"short_url"` // Full short URL (base URL + short code)
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// URLStatsResponse represents the response for URL statistics
type URLStatsResponse struct {
	ShortCode string     `json:"short_code"`
	LongURL   string     `json:"long_url"`
	Clicks    int64      `json:"clicks"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
