package models

// CreateURLRequest represents the request body for creating a short URL
type CreateURLRequest struct {
	URL        string `json:"url" binding:"required"` // Long URL to shorten
	ShortCode  string `json:"short_code,omitempty"`   // Optional custom alias
	Expiration string `json:"expiration,omitempty"`   // Optional expiration token ("1h", "24h", ..., "custom_<minutes>")
}
