package validation

import (
	"net/url"
	"regexp"
)

// codePattern covers both custom aliases and generated codes: 1-50
// characters of the URL-safe set.
var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

// ValidateURL reports whether s is an absolute http or https URL with a host.
func ValidateURL(s string) bool {
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// ValidateAlias reports whether s is usable as a custom short code. An empty
// alias is valid and means "auto-generate".
func ValidateAlias(s string) bool {
	if s == "" {
		return true
	}
	return codePattern.MatchString(s)
}

// ValidateCode reports whether s has the shape of a short code. Used on the
// resolve path so malformed input is rejected before the store is queried.
func ValidateCode(s string) bool {
	return codePattern.MatchString(s)
}
