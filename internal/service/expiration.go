package service

import (
	"strconv"
	"strings"
	"time"
)

// maxCustomMinutes bounds custom_<N> tokens to 100 years. Larger values
// would overflow the duration math and mint an already-expired link, so they
// degrade to "no expiration" like any other unrecognized token.
const maxCustomMinutes = 100 * 365 * 24 * 60

// namedExpirations maps the preset expiration tokens onto durations.
var namedExpirations = map[string]time.Duration{
	"1h":  time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
	"1y":  365 * 24 * time.Hour,
}

// ResolveExpiration turns an expiration token into an absolute expiry
// timestamp relative to now. "never", the empty string, and anything
// unrecognized all mean no expiration; unknown tokens are deliberately not
// an error. "custom_<N>" means N minutes from now, for positive integer N.
func ResolveExpiration(token string, now time.Time) *time.Time {
	if token == "" || token == "never" {
		return nil
	}

	if d, ok := namedExpirations[token]; ok {
		at := now.Add(d)
		return &at
	}

	if minutes, ok := strings.CutPrefix(token, "custom_"); ok {
		n, err := strconv.Atoi(minutes)
		if err != nil || n <= 0 || n > maxCustomMinutes {
			return nil
		}
		at := now.Add(time.Duration(n) * time.Minute)
		return &at
	}

	return nil
}
