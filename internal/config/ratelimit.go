package config

import (
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig controls the token-bucket limiter applied to the auth
// endpoints. When Enabled is false or no Redis client is available, the
// limiter becomes a no-op. KeyBy selects how buckets are partitioned:
// "ip", "route" or "ip_route".
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyBy          string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig. Defaults allow 20 requests with one token refilled per
// second, which is generous for interactive logins but stops credential
// stuffing.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        getenv("RATELIMIT_ENABLED", "true") == "true",
		Capacity:       atoi(getenv("RATELIMIT_CAPACITY", "20")),
		RefillTokens:   atoi(getenv("RATELIMIT_REFILL_TOKENS", "1")),
		RefillInterval: parseDur(getenv("RATELIMIT_REFILL_INTERVAL", "1s")),
		TTL:            parseDur(getenv("RATELIMIT_TTL", "10m")),
		KeyBy:          strings.ToLower(getenv("RATELIMIT_KEY_BY", "ip_route")),
	}
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
