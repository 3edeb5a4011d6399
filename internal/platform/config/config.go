package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr string

	// PostgresURL selects the Postgres repository when set.
	PostgresURL string
	// RedisURL selects the Redis repository when set (and PostgresURL is
	// not). It also enables the WHOIS cache. Empty means in-memory only.
	RedisURL string

	// WhoisCacheTTL bounds how stale a cached WHOIS record may be.
	WhoisCacheTTL time.Duration
	// WhoisLatency is the simulated round-trip of the mock WHOIS client.
	WhoisLatency time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:          getEnv("DOMAINFOLIO_ADDR", ":8080"),
		PostgresURL:   os.Getenv("DOMAINFOLIO_POSTGRES_URL"),
		RedisURL:      os.Getenv("DOMAINFOLIO_REDIS_URL"),
		WhoisCacheTTL: getDuration("DOMAINFOLIO_WHOIS_CACHE_TTL", time.Hour),
		WhoisLatency:  getDuration("DOMAINFOLIO_WHOIS_LATENCY", 150*time.Millisecond),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
