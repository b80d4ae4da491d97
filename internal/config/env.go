package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// envOrDefault returns the value of the named variable, or fallback when it
// is unset. A variable set to the empty string is returned as is.
func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// splitList splits a comma-separated value, trimming blanks and dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, raw)
	}
	return d, nil
}

// parseInt reads an integer bounded to [lo, hi]; hi < 0 means unbounded above.
func parseInt(key string, fallback, lo, hi int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if n < lo || (hi >= 0 && n > hi) {
		if hi < 0 {
			return 0, fmt.Errorf("invalid %s %d: must be >= %d", key, n, lo)
		}
		return 0, fmt.Errorf("invalid %s %d: must be between %d and %d", key, n, lo, hi)
	}
	return n, nil
}

// parseCacheSize returns fallback when the value is missing or not a positive integer.
func parseCacheSize(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
