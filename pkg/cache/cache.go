package cache

import (
	"context"
	"strings"
	"time"
)

// Cache stores serialized research results keyed by normalized name.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value for key, or ok=false on a miss or
	// expired entry.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// ResearchKey builds the cache key for a college research result.
// Names are lowercased and trimmed so "MIT " and "mit" share an entry.
func ResearchKey(collegeName string) string {
	return "research_" + strings.ToLower(strings.TrimSpace(collegeName))
}

// TopicResearchKey builds the cache key for a live research query.
func TopicResearchKey(query string) string {
	return "topic_research_" + strings.ToLower(strings.TrimSpace(query))
}
