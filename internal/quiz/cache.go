package quiz

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/metrics"
)

// CacheSchemaVersion is bumped when the cached candidate shape changes
const CacheSchemaVersion = "1.0"

type cachedCandidates struct {
	Version  string
	Items    []domain.QuizContent
	CachedAt time.Time
}

// candidateCache keeps catalog query results per filter with size and TTL bounds
type candidateCache struct {
	lru *expirable.LRU[string, *cachedCandidates]
}

func newCandidateCache(size int, ttl time.Duration) *candidateCache {
	return &candidateCache{
		lru: expirable.NewLRU[string, *cachedCandidates](size, nil, ttl),
	}
}

func cacheKey(f domain.ContentFilter) string {
	return fmt.Sprintf("%s|%d|%d", f.SubjectID, f.GradeLevel, f.Difficulty)
}

// Get returns a copy of the cached candidates for f
func (c *candidateCache) Get(f domain.ContentFilter) ([]domain.QuizContent, bool) {
	key := cacheKey(f)
	entry, found := c.lru.Get(key)
	if !found {
		metrics.ResolverCacheLookups.WithLabelValues(metrics.CacheResultMiss).Inc()
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		metrics.ResolverCacheLookups.WithLabelValues(metrics.CacheResultMiss).Inc()
		return nil, false
	}
	metrics.ResolverCacheLookups.WithLabelValues(metrics.CacheResultHit).Inc()
	return append([]domain.QuizContent(nil), entry.Items...), true
}

func (c *candidateCache) Set(f domain.ContentFilter, items []domain.QuizContent) {
	c.lru.Add(cacheKey(f), &cachedCandidates{
		Version:  CacheSchemaVersion,
		Items:    append([]domain.QuizContent(nil), items...),
		CachedAt: time.Now(),
	})
}

func (c *candidateCache) Purge() {
	c.lru.Purge()
}
