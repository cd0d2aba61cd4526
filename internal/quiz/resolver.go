// Package quiz assigns concrete quiz content to duel slots.
package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/logger"
	"github.com/osse101/QuizDuel_Go/internal/metrics"
)

// Tier identifies which fallback filter produced a quiz
type Tier int

const (
	TierNone Tier = iota
	// TierExact matches subject, grade and difficulty
	TierExact
	// TierSubjectGrade drops the difficulty filter
	TierSubjectGrade
	// TierSubject matches on subject alone
	TierSubject
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierSubjectGrade:
		return "subject_grade"
	case TierSubject:
		return "subject"
	default:
		return "none"
	}
}

// Catalog is the content lookup the resolver reads from
type Catalog interface {
	FindContent(ctx context.Context, filter domain.ContentFilter) ([]domain.QuizContent, error)
}

// Config tunes the resolver
type Config struct {
	CacheSize     int
	CacheTTL      time.Duration
	DefaultPoints int
}

// Resolver picks quiz content for duel slots
type Resolver interface {
	Resolve(ctx context.Context, subjectID string, gradeLevel, difficulty int) (*domain.QuizContent, Tier, error)
	ResolveSet(ctx context.Context, duel *domain.Duel, now time.Time) ([]domain.QuizSlot, error)
	Purge()
}

type resolver struct {
	catalog       Catalog
	cache         *candidateCache
	pick          func(n int) int
	defaultPoints int
}

// NewResolver creates a resolver backed by catalog
func NewResolver(catalog Catalog, cfg Config) Resolver {
	return newResolver(catalog, cfg, func(n int) int {
		return rand.Intn(n) //nolint:gosec // Quiz selection, not security critical
	})
}

func newResolver(catalog Catalog, cfg Config, pick func(n int) int) *resolver {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.DefaultPoints <= 0 {
		cfg.DefaultPoints = DefaultPointsPerCorrect
	}
	return &resolver{
		catalog:       catalog,
		cache:         newCandidateCache(cfg.CacheSize, cfg.CacheTTL),
		pick:          pick,
		defaultPoints: cfg.DefaultPoints,
	}
}

// NormalizeSubject case-folds and trims a subject identifier
func NormalizeSubject(subjectID string) string {
	return cases.Fold().String(strings.TrimSpace(subjectID))
}

// Resolve returns one quiz drawn uniformly from the first non-empty tier.
// ErrContentUnavailable is returned only when the subject has no content at all.
func (r *resolver) Resolve(ctx context.Context, subjectID string, gradeLevel, difficulty int) (*domain.QuizContent, Tier, error) {
	candidates, tier, err := r.candidates(ctx, subjectID, gradeLevel, difficulty)
	if err != nil {
		return nil, TierNone, err
	}
	picked := candidates[r.pick(len(candidates))]
	return &picked, tier, nil
}

// candidates returns the content of the first non-empty tier
func (r *resolver) candidates(ctx context.Context, subjectID string, gradeLevel, difficulty int) ([]domain.QuizContent, Tier, error) {
	subject := NormalizeSubject(subjectID)
	if subject == "" {
		return nil, TierNone, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptySubject)
	}

	tiers := []struct {
		tier   Tier
		filter domain.ContentFilter
	}{
		{TierExact, domain.ContentFilter{SubjectID: subject, GradeLevel: gradeLevel, Difficulty: difficulty}},
		{TierSubjectGrade, domain.ContentFilter{SubjectID: subject, GradeLevel: gradeLevel}},
		{TierSubject, domain.ContentFilter{SubjectID: subject}},
	}

	for _, t := range tiers {
		items, err := r.lookup(ctx, t.filter)
		if err != nil {
			return nil, TierNone, err
		}
		if len(items) > 0 {
			metrics.ResolverTierHits.WithLabelValues(t.tier.String()).Inc()
			if t.tier != TierExact {
				logger.FromContext(ctx).Debug(LogMsgTierFallback,
					"subject", subject, "grade", gradeLevel, "difficulty", difficulty, "tier", t.tier.String())
			}
			return items, t.tier, nil
		}
	}

	return nil, TierNone, fmt.Errorf("%w: subject %q", domain.ErrContentUnavailable, subject)
}

func (r *resolver) lookup(ctx context.Context, filter domain.ContentFilter) ([]domain.QuizContent, error) {
	if items, ok := r.cache.Get(filter); ok {
		return items, nil
	}
	items, err := r.catalog.FindContent(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFindContent, err)
	}
	r.cache.Set(filter, items)
	return items, nil
}

// ResolveSet resolves every slot of a duel. Subjects resolve concurrently and the
// whole set fails if any subject has no content. Within a subject content is not
// repeated while unused candidates remain.
func (r *resolver) ResolveSet(ctx context.Context, duel *domain.Duel, now time.Time) ([]domain.QuizSlot, error) {
	slots := make([]domain.QuizSlot, duel.TotalQuizzes())
	difficulty := duel.Difficulty.Level()

	g, gctx := errgroup.WithContext(ctx)
	offset := 0
	for _, alloc := range duel.Subjects {
		alloc, start := alloc, offset
		offset += alloc.QuizCount

		g.Go(func() error {
			candidates, _, err := r.candidates(gctx, alloc.SubjectID, duel.GradeLevel, difficulty)
			if err != nil {
				return err
			}
			for i, content := range r.draw(candidates, alloc.QuizCount) {
				slots[start+i] = domain.QuizSlot{
					DuelID:     duel.ID,
					Ordinal:    start + i + 1,
					SubjectID:  alloc.SubjectID,
					ContentRef: content.ID,
					Points:     r.points(content),
					ResolvedAt: now,
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots, nil
}

// draw picks n items, without replacement until the pool is exhausted
func (r *resolver) draw(candidates []domain.QuizContent, n int) []domain.QuizContent {
	pool := append([]domain.QuizContent(nil), candidates...)
	out := make([]domain.QuizContent, 0, n)
	for len(out) < n {
		if len(pool) == 0 {
			pool = append(pool, candidates...)
		}
		i := r.pick(len(pool))
		out = append(out, pool[i])
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return out
}

func (r *resolver) points(c domain.QuizContent) int {
	if c.Points > 0 {
		return c.Points
	}
	return r.defaultPoints
}

// Purge drops cached candidates, e.g. after the catalog is reseeded
func (r *resolver) Purge() {
	r.cache.Purge()
}
