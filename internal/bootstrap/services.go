package bootstrap

import (
	"github.com/osse101/QuizDuel_Go/internal/concurrency"
	"github.com/osse101/QuizDuel_Go/internal/config"
	"github.com/osse101/QuizDuel_Go/internal/duel"
	"github.com/osse101/QuizDuel_Go/internal/event"
	"github.com/osse101/QuizDuel_Go/internal/expiry"
	"github.com/osse101/QuizDuel_Go/internal/invitation"
	"github.com/osse101/QuizDuel_Go/internal/quiz"
)

// InitializeDuelService assembles the orchestrator and its collaborators
func InitializeDuelService(cfg *config.Config, repos *Repositories, locker concurrency.Locker, publisher event.Bus) duel.Service {
	clock := expiry.NewClock(cfg.InvitationTTL, cfg.SessionTTL)

	resolver := quiz.NewResolver(repos.Content, quiz.Config{
		CacheSize:     cfg.ContentCacheSize,
		CacheTTL:      cfg.ContentCacheTTL,
		DefaultPoints: cfg.PointsPerCorrect,
	})

	return duel.NewService(duel.Deps{
		Repo:        repos.Duels,
		Invitations: invitation.NewService(repos.Invitations, clock),
		Resolver:    resolver,
		Friends:     repos.Social,
		Profiles:    repos.Social,
		Locker:      locker,
		Bus:         publisher,
		Clock:       clock,
	}, duel.Config{
		MaxQuizzesPerSubject: cfg.MaxQuizzesPerSubject,
		SweepBatchSize:       cfg.SweepBatch,
	})
}
