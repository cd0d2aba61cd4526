package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuizDuel_Go/internal/config"
	"github.com/osse101/QuizDuel_Go/internal/database/postgres"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Duels       *postgres.DuelRepository
	Invitations *postgres.InvitationRepository
	Content     *postgres.ContentRepository
	Social      *postgres.SocialRepository
	EventLog    *postgres.EventLogRepository
}

// InitializeRepositories creates all repository implementations.
// The invitation repository needs the invitation window to report expiry times.
func InitializeRepositories(dbPool *pgxpool.Pool, cfg *config.Config) *Repositories {
	return &Repositories{
		Duels:       postgres.NewDuelRepository(dbPool),
		Invitations: postgres.NewInvitationRepository(dbPool, cfg.InvitationTTL),
		Content:     postgres.NewContentRepository(dbPool),
		Social:      postgres.NewSocialRepository(dbPool),
		EventLog:    postgres.NewEventLogRepository(dbPool),
	}
}
