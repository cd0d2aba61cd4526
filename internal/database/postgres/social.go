package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuizDuel_Go/internal/domain"
)

// SocialRepository serves friendship and profile lookups
type SocialRepository struct {
	db *pgxpool.Pool
}

// NewSocialRepository creates a new SocialRepository
func NewSocialRepository(db *pgxpool.Pool) *SocialRepository {
	return &SocialRepository{db: db}
}

// AreFriends reports whether an accepted friendship exists in either direction
func (r *SocialRepository) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friendships
			WHERE status = $3
			  AND ((requester_id = $1 AND addressee_id = $2)
			    OR (requester_id = $2 AND addressee_id = $1))
		)`, a, b, FriendshipAccepted).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckFriendship, err)
	}
	return ok, nil
}

// GetProfile retrieves a student profile
func (r *SocialRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.StudentProfile, error) {
	var p domain.StudentProfile
	err := r.db.QueryRow(ctx, `
		SELECT user_id, display_name, grade_level FROM student_profiles WHERE user_id = $1`,
		userID).Scan(&p.UserID, &p.DisplayName, &p.GradeLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: profile %s", domain.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProfile, err)
	}
	return &p, nil
}

// UpsertProfile creates or updates a student profile
func (r *SocialRepository) UpsertProfile(ctx context.Context, p domain.StudentProfile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO student_profiles (user_id, display_name, grade_level)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			grade_level = EXCLUDED.grade_level,
			updated_at = NOW()`,
		p.UserID, p.DisplayName, p.GradeLevel)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertProfile, err)
	}
	return nil
}

// UpsertFriendship records a friendship request with the given status
func (r *SocialRepository) UpsertFriendship(ctx context.Context, requester, addressee uuid.UUID, status string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO friendships (requester_id, addressee_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (requester_id, addressee_id) DO UPDATE SET status = EXCLUDED.status`,
		requester, addressee, status)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertFriendship, err)
	}
	return nil
}
