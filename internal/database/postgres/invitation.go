package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuizDuel_Go/internal/domain"
)

const invitationColumns = `id, duel_id, user_id, status, created_at, responded_at`

// InvitationRepository implements repository.Invitation for PostgreSQL.
// invitationTTL is used to derive the expiry shown on listings.
type InvitationRepository struct {
	db            *pgxpool.Pool
	invitationTTL time.Duration
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *pgxpool.Pool, invitationTTL time.Duration) *InvitationRepository {
	return &InvitationRepository{db: db, invitationTTL: invitationTTL}
}

// GetInvitationByDuel retrieves the invitation attached to a duel
func (r *InvitationRepository) GetInvitationByDuel(ctx context.Context, duelID uuid.UUID) (*domain.Invitation, error) {
	return getInvitation(ctx, r.db, `SELECT `+invitationColumns+` FROM duel_invitations WHERE duel_id = $1`, duelID)
}

// ListInvitationsForUser lists invitations sent or received by userID joined with their duels, newest first
func (r *InvitationRepository) ListInvitationsForUser(ctx context.Context, userID uuid.UUID, direction domain.InvitationDirection, limit int) ([]domain.InvitationView, error) {
	filter := "i.user_id = $1"
	if direction == domain.DirectionSent {
		filter = "d.creator_id = $1"
	}

	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.duel_id, i.user_id, i.status, i.created_at, i.responded_at,
		       d.creator_id, d.opponent_id, d.status, d.subjects, d.difficulty, d.created_at
		FROM duel_invitations i
		JOIN duels d ON d.id = i.duel_id
		WHERE `+filter+`
		ORDER BY i.created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInvitations, err)
	}

	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InvitationView, error) {
		var (
			v             domain.InvitationView
			invStatus     string
			duelStatus    string
			difficulty    string
			subjects      []byte
			duelCreatedAt time.Time
		)
		err := row.Scan(
			&v.Invitation.ID, &v.Invitation.DuelID, &v.Invitation.UserID, &invStatus,
			&v.Invitation.CreatedAt, &v.Invitation.RespondedAt,
			&v.CreatorID, &v.OpponentID, &duelStatus, &subjects, &difficulty, &duelCreatedAt,
		)
		if err != nil {
			return v, err
		}
		if v.Subjects, err = domain.UnmarshalSubjects(subjects); err != nil {
			return v, err
		}
		v.Invitation.Status = domain.InvitationStatus(invStatus)
		v.DuelStatus = domain.DuelStatus(duelStatus)
		v.Difficulty = domain.DifficultyTier(difficulty)
		v.ExpiresAt = duelCreatedAt.Add(r.invitationTTL)
		return v, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInvitations, err)
	}
	return views, nil
}

func (t *duelTx) InsertInvitation(ctx context.Context, inv *domain.Invitation) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO duel_invitations (id, duel_id, user_id, status, created_at, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.DuelID, inv.UserID, string(inv.Status), inv.CreatedAt, inv.RespondedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertInvitation, err)
	}
	return nil
}

func (t *duelTx) GetInvitationByDuelForUpdate(ctx context.Context, duelID uuid.UUID) (*domain.Invitation, error) {
	return getInvitation(ctx, t.tx, `SELECT `+invitationColumns+` FROM duel_invitations WHERE duel_id = $1 FOR UPDATE`, duelID)
}

func (t *duelTx) UpdateInvitation(ctx context.Context, inv *domain.Invitation) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE duel_invitations SET status = $2, responded_at = $3
		WHERE id = $1`,
		inv.ID, string(inv.Status), inv.RespondedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInvitation, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invitation %s", domain.ErrNotFound, inv.ID)
	}
	return nil
}

func getInvitation(ctx context.Context, q querier, query string, duelID uuid.UUID) (*domain.Invitation, error) {
	var (
		inv    domain.Invitation
		status string
	)
	err := q.QueryRow(ctx, query, duelID).Scan(
		&inv.ID, &inv.DuelID, &inv.UserID, &status, &inv.CreatedAt, &inv.RespondedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invitation for duel %s", domain.ErrNotFound, duelID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInvitation, err)
	}
	inv.Status = domain.InvitationStatus(status)
	return &inv, nil
}
