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
	"github.com/osse101/QuizDuel_Go/internal/repository"
)

const duelColumns = `id, creator_id, opponent_id, status, subjects, difficulty, grade_level,
	creator_progress, opponent_progress, creator_score, opponent_score,
	winner_id, outcome_reason, created_at, started_at, completed_at, version`

const slotColumns = `duel_id, ordinal, subject_id, content_ref, points, resolved_at`

// DuelRepository implements repository.Duel for PostgreSQL
type DuelRepository struct {
	db *pgxpool.Pool
}

// NewDuelRepository creates a new DuelRepository
func NewDuelRepository(db *pgxpool.Pool) *DuelRepository {
	return &DuelRepository{db: db}
}

// GetDuel retrieves a duel by ID
func (r *DuelRepository) GetDuel(ctx context.Context, id uuid.UUID) (*domain.Duel, error) {
	row := r.db.QueryRow(ctx, `SELECT `+duelColumns+` FROM duels WHERE id = $1`, id)
	d, err := scanDuel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: duel %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDuel, err)
	}
	return d, nil
}

// GetSlots returns the resolved quiz slots of a duel in ordinal order
func (r *DuelRepository) GetSlots(ctx context.Context, duelID uuid.UUID) ([]domain.QuizSlot, error) {
	return getSlots(ctx, r.db, duelID)
}

// FindPendingDuel returns the pending duel creatorID sent to opponentID, if any
func (r *DuelRepository) FindPendingDuel(ctx context.Context, creatorID, opponentID uuid.UUID) (*domain.Duel, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+duelColumns+` FROM duels
		WHERE creator_id = $1 AND opponent_id = $2 AND status = 'pending'`, creatorID, opponentID)
	d, err := scanDuel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no pending duel from %s to %s", domain.ErrNotFound, creatorID, opponentID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToFindPendingDuel, err)
	}
	return d, nil
}

// ListDuelsForUser returns duels where userID is either participant, newest first
func (r *DuelRepository) ListDuelsForUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Duel, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+duelColumns+` FROM duels
		WHERE creator_id = $1 OR opponent_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDuels, err)
	}
	defer rows.Close()

	var duels []domain.Duel
	for rows.Next() {
		d, err := scanDuel(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanDuel, err)
		}
		duels = append(duels, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDuels, err)
	}
	return duels, nil
}

// ListDueForExpiry returns non-terminal duels whose window closed at or before the cutoffs, oldest first
func (r *DuelRepository) ListDueForExpiry(ctx context.Context, invitationCutoff, sessionCutoff time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM duels
		WHERE (status = 'pending' AND created_at <= $1)
		   OR (status = 'active' AND started_at <= $2)
		ORDER BY COALESCE(started_at, created_at)
		LIMIT $3`, invitationCutoff, sessionCutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDueDuels, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDueDuels, err)
	}
	return ids, nil
}

// BeginDuelTx starts a transaction for locked duel work
func (r *DuelRepository) BeginDuelTx(ctx context.Context) (repository.DuelTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginDuelTransaction, err)
	}
	return &duelTx{tx: tx}, nil
}

// duelTx wraps a pgx transaction for duel operations
type duelTx struct {
	tx pgx.Tx
}

func (t *duelTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *duelTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *duelTx) InsertDuel(ctx context.Context, d *domain.Duel) error {
	subjects, err := domain.MarshalSubjects(d.Subjects)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalSubjects, err)
	}

	err = t.tx.QueryRow(ctx, `
		INSERT INTO duels (id, creator_id, opponent_id, status, subjects, difficulty, grade_level,
			creator_progress, opponent_progress, creator_score, opponent_score,
			outcome_reason, created_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1)
		RETURNING version`,
		d.ID, d.CreatorID, d.OpponentID, string(d.Status), subjects, string(d.Difficulty), d.GradeLevel,
		d.CreatorProgress, d.OpponentProgress, d.CreatorScore, d.OpponentScore,
		string(d.OutcomeReason), d.CreatedAt,
	).Scan(&d.Version)
	if err != nil {
		if isUniqueViolation(err, PgConstraintPendingPair) {
			return domain.ErrDuplicateInvitation
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertDuel, err)
	}
	return nil
}

// GetDuelForUpdate reads a duel and holds its row lock until the transaction ends
func (t *duelTx) GetDuelForUpdate(ctx context.Context, id uuid.UUID) (*domain.Duel, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+duelColumns+` FROM duels WHERE id = $1 FOR UPDATE`, id)
	d, err := scanDuel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: duel %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDuelForUpdate, err)
	}
	return d, nil
}

func (t *duelTx) UpdateDuel(ctx context.Context, d *domain.Duel) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE duels SET
			status = $2,
			creator_progress = $3,
			opponent_progress = $4,
			creator_score = $5,
			opponent_score = $6,
			winner_id = $7,
			outcome_reason = $8,
			started_at = $9,
			completed_at = $10,
			version = version + 1
		WHERE id = $1 AND version = $11`,
		d.ID, string(d.Status),
		d.CreatorProgress, d.OpponentProgress, d.CreatorScore, d.OpponentScore,
		d.WinnerID, string(d.OutcomeReason), d.StartedAt, d.CompletedAt,
		d.Version,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateDuel, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	d.Version++
	return nil
}

// InsertSlots bulk loads the resolved slot set with COPY
func (t *duelTx) InsertSlots(ctx context.Context, slots []domain.QuizSlot) error {
	_, err := t.tx.CopyFrom(ctx,
		pgx.Identifier{"quiz_slots"},
		[]string{"duel_id", "ordinal", "subject_id", "content_ref", "points", "resolved_at"},
		pgx.CopyFromSlice(len(slots), func(i int) ([]any, error) {
			s := slots[i]
			return []any{s.DuelID, s.Ordinal, s.SubjectID, s.ContentRef, s.Points, s.ResolvedAt}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertSlots, err)
	}
	return nil
}

func (t *duelTx) GetSlots(ctx context.Context, duelID uuid.UUID) ([]domain.QuizSlot, error) {
	return getSlots(ctx, t.tx, duelID)
}

func getSlots(ctx context.Context, q querier, duelID uuid.UUID) ([]domain.QuizSlot, error) {
	rows, err := q.Query(ctx, `SELECT `+slotColumns+` FROM quiz_slots WHERE duel_id = $1 ORDER BY ordinal`, duelID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSlots, err)
	}
	slots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.QuizSlot, error) {
		var s domain.QuizSlot
		err := row.Scan(&s.DuelID, &s.Ordinal, &s.SubjectID, &s.ContentRef, &s.Points, &s.ResolvedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSlots, err)
	}
	return slots, nil
}

func scanDuel(row pgx.Row) (*domain.Duel, error) {
	var (
		d          domain.Duel
		status     string
		difficulty string
		reason     string
		subjects   []byte
	)
	err := row.Scan(
		&d.ID, &d.CreatorID, &d.OpponentID, &status, &subjects, &difficulty, &d.GradeLevel,
		&d.CreatorProgress, &d.OpponentProgress, &d.CreatorScore, &d.OpponentScore,
		&d.WinnerID, &reason, &d.CreatedAt, &d.StartedAt, &d.CompletedAt, &d.Version,
	)
	if err != nil {
		return nil, err
	}

	d.Subjects, err = domain.UnmarshalSubjects(subjects)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanDuel, err)
	}
	d.Status = domain.DuelStatus(status)
	d.Difficulty = domain.DifficultyTier(difficulty)
	d.OutcomeReason = domain.OutcomeReason(reason)
	return &d, nil
}
