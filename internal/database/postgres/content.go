package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuizDuel_Go/internal/domain"
)

// ContentRepository implements repository.Content for PostgreSQL
type ContentRepository struct {
	db *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

// FindContent returns catalog rows for a subject. Zero grade or difficulty is not filtered on.
func (r *ContentRepository) FindContent(ctx context.Context, filter domain.ContentFilter) ([]domain.QuizContent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, subject_id, grade_level, difficulty, title, points
		FROM quiz_contents
		WHERE subject_id = $1
		  AND ($2::int = 0 OR grade_level = $2::int)
		  AND ($3::int = 0 OR difficulty = $3::int)
		ORDER BY id`,
		filter.SubjectID, filter.GradeLevel, filter.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryContent, err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.QuizContent, error) {
		var c domain.QuizContent
		err := row.Scan(&c.ID, &c.SubjectID, &c.GradeLevel, &c.Difficulty, &c.Title, &c.Points)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryContent, err)
	}
	return items, nil
}

// UpsertContent inserts or replaces catalog rows in one batch.
// Items without an ID get a fresh one, written back into the slice.
func (r *ContentRepository) UpsertContent(ctx context.Context, items []domain.QuizContent) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		c := items[i]
		batch.Queue(`
			INSERT INTO quiz_contents (id, subject_id, grade_level, difficulty, title, points)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				subject_id = EXCLUDED.subject_id,
				grade_level = EXCLUDED.grade_level,
				difficulty = EXCLUDED.difficulty,
				title = EXCLUDED.title,
				points = EXCLUDED.points,
				updated_at = NOW()`,
			c.ID, c.SubjectID, c.GradeLevel, c.Difficulty, c.Title, c.Points)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertContent, err)
	}
	return len(items), nil
}
