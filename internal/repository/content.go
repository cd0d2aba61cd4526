package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/domain"
)

// Content defines access to the quiz content catalog
type Content interface {
	// FindContent returns every catalog row matching the filter. Zero-valued
	// filter fields are ignored.
	FindContent(ctx context.Context, filter domain.ContentFilter) ([]domain.QuizContent, error)
	UpsertContent(ctx context.Context, items []domain.QuizContent) (int, error)
}

// Friendship answers whether two users are friends
type Friendship interface {
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// Profile looks up student profiles
type Profile interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.StudentProfile, error)
}
