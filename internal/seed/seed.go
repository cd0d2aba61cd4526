// Package seed loads catalog content, student profiles and friendships from a YAML file.
package seed

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/quiz"
	"github.com/osse101/QuizDuel_Go/internal/validation"
)

//go:embed schema/*.json
var schemaFS embed.FS

var schemas = validation.NewSchemaValidator(schemaFS)

// File is the seed document layout
type File struct {
	Content     []domain.QuizContent `yaml:"content"`
	Profiles    []Profile            `yaml:"profiles"`
	Friendships []Friendship         `yaml:"friendships"`
}

// Profile is a student profile entry
type Profile struct {
	UserID      uuid.UUID `yaml:"user_id"`
	DisplayName string    `yaml:"display_name"`
	GradeLevel  int       `yaml:"grade_level"`
}

// Friendship is a directed friendship entry
type Friendship struct {
	Requester uuid.UUID `yaml:"requester"`
	Addressee uuid.UUID `yaml:"addressee"`
	Status    string    `yaml:"status"`
}

// Result counts what Apply wrote
type Result struct {
	Content     int
	Profiles    int
	Friendships int
}

// ContentWriter stores catalog rows
type ContentWriter interface {
	UpsertContent(ctx context.Context, items []domain.QuizContent) (int, error)
}

// SocialWriter stores profiles and friendships
type SocialWriter interface {
	UpsertProfile(ctx context.Context, p domain.StudentProfile) error
	UpsertFriendship(ctx context.Context, requester, addressee uuid.UUID, status string) error
}

// LoadFile reads and validates a seed file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadFile, err)
	}
	return Parse(data)
}

// Parse decodes a seed document. The shape is checked against the seed schema
// before decoding, then entries are validated.
func Parse(data []byte) (*File, error) {
	if err := schemas.ValidateYAML(data, SchemaFile); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSchemaInvalid, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", ErrMsgDecodeFile, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every entry and normalizes subject IDs
func (f *File) Validate() error {
	var errs []error
	for i := range f.Content {
		c := &f.Content[i]
		c.SubjectID = quiz.NormalizeSubject(c.SubjectID)
		if c.SubjectID == "" {
			errs = append(errs, fmt.Errorf("content[%d]: %s", i, ErrMsgMissingSubject))
		}
		if c.GradeLevel < MinGradeLevel || c.GradeLevel > MaxGradeLevel {
			errs = append(errs, fmt.Errorf("content[%d]: %s: %d", i, ErrMsgGradeOutOfRange, c.GradeLevel))
		}
		if c.Difficulty < MinDifficulty || c.Difficulty > MaxDifficulty {
			errs = append(errs, fmt.Errorf("content[%d]: %s: %d", i, ErrMsgDifficultyOutOfRange, c.Difficulty))
		}
		if c.Points < 0 {
			errs = append(errs, fmt.Errorf("content[%d]: %s", i, ErrMsgNegativePoints))
		}
	}
	for i, p := range f.Profiles {
		if p.UserID == uuid.Nil {
			errs = append(errs, fmt.Errorf("profiles[%d]: %s", i, ErrMsgMissingUser))
		}
		if p.GradeLevel < MinGradeLevel || p.GradeLevel > MaxGradeLevel {
			errs = append(errs, fmt.Errorf("profiles[%d]: %s: %d", i, ErrMsgGradeOutOfRange, p.GradeLevel))
		}
	}
	for i := range f.Friendships {
		fr := &f.Friendships[i]
		if fr.Status == "" {
			fr.Status = DefaultFriendshipStatus
		}
		if fr.Requester == uuid.Nil || fr.Addressee == uuid.Nil {
			errs = append(errs, fmt.Errorf("friendships[%d]: %s", i, ErrMsgMissingUser))
		}
		if fr.Requester == fr.Addressee {
			errs = append(errs, fmt.Errorf("friendships[%d]: %s", i, ErrMsgSelfFriendship))
		}
		if !validStatus[fr.Status] {
			errs = append(errs, fmt.Errorf("friendships[%d]: %s: %q", i, ErrMsgUnknownStatus, fr.Status))
		}
	}
	return errors.Join(errs...)
}

// Apply writes the file. Content is upserted in one batch, profiles before friendships.
func Apply(ctx context.Context, f *File, content ContentWriter, social SocialWriter) (Result, error) {
	var res Result

	if len(f.Content) > 0 {
		n, err := content.UpsertContent(ctx, f.Content)
		if err != nil {
			return res, fmt.Errorf("%s: %w", ErrMsgUpsertContent, err)
		}
		res.Content = n
	}

	for _, p := range f.Profiles {
		err := social.UpsertProfile(ctx, domain.StudentProfile{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			GradeLevel:  p.GradeLevel,
		})
		if err != nil {
			return res, fmt.Errorf("%s %s: %w", ErrMsgUpsertProfile, p.UserID, err)
		}
		res.Profiles++
	}

	for _, fr := range f.Friendships {
		if err := social.UpsertFriendship(ctx, fr.Requester, fr.Addressee, fr.Status); err != nil {
			return res, fmt.Errorf("%s %s->%s: %w", ErrMsgUpsertFriendship, fr.Requester, fr.Addressee, err)
		}
		res.Friendships++
	}

	return res, nil
}
