package seed

import "github.com/osse101/QuizDuel_Go/internal/database/postgres"

// Bounds
const (
	MinGradeLevel = 1
	MaxGradeLevel = 12
	MinDifficulty = 1
	MaxDifficulty = 3

	DefaultFriendshipStatus = postgres.FriendshipAccepted

	SchemaFile = "schema/seed.schema.json"
)

var validStatus = map[string]bool{
	postgres.FriendshipPending:  true,
	postgres.FriendshipAccepted: true,
	postgres.FriendshipBlocked:  true,
}

// Error messages
const (
	ErrMsgReadFile             = "failed to read seed file"
	ErrMsgDecodeFile           = "failed to decode seed file"
	ErrMsgSchemaInvalid        = "seed file does not match schema"
	ErrMsgMissingSubject       = "subject_id is required"
	ErrMsgGradeOutOfRange      = "grade_level out of range"
	ErrMsgDifficultyOutOfRange = "difficulty out of range"
	ErrMsgNegativePoints       = "points must not be negative"
	ErrMsgMissingUser          = "user id is required"
	ErrMsgSelfFriendship       = "a user cannot befriend themselves"
	ErrMsgUnknownStatus        = "unknown friendship status"
	ErrMsgUpsertContent        = "failed to upsert content"
	ErrMsgUpsertProfile        = "failed to upsert profile"
	ErrMsgUpsertFriendship     = "failed to upsert friendship"
)
