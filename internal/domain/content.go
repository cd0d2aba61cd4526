package domain

import "github.com/google/uuid"

// QuizContent is one quiz item in the content catalog
type QuizContent struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	SubjectID  string    `json:"subject_id" yaml:"subject_id"`
	GradeLevel int       `json:"grade_level" yaml:"grade_level"`
	Difficulty int       `json:"difficulty" yaml:"difficulty"`
	Title      string    `json:"title" yaml:"title"`
	Points     int       `json:"points" yaml:"points"`
}

// ContentFilter narrows a catalog lookup.
// Zero GradeLevel or Difficulty means the field is not filtered on.
type ContentFilter struct {
	SubjectID  string
	GradeLevel int
	Difficulty int
}

// StudentProfile is the slice of a user profile the duel service needs
type StudentProfile struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	GradeLevel  int       `json:"grade_level"`
}
