package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/duel"
)

// Validator checks request bodies and query values against struct tags
// plus the duel-specific tags difficulty, direction and bucket.
type Validator struct {
	validate *validator.Validate
}

var sharedValidator = sync.OnceValue(NewValidator)

// NewValidator builds a validator with the custom tags registered.
// Field errors are keyed by the json name of the field.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	for tag, fn := range map[string]validator.Func{
		"difficulty": validateDifficulty,
		"direction":  validateDirection,
		"bucket":     validateBucket,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return &Validator{validate: v}
}

// InitValidator builds the shared validator ahead of the first request
func InitValidator() {
	sharedValidator()
}

// GetValidator returns the shared validator
func GetValidator() *Validator {
	return sharedValidator()
}

func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

func (v *Validator) ValidateVar(field any, tag string) error {
	return v.validate.Var(field, tag)
}

var tagMessages = map[string]string{
	"required":   "This field is required",
	"uuid":       "Must be a UUID",
	"difficulty": "Must be one of easy, medium, hard",
	"direction":  "Must be sent or received",
	"bucket":     "Unknown duel bucket",
	"dive":       "Invalid entries",
	"unique":     "Invalid entries",
}

// FormatValidationError maps each failing field to a message without
// exposing Go type names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return "Must be at most " + fe.Param()
	case "min":
		return "Must be at least " + fe.Param()
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	return "Invalid value"
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

func validateDifficulty(fl validator.FieldLevel) bool {
	return domain.DifficultyTier(strings.ToLower(fl.Field().String())).Valid()
}

func validateDirection(fl validator.FieldLevel) bool {
	d := domain.InvitationDirection(fl.Field().String())
	return d == domain.DirectionSent || d == domain.DirectionReceived
}

// Empty means no bucket filter
func validateBucket(fl validator.FieldLevel) bool {
	b := fl.Field().String()
	return b == "" || duel.ValidBucket(domain.DuelBucket(b))
}
