package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgNotFound = "not found"

	// State machine errors
	ErrMsgInvalidTransition      = "invalid transition"
	ErrMsgExpired                = "expired"
	ErrMsgAlreadyResolved        = "already resolved"
	ErrMsgSlotAlreadyAnswered    = "quiz slot already answered"
	ErrMsgSlotOutOfOrder         = "quiz slot answered out of order"
	ErrMsgConcurrentModification = "concurrent modification"

	// Authorization errors
	ErrMsgUnauthorized  = "unauthorized"
	ErrMsgNotFriends    = "users are not friends"
	ErrMsgNotDuelMember = "user is not a participant of this duel"

	// Creation errors
	ErrMsgDuplicateInvitation = "a pending duel already exists between these users"
	ErrMsgSelfDuel            = "cannot duel yourself"

	// Content errors
	ErrMsgContentUnavailable = "no quiz content available"

	// Database/System errors
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"
	ErrMsgDeadlockDetected  = "deadlock detected"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound     = errors.New(ErrMsgNotFound)
	ErrDuelNotFound = fmt.Errorf("%w: duel", ErrNotFound)
	ErrSlotNotFound = fmt.Errorf("%w: quiz slot", ErrNotFound)

	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	// ErrExpired is joined with ErrInvalidTransition when a write hits a lapsed window
	ErrExpired                = errors.New(ErrMsgExpired)
	ErrAlreadyResolved        = errors.New(ErrMsgAlreadyResolved)
	ErrSlotAlreadyAnswered    = fmt.Errorf("%w: %s", ErrInvalidTransition, ErrMsgSlotAlreadyAnswered)
	ErrSlotOutOfOrder         = fmt.Errorf("%w: %s", ErrInvalidTransition, ErrMsgSlotOutOfOrder)
	ErrConcurrentModification = errors.New(ErrMsgConcurrentModification)

	ErrUnauthorized  = errors.New(ErrMsgUnauthorized)
	ErrNotFriends    = fmt.Errorf("%w: %s", ErrUnauthorized, ErrMsgNotFriends)
	ErrNotDuelMember = fmt.Errorf("%w: %s", ErrUnauthorized, ErrMsgNotDuelMember)

	ErrDuplicateInvitation = errors.New(ErrMsgDuplicateInvitation)
	ErrSelfDuel            = fmt.Errorf("%w: %s", ErrInvalidInput, ErrMsgSelfDuel)

	ErrContentUnavailable = errors.New(ErrMsgContentUnavailable)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
