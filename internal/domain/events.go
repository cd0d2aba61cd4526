package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "duel.activated")
const (
	// EventTypeInvitationCreated is published when a duel is created and the opponent is invited
	EventTypeInvitationCreated = "invitation.created"

	// EventTypeInvitationAccepted is published when the opponent accepts an invitation
	EventTypeInvitationAccepted = "invitation.accepted"

	// EventTypeDuelActivated is published when quiz slots are assigned and play begins
	EventTypeDuelActivated = "duel.activated"

	// EventTypeDuelCompleted is published when an active duel reaches a result
	EventTypeDuelCompleted = "duel.completed"

	// EventTypeDuelCancelled is published when a pending duel is declined or its invitation lapses
	EventTypeDuelCancelled = "duel.cancelled"

	// EventTypeDuelStandaloneResult carries creator progress from a duel cancelled before activation
	EventTypeDuelStandaloneResult = "duel.standalone_result"
)
