package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgConstraintPendingPair is the partial unique index guarding duplicate pending duels
	PgConstraintPendingPair = "idx_duels_pending_pair"
)

// Friendship statuses stored in the friendships table
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipBlocked  = "blocked"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction     = "failed to begin transaction"
	ErrMsgFailedToBeginDuelTransaction = "failed to begin duel transaction"
)

// Error Messages - Duel Operations
const (
	ErrMsgFailedToInsertDuel       = "failed to insert duel"
	ErrMsgFailedToGetDuel          = "failed to get duel"
	ErrMsgFailedToGetDuelForUpdate = "failed to get duel for update"
	ErrMsgFailedToFindPendingDuel  = "failed to find pending duel"
	ErrMsgFailedToUpdateDuel       = "failed to update duel"
	ErrMsgFailedToListDuels        = "failed to list duels"
	ErrMsgFailedToListDueDuels     = "failed to list duels due for expiry"
	ErrMsgFailedToMarshalSubjects  = "failed to marshal subjects"
	ErrMsgFailedToScanDuel         = "failed to scan duel"
	ErrMsgFailedToInsertSlots      = "failed to insert quiz slots"
	ErrMsgFailedToGetSlots         = "failed to get quiz slots"
)

// Error Messages - Invitation Operations
const (
	ErrMsgFailedToInsertInvitation = "failed to insert invitation"
	ErrMsgFailedToGetInvitation    = "failed to get invitation"
	ErrMsgFailedToUpdateInvitation = "failed to update invitation"
	ErrMsgFailedToListInvitations  = "failed to list invitations"
)

// Error Messages - Content Operations
const (
	ErrMsgFailedToQueryContent  = "failed to query quiz content"
	ErrMsgFailedToUpsertContent = "failed to upsert quiz content"
)

// Error Messages - Social Operations
const (
	ErrMsgFailedToCheckFriendship  = "failed to check friendship"
	ErrMsgFailedToUpsertFriendship = "failed to upsert friendship"
	ErrMsgFailedToGetProfile       = "failed to get profile"
	ErrMsgFailedToUpsertProfile    = "failed to upsert profile"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToLogEvent      = "failed to log duel event"
	ErrMsgFailedToListEvents    = "failed to list duel events"
	ErrMsgFailedToCleanupEvents = "failed to clean up duel events"
)
