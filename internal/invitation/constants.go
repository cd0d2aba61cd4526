package invitation

// Log messages
const (
	LogMsgInvitationCreated  = "Invitation created"
	LogMsgInvitationAccepted = "Invitation accepted"
	LogMsgInvitationDeclined = "Invitation declined"
)

// Error context messages
const (
	ErrContextInsertInvitation = "failed to insert invitation"
	ErrContextLoadInvitation   = "failed to load invitation"
	ErrContextUpdateInvitation = "failed to update invitation"
	ErrContextListInvitations  = "failed to list invitations"
)
