package identity

import "time"

// Token settings
const (
	BearerPrefix = "Bearer "
	// DefaultTokenTTL is the lifetime of tokens issued by Issue
	DefaultTokenTTL = 24 * time.Hour
)

// Error messages
const (
	ErrMsgMissingToken     = "missing bearer token"
	ErrMsgInvalidToken     = "invalid or expired token"
	ErrMsgInvalidSubject   = "token subject is not a user id"
	ErrMsgUnexpectedMethod = "unexpected signing method"
	ErrMsgNoUserInContext  = "no authenticated user in context"
)

// Log messages
const (
	LogMsgTokenRejected = "Rejected bearer token"
)
