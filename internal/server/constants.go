package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "Security alert: repeated admin key failures"
	SecurityAlertHighRate   = "Security alert: client over request budget"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Admin key rejected"
	LogMsgBadTrustedProxy  = "Ignoring unparseable trusted proxy entry"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRequestID      = "X-Request-ID"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// SecurityHeaders are set on every response
var SecurityHeaders = map[string]string{
	HeaderContentType:    "nosniff",
	HeaderFrameOptions:   "SAMEORIGIN",
	HeaderXSSProtection:  "1; mode=block",
	HeaderReferrerPolicy: "strict-origin-when-cross-origin",
}

// Limits
const (
	MaxRequestBodyBytes      = 1 << 20
	ReadHeaderTimeout        = 5 * time.Second
	DetectorWindow           = 5 * time.Minute
	RateLimitPerWindow       = 1000
	RateAlertEvery           = 100
	FailedAuthAlertThreshold = 5
)

// QuietPaths are served without request logging
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
