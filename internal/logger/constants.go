package logger

import "log/slog"

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// levels maps LOG_LEVEL values to slog levels
var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// sourceEnvironments get file:line on every record
var sourceEnvironments = map[string]bool{
	"dev":         true,
	"development": true,
	"local":       true,
}

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyUserID      = "user_id"
)
