package validation

// Error messages
const (
	ErrMsgParseDocument    = "failed to parse document"
	ErrMsgLoadSchema       = "failed to load schema"
	ErrMsgCompileSchema    = "failed to compile schema"
	ErrMsgValidationFailed = "schema validation failed"
)
