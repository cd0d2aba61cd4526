package quiz

import "time"

// Resolver defaults
const (
	DefaultCacheSize        = 512
	DefaultCacheTTL         = 5 * time.Minute
	DefaultPointsPerCorrect = 10
)

// Log messages
const (
	LogMsgTierFallback = "Quiz resolver fell back to a wider tier"
)

// Error messages
const (
	ErrMsgEmptySubject    = "subject id is empty"
	ErrContextFindContent = "failed to query content catalog"
)
