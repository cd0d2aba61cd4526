package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameHTTPRejections       = "http_requests_rejected_total"

	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"

	MetricNameDuelsCreated    = "duels_created_total"
	MetricNameDuelOutcomes    = "duel_outcomes_total"
	MetricNameAnswersRecorded = "duel_answers_recorded_total"
	MetricNameLockContention  = "duel_lock_contention_total"

	MetricNameResolverTierHits     = "quiz_resolver_tier_hits_total"
	MetricNameResolverCacheLookups = "quiz_resolver_cache_lookups_total"

	MetricNameSweepRuns        = "duel_expiry_sweep_runs_total"
	MetricNameSweepTransitions = "duel_expiry_sweep_transitions_total"
	MetricNameSchedulerTicks   = "scheduler_ticks_total"
)

// Help text
const (
	HelpTextHTTPRequestsTotal    = "HTTP requests served, by route pattern and status"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "HTTP requests currently being served"
	HelpTextHTTPRejections       = "Requests refused before reaching a handler, by reason"

	HelpTextEventsPublished    = "Duel events seen on the bus, by type"
	HelpTextEventHandlerErrors = "Event handler failures, by event type"

	HelpTextDuelsCreated    = "Duels created"
	HelpTextDuelOutcomes    = "Duels reaching a terminal state, by status and reason"
	HelpTextAnswersRecorded = "Quiz answers recorded, by correctness"
	HelpTextLockContention  = "Per-duel lock acquisitions that had to wait"

	HelpTextResolverTierHits     = "Quiz assignments by the fallback tier that produced them"
	HelpTextResolverCacheLookups = "Quiz candidate cache lookups by result"

	HelpTextSweepRuns        = "Expiry sweep runs"
	HelpTextSweepTransitions = "Duel transitions applied by the expiry sweep"
	HelpTextSchedulerTicks   = "Scheduler ticks by job, enqueued or dropped"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelReason  = "reason"
	LabelCorrect = "correct"
	LabelTier    = "tier"
	LabelResult  = "result"
	LabelJob     = "job"
)

// Label values
const (
	RejectRateLimited = "rate_limited"
	RejectAdminKey    = "admin_key"

	CacheResultHit  = "hit"
	CacheResultMiss = "miss"

	TickEnqueued = "enqueued"
	TickDropped  = "dropped"

	// UnmatchedRoute labels requests that did not match a registered route
	UnmatchedRoute = "unmatched"
)

// HTTPLatencyBuckets spans 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)
