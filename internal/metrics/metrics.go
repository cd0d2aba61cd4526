package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func counter(name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
}

func counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
}

// HTTP
var (
	HTTPRequestsTotal = counterVec(MetricNameHTTPRequestsTotal, HelpTextHTTPRequestsTotal,
		LabelMethod, LabelPath, LabelStatus)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    MetricNameHTTPRequestDuration,
		Help:    HelpTextHTTPRequestDuration,
		Buckets: HTTPLatencyBuckets,
	}, []string{LabelMethod, LabelPath})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: MetricNameHTTPRequestsInFlight,
		Help: HelpTextHTTPRequestsInFlight,
	})

	HTTPRejections = counterVec(MetricNameHTTPRejections, HelpTextHTTPRejections, LabelReason)
)

// Events
var (
	EventsPublished    = counterVec(MetricNameEventsPublished, HelpTextEventsPublished, LabelType)
	EventHandlerErrors = counterVec(MetricNameEventHandlerErrors, HelpTextEventHandlerErrors, LabelType)
)

// Duels
var (
	DuelsCreated    = counter(MetricNameDuelsCreated, HelpTextDuelsCreated)
	DuelOutcomes    = counterVec(MetricNameDuelOutcomes, HelpTextDuelOutcomes, LabelStatus, LabelReason)
	AnswersRecorded = counterVec(MetricNameAnswersRecorded, HelpTextAnswersRecorded, LabelCorrect)
	LockContention  = counter(MetricNameLockContention, HelpTextLockContention)
)

// Quiz resolver
var (
	ResolverTierHits     = counterVec(MetricNameResolverTierHits, HelpTextResolverTierHits, LabelTier)
	ResolverCacheLookups = counterVec(MetricNameResolverCacheLookups, HelpTextResolverCacheLookups, LabelResult)
)

// Background work
var (
	SweepRuns        = counter(MetricNameSweepRuns, HelpTextSweepRuns)
	SweepTransitions = counter(MetricNameSweepTransitions, HelpTextSweepTransitions)
	SchedulerTicks   = counterVec(MetricNameSchedulerTicks, HelpTextSchedulerTicks, LabelJob, LabelResult)
)
