package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)
)

// Remote Handle Metrics
var (
	LedgerCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerCalls,
			Help: HelpTextLedgerCalls,
		},
		[]string{LabelOp, LabelResult},
	)

	LedgerRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerRetries,
			Help: HelpTextLedgerRetries,
		},
		[]string{LabelOp},
	)

	HandleDials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHandleDials,
			Help: HelpTextHandleDials,
		},
		[]string{LabelIdentity, LabelResult},
	)

	HandleEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHandleEvictions,
			Help: HelpTextHandleEvictions,
		},
		[]string{LabelReason},
	)

	ModeTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameModeTransitions,
			Help: HelpTextModeTransitions,
		},
		[]string{LabelMode},
	)
)

// Settlement Metrics
var (
	SettlementLegs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlementLegs,
			Help: HelpTextSettlementLegs,
		},
		[]string{LabelKind, LabelStatus},
	)

	WagersResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWagersResolved,
			Help: HelpTextWagersResolved,
		},
		[]string{LabelVariant, LabelOutcome},
	)

	GameDivergences = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGameDivergences,
			Help: HelpTextGameDivergences,
		},
		[]string{LabelVariant},
	)
)
