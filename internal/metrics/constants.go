package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal   = "wagerd_http_requests_total"
	MetricNameHTTPRequestDuration = "wagerd_http_request_duration_seconds"

	MetricNameLedgerCalls     = "wagerd_ledger_calls_total"
	MetricNameLedgerRetries   = "wagerd_ledger_retries_total"
	MetricNameHandleDials     = "wagerd_handle_dials_total"
	MetricNameHandleEvictions = "wagerd_handle_evictions_total"
	MetricNameModeTransitions = "wagerd_mode_transitions_total"

	MetricNameSettlementLegs  = "wagerd_settlement_legs_total"
	MetricNameWagersResolved  = "wagerd_wagers_resolved_total"
	MetricNameGameDivergences = "wagerd_game_divergences_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal   = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration = "HTTP request latency in seconds"

	HelpTextLedgerCalls     = "Remote ledger calls by operation and result"
	HelpTextLedgerRetries   = "Remote ledger calls repeated after a retryable failure"
	HelpTextHandleDials     = "Connection handle dials by identity and result"
	HelpTextHandleEvictions = "Connection handles evicted by reason"
	HelpTextModeTransitions = "Process mode transitions"

	HelpTextSettlementLegs  = "Settlement legs by kind and final status"
	HelpTextWagersResolved  = "Wagers reaching a terminal status by variant and outcome"
	HelpTextGameDivergences = "Remote game results that differed from the local engine"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelOp       = "op"
	LabelResult   = "result"
	LabelIdentity = "identity"
	LabelReason   = "reason"
	LabelMode     = "mode"
	LabelKind     = "kind"
	LabelVariant  = "variant"
	LabelOutcome  = "outcome"
)

// Label values
const (
	ResultOK    = "ok"
	ResultError = "error"

	ReasonCredential = "credential"
	ReasonExpired    = "expired"
	ReasonReconnect  = "reconnect"
)

// HTTPLatencyBuckets spans fast local reads to slow settlement round trips.
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
