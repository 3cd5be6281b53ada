package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChatMessagesSent counts user messages accepted by a chat flow.
	ChatMessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "career_mentor",
		Subsystem: "chat",
		Name:      "messages_sent_total",
		Help:      "Total user messages accepted by chat views.",
	})

	// ChatReplies counts finished responder calls by outcome (ok, timeout, canceled, remote).
	ChatReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "career_mentor",
		Subsystem: "chat",
		Name:      "replies_total",
		Help:      "Total mentor reply attempts, by outcome.",
	}, []string{"outcome"})

	// ChatReplySeconds observes responder latency.
	ChatReplySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "career_mentor",
		Subsystem: "chat",
		Name:      "reply_duration_seconds",
		Help:      "Mentor reply duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	// UploadsRejected counts file selections that failed validation, by reason.
	UploadsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "career_mentor",
		Subsystem: "upload",
		Name:      "rejected_total",
		Help:      "Total file selections rejected, by reason.",
	}, []string{"reason"})

	// Uploads counts finished uploads by outcome.
	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "career_mentor",
		Subsystem: "upload",
		Name:      "completed_total",
		Help:      "Total upload attempts, by outcome.",
	}, []string{"outcome"})

	// LogQueries counts admin log filter evaluations.
	LogQueries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "career_mentor",
		Subsystem: "admin",
		Name:      "log_queries_total",
		Help:      "Total admin log filter evaluations.",
	})

	// LogExports counts CSV exports by scope.
	LogExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "career_mentor",
		Subsystem: "admin",
		Name:      "log_exports_total",
		Help:      "Total CSV exports, by scope.",
	}, []string{"scope"})

	// ActiveViews tracks live views in the session registries, by kind.
	ActiveViews = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "career_mentor",
		Subsystem: "session",
		Name:      "active_views",
		Help:      "Number of live views, by kind.",
	}, []string{"kind"})

	// HTTPRequests counts served requests by method and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "career_mentor",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests, by method and status.",
	}, []string{"method", "status"})
)

// Outcome labels a finished responder call for the metrics above.
func Outcome(kind string) string {
	if kind == "" {
		return "ok"
	}
	return kind
}
