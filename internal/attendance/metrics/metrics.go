package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the attendance module.
type Metrics struct {
	CheckIns             prometheus.Counter
	DuplicateCheckIns    prometheus.Counter
	VerificationFailures prometheus.Counter
	CheckOuts            prometheus.Counter
	AutoCompletions      prometheus.Counter
	CloseConflicts       prometheus.Counter
	CheckInDuration      prometheus.Histogram
	QueryDuration        prometheus.Histogram
}

// New creates a Metrics instance with all attendance metrics registered.
func New() *Metrics {
	return &Metrics{
		CheckIns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_check_ins_total",
			Help: "Total number of successful face-verified check-ins",
		}),
		DuplicateCheckIns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_duplicate_check_ins_total",
			Help: "Check-in attempts rejected because the day was already marked",
		}),
		VerificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_verification_failures_total",
			Help: "Face verification mismatches, collaborator errors and timeouts",
		}),
		CheckOuts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_check_outs_total",
			Help: "Total number of manual check-outs",
		}),
		AutoCompletions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_auto_completions_total",
			Help: "Open day records closed by the reconcile path",
		}),
		CloseConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_close_conflicts_total",
			Help: "Close attempts that lost the race to an earlier close",
		}),
		CheckInDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rollcall_check_in_duration_seconds",
			Help:    "Duration of check-in operations including face verification",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		QueryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rollcall_query_duration_seconds",
			Help:    "Duration of status/percentage/calendar reads",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveCheckIn records the duration of a check-in operation.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveCheckIn(start time.Time) {
	m.CheckInDuration.Observe(time.Since(start).Seconds())
}

// ObserveQuery records the duration of a read operation.
func (m *Metrics) ObserveQuery(start time.Time) {
	m.QueryDuration.Observe(time.Since(start).Seconds())
}
