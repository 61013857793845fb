package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "registrations_total", Help: "Successful birthday registrations"},
	)
	GreetingsSent = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "greetings_sent_total", Help: "Birthday greetings delivered"},
	)
	GreetingFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "greeting_send_failures_total", Help: "Birthday greetings that failed to send"},
	)
	SweepRuns = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "sweep_runs_total", Help: "Greeting sweep invocations"},
	)
	BadUserRecords = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bad_user_records_total", Help: "Stored user records that failed to decode"},
	)
)

func MustRegister() {
	prometheus.MustRegister(
		RequestsTotal, ReqDuration,
		RegistrationsTotal, GreetingsSent, GreetingFailures, SweepRuns, BadUserRecords,
	)
}
