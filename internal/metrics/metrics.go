package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Checkout
	SessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_sessions_created_total",
			Help: "Checkout sessions opened with the payment processor",
		},
	)
	Confirmations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_confirmations_total",
			Help: "Success confirmations by reported payment status",
		},
		[]string{"payment_status"},
	)
	CheckoutFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_failures_total",
			Help: "Checkout failures by stage",
		},
		[]string{"stage"}, // create_session|persist|retrieve_session
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(SessionsCreated)
	prometheus.MustRegister(Confirmations)
	prometheus.MustRegister(CheckoutFailures)
	prometheus.MustRegister(WorkerQueueDepth)
}
