package common

import "github.com/prometheus/client_golang/prometheus"

const (
	PitchSubmissionTotal          = "pitch_submission_total"
	BlockchainTransactionFailure  = "blockchain_transaction_failure"
	BackendRequestTotal           = "backend_request_total"
	BackendRequestDurationSeconds = "backend_request_duration_seconds"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		PitchSubmissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PitchSubmissionTotal,
			Help: "Count of pitch submissions by final state",
		}, []string{"outcome"}),
		BlockchainTransactionFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: BlockchainTransactionFailure,
			Help: "Count of all blockchain transaction failure",
		}, []string{"method"}),
		BackendRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: BackendRequestTotal,
			Help: "Count of all backend API requests",
		}, []string{"path", "status"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		BackendRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: BackendRequestDurationSeconds,
			Help: "Duration of all backend API requests",
		}, []string{"path"}),
	}
)
