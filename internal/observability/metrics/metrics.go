package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Outcome string

const (
	Success Outcome = "success"
	Error   Outcome = "error"
)

func (o Outcome) String() string {
	return string(o)
}

var (
	once sync.Once

	upstreamRequestDuration *prometheus.HistogramVec
	upstreamRequestsTotal   *prometheus.CounterVec
	graphqlOperationsTotal  *prometheus.CounterVec
	graphqlDuration         *prometheus.HistogramVec
)

// Init 注册指标到默认 registry，可重复调用
func Init() {
	once.Do(registerMetrics)
}

func registerMetrics() {
	buckets := []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orbittrack",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of market data API requests.",
			Buckets:   buckets,
		},
		[]string{"endpoint", "outcome"},
	)
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orbittrack",
			Name:      "upstream_requests_total",
			Help:      "Market data API requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)
	graphqlOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orbittrack",
			Name:      "graphql_operations_total",
			Help:      "GraphQL operations by operation name and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	graphqlDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orbittrack",
			Name:      "graphql_operation_duration_seconds",
			Help:      "Execution time of GraphQL operations.",
			Buckets:   buckets,
		},
		[]string{"operation"},
	)

	prometheus.MustRegister(
		upstreamRequestDuration,
		upstreamRequestsTotal,
		graphqlOperationsTotal,
		graphqlDuration,
	)
}

// RecordUpstreamRequest 记录一次行情接口调用
func RecordUpstreamRequest(endpoint string, outcome Outcome, duration time.Duration) {
	Init()
	upstreamRequestsTotal.WithLabelValues(endpoint, outcome.String()).Inc()
	upstreamRequestDuration.WithLabelValues(endpoint, outcome.String()).Observe(duration.Seconds())
}

// RecordGraphQLOperation 记录一次 GraphQL 操作
func RecordGraphQLOperation(operation string, outcome Outcome, duration time.Duration) {
	Init()
	graphqlOperationsTotal.WithLabelValues(operation, outcome.String()).Inc()
	graphqlDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Handler 返回 /metrics 处理器
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}
