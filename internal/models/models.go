package models

import (
	"encoding/json"
	"time"
)

// Metric is the per-endpoint record served by the target microservice.
// Durations are in milliseconds.
type Metric struct {
	RequestCount   int64
	TotalDuration  float64
	AverageLatency float64
}

// MetricRecord is a Metric as read back by the prober. Values keep their JSON
// literal so that 10 and 10.0 stay distinguishable when rendered.
type MetricRecord struct {
	RequestCount   json.Number
	TotalDuration  json.Number
	AverageLatency json.Number
}

// MetricsSnapshot keeps the endpoints in the order the server wrote them.
type MetricsSnapshot struct {
	Endpoints []string
	Metrics   map[string]MetricRecord
}

type Payload struct {
	RandNum int
	FibSeq  []int
}

// ProbeResult is the outcome of one probe attempt. Err is set only for
// transport failures; any HTTP status counts as a completed exchange.
type ProbeResult struct {
	Iteration  int
	Endpoint   string
	URL        string
	StatusCode int
	Duration   time.Duration
	Err        error
}

func (r ProbeResult) Failed() bool {
	return r.Err != nil
}

// EndpointStats aggregates probe attempts for one endpoint. MeanLatency only
// covers attempts that completed an HTTP exchange.
type EndpointStats struct {
	Endpoint    string
	Attempts    int
	Failures    int
	MeanLatency time.Duration
}

type RunSummary struct {
	Attempts  int
	Failures  int
	Endpoints []EndpointStats
}
