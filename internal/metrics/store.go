package metrics

import (
	"math"
	"sync"
	"time"

	"microservice-loadtest/internal/models"
)

// Store accumulates per-endpoint latency for the target microservice.
// decimalPlaces is a rounding multiplier: 100 keeps two decimals.
type Store struct {
	mu            sync.Mutex
	metrics       map[string]*models.Metric
	decimalPlaces float64
}

func NewStore(decimalPlaces float64, endpoints ...string) *Store {
	s := &Store{
		metrics:       make(map[string]*models.Metric, len(endpoints)),
		decimalPlaces: decimalPlaces,
	}
	for _, endpoint := range endpoints {
		s.metrics[endpoint] = &models.Metric{}
	}
	return s
}

func (s *Store) Record(endpoint string, start time.Time) {
	s.RecordDuration(endpoint, time.Since(start))
}

func (s *Store) RecordDuration(endpoint string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.metrics[endpoint]
	if !ok {
		m = &models.Metric{}
		s.metrics[endpoint] = m
	}

	m.TotalDuration = s.round(m.TotalDuration + d.Seconds()*1000)
	m.RequestCount++
	m.AverageLatency = s.round(m.TotalDuration / float64(m.RequestCount))
}

func (s *Store) Snapshot() map[string]models.Metric {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.Metric, len(s.metrics))
	for endpoint, m := range s.metrics {
		out[endpoint] = *m
	}
	return out
}

func (s *Store) round(v float64) float64 {
	return math.Round(v*s.decimalPlaces) / s.decimalPlaces
}
