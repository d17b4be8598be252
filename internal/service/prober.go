package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"microservice-loadtest/internal/config"
	"microservice-loadtest/internal/logger"
	"microservice-loadtest/internal/metrics"
	"microservice-loadtest/internal/models"
)

const metricsEndpoint = "metrics"

// Prober issues probe attempts one at a time, in configuration order.
type Prober struct {
	config     config.LoadTestConfig
	logger     *logger.Logger
	httpClient *http.Client
	collector  *metrics.ProbeCollector
	out        io.Writer
}

func NewProber(cfg config.LoadTestConfig, log *logger.Logger, out io.Writer) *Prober {
	return &Prober{
		config:     cfg,
		logger:     log,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		collector:  metrics.NewProbeCollector(),
		out:        out,
	}
}

func (p *Prober) Collector() *metrics.ProbeCollector {
	return p.collector
}

// Execute runs the loop phase and then the metrics phase. The returned error
// only reports the metrics phase; it has already been printed.
func (p *Prober) Execute(ctx context.Context) (models.RunSummary, error) {
	summary := p.Run(ctx)
	p.collectStats(&summary)
	_, err := p.FetchMetrics(ctx)
	return summary, err
}

// collectStats attaches the per-endpoint counters and logs them in debug mode.
// The counters cover every attempt made over the prober's lifetime.
func (p *Prober) collectStats(summary *models.RunSummary) {
	stats, err := p.collector.Summary()
	if err != nil {
		p.logger.Error(err.Error(), "Failed to gather probe statistics")
		return
	}
	summary.Endpoints = stats

	for _, s := range stats {
		p.logger.Debug(
			fmt.Sprintf("%s: %d attempts, %d failures, mean latency %s", s.Endpoint, s.Attempts, s.Failures, s.MeanLatency),
			"Probe statistics",
		)
	}
}

func (p *Prober) Run(ctx context.Context) models.RunSummary {
	var summary models.RunSummary

	for i := 0; i < p.config.RequestCount; i++ {
		for _, endpoint := range p.config.Endpoints {
			result := p.Probe(ctx, i+1, endpoint)
			summary.Attempts++
			if result.Failed() {
				summary.Failures++
				fmt.Fprintf(p.out, "Error sending request %d for the endpoint %s: %v\n", result.Iteration, endpoint, result.Err)
			}
		}
		p.logger.Debug(fmt.Sprintf("iteration %d of %d done", i+1, p.config.RequestCount), "Loop phase")
	}

	return summary
}

// Probe performs one GET and discards the body. Only transport failures set
// Err; the status code is recorded as is. Duration is left zero on failure,
// so the latency histogram only sees completed exchanges.
func (p *Prober) Probe(ctx context.Context, iteration int, endpoint string) models.ProbeResult {
	result := models.ProbeResult{
		Iteration: iteration,
		Endpoint:  endpoint,
		URL:       p.endpointURL(endpoint),
	}
	defer func() { p.collector.Observe(result) }()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, result.URL, nil)
	if err != nil {
		result.Err = err
		return result
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		result.Err = err
		return result
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		result.Err = err
		return result
	}

	result.StatusCode = resp.StatusCode
	result.Duration = time.Since(start)
	return result
}

// FetchMetrics performs the single metrics request and prints the table.
func (p *Prober) FetchMetrics(ctx context.Context) ([]string, error) {
	snapshot, err := metrics.GetServerMetrics(ctx, p.httpClient, p.endpointURL(metricsEndpoint))
	if err != nil {
		if errors.Is(err, metrics.ErrMalformedMetrics) {
			fmt.Fprintf(p.out, "Error decoding metrics response: %v\n", err)
		} else {
			fmt.Fprintf(p.out, "Error sending request for metrics endpoint: %v\n", err)
		}
		return nil, err
	}

	lines := metrics.FormatTable(snapshot)
	for _, line := range lines {
		fmt.Fprintln(p.out, line)
	}
	return lines, nil
}

func (p *Prober) endpointURL(endpoint string) string {
	return p.config.BaseURL + "/" + endpoint
}
