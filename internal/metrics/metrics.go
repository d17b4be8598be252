package metrics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"microservice-loadtest/internal/models"
)

var ErrMalformedMetrics = errors.New("malformed metrics response")

var requiredFields = []string{"RequestCount", "TotalDuration", "AverageLatency"}

// GetServerMetrics fetches the metrics endpoint. Transport failures are
// returned unwrapped; anything wrong with the body wraps ErrMalformedMetrics.
func GetServerMetrics(ctx context.Context, client *http.Client, api string) (*models.MetricsSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return ParseMetrics(body)
}

// ParseMetrics decodes a JSON object of endpoint records, keeping key order.
func ParseMetrics(body []byte) (*models.MetricsSnapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetrics, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedMetrics)
	}

	order, err := objectKeys(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetrics, err)
	}

	snapshot := &models.MetricsSnapshot{
		Endpoints: order,
		Metrics:   make(map[string]models.MetricRecord, len(raw)),
	}
	for _, endpoint := range order {
		m, err := parseMetric(raw[endpoint])
		if err != nil {
			return nil, fmt.Errorf("%w: endpoint %q: %v", ErrMalformedMetrics, endpoint, err)
		}
		snapshot.Metrics[endpoint] = m
	}

	return snapshot, nil
}

func parseMetric(data json.RawMessage) (models.MetricRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return models.MetricRecord{}, errors.New("value is not an object")
	}

	values := make([]json.Number, len(requiredFields))
	for i, name := range requiredFields {
		raw, ok := fields[name]
		if !ok {
			return models.MetricRecord{}, fmt.Errorf("missing field %s", name)
		}
		n, err := parseNumber(raw)
		if err != nil {
			return models.MetricRecord{}, fmt.Errorf("field %s: %v", name, err)
		}
		values[i] = n
	}

	return models.MetricRecord{
		RequestCount:   values[0],
		TotalDuration:  values[1],
		AverageLatency: values[2],
	}, nil
}

// parseNumber accepts only a bare JSON number, not a quoted one.
func parseNumber(raw json.RawMessage) (json.Number, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	n, ok := v.(json.Number)
	if !ok {
		return "", fmt.Errorf("expected a number, got %s", raw)
	}
	return n, nil
}

// objectKeys returns the top-level keys of a JSON object in document order.
// Duplicate keys are reported once, at their first position.
func objectKeys(body []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	keys := []string{}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}
