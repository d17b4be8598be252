package metrics

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"microservice-loadtest/internal/models"
)

const columnFormat = "%-15s"

var tableColumns = []string{"Endpoint", "RequestCount", "TotalDuration", "AverageLatency"}

// FormatTable renders the header row and one row per endpoint, in snapshot
// order. Cells are left-justified to 15 characters and never truncated.
func FormatTable(snapshot *models.MetricsSnapshot) []string {
	lines := []string{formatRow(tableColumns...)}
	if snapshot == nil {
		return lines
	}

	for _, endpoint := range snapshot.Endpoints {
		m := snapshot.Metrics[endpoint]
		lines = append(lines, formatRow(
			endpoint,
			FormatNumber(m.RequestCount),
			FormatNumber(m.TotalDuration),
			FormatNumber(m.AverageLatency),
		))
	}
	return lines
}

func formatRow(cells ...string) string {
	row := ""
	for _, cell := range cells {
		row += fmt.Sprintf(columnFormat, cell)
	}
	return row
}

// FormatNumber prints integer literals as written and anything with a
// fraction or exponent as a float in shortest round-trip form: 10.0 stays
// 10.0, 1e3 becomes 1000.0, 1e21 becomes 1e+21.
func FormatNumber(n json.Number) string {
	literal := n.String()
	if !strings.ContainsAny(literal, ".eE") {
		if literal == "-0" {
			return "0"
		}
		return literal
	}

	v, err := n.Float64()
	if err != nil {
		return literal
	}
	return formatFloat(v)
}

// formatFloat switches to exponent notation outside [1e-4, 1e16).
func formatFloat(v float64) string {
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
