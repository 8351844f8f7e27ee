package news

import (
	"encoding/json"
	"log/slog"
)

// NormalizeTrends reads trends.trends.results from a provider payload.
// Entries without a uri, label or numeric score are skipped.
func NormalizeTrends(body []byte) []Trend {
	trends := []Trend{}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.Warn("malformed trends payload", "error", err)
		return trends
	}

	results, _ := valueAt(payload, "trends", "trends", "results").([]any)
	for i, r := range results {
		obj, _ := r.(map[string]any)

		uri, ok := stringAt(obj, "uri")
		if !ok {
			slog.Warn("skipping trend without uri", "position", i+1)
			continue
		}

		label, ok := labelAt(obj)
		if !ok {
			slog.Warn("skipping trend without label", "position", i+1, "uri", uri)
			continue
		}

		score, ok := obj["score"].(float64)
		if !ok {
			slog.Warn("skipping trend without score", "position", i+1, "uri", uri)
			continue
		}

		trends = append(trends, Trend{URI: uri, Label: label, Score: score})
	}

	return trends
}
