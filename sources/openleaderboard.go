// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// OpenLeaderboardResults is the SourceClient for the JSON-per-model results
// tree of an open evaluation-harness leaderboard: one `results_*.json` file
// per evaluation run, nested under `<org>/<name>/`.
type OpenLeaderboardResults struct {
	*Client

	// listPaths is overridable for testing; in production it enumerates
	// the tree's directory index (an out-of-scope HTTP/catalog concern).
	listPaths func(ctx context.Context, prefix string) ([]string, bool)
}

// NewOpenLeaderboardResults builds an OpenLeaderboardResults client.
func NewOpenLeaderboardResults(c *Client) *OpenLeaderboardResults {
	ol := &OpenLeaderboardResults{Client: c}
	ol.listPaths = ol.defaultListPaths
	return ol
}

// defaultListPaths fetches a directory listing for prefix, expecting a JSON
// array of path strings at "<prefix>/index.json" — contract-only per §1.
func (ol *OpenLeaderboardResults) defaultListPaths(ctx context.Context, prefix string) ([]string, bool) {
	body, ok := ol.GetBytes(ctx, "", prefix+"/index.json")
	if !ok {
		return nil, false
	}
	var paths []string
	if err := json.Unmarshal(body, &paths); err != nil {
		return nil, false
	}
	return paths, true
}

// LatestResultsPath returns the most recent `results_*.json` path under
// org/name, sorted descending lexicographically over the ISO-like suffix.
func (ol *OpenLeaderboardResults) LatestResultsPath(ctx context.Context, org, name string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s", org, name)
	paths, ok := ol.listPaths(ctx, prefix)
	if !ok || len(paths) == 0 {
		return "", false
	}

	var candidates []string
	for _, p := range paths {
		base := p
		if idx := strings.LastIndex(p, "/"); idx >= 0 {
			base = p[idx+1:]
		}
		if strings.HasPrefix(base, "results_") && strings.HasSuffix(base, ".json") {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.Sort(sort.Reverse(sort.StringSlice(candidates)))
	return candidates[0], true
}

// openLLMResults is the generic shape of one results_*.json file: a map
// from task name to a map of metric name to value.
type openLLMResults struct {
	Results map[string]map[string]any `json:"results"`
}

// LoadResults fetches and parses one results file.
func (ol *OpenLeaderboardResults) LoadResults(ctx context.Context, path string) (map[string]map[string]any, bool) {
	body, ok := ol.GetBytes(ctx, "", path)
	if !ok {
		return nil, false
	}
	var parsed openLLMResults
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false
	}
	return parsed.Results, true
}

// TaskVariants lists the precedence-ordered task/metric-name candidates the
// OpenLeaderboard extractor tries for each category, per the resolved Open
// Question in the expanded specification.
var TaskVariants = map[string][]string{
	"bbh":        {"bbh_acc_norm"},
	"gpqa":       {"gpqa_acc_norm"},
	"math_hard":  {"math_hard_exact_match"},
	"mgsm":       {"mgsm_exact_match", "mgsm_en_exact_match"},
	"xnli":       {"xnli_acc", "xnli_en_acc"},
	"truthfulqa": {"truthfulqa_mc2"},
}

// FirstAvailable tries each metric-name candidate for category in order and
// returns the first present numeric value.
func FirstAvailable(results map[string]map[string]any, category string) (float64, bool) {
	for _, metricName := range TaskVariants[category] {
		for _, metrics := range results {
			if v, ok := metrics[metricName]; ok {
				if f, ok := toFloat(v); ok {
					return f, true
				}
			}
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}
