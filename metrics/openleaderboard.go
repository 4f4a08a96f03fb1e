// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import "confirmate.io/modelrater/sources"

// openLeaderboardKeys maps each OpenLeaderboard task category to the closed
// metric-key-space name it is published under.
var openLeaderboardKeys = map[string]string{
	"bbh":        "openllm_bbh_acc_norm",
	"gpqa":       "openllm_gpqa_acc_norm",
	"math_hard":  "openllm_math_hard_exact_match",
	"mgsm":       "openllm_mgsm_exact_match",
	"xnli":       "openllm_xnli_acc",
	"truthfulqa": "openllm_truthfulqa_mc2",
}

// OpenLeaderboardExtractor maps a single results_*.json payload (already
// resolved to the target's org/name, so no fuzzy matching applies here) to
// the closed-key-space openllm_* metrics.
type OpenLeaderboardExtractor struct{}

// Extract tries every category's task-name variants in precedence order
// and emits one metric per category that has an available value.
func (OpenLeaderboardExtractor) Extract(results map[string]map[string]any) []Metric {
	var out []Metric
	for category, key := range openLeaderboardKeys {
		if v, ok := sources.FirstAvailable(results, category); ok {
			out = append(out, Metric{Key: key, Value: v, Unit: "score_0_1"})
		}
	}
	return out
}
