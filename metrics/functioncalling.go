// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"confirmate.io/modelrater/fuzzy"
	"confirmate.io/modelrater/sources"
)

// FunctionCallingThreshold is the minimum fuzzy-match similarity for a row
// to be attributed to the target model.
const FunctionCallingThreshold = 70.0

// FunctionCallingExtractor maps one best-matching FunctionCallingResults row
// to bfcl_v3_score, preferring a native-mode row over a prompt-emulated one
// when both match the same base model equally well.
type FunctionCallingExtractor struct{}

// Extract scores every row by its bare model name against variants, then
// among rows tied for the best score prefers one flagged Native. Returns
// false if the best score does not clear FunctionCallingThreshold.
func (FunctionCallingExtractor) Extract(rows []sources.FunctionCallingRow, variants []string) ([]Metric, bool) {
	const tieEpsilon = 1e-9

	bestScore := -1.0
	bestIdx := -1
	for i, r := range rows {
		s := fuzzy.BestVariantSimilarity(sources.BareModelName(r.Model), variants)
		switch {
		case s > bestScore+tieEpsilon:
			bestScore, bestIdx = s, i
		case s > bestScore-tieEpsilon && bestIdx >= 0 && r.Native && !rows[bestIdx].Native:
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestScore < FunctionCallingThreshold {
		return nil, false
	}
	return []Metric{{Key: "bfcl_v3_score", Value: rows[bestIdx].OverallAcc, Unit: "score_0_1"}}, true
}
