// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import "confirmate.io/modelrater/sources"

// MultilingualThreshold is the minimum fuzzy-match similarity for a table
// row to be attributed to the target model.
const MultilingualThreshold = 80.0

// MultilingualExtractor maps one best-matching MultilingualResults row to
// mmmlu_avg.
type MultilingualExtractor struct{}

// Extract selects the row in rows whose model column best matches variants
// and, if it clears MultilingualThreshold, returns its metric.
func (MultilingualExtractor) Extract(rows []sources.MultilingualRow, variants []string) ([]Metric, bool) {
	idx, ok := bestMatch(rows, variants, func(r sources.MultilingualRow) string { return r.Model }, MultilingualThreshold)
	if !ok {
		return nil, false
	}
	return []Metric{{Key: "mmmlu_avg", Value: rows[idx].Average, Unit: "score_0_1"}}, true
}
