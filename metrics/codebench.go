// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import "confirmate.io/modelrater/sources"

// CodeBenchThreshold is the minimum fuzzy-match similarity for a table row
// to be attributed to the target model.
const CodeBenchThreshold = 70.0

// CodeBenchExtractor maps one best-matching CodeBenchResults row to
// bigcodebench_instruct and bigcodebench_complete.
type CodeBenchExtractor struct{}

// Extract selects the row in rows whose model column best matches variants
// and, if it clears CodeBenchThreshold, returns its metrics.
func (CodeBenchExtractor) Extract(rows []sources.CodeBenchRow, variants []string) ([]Metric, bool) {
	idx, ok := bestMatch(rows, variants, func(r sources.CodeBenchRow) string { return r.Model }, CodeBenchThreshold)
	if !ok {
		return nil, false
	}
	row := rows[idx]
	return []Metric{
		{Key: "bigcodebench_instruct", Value: row.Instruct, Unit: "percent_0_100"},
		{Key: "bigcodebench_complete", Value: row.Complete, Unit: "percent_0_100"},
	}, true
}
