// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"encoding/json"
)

// CodeBenchRow is one row of the columnar code-generation benchmark table.
type CodeBenchRow struct {
	Model     string  `json:"model"`
	Instruct  float64 `json:"instruct"`
	Complete  float64 `json:"complete"`
}

// CodeBenchResults is the SourceClient for a columnar benchmark dump. The
// upstream distributes these as Parquet; this client accepts the JSON-rows
// projection of that table (the parse boundary the engine is contracted
// against — see §1 Out-of-scope), so the extraction logic never depends on
// a Parquet reader.
type CodeBenchResults struct {
	*Client
}

// NewCodeBenchResults builds a CodeBenchResults client.
func NewCodeBenchResults(c *Client) *CodeBenchResults { return &CodeBenchResults{Client: c} }

// LoadRows fetches and parses the results table.
func (cb *CodeBenchResults) LoadRows(ctx context.Context) ([]CodeBenchRow, bool) {
	body, ok := cb.GetBytes(ctx, "", "results.json")
	if !ok {
		return nil, false
	}
	var rows []CodeBenchRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

// ScoreRange returns the (min, max) of a given field ("instruct" or
// "complete") across every row, used for benchmark-derived normalization.
func ScoreRange(rows []CodeBenchRow, field string) (min, max float64, ok bool) {
	if len(rows) == 0 {
		return 0, 0, false
	}
	get := func(r CodeBenchRow) float64 {
		if field == "complete" {
			return r.Complete
		}
		return r.Instruct
	}
	min, max = get(rows[0]), get(rows[0])
	for _, r := range rows[1:] {
		v := get(r)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, true
}
