// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"encoding/csv"
	"strconv"
	"strings"
)

// FunctionCallingRow is one row of the function-calling benchmark CSV.
type FunctionCallingRow struct {
	Model      string
	OverallAcc float64 // 0..1
	Native     bool    // true when the row's qualifier denotes a native calling mode, e.g. "(FC)"
}

// FunctionCallingResults is the SourceClient for a CSV function-calling
// leaderboard.
type FunctionCallingResults struct {
	*Client
}

// NewFunctionCallingResults builds a FunctionCallingResults client.
func NewFunctionCallingResults(c *Client) *FunctionCallingResults {
	return &FunctionCallingResults{Client: c}
}

// LoadRows fetches and parses the CSV. "Overall Acc" is read as a percent
// string (e.g. "82.5%" or "82.5") and converted to 0..1.
func (f *FunctionCallingResults) LoadRows(ctx context.Context) ([]FunctionCallingRow, bool) {
	body, ok := f.GetBytes(ctx, "", "bfcl.csv")
	if !ok {
		return nil, false
	}

	reader := csv.NewReader(strings.NewReader(string(body)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		return nil, false
	}

	idx := columnIndex(records[0])
	modelCol, accCol := idx("model"), idx("overall acc", "overall_acc")
	if modelCol < 0 || accCol < 0 {
		return nil, false
	}

	var rows []FunctionCallingRow
	for _, rec := range records[1:] {
		if modelCol >= len(rec) || accCol >= len(rec) {
			continue
		}
		raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rec[accCol]), "%"))
		acc, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if acc > 1 {
			acc /= 100
		}
		model := strings.TrimSpace(rec[modelCol])
		rows = append(rows, FunctionCallingRow{
			Model:      model,
			OverallAcc: acc,
			Native:     strings.Contains(model, "(FC)"),
		})
	}
	return rows, true
}

// BareModelName strips a trailing "(FC)" native-mode qualifier, used by
// callers that fuzzy-match the row's model column against a target.
func BareModelName(model string) string {
	return strings.TrimSpace(strings.Replace(model, "(FC)", "", 1))
}
