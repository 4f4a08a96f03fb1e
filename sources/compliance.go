// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"encoding/json"
	"fmt"
)

// ComplianceReport is one model's compliance test-board report: a flat set
// of named numeric checks (toxicity_en, privacy_pii, over_refusal, ...), as
// published under a per-model path in the compliance board's report tree.
type ComplianceReport struct {
	Model  string
	Checks map[string]float64
}

// ComplianceBoard is the SourceClient for a tree of per-model JSON compliance
// reports, one file per model slug.
type ComplianceBoard struct {
	*Client
}

// NewComplianceBoard builds a ComplianceBoard client.
func NewComplianceBoard(c *Client) *ComplianceBoard { return &ComplianceBoard{Client: c} }

// LoadReport fetches and flattens the report at "<modelSlug>.json". Only
// numeric leaves are kept; nested objects are flattened with "_" join, so a
// report shaped like {"toxicity":{"en":0.8}} yields "toxicity_en".
func (cb *ComplianceBoard) LoadReport(ctx context.Context, modelSlug string) (ComplianceReport, bool) {
	body, ok := cb.GetBytes(ctx, "", fmt.Sprintf("%s.json", modelSlug))
	if !ok {
		return ComplianceReport{}, false
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return ComplianceReport{}, false
	}
	checks := make(map[string]float64)
	flattenNumeric("", raw, checks)
	if len(checks) == 0 {
		return ComplianceReport{}, false
	}
	return ComplianceReport{Model: modelSlug, Checks: checks}, true
}

func flattenNumeric(prefix string, v any, out map[string]float64) {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			key := k
			if prefix != "" {
				key = prefix + "_" + k
			}
			flattenNumeric(key, vv, out)
		}
	case float64:
		if prefix != "" {
			out[prefix] = t
		}
	}
}
