// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"

	"confirmate.io/modelrater/orchestrator"
	"confirmate.io/modelrater/store"
)

// categoryReport is one entry of the "scores" map in the batch-eval JSON
// output schema.
type categoryReport struct {
	Score        float64 `json:"score"`
	Confidence   float64 `json:"confidence"`
	UsedFallback bool    `json:"used_fallback"`
	ComputedAt   string  `json:"computed_at"`
	Details      any     `json:"details"`
}

// scoresForModel loads every Score row for model under the engine's active
// standard and shapes it into the documented per-category report.
func scoresForModel(eng *engine, modelID uint) (map[string]categoryReport, error) {
	hash, err := eng.standard.ConfigHash()
	if err != nil {
		return nil, fmt.Errorf("hash standard: %w", err)
	}
	configJSON, err := eng.standard.CanonicalJSON()
	if err != nil {
		return nil, fmt.Errorf("serialize standard: %w", err)
	}
	stdRow, err := eng.store.GetOrCreateStandard(eng.standard.Name, hash, string(configJSON))
	if err != nil {
		return nil, fmt.Errorf("resolve standard row: %w", err)
	}

	rows, err := eng.store.ScoresForModel(modelID, stdRow.ID)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}

	out := make(map[string]categoryReport, len(rows))
	for _, r := range rows {
		var details struct {
			Used         []string `json:"used"`
			UsedFallback bool     `json:"used_fallback"`
		}
		var parsedDetails any = json.RawMessage(r.Details)
		if err := json.Unmarshal([]byte(r.Details), &details); err == nil {
			parsedDetails = details
		}
		out[r.Category] = categoryReport{
			Score:        r.ScoreValue,
			Confidence:   r.Confidence,
			UsedFallback: details.UsedFallback,
			ComputedAt:   r.ComputedAt.UTC().Format("2006-01-02T15:04:05Z"),
			Details:      parsedDetails,
		}
	}
	return out, nil
}

// printEvalResult prints the per-category scores for one evaluated model.
func printEvalResult(eng *engine, result orchestrator.Result) error {
	scores, err := scoresForModel(eng, result.Model.ID)
	if err != nil {
		return err
	}
	return PrettyPrint(map[string]any{
		"model":          modelSummary(result.Model),
		"extractors_run": result.ExtractorsRun,
		"measured_speed": result.MeasuredSpeed,
		"rescored_count": result.RescoredCount,
		"scores":         scores,
	})
}

// modelSummary shapes a store.Model into the "selected" object documented
// in the batch-eval JSON schema.
func modelSummary(m store.Model) map[string]any {
	out := map[string]any{
		"name":        m.DisplayName,
		"provider":    m.Provider,
		"provider_id": m.ProviderID,
	}
	if m.RegistryID != nil {
		out["registry_id"] = *m.RegistryID
	}
	if m.HFRepoID != nil {
		out["hf_repo_id"] = *m.HFRepoID
	}
	return out
}
