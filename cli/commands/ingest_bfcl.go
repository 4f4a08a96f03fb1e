// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"confirmate.io/modelrater/fuzzy"
	"confirmate.io/modelrater/store"

	"github.com/urfave/cli/v3"
)

// ingestMatchThreshold mirrors the function-calling extractor's matching
// threshold (metrics.FunctionCallingThreshold), since an ingested row is
// itself a function-calling score.
const ingestMatchThreshold = 70.0

// bfclRow is one parsed (model, score) pair pending a store match.
type bfclRow struct {
	Model string
	Score float64
}

// IngestBFCLCommand bulk-loads function-calling scores from a CSV or JSON
// file into raw_metrics, matching each row's model name against existing
// store models by fuzzy similarity. Invalid or unmatched rows are silently
// skipped; the command reports the count ingested.
func IngestBFCLCommand() *cli.Command {
	return &cli.Command{
		Name:      "ingest-bfcl",
		Usage:     "Bulk-load function-calling scores from a CSV or JSON file",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("ingest-bfcl requires a file argument")
			}
			path := c.Args().Get(0)

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %q: %w", path, err)
			}

			rows := parseBFCLRows(path, data)

			eng, err := buildEngine(c)
			if err != nil {
				return err
			}
			defer eng.Close()

			models, err := eng.store.ListModels()
			if err != nil {
				return fmt.Errorf("list models: %w", err)
			}

			ingested := ingestBFCLRows(eng.store, models, rows)
			return PrettyPrint(map[string]any{"ingested_count": ingested})
		},
	}
}

func ingestBFCLRows(db *store.Store, models []store.Model, rows []bfclRow) int {
	ingested := 0
	for _, row := range rows {
		idx, ok := matchModelByName(models, row.Model)
		if !ok {
			continue
		}
		m := models[idx]
		sourceID, err := db.CreateSource(&store.Source{Name: "ingest-bfcl"})
		if err != nil {
			continue
		}
		err = db.UpsertMetric(&store.RawMetric{
			ModelID:   m.ID,
			MetricKey: "bfcl_v3_score",
			Value:     row.Score,
			Unit:      "score_0_1",
			SourceID:  sourceID,
		})
		if err != nil {
			continue
		}
		ingested++
	}
	return ingested
}

// parseBFCLRows dispatches to the CSV or JSON parser by file extension,
// falling back to content sniffing when the extension is ambiguous.
func parseBFCLRows(path string, data []byte) []bfclRow {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".json") {
		return parseBFCLJSON(data)
	}
	if strings.HasSuffix(lower, ".csv") {
		return parseBFCLCSV(data)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return parseBFCLJSON(data)
	}
	return parseBFCLCSV(data)
}

func parseBFCLCSV(data []byte) []bfclRow {
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil || len(records) < 2 {
		return nil
	}

	modelCol, scoreCol := -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "model":
			modelCol = i
		case "score", "bfcl_v3_score", "overall acc", "overall_acc":
			if scoreCol == -1 {
				scoreCol = i
			}
		}
	}
	if modelCol == -1 || scoreCol == -1 {
		return nil
	}

	var out []bfclRow
	for _, rec := range records[1:] {
		if modelCol >= len(rec) || scoreCol >= len(rec) {
			continue
		}
		model := strings.TrimSpace(rec[modelCol])
		score, ok := parseBFCLScore(rec[scoreCol])
		if model == "" || !ok {
			continue
		}
		out = append(out, bfclRow{Model: model, Score: score})
	}
	return out
}

func parseBFCLJSON(data []byte) []bfclRow {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	var list []any
	switch v := raw.(type) {
	case []any:
		list = v
	case map[string]any:
		if m, ok := v["models"].([]any); ok {
			list = m
		} else if r, ok := v["results"].([]any); ok {
			list = r
		}
	}

	var out []bfclRow
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		model, _ := obj["model"].(string)
		model = strings.TrimSpace(model)
		if model == "" {
			continue
		}
		var score float64
		var found bool
		for _, key := range []string{"bfcl_v3_score", "score", "overall_acc"} {
			if v, ok := obj[key]; ok {
				score, found = toBFCLFloat(v)
				if found {
					break
				}
			}
		}
		if !found {
			continue
		}
		out = append(out, bfclRow{Model: model, Score: score})
	}
	return out
}

func toBFCLFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return normalizeBFCLScore(n), true
	case string:
		return parseBFCLScore(n)
	default:
		return 0, false
	}
}

// parseBFCLScore accepts a plain or percent-suffixed number, returning it
// on a 0..1 scale.
func parseBFCLScore(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return normalizeBFCLScore(v), true
}

func normalizeBFCLScore(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// matchModelByName finds the model whose display name or provider_id best
// matches name's variants, applying ingestMatchThreshold.
func matchModelByName(models []store.Model, name string) (int, bool) {
	variants := fuzzy.Variants(name, "", "")
	bestIdx, bestScore := -1, 0.0
	for i, m := range models {
		s := fuzzy.BestVariantSimilarity(m.DisplayName, variants)
		if s2 := fuzzy.BestVariantSimilarity(m.ProviderID, variants); s2 > s {
			s = s2
		}
		if s > bestScore {
			bestScore, bestIdx = s, i
		}
	}
	if bestIdx < 0 || bestScore < ingestMatchThreshold {
		return -1, false
	}
	return bestIdx, true
}
