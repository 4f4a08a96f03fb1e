// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package scoring implements the ScoringEngine: normalization-parameter
// computation, per-category weighted scoring with fallback and confidence
// tracking, and the rescore pass over the full cohort.
package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"confirmate.io/modelrater/standard"
	"confirmate.io/modelrater/store"
)

// BenchmarkScales carries externally-derived min/max pairs for metrics whose
// normalization range comes from a benchmark dataset rather than the cohort
// (arena_score, bigcodebench_instruct, bigcodebench_complete). Passing nil or
// omitting a key falls back to declared-fixed or cohort-derived scales.
type BenchmarkScales map[string][2]float64

// alwaysCohort lists metric keys that must use cohort-derived normalization
// even when a benchmark-derived override is available, per §4.6.
var alwaysCohort = map[string]bool{
	"cost_usd_per_1m_mixed": true,
}

// Engine computes normalized category scores against a Store.
type Engine struct {
	db *store.Store
}

// New returns a ScoringEngine bound to db.
func New(db *store.Store) *Engine {
	return &Engine{db: db}
}

// normParams holds the resolved (min, max) normalization range for one
// metric key, already expressed in transformed space.
type normParams struct {
	mn, mx float64
	ok     bool // false means "no signal available at all"
}

func applyTransform(t standard.Transform, v float64) float64 {
	switch t {
	case standard.TransformLog1p:
		if v <= -1 {
			return 0
		}
		return math.Log1p(v)
	case standard.TransformCap10:
		if v > 10 {
			return 10
		}
		return v
	default:
		return v
	}
}

// resolveNormParams computes (mn, mx) for spec.Key following the priority
// order: benchmark-derived fixed scale (unless the key is always-cohort) →
// declared fixed scale → cohort-derived from the Store.
func (e *Engine) resolveNormParams(spec standard.MetricSpec, benchmarks BenchmarkScales) (normParams, error) {
	if !alwaysCohort[spec.Key] {
		if rng, ok := benchmarks[spec.Key]; ok {
			return normParams{mn: applyTransform(spec.Transform, rng[0]), mx: applyTransform(spec.Transform, rng[1]), ok: true}, nil
		}
	}

	switch spec.Scale.Kind {
	case "unit", "binary":
		return normParams{mn: 0, mx: 1, ok: true}, nil
	case "fixed":
		return normParams{mn: applyTransform(spec.Transform, spec.Scale.Min), mx: applyTransform(spec.Transform, spec.Scale.Max), ok: true}, nil
	}

	values, err := e.db.MetricValuesAcrossCohort(spec.Key)
	if err != nil {
		return normParams{}, fmt.Errorf("could not load cohort values for %s: %w", spec.Key, err)
	}
	if len(values) < 2 {
		return normParams{ok: false}, nil
	}

	mn, mx := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		t := applyTransform(spec.Transform, v)
		if t < mn {
			mn = t
		}
		if t > mx {
			mx = t
		}
	}
	return normParams{mn: mn, mx: mx, ok: true}, nil
}

// normalizeValue implements: t = transform(raw); n = clamp01((t-mn)/(mx-mn));
// if better == lower, n = 1 - n. If mx ≈ mn, the metric contributes 0.5.
func normalizeValue(spec standard.MetricSpec, raw float64, params normParams) float64 {
	if !params.ok {
		return 0.5
	}
	t := applyTransform(spec.Transform, raw)

	if math.Abs(params.mx-params.mn) < 1e-12 {
		return 0.5
	}

	n := (t - params.mn) / (params.mx - params.mn)
	n = math.Max(0, math.Min(1, n))
	if spec.Better == standard.BetterLower {
		n = 1 - n
	}
	return n
}

// categoryDetails is the JSON shape stored in Score.Details.
type categoryDetails struct {
	Used         []string `json:"used"`
	UsedFallback bool     `json:"used_fallback"`
}

// scoreCategory computes the score/confidence/details for one model and one
// category, given pre-resolved norm params for every metric key referenced
// anywhere in the standard.
func scoreCategory(cat standard.Category, rawMetrics map[string]store.RawMetric, params map[string]normParams, fallbackMultiplier float64) (scoreVal, confidence float64, details categoryDetails) {
	score, usedWeight, totalWeight, used := accumulate(cat.Metrics, rawMetrics, params)
	if usedWeight > 0 {
		return score / usedWeight, usedWeight / totalWeight, categoryDetails{Used: used, UsedFallback: false}
	}

	if len(cat.Fallbacks) > 0 {
		fscore, fusedWeight, ftotalWeight, fused := accumulate(cat.Fallbacks, rawMetrics, params)
		if fusedWeight > 0 {
			return fscore / fusedWeight, (fusedWeight / ftotalWeight) * fallbackMultiplier, categoryDetails{Used: fused, UsedFallback: true}
		}
	}

	return 0.5, 0.0, categoryDetails{Used: []string{}, UsedFallback: false}
}

func accumulate(specs []standard.MetricSpec, rawMetrics map[string]store.RawMetric, params map[string]normParams) (weighted, usedWeight, totalWeight float64, used []string) {
	used = []string{}
	for _, spec := range specs {
		totalWeight += spec.Weight
		rm, ok := rawMetrics[spec.Key]
		if !ok {
			continue
		}
		n := normalizeValue(spec, rm.Value, params[spec.Key])
		weighted += n * spec.Weight
		usedWeight += spec.Weight
		used = append(used, spec.Key)
	}
	return weighted, usedWeight, totalWeight, used
}

// allMetricKeys returns the de-duplicated set of every metric key referenced
// anywhere (primary or fallback) in std, so norm params can be precomputed
// once per rescore pass instead of once per (model, category).
func allMetricKeys(std standard.Standard) map[string]standard.MetricSpec {
	out := make(map[string]standard.MetricSpec)
	for _, cat := range std.Categories {
		for _, m := range cat.Metrics {
			out[m.Key] = m
		}
		for _, m := range cat.Fallbacks {
			out[m.Key] = m
		}
	}
	return out
}

// RescoreAll recomputes and upserts the Score row for every (model,
// category) pair under std. It is idempotent: running it twice with no new
// raw data yields identical (score, confidence, details.used) rows.
func (e *Engine) RescoreAll(std standard.Standard, benchmarks BenchmarkScales) (rescored int, err error) {
	configJSON, err := std.CanonicalJSON()
	if err != nil {
		return 0, fmt.Errorf("could not serialize standard: %w", err)
	}
	hash, err := std.ConfigHash()
	if err != nil {
		return 0, fmt.Errorf("could not hash standard: %w", err)
	}

	stRow, err := e.db.GetOrCreateStandard(std.Name, hash, string(configJSON))
	if err != nil {
		return 0, fmt.Errorf("could not resolve standard row: %w", err)
	}

	params := make(map[string]normParams)
	for key, spec := range allMetricKeys(std) {
		p, err := e.resolveNormParams(spec, benchmarks)
		if err != nil {
			return 0, err
		}
		params[key] = p
	}

	models, err := e.db.ListModels()
	if err != nil {
		return 0, fmt.Errorf("could not list models: %w", err)
	}

	now := time.Now().UTC()
	for _, m := range models {
		rawMetrics, err := e.db.MetricsForModel(m.ID)
		if err != nil {
			return rescored, fmt.Errorf("could not load metrics for model %d: %w", m.ID, err)
		}

		for category, cat := range std.Categories {
			scoreVal, confidence, details := scoreCategory(cat, rawMetrics, params, std.FallbackConfidenceMultiplier)

			detailsJSON, err := json.Marshal(details)
			if err != nil {
				return rescored, fmt.Errorf("could not serialize score details: %w", err)
			}

			if err = e.db.UpsertScore(&store.Score{
				ModelID:    m.ID,
				StandardID: stRow.ID,
				Category:   category,
				ScoreValue: scoreVal,
				Confidence: confidence,
				Details:    string(detailsJSON),
				ComputedAt: now,
			}); err != nil {
				return rescored, fmt.Errorf("could not upsert score: %w", err)
			}
			rescored++
		}
	}

	return rescored, nil
}
