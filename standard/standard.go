// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package standard defines the versioned, content-addressed scoring
// configuration consumed by the ScoringEngine, and embeds the default
// standard shipped with the rating engine.
package standard

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Better describes whether a higher or lower raw value is preferable.
type Better string

const (
	BetterHigher Better = "higher"
	BetterLower  Better = "lower"
)

// Transform names the optional transform applied to a raw value (and to its
// scale endpoints) before linear rescale.
type Transform string

const (
	TransformNone   Transform = ""
	TransformLog1p  Transform = "log1p"
	TransformCap10  Transform = "cap_10"
)

// Scale describes the normalization range for a MetricSpec. Exactly one of
// the fields should be meaningful at a time: if Kind is "unit" or "binary"
// the range is fixed 0..1; if Kind is "fixed" Min/Max apply; if Kind is ""
// the scale is cohort-derived.
type Scale struct {
	Kind string  `json:"kind,omitempty" yaml:"kind,omitempty"` // "", "unit", "binary", "fixed"
	Min  float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max  float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// IsCohortDerived reports whether this scale has no fixed range declared.
func (s Scale) IsCohortDerived() bool {
	return s.Kind == "" || s.Kind == "fixed" && s.Min == 0 && s.Max == 0
}

// MetricSpec declares how one raw metric contributes to a category score.
type MetricSpec struct {
	Key       string    `json:"key" yaml:"key"`
	Better    Better    `json:"better" yaml:"better"`
	Weight    float64   `json:"weight" yaml:"weight"`
	Transform Transform `json:"transform,omitempty" yaml:"transform,omitempty"`
	Scale     Scale     `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Category declares the primary and fallback metrics contributing to one
// scored category.
type Category struct {
	Metrics   []MetricSpec `json:"metrics" yaml:"metrics"`
	Fallbacks []MetricSpec `json:"fallbacks,omitempty" yaml:"fallbacks,omitempty"`
}

// Standard is a versioned mapping of category name to Category, plus the
// confidence penalty applied when a category falls back to its secondary
// metrics.
type Standard struct {
	Name                         string              `json:"name" yaml:"name"`
	FallbackConfidenceMultiplier float64             `json:"fallback_confidence_multiplier" yaml:"fallback_confidence_multiplier"`
	Categories                   map[string]Category `json:"categories" yaml:"categories"`
}

// CanonicalJSON marshals the standard with sorted keys and no extraneous
// whitespace, the representation sha256_json hashes over.
func (s Standard) CanonicalJSON() ([]byte, error) {
	return canonicalize(s)
}

// ConfigHash returns the sha256 (hex-encoded) of the canonical-JSON form of
// the standard. It is stable under key reordering or whitespace differences
// in how the standard was originally expressed, since canonicalize always
// re-serializes through a key-sorted map.
func (s Standard) ConfigHash() (string, error) {
	b, err := s.CanonicalJSON()
	if err != nil {
		return "", fmt.Errorf("could not canonicalize standard: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalize round-trips v through encoding/json into a generic value
// tree, then re-marshals with map keys sorted (Go's encoding/json already
// sorts map[string]any keys) and no indentation, guaranteeing a stable
// byte representation regardless of struct field order or input whitespace.
func canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic any
	if err = json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	return marshalSorted(generic)
}

func marshalSorted(v any) ([]byte, error) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := []byte("{")
		for i, k := range keys {
			if i > 0 {
				out = append(out, ',')
			}
			kb, _ := json.Marshal(k)
			out = append(out, kb...)
			out = append(out, ':')
			vb, err := marshalSorted(t[k])
			if err != nil {
				return nil, err
			}
			out = append(out, vb...)
		}
		out = append(out, '}')
		return out, nil
	case []any:
		out := []byte("[")
		for i, e := range t {
			if i > 0 {
				out = append(out, ',')
			}
			eb, err := marshalSorted(e)
			if err != nil {
				return nil, err
			}
			out = append(out, eb...)
		}
		out = append(out, ']')
		return out, nil
	default:
		return json.Marshal(v)
	}
}

// Default returns the engine's built-in scoring standard, reproducing the
// category layout of the Python reference implementation's DEFAULT_STANDARD.
func Default() Standard {
	return Standard{
		Name:                         "default",
		FallbackConfidenceMultiplier: 0.33,
		Categories: map[string]Category{
			"coding": {
				Metrics: []MetricSpec{
					{Key: "bigcodebench_instruct", Better: BetterHigher, Weight: 1},
					{Key: "bigcodebench_complete", Better: BetterHigher, Weight: 1},
				},
				Fallbacks: []MetricSpec{
					{Key: "arena_score", Better: BetterHigher, Weight: 1},
				},
			},
			"context_length": {
				Metrics: []MetricSpec{
					{Key: "context_length_tokens", Better: BetterHigher, Weight: 1, Transform: TransformLog1p,
						Scale: Scale{Kind: "fixed", Min: 2000, Max: 2_000_000}},
				},
			},
			"cost": {
				Metrics: []MetricSpec{
					{Key: "cost_usd_per_1m_mixed", Better: BetterLower, Weight: 1, Transform: TransformLog1p},
				},
			},
			"creativity": {
				Metrics: []MetricSpec{
					{Key: "arena_score", Better: BetterHigher, Weight: 1},
				},
			},
			"factuality": {
				Metrics: []MetricSpec{
					{Key: "openllm_truthfulqa_mc2", Better: BetterHigher, Weight: 1, Scale: Scale{Kind: "unit"}},
				},
				Fallbacks: []MetricSpec{
					{Key: "mmmlu_avg", Better: BetterHigher, Weight: 1, Scale: Scale{Kind: "unit"}},
				},
			},
			"function_calling": {
				Metrics: []MetricSpec{
					{Key: "bfcl_v3_score", Better: BetterHigher, Weight: 1, Scale: Scale{Kind: "unit"}},
				},
				Fallbacks: []MetricSpec{
					{Key: "registry_tools_supported", Better: BetterHigher, Weight: 0.5, Scale: Scale{Kind: "binary"}},
				},
			},
			"multilinguality": {
				Metrics: []MetricSpec{
					{Key: "mmmlu_avg", Better: BetterHigher, Weight: 0.4, Scale: Scale{Kind: "unit"}},
					{Key: "openllm_xnli_acc", Better: BetterHigher, Weight: 0.3, Scale: Scale{Kind: "unit"}},
					{Key: "openllm_mgsm_exact_match", Better: BetterHigher, Weight: 0.3, Scale: Scale{Kind: "unit"}},
				},
				Fallbacks: []MetricSpec{
					{Key: "hf_language_count", Better: BetterHigher, Weight: 1, Transform: TransformLog1p},
				},
			},
			"openness": {
				Metrics: []MetricSpec{
					{Key: "compliance_openness_mean", Better: BetterHigher, Weight: 1, Scale: Scale{Kind: "unit"}},
				},
			},
			"reasoning": {
				Metrics: []MetricSpec{
					{Key: "openllm_gpqa_acc_norm", Better: BetterHigher, Weight: 0.5, Scale: Scale{Kind: "unit"}},
					{Key: "openllm_bbh_acc_norm", Better: BetterHigher, Weight: 0.3, Scale: Scale{Kind: "unit"}},
					{Key: "openllm_math_hard_exact_match", Better: BetterHigher, Weight: 0.2, Scale: Scale{Kind: "unit"}},
				},
				Fallbacks: []MetricSpec{
					{Key: "arena_score", Better: BetterHigher, Weight: 1},
				},
			},
			"safety": {
				Metrics: []MetricSpec{
					{Key: "compliance_safety_mean", Better: BetterHigher, Weight: 1, Scale: Scale{Kind: "unit"}},
				},
				Fallbacks: []MetricSpec{
					{Key: "compliance_overall_mean", Better: BetterHigher, Weight: 1, Scale: Scale{Kind: "unit"}},
				},
			},
			"speed": {
				Metrics: []MetricSpec{
					{Key: "measured_tokens_per_sec", Better: BetterHigher, Weight: 1, Transform: TransformLog1p},
				},
			},
			"structured_output": {
				Metrics: []MetricSpec{
					{Key: "registry_structured_outputs_supported", Better: BetterHigher, Weight: 1, Scale: Scale{Kind: "binary"}},
				},
			},
		},
	}
}
