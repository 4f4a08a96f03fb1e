// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import "confirmate.io/modelrater/sources"

// RegistryExtractor maps one ModelRegistry catalog entry to its metrics.
// The entry is already resolved by registry_id, so no fuzzy matching is
// needed here.
type RegistryExtractor struct{}

// Extract computes pricing, capability-flag, and context-length metrics
// for rm. Pricing metrics are only emitted when the upstream catalog
// actually reported them; a missing price must never be treated as $0.
func (RegistryExtractor) Extract(rm sources.RegistryModel) []Metric {
	out := []Metric{
		{Key: "registry_tools_supported", Value: boolToFloat(rm.SupportsTools), Unit: "bool"},
		{Key: "registry_structured_outputs_supported", Value: boolToFloat(rm.SupportsStructured), Unit: "bool"},
		{Key: "registry_is_moderated", Value: boolToFloat(rm.IsModerated), Unit: "bool"},
	}
	if rm.ContextLength > 0 {
		out = append(out, Metric{Key: "context_length_tokens", Value: rm.ContextLength, Unit: "tokens"})
	}
	if rm.PromptUSDPerToken != nil {
		out = append(out, Metric{Key: "registry_prompt_usd_per_token", Value: *rm.PromptUSDPerToken, Unit: "usd_per_token"})
	}
	if rm.CompletionUSDPerToken != nil {
		out = append(out, Metric{Key: "registry_completion_usd_per_token", Value: *rm.CompletionUSDPerToken, Unit: "usd_per_token"})
	}
	if rm.RequestUSD != nil {
		out = append(out, Metric{Key: "registry_request_usd", Value: *rm.RequestUSD, Unit: "usd_per_request"})
	}
	if rm.PromptUSDPerToken != nil && rm.CompletionUSDPerToken != nil {
		out = append(out, Metric{Key: "cost_usd_per_1m_mixed", Value: 0.5 * (*rm.PromptUSDPerToken + *rm.CompletionUSDPerToken) * 1e6, Unit: "usd_per_1m_tokens"})
	}
	return out
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
