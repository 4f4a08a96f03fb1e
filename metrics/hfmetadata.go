// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import "confirmate.io/modelrater/sources"

// HFMetadataExtractor maps HF repo metadata to hf_language_count. It
// operates on an already-identified repo (resolved by repo ID, not fuzzy
// matching), so there is no threshold here.
type HFMetadataExtractor struct{}

// Extract emits hf_language_count, the number of declared languages.
func (HFMetadataExtractor) Extract(meta sources.HFRepoMetadata) []Metric {
	return []Metric{{Key: "hf_language_count", Value: float64(len(meta.Languages)), Unit: "count"}}
}
