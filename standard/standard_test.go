// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package standard_test

import (
	"encoding/json"
	"testing"

	"confirmate.io/modelrater/standard"

	"github.com/stretchr/testify/require"
)

func TestConfigHashStableUnderKeyReordering(t *testing.T) {
	a := standard.Standard{
		Name:                         "x",
		FallbackConfidenceMultiplier: 0.33,
		Categories: map[string]standard.Category{
			"b": {Metrics: []standard.MetricSpec{{Key: "k2", Better: standard.BetterHigher, Weight: 1}}},
			"a": {Metrics: []standard.MetricSpec{{Key: "k1", Better: standard.BetterHigher, Weight: 1}}},
		},
	}

	var roundTripped standard.Standard
	raw, err := json.Marshal(a)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &roundTripped))

	hashA, err := a.ConfigHash()
	require.NoError(t, err)
	hashB, err := roundTripped.ConfigHash()
	require.NoError(t, err)
	require.Equal(t, hashA, hashB)
}

func TestConfigHashStableUnderWhitespace(t *testing.T) {
	s := standard.Default()
	h1, err := s.ConfigHash()
	require.NoError(t, err)

	raw, err := json.MarshalIndent(s, "", "    ")
	require.NoError(t, err)
	var reparsed standard.Standard
	require.NoError(t, json.Unmarshal(raw, &reparsed))
	h2, err := reparsed.ConfigHash()
	require.NoError(t, err)

	require.Equal(t, h1, h2)
}

func TestDefaultStandardHasExpectedCategories(t *testing.T) {
	s := standard.Default()
	for _, cat := range []string{"coding", "context_length", "cost", "creativity", "factuality",
		"function_calling", "multilinguality", "openness", "reasoning", "safety", "speed", "structured_output"} {
		_, ok := s.Categories[cat]
		require.True(t, ok, "missing category %s", cat)
	}
}
