// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenLeaderboardLatestResultsPathAndLoadResults(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/openai/gpt-x/index.json": `["openai/gpt-x/results_2024-01-01.json","openai/gpt-x/results_2024-06-01.json"]`,
		"/openai/gpt-x/results_2024-06-01.json": `{"results":{"harness|bbh|0":{"bbh_acc_norm":0.71,"ignored":"x"}}}`,
	})
	ol := NewOpenLeaderboardResults(c)

	path, ok := ol.LatestResultsPath(context.Background(), "openai", "gpt-x")
	require.True(t, ok)
	require.Equal(t, "openai/gpt-x/results_2024-06-01.json", path)

	results, ok := ol.LoadResults(context.Background(), path)
	require.True(t, ok)

	v, ok := FirstAvailable(results, "bbh")
	require.True(t, ok)
	require.Equal(t, 0.71, v)

	_, ok = FirstAvailable(results, "gpqa")
	require.False(t, ok)
}

func TestOpenLeaderboardTaskVariantFallback(t *testing.T) {
	results := map[string]map[string]any{
		"harness|mgsm|0": {"mgsm_en_exact_match": 0.5},
	}
	v, ok := FirstAvailable(results, "mgsm")
	require.True(t, ok)
	require.Equal(t, 0.5, v)
}
