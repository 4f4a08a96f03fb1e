// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package candidates

import (
	"context"
	"testing"

	"confirmate.io/modelrater/store"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.WithInMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSearchRanksDBCandidatesByScore(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.UpsertModel(&store.Model{DisplayName: "GPT-4 Turbo", Provider: "openai", ProviderID: "gpt-4-turbo"}))
	require.NoError(t, s.UpsertModel(&store.Model{DisplayName: "Claude 3 Opus", Provider: "anthropic", ProviderID: "claude-3-opus"}))

	b := &Builder{Store: s}
	results := b.Search(context.Background(), "gpt-4 turbo", 5)
	require.NotEmpty(t, results)
	require.Equal(t, "GPT-4 Turbo", results[0].DisplayName)
	require.Greater(t, results[0].Score, results[len(results)-1].Score+1)
}

func TestSearchDedupesByProviderAndProviderID(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.UpsertModel(&store.Model{DisplayName: "GPT-4", Provider: "openai", ProviderID: "gpt-4"}))

	b := &Builder{Store: s, LocalModelNames: []string{"unrelated-local-model"}}
	results := b.Search(context.Background(), "gpt-4", 10)

	seen := make(map[string]bool)
	for _, c := range results {
		key := c.Provider + "/" + c.ProviderID
		require.False(t, seen[key], "duplicate candidate key %s", key)
		seen[key] = true
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.UpsertModel(&store.Model{
			DisplayName: "Model " + string(rune('A'+i)),
			Provider:    "prov",
			ProviderID:  "id-" + string(rune('A'+i)),
		}))
	}
	b := &Builder{Store: s}
	results := b.Search(context.Background(), "Model", 2)
	require.Len(t, results, 2)
}
