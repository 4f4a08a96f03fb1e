// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"confirmate.io/modelrater/candidates"
	"confirmate.io/modelrater/scoring"
	"confirmate.io/modelrater/sources"
	"confirmate.io/modelrater/standard"
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

func TestHFAutolinkInvalidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := openTestStore(t)
	registryID := "provider/model-x"
	hfRepoID := "provider/model-x"
	require.NoError(t, s.UpsertModel(&store.Model{
		DisplayName: "Model X",
		Provider:    "provider",
		ProviderID:  "model-x",
		RegistryID:  &registryID,
		HFRepoID:    &hfRepoID,
	}))

	client := sources.NewClient("hfmeta", srv.URL+"/", &http.Client{Timeout: 5 * time.Second}, nil, time.Minute)
	o := New(s)
	o.HFMetadata = sources.NewHFMetadata(client)

	c := candidates.Candidate{
		DisplayName: "Model X",
		Provider:    "provider",
		ProviderID:  "model-x",
		RegistryID:  registryID,
		HFRepoID:    hfRepoID,
	}

	result, err := o.Evaluate(context.Background(), c, standard.Default(), nil, false)
	require.NoError(t, err)
	require.Nil(t, result.Model.HFRepoID)

	metricsByKey, err := s.MetricsForModel(result.Model.ID)
	require.NoError(t, err)
	require.NotContains(t, metricsByKey, "openllm_bbh_acc_norm")
}

func TestBatchRescoreEquality(t *testing.T) {
	s := openTestStore(t)
	o := New(s)
	std := standard.Default()

	models := []candidates.Candidate{
		{DisplayName: "Model A", Provider: "p", ProviderID: "a"},
		{DisplayName: "Model B", Provider: "p", ProviderID: "b"},
		{DisplayName: "Model C", Provider: "p", ProviderID: "c"},
	}
	for _, c := range models {
		_, err := o.Evaluate(context.Background(), c, std, nil, false)
		require.NoError(t, err)
	}

	engine := scoring.New(s)
	before := snapshotScores(t, s, std)

	_, err := engine.RescoreAll(std, nil)
	require.NoError(t, err)
	after := snapshotScores(t, s, std)

	require.Equal(t, before, after)
}

type scoreKey struct {
	modelID  uint
	category string
}

func snapshotScores(t *testing.T, s *store.Store, std standard.Standard) map[scoreKey][2]float64 {
	t.Helper()
	hash, err := std.ConfigHash()
	require.NoError(t, err)
	configJSON, err := std.CanonicalJSON()
	require.NoError(t, err)
	stdRow, err := s.GetOrCreateStandard(std.Name, hash, string(configJSON))
	require.NoError(t, err)

	models, err := s.ListModels()
	require.NoError(t, err)

	out := make(map[scoreKey][2]float64)
	for _, m := range models {
		scores, err := s.ScoresForModel(m.ID, stdRow.ID)
		require.NoError(t, err)
		for _, sc := range scores {
			out[scoreKey{m.ID, sc.Category}] = [2]float64{sc.ScoreValue, sc.Confidence}
		}
	}
	return out
}
