// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package scoring_test

import (
	"encoding/json"
	"testing"

	"confirmate.io/modelrater/scoring"
	"confirmate.io/modelrater/standard"
	"confirmate.io/modelrater/store"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// scoreDetails mirrors scoring's unexported categoryDetails shape, just
// enough to diff the persisted Details JSON across rescore passes.
type scoreDetails struct {
	Used         []string `json:"used"`
	UsedFallback bool     `json:"used_fallback"`
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.Open(store.WithInMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustCreateModel(t *testing.T, db *store.Store, provider, providerID string) uint {
	t.Helper()
	m := &store.Model{DisplayName: providerID, Provider: provider, ProviderID: providerID}
	require.NoError(t, db.UpsertModel(m))
	return m.ID
}

func TestCostNormalizationMonotonicityAndSymmetry(t *testing.T) {
	db := openTestStore(t)

	ids := []uint{
		mustCreateModel(t, db, "p", "cheap"),
		mustCreateModel(t, db, "p", "mid"),
		mustCreateModel(t, db, "p", "expensive"),
	}
	values := []float64{0.5, 5.0, 50.0}
	for i, id := range ids {
		require.NoError(t, db.UpsertMetric(&store.RawMetric{ModelID: id, MetricKey: "cost_usd_per_1m_mixed", Value: values[i]}))
	}

	std := standard.Standard{
		Name:                         "cost-only",
		FallbackConfidenceMultiplier: 0.33,
		Categories: map[string]standard.Category{
			"cost": {Metrics: []standard.MetricSpec{
				{Key: "cost_usd_per_1m_mixed", Better: standard.BetterLower, Weight: 1, Transform: standard.TransformLog1p},
			}},
		},
	}

	eng := scoring.New(db)
	_, err := eng.RescoreAll(std, nil)
	require.NoError(t, err)

	hash, err := std.ConfigHash()
	require.NoError(t, err)
	row, err := db.GetOrCreateStandard(std.Name, hash, "")
	require.NoError(t, err)

	scoreOf := func(modelID uint) float64 {
		rows, err := db.ScoresForModel(modelID, row.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		return rows[0].ScoreValue
	}

	cheap, mid, expensive := scoreOf(ids[0]), scoreOf(ids[1]), scoreOf(ids[2])
	require.Greater(t, cheap, mid)
	require.Greater(t, mid, expensive)
	require.InDelta(t, 1.0-expensive, cheap, 1e-9)
}

func TestFallbackConfidenceScaling(t *testing.T) {
	db := openTestStore(t)
	id := mustCreateModel(t, db, "p", "only-arena")
	require.NoError(t, db.UpsertMetric(&store.RawMetric{ModelID: id, MetricKey: "arena_score", Value: 1200}))
	// a second model so arena_score has a cohort to normalize against
	id2 := mustCreateModel(t, db, "p", "other")
	require.NoError(t, db.UpsertMetric(&store.RawMetric{ModelID: id2, MetricKey: "arena_score", Value: 1000}))

	std := standard.Default()
	eng := scoring.New(db)
	_, err := eng.RescoreAll(std, nil)
	require.NoError(t, err)

	hash, err := std.ConfigHash()
	require.NoError(t, err)
	row, err := db.GetOrCreateStandard(std.Name, hash, "")
	require.NoError(t, err)

	rows, err := db.ScoresForModel(id, row.ID)
	require.NoError(t, err)
	var codingScore *store.Score
	for i := range rows {
		if rows[i].Category == "coding" {
			codingScore = &rows[i]
		}
	}
	require.NotNil(t, codingScore)
	require.InDelta(t, 1.0*0.33, codingScore.Confidence, 1e-9)
}

func TestRescoreIdempotent(t *testing.T) {
	db := openTestStore(t)
	id := mustCreateModel(t, db, "p", "m")
	require.NoError(t, db.UpsertMetric(&store.RawMetric{ModelID: id, MetricKey: "measured_tokens_per_sec", Value: 42}))

	std := standard.Default()
	eng := scoring.New(db)

	_, err := eng.RescoreAll(std, nil)
	require.NoError(t, err)
	hash, err := std.ConfigHash()
	require.NoError(t, err)
	row, err := db.GetOrCreateStandard(std.Name, hash, "")
	require.NoError(t, err)
	first, err := db.ScoresForModel(id, row.ID)
	require.NoError(t, err)

	_, err = eng.RescoreAll(std, nil)
	require.NoError(t, err)
	second, err := db.ScoresForModel(id, row.ID)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	byCategory := func(rows []store.Score) map[string]store.Score {
		out := make(map[string]store.Score, len(rows))
		for _, r := range rows {
			out[r.Category] = r
		}
		return out
	}
	a, b := byCategory(first), byCategory(second)
	for cat, r1 := range a {
		r2 := b[cat]
		require.InDelta(t, r1.ScoreValue, r2.ScoreValue, 1e-12)
		require.InDelta(t, r1.Confidence, r2.Confidence, 1e-12)

		var d1, d2 scoreDetails
		require.NoError(t, json.Unmarshal([]byte(r1.Details), &d1))
		require.NoError(t, json.Unmarshal([]byte(r2.Details), &d2))
		if diff := cmp.Diff(d1, d2); diff != "" {
			t.Errorf("details changed across idempotent rescore for category %q (-first +second):\n%s", cat, diff)
		}
	}
}

func TestMissingMetricNoFallback(t *testing.T) {
	db := openTestStore(t)
	id := mustCreateModel(t, db, "p", "bare")

	std := standard.Standard{
		Name:                         "bare-only",
		FallbackConfidenceMultiplier: 0.33,
		Categories: map[string]standard.Category{
			"openness": {Metrics: []standard.MetricSpec{
				{Key: "compliance_openness_mean", Better: standard.BetterHigher, Weight: 1, Scale: standard.Scale{Kind: "unit"}},
			}},
		},
	}

	eng := scoring.New(db)
	_, err := eng.RescoreAll(std, nil)
	require.NoError(t, err)

	hash, err := std.ConfigHash()
	require.NoError(t, err)
	row, err := db.GetOrCreateStandard(std.Name, hash, "")
	require.NoError(t, err)

	rows, err := db.ScoresForModel(id, row.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 0.5, rows[0].ScoreValue)
	require.Equal(t, 0.0, rows[0].Confidence)
}
