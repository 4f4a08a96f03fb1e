// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package candidates builds a ranked list of model candidates for a user
// query by fusing the local Store with the live discovery SourceClients,
// scored under fuzzy string matching.
package candidates

import (
	"context"
	"sort"

	"confirmate.io/modelrater/fuzzy"
	"confirmate.io/modelrater/sources"
	"confirmate.io/modelrater/store"
)

// Origin tags where a Candidate was discovered.
type Origin string

const (
	OriginDB       Origin = "db"
	OriginRegistry Origin = "registry"
	OriginLocal    Origin = "local"
	OriginHF       Origin = "hf"
	OriginArena    Origin = "arena"
)

// Candidate is one ranked model entity, possibly not yet persisted.
type Candidate struct {
	Origin      Origin
	DisplayName string
	Provider    string
	ProviderID  string
	RegistryID  string
	HFRepoID    string
	Score       float64
}

// Builder composes candidates from the Store and the discovery
// SourceClients, ranking them with the fuzzy package.
type Builder struct {
	Store    *store.Store
	Registry *sources.ModelRegistry
	Local    *sources.LocalInferenceServer
	HF       *sources.HFSearch
	Arena    *sources.ArenaLeaderboard

	// LocalModelNames lists the models the configured local inference
	// server exposes; the probe itself has no "list models" contract, so
	// callers supply the local catalog out of band (e.g. from prior runs).
	LocalModelNames []string
}

// Search produces up to limit candidates for query, sorted by score
// descending, deduplicated by (provider, provider_id) keeping the higher
// score.
func (b *Builder) Search(ctx context.Context, query string, limit int) []Candidate {
	byKey := make(map[string]Candidate)

	add := func(c Candidate) {
		key := c.Provider + "\x00" + c.ProviderID
		if existing, ok := byKey[key]; !ok || c.Score > existing.Score {
			byKey[key] = c
		}
	}

	if b.Store != nil {
		if models, err := b.Store.ListModels(); err == nil {
			for _, m := range models {
				registryID, hfRepoID := "", ""
				if m.RegistryID != nil {
					registryID = *m.RegistryID
				}
				if m.HFRepoID != nil {
					hfRepoID = *m.HFRepoID
				}
				add(Candidate{
					Origin:      OriginDB,
					DisplayName: m.DisplayName,
					Provider:    m.Provider,
					ProviderID:  m.ProviderID,
					RegistryID:  registryID,
					HFRepoID:    hfRepoID,
					Score:       candidateScore(query, m.DisplayName, m.ProviderID, registryID, hfRepoID),
				})
			}
		}
	}

	if b.Registry != nil {
		if models, ok := b.Registry.ListModels(ctx); ok {
			for _, rm := range models {
				provider, providerID := splitProviderID(rm.ID)
				add(Candidate{
					Origin:      OriginRegistry,
					DisplayName: rm.Name,
					Provider:    provider,
					ProviderID:  providerID,
					RegistryID:  rm.ID,
					Score:       candidateScore(query, rm.Name, rm.ID, rm.ID, ""),
				})
			}
		}
	}

	for _, name := range b.LocalModelNames {
		provider, providerID := "local", name
		add(Candidate{
			Origin:      OriginLocal,
			DisplayName: name,
			Provider:    provider,
			ProviderID:  providerID,
			Score:       candidateScore(query, name, name, "", ""),
		})
	}

	if b.HF != nil {
		if results, ok := b.HF.Search(ctx, query, 10); ok {
			for _, r := range results {
				provider := r.Author
				if provider == "" {
					provider = "huggingface"
				}
				add(Candidate{
					Origin:      OriginHF,
					DisplayName: r.ID,
					Provider:    provider,
					ProviderID:  r.ID,
					HFRepoID:    r.ID,
					Score:       candidateScore(query, r.ID, r.ID, "", r.ID),
				})
			}
		}
	}

	if b.Arena != nil {
		if rows, ok := b.Arena.LoadRows(ctx); ok {
			for _, row := range rows {
				add(Candidate{
					Origin:      OriginArena,
					DisplayName: row.Model,
					Provider:    "arena",
					ProviderID:  row.Model,
					Score:       candidateScore(query, row.Model, row.Model, "", ""),
				})
			}
		}
	}

	out := make([]Candidate, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// candidateScore computes max(sim(query,name), sim(query,providerID)*0.98,
// sim(normalize(query),normalize(name)), sim(query, registryID),
// sim(query, hfRepoID)) over whichever identifiers are non-empty.
func candidateScore(query, name, providerID, registryID, hfRepoID string) float64 {
	best := fuzzy.BestSimilarity(query, name)
	if providerID != "" {
		if s := fuzzy.BestSimilarity(query, providerID) * 0.98; s > best {
			best = s
		}
	}
	if n := fuzzy.Similarity(fuzzy.Normalize(query), fuzzy.Normalize(name)); n > best {
		best = n
	}
	for _, id := range []string{registryID, hfRepoID} {
		if id == "" {
			continue
		}
		if s := fuzzy.BestSimilarity(query, id); s > best {
			best = s
		}
	}
	return best
}

// splitProviderID splits a "provider/model" registry id into its provider
// and bare-model-id parts. If id has no slash, provider is empty.
func splitProviderID(id string) (provider, providerID string) {
	for i := 0; i < len(id); i++ {
		if id[i] == '/' {
			return id[:i], id[i+1:]
		}
	}
	return "", id
}
