// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package orchestrator implements the EvaluationOrchestrator: given a
// selected candidate, it upserts the Model, attempts HF autolinking, runs
// every MetricExtractor, optionally probes inference speed, and triggers a
// full rescore.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"confirmate.io/modelrater/candidates"
	"confirmate.io/modelrater/fuzzy"
	"confirmate.io/modelrater/log"
	"confirmate.io/modelrater/metrics"
	"confirmate.io/modelrater/scoring"
	"confirmate.io/modelrater/sources"
	"confirmate.io/modelrater/standard"
	"confirmate.io/modelrater/store"
)

// Autolink thresholds from §4.5: a high-confidence match is accepted
// unconditionally only when OpenLeaderboard results are confirmed present
// for the candidate repo; otherwise a stricter metadata-only threshold
// applies.
const (
	autolinkThresholdWithResults = 88.0
	autolinkThresholdMetaOnly    = 92.0
)

// Orchestrator wires the Store against every SourceClient and MetricExtractor.
type Orchestrator struct {
	Store *store.Store

	Registry        *sources.ModelRegistry
	Arena           *sources.ArenaLeaderboard
	CodeBench       *sources.CodeBenchResults
	OpenLeaderboard *sources.OpenLeaderboardResults
	Multilingual    *sources.MultilingualResults
	FunctionCalling *sources.FunctionCallingResults
	Compliance      *sources.ComplianceBoard
	HFSearch        *sources.HFSearch
	HFMetadata      *sources.HFMetadata
	LocalInference  *sources.LocalInferenceServer

	// ComplianceCandidateSlugs lists the model slugs available in the
	// compliance report tree; out-of-band because the board has no
	// directory-listing contract (§4.2 treats it as a flat lookup-by-key
	// client like the others).
	ComplianceCandidateSlugs []string

	Scoring *scoring.Engine
}

// New wires an Orchestrator around db. Individual source fields are left
// nil and may be set by the caller; a nil source is simply skipped during
// evaluation.
func New(db *store.Store) *Orchestrator {
	return &Orchestrator{Store: db, Scoring: scoring.New(db)}
}

// Result summarizes one Evaluate call.
type Result struct {
	Model          store.Model
	ExtractorsRun  []string
	MeasuredSpeed  bool
	RescoredCount  int
}

// Evaluate performs the five-step sequence of §4.5 for c: upsert, autolink,
// run every applicable extractor, optionally measure inference speed, then
// rescore the whole cohort.
func (o *Orchestrator) Evaluate(ctx context.Context, c candidates.Candidate, std standard.Standard, benchmarks scoring.BenchmarkScales, measureSpeed bool) (Result, error) {
	model := store.Model{
		DisplayName: c.DisplayName,
		Provider:    c.Provider,
		ProviderID:  c.ProviderID,
	}
	if c.RegistryID != "" {
		model.RegistryID = &c.RegistryID
	}
	if c.HFRepoID != "" {
		model.HFRepoID = &c.HFRepoID
	}
	if err := o.Store.UpsertModel(&model); err != nil {
		return Result{}, fmt.Errorf("upsert model: %w", err)
	}
	resolved, err := o.Store.FindModelByIdentity(model.Provider, model.ProviderID)
	if err != nil {
		return Result{}, fmt.Errorf("reload model: %w", err)
	}
	model = *resolved

	o.validateExistingHFLink(ctx, &model)
	o.attemptAutolink(ctx, &model)

	variants := fuzzy.Variants(model.DisplayName, derefOr(model.RegistryID), derefOr(model.HFRepoID))
	var run []string

	if o.Registry != nil && model.RegistryID != nil {
		if rm, ok := o.Registry.FindByID(ctx, *model.RegistryID); ok {
			o.writeMetrics(&model, "registry", metrics.RegistryExtractor{}.Extract(*rm), "registry_model", "https://openrouter.ai/models/"+*model.RegistryID)
			run = append(run, "registry")
		}
	}

	measured := false
	if measureSpeed && o.LocalInference != nil {
		if tps, ok := o.LocalInference.MeasureTokensPerSecond(ctx, model.ProviderID); ok {
			o.writeMetrics(&model, "localinference", []metrics.Metric{{Key: "measured_tokens_per_sec", Value: tps, Unit: "tokens_per_sec"}}, "", "")
			measured = true
		}
	}

	if o.Arena != nil {
		if rows, ok := o.Arena.LoadRows(ctx); ok {
			if ms, ok := metrics.ArenaExtractor{}.Extract(rows, variants); ok {
				o.writeMetrics(&model, "arena", ms, "arena_dataset", "https://lmarena.ai/leaderboard")
				run = append(run, "arena")
			}
		}
	}
	if o.CodeBench != nil {
		if rows, ok := o.CodeBench.LoadRows(ctx); ok {
			if ms, ok := metrics.CodeBenchExtractor{}.Extract(rows, variants); ok {
				o.writeMetrics(&model, "codebench", ms, "bigcodebench_dataset", "https://bigcode-bench.github.io/")
				run = append(run, "codebench")
			}
		}
	}
	if o.OpenLeaderboard != nil && model.HFRepoID != nil {
		if org, name, ok := splitOrgName(*model.HFRepoID); ok {
			if path, ok := o.OpenLeaderboard.LatestResultsPath(ctx, org, name); ok {
				if results, ok := o.OpenLeaderboard.LoadResults(ctx, path); ok {
					o.writeMetrics(&model, "openleaderboard", metrics.OpenLeaderboardExtractor{}.Extract(results), "hf_model", "https://huggingface.co/"+*model.HFRepoID)
					run = append(run, "openleaderboard")
				}
			}
		}
	}
	if o.Multilingual != nil {
		if rows, ok := o.Multilingual.LoadRows(ctx); ok {
			if ms, ok := metrics.MultilingualExtractor{}.Extract(rows, variants); ok {
				o.writeMetrics(&model, "multilingual", ms, "", "")
				run = append(run, "multilingual")
			}
		}
	}
	if o.FunctionCalling != nil {
		if rows, ok := o.FunctionCalling.LoadRows(ctx); ok {
			if ms, ok := metrics.FunctionCallingExtractor{}.Extract(rows, variants); ok {
				o.writeMetrics(&model, "functioncalling", ms, "", "")
				run = append(run, "functioncalling")
			}
		}
	}
	if o.HFMetadata != nil && model.HFRepoID != nil {
		if meta, ok, exists := o.HFMetadata.FetchRepo(ctx, *model.HFRepoID); ok && exists {
			o.writeMetrics(&model, "hfmetadata", metrics.HFMetadataExtractor{}.Extract(meta), "hf_model", "https://huggingface.co/"+*model.HFRepoID)
			run = append(run, "hfmetadata")
		}
	}
	if o.Compliance != nil {
		if slug, ok := metrics.SelectReportSlug(o.ComplianceCandidateSlugs, variants); ok {
			if report, ok := o.Compliance.LoadReport(ctx, slug); ok {
				o.writeMetrics(&model, "compliance", metrics.ComplianceExtractor{}.Extract(report), "", "")
				run = append(run, "compliance")
			}
		}
	}

	rescored, err := o.Scoring.RescoreAll(std, benchmarks)
	if err != nil {
		return Result{}, fmt.Errorf("rescore all: %w", err)
	}

	return Result{Model: model, ExtractorsRun: run, MeasuredSpeed: measured, RescoredCount: rescored}, nil
}

// validateExistingHFLink implements the HF-invalidation rule: when
// hf_repo_id equals registry_id, confirm the repo still exists and null the
// pointer if HF reports it gone.
func (o *Orchestrator) validateExistingHFLink(ctx context.Context, model *store.Model) {
	if o.HFMetadata == nil || model.HFRepoID == nil || model.RegistryID == nil {
		return
	}
	if *model.HFRepoID != *model.RegistryID {
		return
	}
	if _, _, exists := o.HFMetadata.FetchRepo(ctx, *model.HFRepoID); !exists {
		if err := o.Store.ClearHFRepoID(model.ID); err != nil {
			log.Warn(ctx, "could not clear invalidated hf_repo_id", "model_id", model.ID, "err", err)
			return
		}
		model.HFRepoID = nil
		log.Info(ctx, "invalidated stale hf_repo_id", "model_id", model.ID, "repo", *model.RegistryID)
	}
}

// attemptAutolink searches HF for a repo matching model when it has a
// registry_id but no hf_repo_id, per §4.5 step 2.
func (o *Orchestrator) attemptAutolink(ctx context.Context, model *store.Model) {
	if o.HFSearch == nil || model.HFRepoID != nil || model.RegistryID == nil {
		return
	}

	variants := fuzzy.Variants(model.DisplayName, *model.RegistryID, "")
	results, ok := o.HFSearch.Search(ctx, model.DisplayName, 10)
	if !ok || len(results) == 0 {
		return
	}

	bestIdx, bestScore := -1, 0.0
	for i, r := range results {
		if s := fuzzy.BestVariantSimilarity(r.ID, variants); s > bestScore {
			bestScore, bestIdx = s, i
		}
	}
	if bestIdx < 0 {
		return
	}
	repoID := results[bestIdx].ID

	accepted := false
	if bestScore >= autolinkThresholdWithResults && o.hasOpenLeaderboardResults(ctx, repoID) {
		accepted = true
	} else if bestScore >= autolinkThresholdMetaOnly && o.HFMetadata != nil {
		if _, ok, exists := o.HFMetadata.FetchRepo(ctx, repoID); ok && exists {
			accepted = true
		}
	}

	payload, _ := json.Marshal(map[string]any{"repo_id": repoID, "score": bestScore, "accepted": accepted})
	sourceID, err := o.Store.CreateSource(&store.Source{
		Name:        "hf-autolink",
		URL:         "https://huggingface.co/" + repoID,
		RetrievedAt: time.Now().UTC(),
		PayloadBlob: string(payload),
	})
	if err != nil {
		log.Warn(ctx, "could not persist autolink attempt", "err", err)
	}

	if accepted {
		model.HFRepoID = &repoID
		if err := o.Store.UpsertModel(model); err != nil {
			log.Warn(ctx, "could not persist autolink result", "err", err)
		}
		if err == nil {
			if err := o.Store.UpsertLink(&store.Link{ModelID: model.ID, Kind: "hf_model", URL: "https://huggingface.co/" + repoID, SourceID: sourceID}); err != nil {
				log.Warn(ctx, "could not upsert autolink hf_model link", "err", err)
			}
		}
	}
}

func (o *Orchestrator) hasOpenLeaderboardResults(ctx context.Context, repoID string) bool {
	if o.OpenLeaderboard == nil {
		return false
	}
	org, name, ok := splitOrgName(repoID)
	if !ok {
		return false
	}
	_, ok = o.OpenLeaderboard.LatestResultsPath(ctx, org, name)
	return ok
}

// writeMetrics persists one Source audit row, one RawMetric upsert per
// extracted metric, and — when linkKind/linkURL are non-empty — one Link
// row pointing back to where the metrics came from.
func (o *Orchestrator) writeMetrics(model *store.Model, sourceName string, ms []metrics.Metric, linkKind, linkURL string) {
	if len(ms) == 0 && linkURL == "" {
		return
	}
	sourceID, err := o.Store.CreateSource(&store.Source{Name: sourceName, URL: linkURL, RetrievedAt: time.Now().UTC()})
	if err != nil {
		log.Warn(context.Background(), "could not create source row", "source", sourceName, "err", err)
		return
	}
	for _, m := range ms {
		err := o.Store.UpsertMetric(&store.RawMetric{
			ModelID:     model.ID,
			MetricKey:   m.Key,
			Value:       m.Value,
			Unit:        m.Unit,
			SourceID:    sourceID,
			RetrievedAt: time.Now().UTC(),
		})
		if err != nil {
			log.Warn(context.Background(), "could not upsert metric", "key", m.Key, "err", err)
		}
	}
	if linkURL != "" {
		if err := o.Store.UpsertLink(&store.Link{ModelID: model.ID, Kind: linkKind, URL: linkURL, SourceID: sourceID}); err != nil {
			log.Warn(context.Background(), "could not upsert link", "kind", linkKind, "err", err)
		}
	}
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func splitOrgName(repoID string) (org, name string, ok bool) {
	for i := 0; i < len(repoID); i++ {
		if repoID[i] == '/' {
			return repoID[:i], repoID[i+1:], true
		}
	}
	return "", "", false
}
