// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"net/http"
	"time"

	"confirmate.io/modelrater/cache"
	"confirmate.io/modelrater/candidates"
	"confirmate.io/modelrater/orchestrator"
	"confirmate.io/modelrater/scoring"
	"confirmate.io/modelrater/sources"
	"confirmate.io/modelrater/standard"
	"confirmate.io/modelrater/store"

	"github.com/urfave/cli/v3"
)

const defaultCacheTTL = 6 * time.Hour

// engine bundles every component a command needs, built once from the root
// command's flags.
type engine struct {
	store        *store.Store
	cache        *cache.Cache
	candidates   *candidates.Builder
	orchestrator *orchestrator.Orchestrator
	standard     standard.Standard
}

func (e *engine) Close() {
	if e.cache != nil {
		_ = e.cache.Close()
	}
	if e.store != nil {
		_ = e.store.Close()
	}
}

// benchmarkScales derives the fixed normalization ranges required by §4.6
// for arena_score and the two bigcodebench metrics, from the currently
// cached leaderboard payloads. A source that fails to load simply
// contributes no entry, leaving the affected keys to fall back to
// cohort-derived normalization.
func (e *engine) benchmarkScales(ctx context.Context) scoring.BenchmarkScales {
	scales := scoring.BenchmarkScales{}
	if e.orchestrator.Arena != nil {
		if rows, ok := e.orchestrator.Arena.LoadRows(ctx); ok {
			if mn, mx, ok := sources.EloRange(rows); ok {
				scales["arena_score"] = [2]float64{mn, mx}
			}
		}
	}
	if e.orchestrator.CodeBench != nil {
		if rows, ok := e.orchestrator.CodeBench.LoadRows(ctx); ok {
			if mn, mx, ok := sources.ScoreRange(rows, "instruct"); ok {
				scales["bigcodebench_instruct"] = [2]float64{mn, mx}
			}
			if mn, mx, ok := sources.ScoreRange(rows, "complete"); ok {
				scales["bigcodebench_complete"] = [2]float64{mn, mx}
			}
		}
	}
	return scales
}

// buildEngine opens the Store and cache and wires every SourceClient named
// in the expanded specification's domain stack. Only the registry, the two
// Hugging Face clients and the local inference server (via --inference-addr)
// get a base URL; the arena, codebench, openleaderboard, multilingual,
// function-calling and compliance clients get an empty one, so they return
// only what is already in the cache. No flag sets those base URLs.
func buildEngine(c *cli.Command) (*engine, error) {
	db, err := OpenStore(c)
	if err != nil {
		return nil, err
	}

	ch, err := cache.Open(c.Root().String("cache-dir"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	token := c.Root().String("registry-token")

	newClient := func(name, baseURL string) *sources.Client {
		cl := sources.NewClient(name, baseURL, httpClient, ch, defaultCacheTTL)
		if name == "registry" {
			cl.AuthToken = token
		}
		return cl
	}

	registry := sources.NewModelRegistry(newClient("registry", "https://openrouter.ai/api/v1/"))
	arena := sources.NewArenaLeaderboard(newClient("arena", ""))
	codebench := sources.NewCodeBenchResults(newClient("codebench", ""))
	openLeaderboard := sources.NewOpenLeaderboardResults(newClient("openleaderboard", ""))
	multilingual := sources.NewMultilingualResults(newClient("multilingual", ""))
	functionCalling := sources.NewFunctionCallingResults(newClient("functioncalling", ""))
	compliance := sources.NewComplianceBoard(newClient("compliance", ""))
	hfSearch := sources.NewHFSearch(newClient("hfsearch", "https://huggingface.co/"))
	hfMetadata := sources.NewHFMetadata(newClient("hfmetadata", "https://huggingface.co/"))
	localInference := sources.NewLocalInferenceServer(newClient("localinference", c.Root().String("inference-addr")))

	std := standard.Default()
	if path := c.Root().String("standard-file"); path != "" {
		std, err = standard.LoadFromFile(path)
		if err != nil {
			_ = ch.Close()
			_ = db.Close()
			return nil, err
		}
	}

	orch := orchestrator.New(db)
	orch.Registry = registry
	orch.Arena = arena
	orch.CodeBench = codebench
	orch.OpenLeaderboard = openLeaderboard
	orch.Multilingual = multilingual
	orch.FunctionCalling = functionCalling
	orch.Compliance = compliance
	orch.HFSearch = hfSearch
	orch.HFMetadata = hfMetadata
	orch.LocalInference = localInference

	cb := &candidates.Builder{
		Store:    db,
		Registry: registry,
		HF:       hfSearch,
		Arena:    arena,
	}

	return &engine{store: db, cache: ch, candidates: cb, orchestrator: orch, standard: std}, nil
}
