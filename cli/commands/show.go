// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strconv"

	"confirmate.io/modelrater/store"

	"github.com/urfave/cli/v3"
)

// ShowCommand prints a model's raw metrics, scores and links.
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a model's raw metrics, scores and links",
		ArgsUsage: "<id-or-name>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-details", Usage: "Omit per-category score details"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("show requires an id or name argument")
			}
			query := c.Args().Get(0)

			eng, err := buildEngine(c)
			if err != nil {
				return err
			}
			defer eng.Close()

			model, err := resolveModel(eng.store, query)
			if err != nil {
				return err
			}

			rawMetrics, err := eng.store.MetricsForModel(model.ID)
			if err != nil {
				return fmt.Errorf("load metrics: %w", err)
			}
			links, err := eng.store.LinksForModel(model.ID)
			if err != nil {
				return fmt.Errorf("load links: %w", err)
			}
			scores, err := scoresForModel(eng, model.ID)
			if err != nil {
				return fmt.Errorf("load scores: %w", err)
			}
			if c.Bool("no-details") {
				for cat, sc := range scores {
					sc.Details = nil
					scores[cat] = sc
				}
			}

			return PrettyPrint(map[string]any{
				"model":       modelSummary(*model),
				"raw_metrics": rawMetrics,
				"links":       links,
				"scores":      scores,
			})
		},
	}
}

// resolveModel looks up a model by numeric ID first, then by best fuzzy
// match against display name and provider_id across the whole cohort.
func resolveModel(db *store.Store, query string) (*store.Model, error) {
	if id, err := strconv.ParseUint(query, 10, 64); err == nil {
		m, err := db.GetModel(uint(id))
		if err != nil {
			return nil, fmt.Errorf("no model with id %d", id)
		}
		return m, nil
	}

	models, err := db.ListModels()
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	idx, ok := matchModelByName(models, query)
	if !ok {
		return nil, fmt.Errorf("no model matches %q", query)
	}
	return &models[idx], nil
}
