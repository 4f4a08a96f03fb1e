// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"confirmate.io/modelrater/scoring"

	"github.com/urfave/cli/v3"
)

// batchModelReport is one entry of the "models" array in the batch-eval
// JSON output schema.
type batchModelReport struct {
	Query    string                    `json:"query"`
	Status   string                    `json:"status"`
	Selected map[string]any            `json:"selected,omitempty"`
	ModelID  *uint                     `json:"model_id,omitempty"`
	Warnings []string                  `json:"warnings"`
	Error    string                    `json:"error,omitempty"`
	Scores   map[string]categoryReport `json:"scores,omitempty"`
}

// batchReport is the top-level batch-eval JSON output schema.
type batchReport struct {
	GeneratedAt   string             `json:"generated_at"`
	Standard      json.RawMessage    `json:"standard"`
	DBPath        string             `json:"db_path"`
	RescoredCount int                `json:"rescored_count"`
	Models        []batchModelReport `json:"models"`
}

// BatchEvalCommand evaluates a list of model queries non-interactively,
// writing one consolidated JSON report.
func BatchEvalCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch-eval",
		Usage:     "Evaluate a batch of model queries non-interactively",
		ArgsUsage: "[models...]",
		Flags: append(LimitFlags(),
			&cli.StringFlag{Name: "file", Usage: "Path to a file of newline-separated queries, one per line"},
			&cli.StringFlag{Name: "output", Usage: "Path to write the JSON report (defaults to stdout)"},
			&cli.StringFlag{Name: "min-match", Usage: "Minimum top-candidate similarity (0-100) required to proceed", Value: "60"},
			&cli.BoolFlag{Name: "skip-low-match", Usage: "Skip (instead of erroring) queries below --min-match"},
			&cli.BoolFlag{Name: "measure-speed", Usage: "Probe the local inference server for tokens/sec"},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			queries, err := collectQueries(c)
			if err != nil {
				return err
			}
			if len(queries) == 0 {
				return fmt.Errorf("batch-eval requires at least one query, via arguments or --file")
			}

			eng, err := buildEngine(c)
			if err != nil {
				return err
			}
			defer eng.Close()

			minMatch, err := strconv.ParseFloat(c.String("min-match"), 64)
			if err != nil {
				return fmt.Errorf("invalid --min-match: %w", err)
			}
			skipLow := c.Bool("skip-low-match")
			limit := int(c.Int("limit"))
			scales := eng.benchmarkScales(ctx)

			var models []batchModelReport
			rescored := 0
			for _, q := range queries {
				report, rc := evaluateOneBatch(ctx, eng, q, limit, minMatch, skipLow, c.Bool("measure-speed"), scales)
				models = append(models, report)
				rescored = rc
			}

			stdJSON, err := eng.standard.CanonicalJSON()
			if err != nil {
				return fmt.Errorf("serialize standard: %w", err)
			}

			out := batchReport{
				GeneratedAt:   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
				Standard:      stdJSON,
				DBPath:        c.Root().String("db"),
				RescoredCount: rescored,
				Models:        models,
			}

			return writeBatchReport(c, out)
		},
	}
}

func collectQueries(c *cli.Command) ([]string, error) {
	queries := make([]string, 0, c.Args().Len())
	queries = append(queries, c.Args().Slice()...)

	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read --file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				queries = append(queries, line)
			}
		}
	}
	return queries, nil
}

func evaluateOneBatch(ctx context.Context, eng *engine, query string, limit int, minMatch float64, skipLow, measureSpeed bool, scales scoring.BenchmarkScales) (batchModelReport, int) {
	matches := eng.candidates.Search(ctx, query, limit)
	if len(matches) == 0 {
		return batchModelReport{Query: query, Status: "no_match", Warnings: []string{}}, 0
	}

	top := matches[0]
	if top.Score < minMatch {
		if skipLow {
			return batchModelReport{Query: query, Status: "skipped_low_match", Warnings: []string{
				fmt.Sprintf("top match %q scored %.1f, below --min-match %.1f", top.DisplayName, top.Score, minMatch),
			}}, 0
		}
		return batchModelReport{Query: query, Status: "error", Error: fmt.Sprintf("top match %q scored %.1f, below --min-match %.1f", top.DisplayName, top.Score, minMatch), Warnings: []string{}}, 0
	}

	result, err := eng.orchestrator.Evaluate(ctx, top, eng.standard, scales, measureSpeed)
	if err != nil {
		return batchModelReport{Query: query, Status: "error", Error: err.Error(), Warnings: []string{}}, 0
	}

	scores, err := scoresForModel(eng, result.Model.ID)
	warnings := []string{}
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("could not load scores: %v", err))
	}

	selected := modelSummary(result.Model)
	selected["source"] = string(top.Origin)
	selected["match"] = top.Score

	id := result.Model.ID
	return batchModelReport{
		Query:    query,
		Status:   "ok",
		Selected: selected,
		ModelID:  &id,
		Warnings: warnings,
		Scores:   scores,
	}, result.RescoredCount
}

func writeBatchReport(c *cli.Command, report batchReport) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if path := c.String("output"); path != "" {
		return os.WriteFile(path, b, 0o644)
	}
	_, err = os.Stdout.Write(append(b, '\n'))
	return err
}
