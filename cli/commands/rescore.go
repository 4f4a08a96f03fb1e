// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// RescoreCommand re-normalizes every model's Scores under the active
// Standard, without running any extractor.
func RescoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "rescore",
		Usage: "Re-normalize all scores under the current standard",
		Action: func(ctx context.Context, c *cli.Command) error {
			eng, err := buildEngine(c)
			if err != nil {
				return err
			}
			defer eng.Close()

			count, err := eng.orchestrator.Scoring.RescoreAll(eng.standard, eng.benchmarkScales(ctx))
			if err != nil {
				return fmt.Errorf("rescore: %w", err)
			}
			return PrettyPrint(map[string]any{"rescored_count": count})
		},
	}
}
