// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"confirmate.io/modelrater/candidates"

	"github.com/urfave/cli/v3"
)

// EvalCommand searches for a query interactively, lets the operator pick
// one candidate from the ranked list, evaluates it, and prints the
// resulting per-category scores.
func EvalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "Interactively select and evaluate a single model candidate",
		ArgsUsage: "<query>",
		Flags: append(LimitFlags(),
			&cli.BoolFlag{Name: "measure-speed", Usage: "Probe the local inference server for tokens/sec"},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("eval requires a query argument")
			}
			query := c.Args().Get(0)

			eng, err := buildEngine(c)
			if err != nil {
				return err
			}
			defer eng.Close()

			matches := eng.candidates.Search(ctx, query, int(c.Int("limit")))
			if len(matches) == 0 {
				return fmt.Errorf("no_match: no candidates found for %q", query)
			}

			chosen, err := promptSelection(matches)
			if err != nil {
				return err
			}

			result, err := eng.orchestrator.Evaluate(ctx, chosen, eng.standard, eng.benchmarkScales(ctx), c.Bool("measure-speed"))
			if err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}
			return printEvalResult(eng, result)
		},
	}
}

// promptSelection lists candidates on stdout and reads a 1-based index
// from stdin.
func promptSelection(matches []candidates.Candidate) (candidates.Candidate, error) {
	for i, m := range matches {
		fmt.Printf("%2d) %-40s %-10s %-30s score=%.1f\n", i+1, m.DisplayName, m.Origin, m.ProviderID, m.Score)
	}
	fmt.Print("select a candidate [1]: ")

	scanner := bufio.NewScanner(os.Stdin)
	idx := 0
	if scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(matches) {
				return candidates.Candidate{}, fmt.Errorf("invalid selection %q", line)
			}
			idx = n - 1
		}
	}
	return matches[idx], nil
}
