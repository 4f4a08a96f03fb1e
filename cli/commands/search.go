// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// SearchCommand prints the ranked candidate list for a query, without
// evaluating or persisting anything.
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search for model candidates across the store and live sources",
		ArgsUsage: "<query>",
		Flags:     LimitFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("search requires a query argument")
			}
			query := c.Args().Get(0)

			eng, err := buildEngine(c)
			if err != nil {
				return err
			}
			defer eng.Close()

			candidates := eng.candidates.Search(ctx, query, int(c.Int("limit")))
			return PrettyPrint(candidates)
		},
	}
}
