// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"confirmate.io/modelrater/log"

	"github.com/urfave/cli/v3"
)

// NewRootCommand returns the root CLI command for the model rating engine.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:                  "modelrater",
		Usage:                 "Model rating engine: candidate search, evaluation and scoring",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the SQLite database file (empty for in-memory)",
				Value: "modelrater.db",
			},
			&cli.StringFlag{
				Name:    "registry-token",
				Usage:   "Bearer token for the primary model registry",
				Sources: cli.EnvVars("MODELRATER_REGISTRY_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "inference-addr",
				Usage:   "Base URL of the local inference server",
				Value:   "http://localhost:11434",
				Sources: cli.EnvVars("MODELRATER_INFERENCE_ADDR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log verbosity (trace, debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("MODELRATER_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "standard-file",
				Usage: "Optional path to a YAML Standard override; defaults to the embedded standard",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "Directory for the on-disk SourceClient cache (empty for in-memory)",
				Value: "",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := log.Configure(c.String("log-level")); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			SearchCommand(),
			EvalCommand(),
			BatchEvalCommand(),
			RescoreCommand(),
			IngestBFCLCommand(),
			ShowCommand(),
		},
	}
}
