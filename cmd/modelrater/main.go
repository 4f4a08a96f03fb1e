// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log"
	"os"

	"confirmate.io/modelrater/cli/commands"
)

func main() {
	cmd := commands.NewRootCommand()

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
