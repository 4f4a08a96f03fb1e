// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"confirmate.io/modelrater/store"

	"github.com/hokaccha/go-prettyjson"
	"github.com/urfave/cli/v3"
)

// ExpandCommaSeparated flattens values that may contain comma-separated items.
func ExpandCommaSeparated(values []string) (out []string) {
	if len(values) == 0 {
		return nil
	}

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			var item string
			item = strings.TrimSpace(part)
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// PrettyPrint prints any JSON-marshalable value as pretty-printed, colorized
// JSON to stdout.
func PrettyPrint(v any) (err error) {
	var b []byte
	var out []byte

	b, err = json.Marshal(v)
	if err != nil {
		return err
	}

	out, err = prettyjson.Format(b)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}

// OpenStore opens the Store at the path named by the "db" flag.
func OpenStore(c *cli.Command) (*store.Store, error) {
	path := c.Root().String("db")
	return store.Open(store.WithPath(path))
}

// LimitFlags returns the common result-count-bounding flags shared by the
// search/eval/batch-eval commands.
func LimitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of candidates to consider",
			Value: 10,
		},
	}
}
