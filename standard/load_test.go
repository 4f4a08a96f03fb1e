// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package standard_test

import (
	"os"
	"path/filepath"
	"testing"

	"confirmate.io/modelrater/standard"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
name: custom
fallback_confidence_multiplier: 0.5
categories:
  coding:
    metrics:
      - key: bigcodebench_instruct
        better: higher
        weight: 1
`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	s, err := standard.LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "custom", s.Name)
	require.Equal(t, 0.5, s.FallbackConfidenceMultiplier)
	require.Len(t, s.Categories["coding"].Metrics, 1)
}

func TestLoadFromFileMissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: {}\n"), 0o644))

	_, err := standard.LoadFromFile(path)
	require.Error(t, err)
}
