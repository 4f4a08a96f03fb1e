// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleTable = `
| Model    | French | German | Average |
|----------|--------|--------|---------|
| GPT-X    | 0.80   | 0.78   | 0.79    |
| Claude-Y | 0.75   | 0.74   | 0.745   |
`

func TestParseMarkdownTable(t *testing.T) {
	rows, ok := ParseMarkdownTable(sampleTable)
	require.True(t, ok)
	require.Len(t, rows, 2)
	require.Equal(t, "GPT-X", rows[0].Model)
	require.Equal(t, 0.79, rows[0].Average)
}

func TestMultilingualLoadRows(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{"/mmmlu.md": sampleTable})
	m := NewMultilingualResults(c)
	rows, ok := m.LoadRows(context.Background())
	require.True(t, ok)
	require.Len(t, rows, 2)
}

func TestParseMarkdownTableNoAverageColumn(t *testing.T) {
	_, ok := ParseMarkdownTable("| Model | French |\n|---|---|\n| GPT-X | 0.8 |\n")
	require.False(t, ok)
}
