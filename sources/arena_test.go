// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaLoadRowsAndEloRange(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/leaderboard.csv": "Model,Elo,Votes\nGPT-X,1300,5000\nClaude-Y,1250,4200\n",
	})
	arena := NewArenaLeaderboard(c)

	rows, ok := arena.LoadRows(context.Background())
	require.True(t, ok)
	require.Len(t, rows, 2)
	require.Equal(t, "GPT-X", rows[0].Model)
	require.Equal(t, 1300.0, rows[0].Score)
	require.Equal(t, 5000.0, rows[0].Votes)

	min, max, ok := EloRange(rows)
	require.True(t, ok)
	require.Equal(t, 1250.0, min)
	require.Equal(t, 1300.0, max)
}

func TestArenaMissingColumns(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/leaderboard.csv": "Foo,Bar\n1,2\n",
	})
	arena := NewArenaLeaderboard(c)
	_, ok := arena.LoadRows(context.Background())
	require.False(t, ok)
}
