// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunctionCallingLoadRows(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/bfcl.csv": "Model,Overall Acc\nGPT-X (FC),82.5%\nGPT-X,74\n",
	})
	fc := NewFunctionCallingResults(c)

	rows, ok := fc.LoadRows(context.Background())
	require.True(t, ok)
	require.Len(t, rows, 2)
	require.True(t, rows[0].Native)
	require.InDelta(t, 0.825, rows[0].OverallAcc, 1e-9)
	require.False(t, rows[1].Native)
	require.InDelta(t, 0.74, rows[1].OverallAcc, 1e-9)
}

func TestBareModelName(t *testing.T) {
	require.Equal(t, "GPT-X", BareModelName("GPT-X (FC)"))
	require.Equal(t, "GPT-X", BareModelName("GPT-X"))
}
