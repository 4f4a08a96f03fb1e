// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComplianceBoardLoadReport(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/gpt-x.json": `{"toxicity":{"en":0.8},"privacy_pii":0.6,"over_refusal":0.9,"notes":"n/a"}`,
	})
	board := NewComplianceBoard(c)

	report, ok := board.LoadReport(context.Background(), "gpt-x")
	require.True(t, ok)
	require.Equal(t, 0.8, report.Checks["toxicity_en"])
	require.Equal(t, 0.6, report.Checks["privacy_pii"])
	require.Equal(t, 0.9, report.Checks["over_refusal"])
	require.NotContains(t, report.Checks, "notes")
}

func TestComplianceBoardMissingReport(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{})
	board := NewComplianceBoard(c)
	_, ok := board.LoadReport(context.Background(), "unknown")
	require.False(t, ok)
}
