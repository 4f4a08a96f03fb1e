// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModelRegistryListAndFindByID(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/models": `{"data":[
			{"id":"openai/gpt-x","name":"GPT-X","context_length":128000,"prompt_usd_per_token":0.00001},
			{"id":"anthropic/claude-y","name":"Claude-Y","context_length":200000}
		]}`,
	})
	reg := NewModelRegistry(c)

	models, ok := reg.ListModels(context.Background())
	require.True(t, ok)
	require.Len(t, models, 2)

	found, ok := reg.FindByID(context.Background(), "anthropic/claude-y")
	require.True(t, ok)
	require.Equal(t, "Claude-Y", found.Name)

	_, ok = reg.FindByID(context.Background(), "nonexistent/model")
	require.False(t, ok)
}

func TestModelRegistryMissing(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{})
	reg := NewModelRegistry(c)
	_, ok := reg.ListModels(context.Background())
	require.False(t, ok)
}
