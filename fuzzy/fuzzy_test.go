// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package fuzzy_test

import (
	"testing"

	"confirmate.io/modelrater/fuzzy"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "gpt 4 turbo", fuzzy.Normalize("OpenAI: GPT-4 Turbo"))
	assert.Equal(t, "claude 3 opus", fuzzy.Normalize("Claude 3 Opus"))
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"OpenAI: GPT-4 Turbo", "already normal", ""} {
		once := fuzzy.Normalize(s)
		twice := fuzzy.Normalize(once)
		assert.Equal(t, once, twice)
	}
}

func TestSimilaritySelfAndSymmetric(t *testing.T) {
	pairs := [][2]string{{"gpt-4", "claude-3"}, {"llama-3-70b", "llama-3-8b"}}
	for _, p := range pairs {
		assert.Equal(t, fuzzy.Similarity(p[0], p[1]), fuzzy.Similarity(p[1], p[0]))
	}
	assert.Equal(t, 100.0, fuzzy.Similarity("gpt-4", "gpt-4"))
}

func TestVariantsDedupAndOrder(t *testing.T) {
	v := fuzzy.Variants("GPT-4 Turbo", "openai/gpt-4-turbo", "")
	assert.Contains(t, v, "GPT-4 Turbo")
	assert.Contains(t, v, "openai/gpt-4-turbo")
	assert.Contains(t, v, "gpt-4-turbo")

	seen := make(map[string]bool)
	for _, s := range v {
		assert.False(t, seen[s], "duplicate variant %q", s)
		seen[s] = true
	}
}

func TestBestVariantSimilarity(t *testing.T) {
	variants := fuzzy.Variants("GPT-4 Turbo", "openai/gpt-4-turbo", "")
	assert.Equal(t, 100.0, fuzzy.BestVariantSimilarity("gpt-4-turbo", variants))
}
