// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package cache_test

import (
	"testing"
	"time"

	"confirmate.io/modelrater/cache"

	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	c, err := cache.Open("")
	require.NoError(t, err)
	defer c.Close()

	key := cache.Key("registry", "", "models")
	require.NoError(t, c.Put(key, []byte("payload"), time.Hour))

	got, ok := c.Get(key)
	require.True(t, ok)
	require.Equal(t, []byte("payload"), got)
}

func TestGetMissingKey(t *testing.T) {
	c, err := cache.Open("")
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get(cache.Key("registry", "", "nope"))
	require.False(t, ok)
}

func TestKeyDistinguishesQueryAndPath(t *testing.T) {
	require.NotEqual(t, cache.Key("hf", "llama", ""), cache.Key("hf", "claude", ""))
	require.NotEqual(t, cache.Key("openllm", "", "a/b/results_1.json"), cache.Key("openllm", "", "a/b/results_2.json"))
}
