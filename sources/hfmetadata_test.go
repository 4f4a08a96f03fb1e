// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHFMetadataFetchRepoFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"openai/gpt-x","language":["en","de"],"downloads":100,"likes":5}`))
	}))
	defer srv.Close()

	c := NewClient("hfmeta", srv.URL+"/", &http.Client{Timeout: 5 * time.Second}, nil, time.Minute)
	hf := NewHFMetadata(c)

	meta, ok, exists := hf.FetchRepo(context.Background(), "openai/gpt-x")
	require.True(t, ok)
	require.True(t, exists)
	require.ElementsMatch(t, []string{"en", "de"}, meta.Languages)
}

func TestHFMetadataFetchRepoGone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("hfmeta", srv.URL+"/", &http.Client{Timeout: 5 * time.Second}, nil, time.Minute)
	hf := NewHFMetadata(c)

	_, ok, exists := hf.FetchRepo(context.Background(), "openai/deleted-model")
	require.False(t, ok)
	require.False(t, exists)
}
