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

func TestHFSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"id":"openai/gpt-x","author":"openai","downloads":1000,"likes":50,"tags":["text-generation"]}]`))
	}))
	defer srv.Close()

	c := NewClient("hf", srv.URL+"/", &http.Client{Timeout: 5 * time.Second}, nil, time.Minute)
	hf := NewHFSearch(c)

	results, ok := hf.Search(context.Background(), "gpt-x", 5)
	require.True(t, ok)
	require.Len(t, results, 1)
	require.Equal(t, "openai/gpt-x", results[0].ID)
}
