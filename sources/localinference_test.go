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

func TestMeasureTokensPerSecondEvalCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"eval_count":100,"eval_duration":2000000000}`))
	}))
	defer srv.Close()

	c := NewClient("local", srv.URL+"/", &http.Client{Timeout: 5 * time.Second}, nil, time.Minute)
	l := NewLocalInferenceServer(c)

	tps, ok := l.MeasureTokensPerSecond(context.Background(), "llama3")
	require.True(t, ok)
	require.InDelta(t, 50.0, tps, 1e-9)
}

func TestMeasureTokensPerSecondFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"usage":{"completion_tokens":10}}`))
	}))
	defer srv.Close()

	c := NewClient("local", srv.URL+"/", &http.Client{Timeout: 5 * time.Second}, nil, time.Minute)
	l := NewLocalInferenceServer(c)

	_, ok := l.MeasureTokensPerSecond(context.Background(), "llama3")
	require.True(t, ok)
}

func TestMeasureTokensPerSecondFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("local", srv.URL+"/", &http.Client{Timeout: 5 * time.Second}, nil, time.Minute)
	l := NewLocalInferenceServer(c)

	_, ok := l.MeasureTokensPerSecond(context.Background(), "llama3")
	require.False(t, ok)
}
