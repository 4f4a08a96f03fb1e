// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package sources implements the SourceClient family: narrow, failure-silent
// fetchers for each upstream registry/leaderboard/benchmark-dump the rating
// engine ingests from.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"confirmate.io/modelrater/cache"
	"confirmate.io/modelrater/log"

	"golang.org/x/time/rate"
)

// Client is the shared HTTP-plus-cache plumbing every SourceClient embeds.
// It never returns an error to its callers; GetBytes degrades to
// (nil, false) on any network or cache failure, matching the "recoverable
// source failure" contract.
type Client struct {
	Name       string
	BaseURL    string
	HTTP       *http.Client
	Cache      *cache.Cache
	TTL        time.Duration
	AuthToken  string

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
}

// NewClient builds a Client for one named source.
func NewClient(name, baseURL string, httpClient *http.Client, c *cache.Cache, ttl time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		Name:     name,
		BaseURL:  baseURL,
		HTTP:     httpClient,
		Cache:    c,
		TTL:      ttl,
		limiters: make(map[string]*rate.Limiter),
	}
}

// limiterFor returns a per-host token-bucket limiter (burst 1, one request
// per 200ms sustained), created lazily the first time a host is seen.
func (c *Client) limiterFor(host string) *rate.Limiter {
	c.limiterMu.Lock()
	defer c.limiterMu.Unlock()

	l, ok := c.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Every(200*time.Millisecond), 1)
		c.limiters[host] = l
	}
	return l
}

// GetBytes fetches path (absolute URL or BaseURL-relative), serving from the
// disk cache when fresh, and caching a successful response. Query and path
// key the cache entry alongside the client's source name. Any failure
// (network, non-2xx, cache I/O) yields (nil, false) — never an error.
func (c *Client) GetBytes(ctx context.Context, query, path string) (body []byte, ok bool) {
	key := cache.Key(c.Name, query, path)
	if c.Cache != nil {
		if cached, found := c.Cache.Get(key); found {
			return cached, true
		}
	}

	url := path
	if c.BaseURL != "" && !isAbsoluteURL(path) {
		url = c.BaseURL + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Debug(ctx, "could not build request", "source", c.Name, "err", err)
		return nil, false
	}
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	if l := c.limiterFor(req.URL.Host); l != nil {
		_ = l.Wait(ctx)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "source", c.Name, "url", url, "err", err)
		return nil, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug(ctx, "non-2xx response", "source", c.Name, "url", url, "status", resp.StatusCode)
		return nil, false
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		log.Debug(ctx, "could not read response body", "source", c.Name, "err", err)
		return nil, false
	}

	if c.Cache != nil {
		_ = c.Cache.Put(key, body, c.TTL)
	}
	return body, true
}

// GetWithStatus performs an uncached GET against path and returns the body,
// the response status code (0 on transport failure), and whether the
// transport round-trip itself succeeded. Callers that need to distinguish
// "not found" from other kinds of fetch failure — notably the HF-metadata
// repo-gone check — use this instead of the uniform (nil, false) of
// GetBytes.
func (c *Client) GetWithStatus(ctx context.Context, path string) (body []byte, status int, transportOK bool) {
	url := path
	if c.BaseURL != "" && !isAbsoluteURL(path) {
		url = c.BaseURL + path
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, false
	}
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}
	if l := c.limiterFor(req.URL.Host); l != nil {
		_ = l.Wait(ctx)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, false
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, false
	}
	return data, resp.StatusCode, true
}

func isAbsoluteURL(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return i > 0
		}
		if !isSchemeChar(s[i]) {
			return false
		}
	}
	return false
}

func isSchemeChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '+' || b == '-' || b == '.'
}

// Errorf is a thin wrapper around fmt.Errorf for building format errors
// in the source family. No parse step in this package calls it.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
